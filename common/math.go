package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the tolerance below which vectors and angles count as zero.
const Epsilon = 1e-9

const minSmoothTime = 0.0001

var (
	Up      = mgl64.Vec3{0, 1, 0}
	Down    = mgl64.Vec3{0, -1, 0}
	Forward = mgl64.Vec3{0, 0, 1}
	Right   = mgl64.Vec3{1, 0, 0}
)

// Lerp interpolates from a to b with t clamped to [0,1].
func Lerp(a, b, t float64) float64 {
	return a + Clamp01(t)*(b-a)
}

func Clamp01(v float64) float64 {
	return mgl64.Clamp(v, 0, 1)
}

// Flatten drops the vertical component of v.
func Flatten(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// NormalizeOrZero returns the unit vector of v, or the zero vector when v has
// no length. mgl64's Normalize yields NaNs on a zero vector.
func NormalizeOrZero(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// SmoothDamp moves current toward target with a critically damped spring.
// velocity carries state between calls. Overshoot snaps onto target.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	if dt <= 0 {
		return current
	}
	smoothTime = math.Max(minSmoothTime, smoothTime)
	omega := 2 / smoothTime
	exp := dampFactor(omega * dt)

	change := current - target
	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * exp
	out := target + (change+temp)*exp

	if (target-current > 0) == (out > target) {
		out = target
		*velocity = 0
	}
	return out
}

// SmoothDampVec3 is SmoothDamp applied to a point in space.
func SmoothDampVec3(current, target mgl64.Vec3, velocity *mgl64.Vec3, smoothTime, dt float64) mgl64.Vec3 {
	if dt <= 0 {
		return current
	}
	smoothTime = math.Max(minSmoothTime, smoothTime)
	omega := 2 / smoothTime
	exp := dampFactor(omega * dt)

	change := current.Sub(target)
	temp := velocity.Add(change.Mul(omega)).Mul(dt)
	*velocity = velocity.Sub(temp.Mul(omega)).Mul(exp)
	out := target.Add(change.Add(temp).Mul(exp))

	if target.Sub(current).Dot(out.Sub(target)) > 0 {
		out = target
		*velocity = mgl64.Vec3{}
	}
	return out
}

func dampFactor(x float64) float64 {
	return 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)
}

// SnapMagnitude quantizes a signed magnitude into the buckets
// {-1, -0.5, 0, 0.5, 1}. Anything in (0, 0.5] becomes 0.5.
func SnapMagnitude(m float64) float64 {
	switch {
	case m > 0.5:
		return 1
	case m > 0:
		return 0.5
	case m < -0.5:
		return -1
	case m < 0:
		return -0.5
	default:
		return 0
	}
}

// SnapVector keeps the direction of v and snaps its length.
func SnapVector(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(SnapMagnitude(l) / l)
}

// YawRotation returns the rotation about +Y that turns +Z toward dir.
func YawRotation(dir mgl64.Vec3) mgl64.Quat {
	return mgl64.QuatRotate(math.Atan2(dir.X(), dir.Z()), Up)
}

// Slerp interpolates along the shortest arc between a and b.
func Slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	t = Clamp01(t)
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, t).Normalize()
}

// AngleBetween is the rotation angle in radians separating a and b.
func AngleBetween(a, b mgl64.Quat) float64 {
	d := math.Abs(a.Normalize().Dot(b.Normalize()))
	if d >= 1 {
		return 0
	}
	return 2 * math.Acos(d)
}
