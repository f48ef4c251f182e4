package obj

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/soulslike/common"
)

// Box is an axis-aligned static collider in world space.
type Box struct {
	Name   string
	Min    mgl64.Vec3
	Max    mgl64.Vec3
	Layers common.LayerMask
}

func (b Box) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

func (b Box) expand(r float64) Box {
	pad := mgl64.Vec3{r, r, r}
	return Box{Name: b.Name, Min: b.Min.Sub(pad), Max: b.Max.Add(pad), Layers: b.Layers}
}

func (b Box) closestPoint(p mgl64.Vec3) mgl64.Vec3 {
	var out mgl64.Vec3
	for i := 0; i < 3; i++ {
		out[i] = mgl64.Clamp(p[i], b.Min[i], b.Max[i])
	}
	return out
}

// CollisionWorld holds the static level geometry. Volumetric queries run
// against the box list; wall boxes are mirrored into a planar cp space so
// character bodies slide along them on the xz plane.
type CollisionWorld struct {
	boxes []Box
	space *cp.Space
}

func NewCollisionWorld(boxes ...Box) *CollisionWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	cw := &CollisionWorld{space: space}
	for _, b := range boxes {
		cw.Add(b)
	}
	return cw
}

// Add registers a static box. Boxes on the wall layer also become static
// shapes in the planar space.
func (cw *CollisionWorld) Add(b Box) {
	for i := 0; i < 3; i++ {
		if b.Min[i] > b.Max[i] {
			b.Min[i], b.Max[i] = b.Max[i], b.Min[i]
		}
	}
	cw.boxes = append(cw.boxes, b)
	if !b.Layers.Has(common.LayerWall) {
		return
	}
	shape := cp.NewBox2(cw.space.StaticBody, cp.BB{L: b.Min.X(), B: b.Min.Z(), R: b.Max.X(), T: b.Max.Z()}, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(common.LayerWall), uint(common.LayerCharacter)))
	cw.space.AddShape(shape)
}

// Boxes returns the boxes on any layer in mask.
func (cw *CollisionWorld) Boxes(mask common.LayerMask) []Box {
	out := make([]Box, 0, len(cw.boxes))
	for _, b := range cw.boxes {
		if b.Layers.Has(mask) {
			out = append(out, b)
		}
	}
	return out
}

// Space is the planar physics space used for character-versus-wall contact.
func (cw *CollisionWorld) Space() *cp.Space {
	return cw.space
}

// Raycast is a SphereCast with zero radius.
func (cw *CollisionWorld) Raycast(origin, dir mgl64.Vec3, maxDistance float64, mask common.LayerMask) (common.RaycastHit, bool) {
	return cw.SphereCast(origin, 0, dir, maxDistance, mask)
}

// SphereCast sweeps a sphere from origin along dir and reports the nearest
// box it touches within maxDistance. A sweep that starts overlapping a box
// reports distance 0 with the point pushed out of the nearest face.
func (cw *CollisionWorld) SphereCast(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64, mask common.LayerMask) (common.RaycastHit, bool) {
	dir = common.NormalizeOrZero(dir)
	if dir == (mgl64.Vec3{}) || maxDistance < 0 {
		return common.RaycastHit{}, false
	}

	var best common.RaycastHit
	found := false
	for _, b := range cw.boxes {
		if !b.Layers.Has(mask) {
			continue
		}
		hit, ok := sweepBox(b, origin, radius, dir, maxDistance)
		if !ok {
			continue
		}
		if !found || hit.Distance < best.Distance {
			best = hit
			found = true
		}
	}
	return best, found
}

func sweepBox(b Box, origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64) (common.RaycastHit, bool) {
	grown := b.expand(radius)
	if grown.Contains(origin) {
		point, normal := pushOut(b, origin)
		return common.RaycastHit{Point: point, Normal: normal, Distance: 0}, true
	}

	tmin := 0.0
	tmax := maxDistance
	axis := -1
	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < grown.Min[i] || origin[i] > grown.Max[i] {
				return common.RaycastHit{}, false
			}
			continue
		}
		invD := 1.0 / dir[i]
		t1 := (grown.Min[i] - origin[i]) * invD
		t2 := (grown.Max[i] - origin[i]) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			axis = i
		}
		tmax = math.Min(tmax, t2)
		if tmax < tmin {
			return common.RaycastHit{}, false
		}
	}
	if axis < 0 {
		return common.RaycastHit{}, false
	}

	var normal mgl64.Vec3
	normal[axis] = -math.Copysign(1, dir[axis])
	center := origin.Add(dir.Mul(tmin))
	return common.RaycastHit{
		Point:    b.closestPoint(center),
		Normal:   normal,
		Distance: tmin,
	}, true
}

// pushOut projects p onto the face of b it penetrates least.
func pushOut(b Box, p mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	if !b.Contains(p) {
		point := b.closestPoint(p)
		return point, common.NormalizeOrZero(p.Sub(point))
	}

	bestAxis, bestSign := 1, 1.0
	bestDepth := math.Inf(1)
	for i := 0; i < 3; i++ {
		if d := b.Max[i] - p[i]; d < bestDepth {
			bestDepth, bestAxis, bestSign = d, i, 1
		}
		if d := p[i] - b.Min[i]; d < bestDepth {
			bestDepth, bestAxis, bestSign = d, i, -1
		}
	}

	point := p
	var normal mgl64.Vec3
	normal[bestAxis] = bestSign
	if bestSign > 0 {
		point[bestAxis] = b.Max[bestAxis]
	} else {
		point[bestAxis] = b.Min[bestAxis]
	}
	return point, normal
}
