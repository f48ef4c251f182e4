package system

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/soulslike/common"
	"github.com/milk9111/soulslike/ecs"
	"github.com/milk9111/soulslike/ecs/component"
)

// CameraSystem moves follow camera rigs: smoothed follow, look rotation and
// collision pull-in. Runs in the late phase with the display dt.
type CameraSystem struct {
	collision CollisionQuerier
	targets   map[ecs.Entity]ecs.Entity
}

func NewCameraSystem(collision CollisionQuerier) *CameraSystem {
	return &CameraSystem{collision: collision, targets: make(map[ecs.Entity]ecs.Entity)}
}

// ResolveTargets binds every rig to its target entity. It fails if any rig
// has nothing to follow.
func (cs *CameraSystem) ResolveTargets(w *ecs.World) error {
	var err error
	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, rig *component.Camera) {
		if err != nil {
			return
		}
		target := findEntityByNameOrTag(w, rig.TargetName)
		if !target.Valid() || !ecs.Has(w, target, component.TransformComponent.Kind()) {
			err = fmt.Errorf("%w: rig %v wants %q", ErrNoTarget, e, rig.TargetName)
			return
		}
		cs.targets[e] = target
	})
	return err
}

func (cs *CameraSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.CameraComponent.Kind(), component.CameraStateComponent.Kind(), func(e ecs.Entity, rig *component.Camera, state *component.CameraState) {
		target, ok := cs.targets[e]
		if !ok || !ecs.IsAlive(w, target) {
			target = findEntityByNameOrTag(w, rig.TargetName)
			if !target.Valid() {
				return
			}
			cs.targets[e] = target
		}
		tr, ok := ecs.Get(w, target, component.TransformComponent.Kind())
		if !ok {
			return
		}

		state.FollowPosition = common.SmoothDampVec3(state.FollowPosition, tr.Position, &state.FollowVelocity, rig.FollowSmoothTime, dt)

		var look mgl64.Vec2
		if in, ok := ecs.Get(w, target, component.InputComponent.Kind()); ok {
			look = in.Look
		}
		RotateRig(rig, state, look, dt)

		state.Rotation = RigRotation(state.Yaw, state.Pitch)
		state.Pivot = state.FollowPosition.Add(mgl64.Vec3{0, rig.PivotHeight, 0})
		cs.resolveCollision(rig, state)
		state.Position = state.Pivot.Add(state.Rotation.Rotate(mgl64.Vec3{0, 0, state.ZOffset}))
	})
}

// RotateRig eases yaw and pitch toward the look input, then clamps pitch.
func RotateRig(rig *component.Camera, state *component.CameraState, look mgl64.Vec2, dt float64) {
	t := rig.SmoothTime * dt
	state.Yaw = common.Lerp(state.Yaw, state.Yaw+look.X()*rig.LookSpeed, t)
	state.Pitch = common.Lerp(state.Pitch, state.Pitch-look.Y()*rig.PivotSpeed, t)
	state.Pitch = mgl64.Clamp(state.Pitch, rig.MinPitch, rig.MaxPitch)
}

// RigRotation composes yaw about +Y with pitch about +X. Angles are in
// degrees; positive pitch tilts the view down.
func RigRotation(yaw, pitch float64) mgl64.Quat {
	yawQ := mgl64.QuatRotate(mgl64.DegToRad(yaw), common.Up)
	pitchQ := mgl64.QuatRotate(mgl64.DegToRad(pitch), common.Right)
	return yawQ.Mul(pitchQ).Normalize()
}

func (cs *CameraSystem) resolveCollision(rig *component.Camera, state *component.CameraState) {
	hit := false
	hitDistance := 0.0
	if cs.collision != nil {
		dir := state.Rotation.Rotate(mgl64.Vec3{0, 0, -1})
		if h, ok := cs.collision.SphereCast(state.Pivot, rig.CollisionRadius, dir, math.Abs(rig.DefaultDistance), rig.CollisionLayers); ok {
			hit = true
			hitDistance = h.Point.Sub(state.Pivot).Len()
		}
	}
	target := -CameraRetreat(rig, hit, hitDistance)
	state.ZOffset = common.Lerp(state.ZOffset, target, rig.CollisionSmoothing)
}

// CameraRetreat is how far behind the pivot the camera wants to sit. A hit
// pulls it in to the hit distance less the collision offset; a result
// shorter than the minimum offset loses the minimum once more.
func CameraRetreat(rig *component.Camera, hit bool, hitDistance float64) float64 {
	d := math.Abs(rig.DefaultDistance)
	if hit {
		d = hitDistance - rig.CollisionOffset
	}
	if math.Abs(d) < rig.MinimumCollisionOffset {
		d -= rig.MinimumCollisionOffset
	}
	return d
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "player" || name == "" {
		if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}
