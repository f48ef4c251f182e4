package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/soulslike/common"
)

// Camera is the tuning of a follow camera rig. Angles are in degrees.
type Camera struct {
	TargetName string

	FollowSmoothTime float64
	LookSpeed        float64
	PivotSpeed       float64
	// SmoothTime scales how fast the look and pivot angles chase input.
	SmoothTime float64
	MinPitch   float64
	MaxPitch   float64

	PivotHeight     float64
	DefaultDistance float64

	CollisionRadius        float64
	CollisionOffset        float64
	MinimumCollisionOffset float64
	CollisionSmoothing     float64
	CollisionLayers        common.LayerMask
}

var CameraComponent = NewComponent[Camera]()

// CameraState is the runtime state of a camera rig. The camera sits
// ZOffset along the rig's local z axis from the pivot; ZOffset is negative
// when the camera is behind the pivot.
type CameraState struct {
	FollowPosition mgl64.Vec3
	FollowVelocity mgl64.Vec3
	Yaw            float64
	Pitch          float64
	ZOffset        float64

	Pivot    mgl64.Vec3
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Forward is the direction the rig faces, including pitch.
func (s *CameraState) Forward() mgl64.Vec3 {
	return s.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
}

func (s *CameraState) Right() mgl64.Vec3 {
	return s.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
}

var CameraStateComponent = NewComponent[CameraState]()
