package component

import "github.com/go-gl/mathgl/mgl64"

type SpeedTier int

const (
	SpeedWalk SpeedTier = iota
	SpeedRun
	SpeedSprint
)

func (t SpeedTier) String() string {
	switch t {
	case SpeedSprint:
		return "sprint"
	case SpeedRun:
		return "run"
	default:
		return "walk"
	}
}

// MovementCommand is the locomotion output of the latest physics tick.
type MovementCommand struct {
	// Direction is the camera-relative move vector on the ground plane,
	// quantized when snapping is on.
	Direction mgl64.Vec3
	Magnitude float64
	Tier      SpeedTier
	// HorizontalVelocity is Direction scaled by the tier speed.
	HorizontalVelocity mgl64.Vec3
	// DesiredFacing is a unit vector, or zero to keep the current facing.
	DesiredFacing mgl64.Vec3
}

var MovementCommandComponent = NewComponent[MovementCommand]()
