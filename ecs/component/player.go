package component

import "github.com/milk9111/soulslike/common"

// Player holds the locomotion tuning for a controllable character.
type Player struct {
	WalkingSpeed   float64
	RunningSpeed   float64
	SprintingSpeed float64
	RotationSpeed  float64
	Snapping       bool

	LeapingSpeed        float64
	FallingAcceleration float64

	ProbeRadius       float64
	ProbeHeightOffset float64
	MaxProbeDistance  float64
	GroundLayers      common.LayerMask

	Gravity    float64
	JumpHeight float64
	// SnapTime is how long a moving body takes to settle onto the ground.
	SnapTime float64
}

func (p *Player) Speed(tier SpeedTier) float64 {
	switch tier {
	case SpeedSprint:
		return p.SprintingSpeed
	case SpeedRun:
		return p.RunningSpeed
	default:
		return p.WalkingSpeed
	}
}

var PlayerComponent = NewComponent[Player]()
