package component

// LocomotionEvent is raised by the locomotion state machine for the
// animation layer.
type LocomotionEvent int

const (
	LocomotionFall LocomotionEvent = iota + 1
	LocomotionLand
	LocomotionJump
)

// String is also the name of the clip played for the event.
func (e LocomotionEvent) String() string {
	switch e {
	case LocomotionFall:
		return "Fall"
	case LocomotionLand:
		return "Land"
	case LocomotionJump:
		return "Jump"
	default:
		return "Unknown"
	}
}

// LocksMovement reports whether the event's clip blocks locomotion while it
// plays.
func (e LocomotionEvent) LocksMovement() bool {
	return e == LocomotionFall || e == LocomotionLand
}
