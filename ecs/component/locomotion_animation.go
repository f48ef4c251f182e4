package component

// LocomotionAnimation configures how locomotion values are fed to the
// entity's Animator. Its Snapping flag is independent of Player.Snapping.
type LocomotionAnimation struct {
	Snapping bool
	DampTime float64
}

var LocomotionAnimationComponent = NewComponent[LocomotionAnimation]()
