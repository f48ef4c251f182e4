package component

// PlayerCollision stores the player's ground contact state.
type PlayerCollision struct {
	Grounded bool
	Jumping  bool
	// AirTime is the time spent falling, in seconds. It does not grow while
	// rising from a jump.
	AirTime float64
	// TargetY is the ground height the body settles toward.
	TargetY float64
}

var PlayerCollisionComponent = NewComponent[PlayerCollision]()
