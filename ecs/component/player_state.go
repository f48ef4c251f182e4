package component

// PlayerState is one node of the locomotion state machine. States are
// stateless singletons; all mutable data lives in the context.
type PlayerState interface {
	Name() string
	Enter(ctx *PlayerStateContext)
	Exit(ctx *PlayerStateContext)
	HandleInput(ctx *PlayerStateContext)
	Update(ctx *PlayerStateContext)
}

// PlayerStateContext gives a state access to the entity it drives. Side
// effects that leave the entity go through the callbacks.
type PlayerStateContext struct {
	Input     *Input
	Player    *Player
	Collision *PlayerCollision
	Body      *PhysicsBody
	Transform *Transform
	Command   *MovementCommand
	Lock      *InteractionLock
	DT        float64

	IsInteracting func() bool
	ChangeState   func(state PlayerState)
	Emit          func(event LocomotionEvent)
}

// PlayerStateMachine stores the active state for the player.
type PlayerStateMachine struct {
	State PlayerState
}

var PlayerStateMachineComponent = NewComponent[PlayerStateMachine]()
