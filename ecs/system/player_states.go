package system

import (
	"math"

	"github.com/milk9111/soulslike/common"
	"github.com/milk9111/soulslike/ecs/component"
)

// Player state singletons (avoid allocations on transitions).
var (
	playerStateGrounded component.PlayerState = &playerGroundedState{}
	playerStateAirborne component.PlayerState = &playerAirborneState{}
	playerStateJumping  component.PlayerState = &playerJumpingState{}
)

type playerGroundedState struct{}

type playerAirborneState struct{}

type playerJumpingState struct{}

func (playerGroundedState) Name() string { return "grounded" }

// Enter lands the body. Land only fires when the body actually fell.
func (playerGroundedState) Enter(ctx *component.PlayerStateContext) {
	col := ctx.Collision
	if col.AirTime > 0 {
		ctx.Emit(component.LocomotionLand)
	}
	col.AirTime = 0
	col.Jumping = false
	ctx.Body.Velocity[1] = 0
}
func (playerGroundedState) Exit(ctx *component.PlayerStateContext) {}
func (playerGroundedState) HandleInput(ctx *component.PlayerStateContext) {
	if ctx.Input.TakeJump() && ctx.Collision.Grounded && !ctx.Collision.Jumping {
		ctx.ChangeState(playerStateJumping)
	}
}
func (playerGroundedState) Update(ctx *component.PlayerStateContext) {
	if !ctx.Collision.Grounded && !ctx.Collision.Jumping {
		ctx.ChangeState(playerStateAirborne)
		return
	}
	ctx.Collision.AirTime = 0
}

func (playerAirborneState) Name() string { return "airborne" }
func (playerAirborneState) Enter(ctx *component.PlayerStateContext) {}
func (playerAirborneState) Exit(ctx *component.PlayerStateContext)  {}

// HandleInput drops the request; jumping needs ground.
func (playerAirborneState) HandleInput(ctx *component.PlayerStateContext) {
	ctx.Input.TakeJump()
}

// Update lands on a probe hit unless the body is still rising from a jump.
// Otherwise a body that is falling without a jump gathers air time and is
// pulled down harder the longer it falls.
func (playerAirborneState) Update(ctx *component.PlayerStateContext) {
	col := ctx.Collision
	if col.Grounded && (!col.Jumping || ctx.Body.Velocity.Y() <= 0) {
		ctx.ChangeState(playerStateGrounded)
		return
	}
	if col.Jumping {
		return
	}

	if !ctx.IsInteracting() {
		ctx.Emit(component.LocomotionFall)
	}
	col.AirTime += ctx.DT
	p := ctx.Player
	ctx.Body.AddForce(ctx.Transform.Forward().Mul(p.LeapingSpeed))
	ctx.Body.AddForce(common.Down.Mul(col.AirTime * p.FallingAcceleration))
}

func (playerJumpingState) Name() string { return "jumping" }

// Enter applies the jump impulse. The impulse keeps the last movement
// direction as horizontal velocity, then hands over to Airborne at once.
func (playerJumpingState) Enter(ctx *component.PlayerStateContext) {
	p := ctx.Player
	ctx.Emit(component.LocomotionJump)

	v := ctx.Command.Direction
	v[1] = JumpSpeed(p.Gravity, p.JumpHeight)
	ctx.Body.Velocity = v
	ctx.Collision.Jumping = true
	ctx.ChangeState(playerStateAirborne)
}
func (playerJumpingState) Exit(ctx *component.PlayerStateContext)        {}
func (playerJumpingState) HandleInput(ctx *component.PlayerStateContext) { ctx.Input.TakeJump() }
func (playerJumpingState) Update(ctx *component.PlayerStateContext)      {}

// JumpSpeed is the launch speed that peaks at height under gravity (which
// is negative).
func JumpSpeed(gravity, height float64) float64 {
	return math.Sqrt(math.Max(0, -2*gravity*height))
}
