package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/soulslike/common"
	"github.com/milk9111/soulslike/ecs"
	"github.com/milk9111/soulslike/ecs/component"
	"github.com/milk9111/soulslike/logger"
)

// rotationSnapAngle is the residual angle, in radians, below which the
// facing snaps onto its target.
const rotationSnapAngle = 1e-4

// PlayerControllerSystem runs the locomotion state machine. HandleInput runs
// in the input phase; Update runs once per physics step.
type PlayerControllerSystem struct {
	collision CollisionQuerier
}

func NewPlayerControllerSystem(collision CollisionQuerier) *PlayerControllerSystem {
	return &PlayerControllerSystem{collision: collision}
}

// HandleInput hands the frame's one-shot requests to the active state.
func (p *PlayerControllerSystem) HandleInput(w *ecs.World) {
	ecs.ForEach(w, component.PlayerStateMachineComponent.Kind(), func(e ecs.Entity, sm *component.PlayerStateMachine) {
		ctx, ok := p.context(w, e, sm, 0)
		if !ok {
			return
		}
		p.ensureState(ctx, sm)
		sm.State.HandleInput(ctx)
	})
}

// Jump launches e if it stands on the ground and is not already jumping.
// Any other case is a silent no-op.
func (p *PlayerControllerSystem) Jump(w *ecs.World, e ecs.Entity) bool {
	sm, ok := ecs.Get(w, e, component.PlayerStateMachineComponent.Kind())
	if !ok {
		return false
	}
	ctx, ok := p.context(w, e, sm, 0)
	if !ok {
		return false
	}
	if !ctx.Collision.Grounded || ctx.Collision.Jumping {
		return false
	}
	p.ensureState(ctx, sm)
	ctx.ChangeState(playerStateJumping)
	return true
}

func (p *PlayerControllerSystem) Update(w *ecs.World, dt float64) {
	forward, right := cameraAxes(w)
	ecs.ForEach(w, component.PlayerStateMachineComponent.Kind(), func(e ecs.Entity, sm *component.PlayerStateMachine) {
		ctx, ok := p.context(w, e, sm, dt)
		if !ok {
			return
		}
		p.tick(ctx, sm, forward, right)
	})
}

func (p *PlayerControllerSystem) tick(ctx *component.PlayerStateContext, sm *component.PlayerStateMachine, forward, right mgl64.Vec3) {
	col := ctx.Collision
	tr := ctx.Transform

	if hitY, ok := p.probeGround(ctx.Player, tr.Position, 0); ok {
		col.Grounded = true
		col.TargetY = hitY
	} else {
		col.Grounded = false
		col.TargetY = tr.Position.Y()
	}

	p.ensureState(ctx, sm)
	sm.State.Update(ctx)

	// Movement follows the lock as sampled for this frame; a clip started on
	// this tick only takes effect from the next frame.
	locked := ctx.Lock != nil && ctx.Lock.Active

	if col.Grounded && !col.Jumping {
		ctx.Body.Velocity[1] = 0
		if (locked || ctx.Input.MoveAmount() > 0) && ctx.Player.SnapTime > 0 {
			tr.Position[1] = common.Lerp(tr.Position.Y(), col.TargetY, ctx.DT/ctx.Player.SnapTime)
		} else {
			tr.Position[1] = col.TargetY
		}
	}

	if locked {
		return
	}

	*ctx.Command = ComputeMovement(ctx.Input, forward, right, ctx.Player)
	ctx.Body.Velocity[0] = ctx.Command.HorizontalVelocity.X()
	ctx.Body.Velocity[2] = ctx.Command.HorizontalVelocity.Z()

	tr.Rotation = RotateToward(tr.Rotation, ctx.Command.DesiredFacing, ctx.Player.RotationSpeed*ctx.DT)
}

// probeGround sweeps the probe sphere down from just above the feet. extra
// lengthens the sweep, which the physics step uses to catch fast falls.
func (p *PlayerControllerSystem) probeGround(player *component.Player, feet mgl64.Vec3, extra float64) (float64, bool) {
	if p.collision == nil {
		return 0, false
	}
	origin := feet.Add(mgl64.Vec3{0, player.ProbeHeightOffset, 0})
	hit, ok := p.collision.SphereCast(origin, player.ProbeRadius, common.Down, player.MaxProbeDistance+extra, player.GroundLayers)
	if !ok {
		return 0, false
	}
	return hit.Point.Y(), true
}

func (p *PlayerControllerSystem) ensureState(ctx *component.PlayerStateContext, sm *component.PlayerStateMachine) {
	if sm.State != nil {
		return
	}
	sm.State = playerStateAirborne
	if ctx.Collision.Grounded {
		sm.State = playerStateGrounded
	}
	sm.State.Enter(ctx)
}

// context gathers the components a state needs. Input, command, lock and
// animator are optional; a missing one is replaced by a throwaway value.
func (p *PlayerControllerSystem) context(w *ecs.World, e ecs.Entity, sm *component.PlayerStateMachine, dt float64) (*component.PlayerStateContext, bool) {
	player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return nil, false
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return nil, false
	}
	col, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind())
	if !ok {
		return nil, false
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil, false
	}
	input, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		input = &component.Input{}
	}
	cmd, ok := ecs.Get(w, e, component.MovementCommandComponent.Kind())
	if !ok {
		cmd = &component.MovementCommand{}
	}
	lock, ok := ecs.Get(w, e, component.InteractionLockComponent.Kind())
	if !ok {
		lock = &component.InteractionLock{}
	}
	bridge, hasBridge := AnimationBridgeFor(w, e)

	ctx := &component.PlayerStateContext{
		Input:     input,
		Player:    player,
		Collision: col,
		Body:      body,
		Transform: tr,
		Command:   cmd,
		Lock:      lock,
		DT:        dt,

		IsInteracting: lock.Held,
	}
	ctx.Emit = func(event component.LocomotionEvent) {
		if hasBridge {
			bridge.OnEvent(event)
		}
		if event.LocksMovement() {
			lock.Requested = true
		}
	}
	ctx.ChangeState = func(next component.PlayerState) {
		from := "none"
		if sm.State != nil {
			from = sm.State.Name()
			sm.State.Exit(ctx)
		}
		logger.L().Debug("player state", "entity", e, "from", from, "to", next.Name())
		sm.State = next
		next.Enter(ctx)
	}
	return ctx, true
}

// ComputeMovement turns input plus camera axes into a movement command.
func ComputeMovement(in *component.Input, forward, right mgl64.Vec3, player *component.Player) component.MovementCommand {
	dir := forward.Mul(in.Move.Y()).Add(right.Mul(in.Move.X()))
	dir[1] = 0
	if player.Snapping {
		dir = common.SnapVector(dir)
	}
	mag := dir.Len()
	tier := SelectSpeedTier(mag, in.Sprint, in.Walk)
	return component.MovementCommand{
		Direction:          dir,
		Magnitude:          mag,
		Tier:               tier,
		HorizontalVelocity: dir.Mul(player.Speed(tier)),
		DesiredFacing:      common.NormalizeOrZero(dir),
	}
}

func SelectSpeedTier(magnitude float64, sprint, walk bool) component.SpeedTier {
	switch {
	case sprint && magnitude > 0.5:
		return component.SpeedSprint
	case walk && magnitude > 0.5:
		return component.SpeedWalk
	case magnitude > 0.5:
		return component.SpeedRun
	default:
		return component.SpeedWalk
	}
}

// RotateToward slerps current toward facing by t. A zero facing keeps the
// current rotation.
func RotateToward(current mgl64.Quat, facing mgl64.Vec3, t float64) mgl64.Quat {
	if facing.Len() < common.Epsilon {
		return current
	}
	target := common.YawRotation(facing)
	next := common.Slerp(current, target, t)
	if common.AngleBetween(next, target) < rotationSnapAngle {
		return target
	}
	return next
}

// cameraAxes returns the first camera's forward and right vectors, or the
// world axes when there is no camera yet.
func cameraAxes(w *ecs.World) (mgl64.Vec3, mgl64.Vec3) {
	e, ok := ecs.First(w, component.CameraStateComponent.Kind())
	if !ok {
		return common.Forward, common.Right
	}
	state, _ := ecs.Get(w, e, component.CameraStateComponent.Kind())
	if state.Rotation.Len() < common.Epsilon {
		return common.Forward, common.Right
	}
	return state.Forward(), state.Right()
}
