package system

import (
	"math"

	"github.com/milk9111/soulslike/ecs"
	"github.com/milk9111/soulslike/ecs/component"
	"github.com/milk9111/soulslike/logger"
	"github.com/milk9111/soulslike/telemetry"
)

// TelemetrySystem records one sample per display frame for the first player
// and camera. Runs at the end of the late phase.
type TelemetrySystem struct {
	recorder *telemetry.Recorder
	steps    func() uint64

	frame   int
	elapsed float64
	failed  bool
}

// NewTelemetrySystem records into recorder. steps reports the scheduler's
// physics step count and may be nil.
func NewTelemetrySystem(recorder *telemetry.Recorder, steps func() uint64) *TelemetrySystem {
	return &TelemetrySystem{recorder: recorder, steps: steps}
}

func (t *TelemetrySystem) Update(w *ecs.World, dt float64) {
	if t.recorder == nil {
		return
	}
	t.elapsed += dt
	t.frame++

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	sample := telemetry.Sample{Frame: t.frame, Time: t.elapsed}
	if t.steps != nil {
		sample.Steps = int(t.steps())
	}

	if tr, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		sample.X, sample.Y, sample.Z = tr.Position.X(), tr.Position.Y(), tr.Position.Z()
	}
	if body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok {
		sample.VX, sample.VY, sample.VZ = body.Velocity.X(), body.Velocity.Y(), body.Velocity.Z()
		sample.Speed = math.Hypot(body.Velocity.X(), body.Velocity.Z())
	}
	if col, ok := ecs.Get(w, player, component.PlayerCollisionComponent.Kind()); ok {
		sample.Grounded = col.Grounded
		sample.Jumping = col.Jumping
		sample.AirTime = col.AirTime
	}
	if sm, ok := ecs.Get(w, player, component.PlayerStateMachineComponent.Kind()); ok && sm.State != nil {
		sample.State = sm.State.Name()
	}
	if cmd, ok := ecs.Get(w, player, component.MovementCommandComponent.Kind()); ok {
		sample.Tier = cmd.Tier.String()
	}
	if lock, ok := ecs.Get(w, player, component.InteractionLockComponent.Kind()); ok {
		sample.Interacting = lock.Active
	}
	if cam, ok := ecs.First(w, component.CameraStateComponent.Kind()); ok {
		state, _ := ecs.Get(w, cam, component.CameraStateComponent.Kind())
		sample.CameraYaw = state.Yaw
		sample.CameraPitch = state.Pitch
		sample.CameraZ = state.ZOffset
	}

	if err := t.recorder.Record(sample); err != nil && !t.failed {
		// Log the first failure only; the in-memory samples are still kept.
		t.failed = true
		logger.L().Error("telemetry: record failed", "err", err)
	}
}
