package system

import (
	"github.com/milk9111/soulslike/common"
	"github.com/milk9111/soulslike/ecs"
	"github.com/milk9111/soulslike/ecs/component"
)

const (
	DefaultAnimationDampTime = 0.1
	// sprintBlendValue is the vertical parameter that selects the sprint
	// blend.
	sprintBlendValue = 2.0
)

// AnimationBridge maps locomotion magnitudes and events onto a Presenter.
type AnimationBridge struct {
	Presenter Presenter
	Snapping  bool
	DampTime  float64
}

// OnUpdate feeds the blend parameters for this frame.
func (b *AnimationBridge) OnUpdate(horizontal, vertical float64, sprinting bool, dt float64) {
	if b.Snapping {
		horizontal = common.SnapMagnitude(horizontal)
		vertical = common.SnapMagnitude(vertical)
	}
	if sprinting && vertical > 0.5 {
		vertical = sprintBlendValue
	}
	b.Presenter.SetFloat(component.ParamHorizontal, horizontal, b.DampTime, dt)
	b.Presenter.SetFloat(component.ParamVertical, vertical, b.DampTime, dt)
}

// OnEvent plays the clip that goes with a locomotion event.
func (b *AnimationBridge) OnEvent(event component.LocomotionEvent) {
	if event == component.LocomotionJump {
		b.Presenter.SetBool(component.ParamJumping, true)
	}
	b.Presenter.PlayTransientAnimation(event.String(), event.LocksMovement())
}

// ForwardAmount is the single forward feed: |x|+|y| of the raw move axis,
// halved to a walk when the walk modifier is held at full deflection.
func ForwardAmount(in *component.Input) float64 {
	amount := in.MoveAmount()
	if in.Walk && !in.Sprint && amount == 1 {
		return 0.5
	}
	return amount
}

// AnimationBridgeFor builds the bridge for e from its Animator and optional
// LocomotionAnimation settings.
func AnimationBridgeFor(w *ecs.World, e ecs.Entity) (*AnimationBridge, bool) {
	animator, ok := ecs.Get(w, e, component.AnimatorComponent.Kind())
	if !ok {
		return nil, false
	}
	bridge := &AnimationBridge{Presenter: animator, DampTime: DefaultAnimationDampTime}
	if cfg, ok := ecs.Get(w, e, component.LocomotionAnimationComponent.Kind()); ok {
		bridge.Snapping = cfg.Snapping
		bridge.DampTime = cfg.DampTime
	}
	return bridge, true
}

// AnimationSystem writes the per-frame blend parameters. Runs in the input
// phase after input has been sampled.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, in *component.Input) {
		bridge, ok := AnimationBridgeFor(w, e)
		if !ok {
			return
		}
		bridge.OnUpdate(0, ForwardAmount(in), in.Sprint, dt)
	})
}

// AnimatorSystem advances clip playback. Runs in the late phase.
type AnimatorSystem struct{}

func NewAnimatorSystem() *AnimatorSystem {
	return &AnimatorSystem{}
}

func (a *AnimatorSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.AnimatorComponent.Kind(), func(_ ecs.Entity, animator *component.Animator) {
		animator.Advance(dt)
	})
}

// InteractionLockSystem samples each presenter's interacting flag into the
// cached lock read by the next frame's physics steps. Runs last in the late
// phase, after the camera.
type InteractionLockSystem struct{}

func NewInteractionLockSystem() *InteractionLockSystem {
	return &InteractionLockSystem{}
}

func (s *InteractionLockSystem) Update(w *ecs.World, _ float64) {
	ecs.ForEach2(w, component.AnimatorComponent.Kind(), component.InteractionLockComponent.Kind(), func(_ ecs.Entity, animator *component.Animator, lock *component.InteractionLock) {
		lock.Active = animator.IsInteracting()
		lock.Requested = false
	})
}
