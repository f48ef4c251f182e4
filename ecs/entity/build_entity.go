package entity

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/soulslike/common"
	"github.com/milk9111/soulslike/ecs"
	"github.com/milk9111/soulslike/ecs/component"
	"github.com/milk9111/soulslike/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":           addPlayerTag,
	"camera_tag":           addCameraTag,
	"transform":            addTransform,
	"player":               addPlayer,
	"physics_body":         addPhysicsBody,
	"player_collision":     addPlayerCollision,
	"player_state_machine": addPlayerStateMachine,
	"input":                addInput,
	"movement_command":     addMovementCommand,
	"interaction_lock":     addInteractionLock,
	"animator":             addAnimator,
	"locomotion_animation": addLocomotionAnimation,
	"camera":               addCamera,
	"camera_state":         addCameraState,
}

var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"transform",
	"player",
	"physics_body",
	"player_collision",
	"player_state_machine",
	"input",
	"movement_command",
	"animator",
	"interaction_lock",
	"locomotion_animation",
	"camera",
	"camera_state",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, spec, prefabPath)
}

func buildFromSpec(w *ecs.World, spec entityPrefabSpec, prefabPath string) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

// SetEntityTransform places e at pos facing yaw degrees.
func SetEntityTransform(w *ecs.World, e ecs.Entity, pos mgl64.Vec3, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.Position = pos
	t.Rotation = yawQuat(yaw)
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func yawQuat(yaw float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(yaw), common.Up)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: mgl64.Vec3(spec.Position),
		Rotation: yawQuat(spec.Yaw),
	})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	player, err := playerFromSpec(spec)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), player)
}

func playerFromSpec(spec playerSpec) (*component.Player, error) {
	layers := common.LayerGround
	if len(spec.GroundLayers) > 0 {
		parsed, err := common.ParseLayerMask(spec.GroundLayers)
		if err != nil {
			return nil, fmt.Errorf("player ground layers: %w", err)
		}
		layers = parsed
	}
	return &component.Player{
		WalkingSpeed:        spec.WalkingSpeed,
		RunningSpeed:        spec.RunningSpeed,
		SprintingSpeed:      spec.SprintingSpeed,
		RotationSpeed:       spec.RotationSpeed,
		Snapping:            spec.Snapping,
		LeapingSpeed:        spec.LeapingSpeed,
		FallingAcceleration: spec.FallingAcceleration,
		ProbeRadius:         spec.ProbeRadius,
		ProbeHeightOffset:   spec.ProbeHeightOffset,
		MaxProbeDistance:    spec.MaxProbeDistance,
		GroundLayers:        layers,
		Gravity:             spec.Gravity,
		JumpHeight:          spec.JumpHeight,
		SnapTime:            spec.SnapTime,
	}, nil
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics_body spec: %w", err)
	}
	if spec.Mass < 0 || spec.Radius < 0 {
		return fmt.Errorf("physics_body: mass and radius must not be negative")
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Mass:   spec.Mass,
		Radius: spec.Radius,
	})
}

func addPlayerCollision(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})
}

func addPlayerStateMachine(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerStateMachineComponent.Kind(), &component.PlayerStateMachine{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addMovementCommand(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.MovementCommandComponent.Kind(), &component.MovementCommand{})
}

// addInteractionLock seeds the lock from the animator when one is present.
func addInteractionLock(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	lock := &component.InteractionLock{}
	if animator, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok {
		lock.Active = animator.IsInteracting()
	}
	return ecs.Add(w, e, component.InteractionLockComponent.Kind(), lock)
}

type animatorSpec = prefabs.AnimatorComponentSpec

const defaultCrossFade = 0.2

func addAnimator(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animatorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animator spec: %w", err)
	}
	if spec.DefaultClip == "" {
		return fmt.Errorf("animator: default_clip is required")
	}

	clips := make(map[string]component.AnimationClip, len(spec.Clips))
	for name, clip := range spec.Clips {
		if clip.Duration < 0 {
			return fmt.Errorf("animator: clip %q has negative duration", name)
		}
		clips[name] = component.AnimationClip{
			Duration: clip.Duration,
			Loop:     clip.Loop,
			Resets:   clip.Resets,
		}
	}
	if _, ok := clips[spec.DefaultClip]; !ok {
		return fmt.Errorf("animator: default clip %q not in clips", spec.DefaultClip)
	}

	crossFade := defaultCrossFade
	if spec.CrossFade != nil {
		crossFade = *spec.CrossFade
	}
	interacting := true
	if spec.Interacting != nil {
		interacting = *spec.Interacting
	}
	return ecs.Add(w, e, component.AnimatorComponent.Kind(), component.NewAnimator(clips, spec.DefaultClip, crossFade, interacting))
}

type locomotionAnimationSpec = prefabs.LocomotionAnimationComponentSpec

const defaultAnimationDampTime = 0.1

func addLocomotionAnimation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[locomotionAnimationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode locomotion_animation spec: %w", err)
	}
	damp := defaultAnimationDampTime
	if spec.DampTime != nil {
		damp = *spec.DampTime
	}
	return ecs.Add(w, e, component.LocomotionAnimationComponent.Kind(), &component.LocomotionAnimation{
		Snapping: spec.Snapping,
		DampTime: damp,
	})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	rig, err := cameraFromSpec(spec)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), rig)
}

func cameraFromSpec(spec cameraSpec) (*component.Camera, error) {
	if spec.MinPitch > spec.MaxPitch {
		return nil, fmt.Errorf("camera: min_pitch %v above max_pitch %v", spec.MinPitch, spec.MaxPitch)
	}
	layers := common.LayerCamera
	if len(spec.CollisionLayers) > 0 {
		parsed, err := common.ParseLayerMask(spec.CollisionLayers)
		if err != nil {
			return nil, fmt.Errorf("camera collision layers: %w", err)
		}
		layers = parsed
	}
	return &component.Camera{
		TargetName:             spec.Target,
		FollowSmoothTime:       spec.FollowSmoothTime,
		LookSpeed:              spec.LookSpeed,
		PivotSpeed:             spec.PivotSpeed,
		SmoothTime:             spec.SmoothTime,
		MinPitch:               spec.MinPitch,
		MaxPitch:               spec.MaxPitch,
		PivotHeight:            spec.PivotHeight,
		DefaultDistance:        spec.DefaultDistance,
		CollisionRadius:        spec.CollisionRadius,
		CollisionOffset:        spec.CollisionOffset,
		MinimumCollisionOffset: spec.MinimumCollisionOffset,
		CollisionSmoothing:     spec.CollisionSmoothing,
		CollisionLayers:        layers,
	}, nil
}

// addCameraState starts the rig at rest behind its own transform.
func addCameraState(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	state := &component.CameraState{Rotation: mgl64.QuatIdent()}
	if rig, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok {
		state.ZOffset = -math.Abs(rig.DefaultDistance)
	}
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		state.FollowPosition = tr.Position
	}
	return ecs.Add(w, e, component.CameraStateComponent.Kind(), state)
}
