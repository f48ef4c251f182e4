package entity

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/soulslike/ecs"
	"github.com/milk9111/soulslike/ecs/component"
	"github.com/milk9111/soulslike/prefabs"
)

const CameraPrefab = "camera.yaml"

var ErrNoCamera = errors.New("entity: no camera rig")

func NewCamera(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, CameraPrefab)
}

// NewCameraAt builds the rig and starts its follow point at pos.
func NewCameraAt(w *ecs.World, pos mgl64.Vec3) (ecs.Entity, error) {
	e, err := BuildEntity(w, CameraPrefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, pos, 0); err != nil {
		return 0, fmt.Errorf("camera: override transform: %w", err)
	}
	if state, ok := ecs.Get(w, e, component.CameraStateComponent.Kind()); ok {
		state.FollowPosition = pos
	}
	return e, nil
}

func FindCamera(w *ecs.World) (ecs.Entity, error) {
	e, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok || !ecs.Has(w, e, component.CameraStateComponent.Kind()) {
		return 0, ErrNoCamera
	}
	return e, nil
}

// ApplyCameraPrefab swaps rig tuning onto e without touching its state.
func ApplyCameraPrefab(w *ecs.World, e ecs.Entity, prefabPath string) error {
	spec, err := loadPrefab(prefabPath)
	if err != nil {
		return err
	}
	raw, ok := spec.Components["camera"]
	if !ok {
		return nil
	}
	current, ok := ecs.Get(w, e, component.CameraComponent.Kind())
	if !ok {
		return ErrNoCamera
	}
	cs, err := decode[cameraSpec](raw, "camera")
	if err != nil {
		return err
	}
	next, err := cameraFromSpec(cs)
	if err != nil {
		return err
	}
	*current = *next
	return nil
}

func loadPrefab(prefabPath string) (entityPrefabSpec, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return spec, fmt.Errorf("apply prefab: load %q: %w", prefabPath, err)
	}
	return spec, nil
}

func decode[T any](raw any, name string) (T, error) {
	out, err := prefabs.DecodeComponentSpec[T](raw)
	if err != nil {
		return out, fmt.Errorf("decode %s spec: %w", name, err)
	}
	return out, nil
}
