package entity

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/soulslike/ecs"
	"github.com/milk9111/soulslike/ecs/component"
)

const PlayerPrefab = "player.yaml"

var ErrNoPlayer = errors.New("entity: no player with a physics body")

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, PlayerPrefab)
}

func NewPlayerAt(w *ecs.World, pos mgl64.Vec3, yaw float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, PlayerPrefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, pos, yaw); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return e, nil
}

// FindPlayer returns the first tagged player that can be driven, or
// ErrNoPlayer.
func FindPlayer(w *ecs.World) (ecs.Entity, error) {
	var found ecs.Entity
	ecs.ForEach(w, component.PlayerTagComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag) {
		if found.Valid() {
			return
		}
		if ecs.Has(w, e, component.PlayerComponent.Kind()) &&
			ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) &&
			ecs.Has(w, e, component.TransformComponent.Kind()) &&
			ecs.Has(w, e, component.PlayerCollisionComponent.Kind()) {
			found = e
		}
	})
	if !found.Valid() {
		return 0, ErrNoPlayer
	}
	return found, nil
}

// ApplyPlayerPrefab re-reads the player prefab and swaps its tuning onto e.
// Runtime state (velocity, contact, animator playback) is left alone.
func ApplyPlayerPrefab(w *ecs.World, e ecs.Entity, prefabPath string) error {
	spec, err := loadPrefab(prefabPath)
	if err != nil {
		return err
	}

	if raw, ok := spec.Components["player"]; ok {
		if current, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
			ps, err := decode[playerSpec](raw, "player")
			if err != nil {
				return err
			}
			next, err := playerFromSpec(ps)
			if err != nil {
				return err
			}
			*current = *next
		}
	}
	if raw, ok := spec.Components["locomotion_animation"]; ok {
		if current, ok := ecs.Get(w, e, component.LocomotionAnimationComponent.Kind()); ok {
			ls, err := decode[locomotionAnimationSpec](raw, "locomotion_animation")
			if err != nil {
				return err
			}
			current.Snapping = ls.Snapping
			if ls.DampTime != nil {
				current.DampTime = *ls.DampTime
			}
		}
	}
	if raw, ok := spec.Components["physics_body"]; ok {
		if current, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			bs, err := decode[physicsBodySpec](raw, "physics_body")
			if err != nil {
				return err
			}
			current.Mass = bs.Mass
			if current.Body != nil && bs.Mass > 0 {
				current.Body.SetMass(bs.Mass)
			}
		}
	}
	return nil
}
