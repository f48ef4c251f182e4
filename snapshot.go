package main

import (
	"fmt"

	"github.com/milk9111/soulslike/ecs"
	"github.com/milk9111/soulslike/ecs/component"
	"github.com/milk9111/soulslike/scene"
	"gopkg.in/yaml.v3"
)

type bodySnapshot struct {
	Position [3]float64 `yaml:"position"`
	Velocity [3]float64 `yaml:"velocity"`
	State    string     `yaml:"state"`
	Grounded bool       `yaml:"grounded"`
	Jumping  bool       `yaml:"jumping"`
	AirTime  float64    `yaml:"air_time"`
	Locked   bool       `yaml:"locked"`
}

type cameraSnapshot struct {
	Yaw      float64    `yaml:"yaw"`
	Pitch    float64    `yaml:"pitch"`
	ZOffset  float64    `yaml:"z_offset"`
	Pivot    [3]float64 `yaml:"pivot"`
	Position [3]float64 `yaml:"position"`
}

type snapshot struct {
	Level  string         `yaml:"level"`
	Steps  uint64         `yaml:"physics_steps"`
	Player bodySnapshot   `yaml:"player"`
	Camera cameraSnapshot `yaml:"camera"`
}

// Snapshot renders the player and camera state as YAML.
func Snapshot(s *scene.Scene) ([]byte, error) {
	w := s.World
	snap := snapshot{Level: s.Level.Name, Steps: s.Scheduler.Steps()}

	if tr, ok := ecs.Get(w, s.Player, component.TransformComponent.Kind()); ok {
		snap.Player.Position = tr.Position
	}
	if body, ok := ecs.Get(w, s.Player, component.PhysicsBodyComponent.Kind()); ok {
		snap.Player.Velocity = body.Velocity
	}
	if sm, ok := ecs.Get(w, s.Player, component.PlayerStateMachineComponent.Kind()); ok && sm.State != nil {
		snap.Player.State = sm.State.Name()
	}
	if col, ok := ecs.Get(w, s.Player, component.PlayerCollisionComponent.Kind()); ok {
		snap.Player.Grounded = col.Grounded
		snap.Player.Jumping = col.Jumping
		snap.Player.AirTime = col.AirTime
	}
	if lock, ok := ecs.Get(w, s.Player, component.InteractionLockComponent.Kind()); ok {
		snap.Player.Locked = lock.Active
	}
	if cam, ok := ecs.Get(w, s.Camera, component.CameraStateComponent.Kind()); ok {
		snap.Camera = cameraSnapshot{
			Yaw:      cam.Yaw,
			Pitch:    cam.Pitch,
			ZOffset:  cam.ZOffset,
			Pivot:    cam.Pivot,
			Position: cam.Position,
		}
	}

	data, err := yaml.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return data, nil
}
