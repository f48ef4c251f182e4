package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/soulslike/ecs"
	"github.com/milk9111/soulslike/ecs/component"
	"github.com/milk9111/soulslike/ecs/entity"
	"github.com/milk9111/soulslike/ecs/system"
	"github.com/milk9111/soulslike/logger"
	"github.com/milk9111/soulslike/obj"
	"github.com/milk9111/soulslike/telemetry"
)

// Options configures a scene. Zero values fall back to the scheduler
// defaults and the arena level.
type Options struct {
	Level       string
	Input       system.InputSource
	FixedStep   float64
	MaxSubSteps int
	// Telemetry, when set, receives one sample per frame.
	Telemetry *telemetry.Recorder
}

// Scene owns a world with one player and one camera rig, plus the systems
// that drive them in phase order.
type Scene struct {
	World     *ecs.World
	Level     *obj.Level
	Scheduler *ecs.PhaseScheduler

	Player ecs.Entity
	Camera ecs.Entity

	Controller *system.PlayerControllerSystem
	Physics    *system.PhysicsSystem
	Cameras    *system.CameraSystem
}

// ErrNoPlayerSpawn is returned when a level places no player entity.
var ErrNoPlayerSpawn = errors.New("scene: level has no player spawn")

func New(opts Options) (*Scene, error) {
	levelName := opts.Level
	if levelName == "" {
		levelName = "arena"
	}
	level, err := obj.LoadLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return NewInLevel(level, opts)
}

// NewInLevel spawns the player and camera rig at the level's spawn points.
// The camera falls back to the player spawn; the player has no fallback.
func NewInLevel(level *obj.Level, opts Options) (*Scene, error) {
	spawn, ok := level.Spawn("player")
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoPlayerSpawn, level.Name)
	}

	w := ecs.NewWorld()
	player, err := entity.NewPlayerAt(w, spawn, 0)
	if err != nil {
		return nil, fmt.Errorf("scene: player: %w", err)
	}
	camSpawn, ok := level.Spawn("camera")
	if !ok {
		camSpawn = spawn
	}
	camera, err := entity.NewCameraAt(w, camSpawn)
	if err != nil {
		return nil, fmt.Errorf("scene: camera: %w", err)
	}

	s, err := Assemble(w, level, opts)
	if err != nil {
		return nil, err
	}
	s.Player, s.Camera = player, camera

	logger.L().Info("scene ready", "level", level.Name, "player", player, "camera", camera)
	return s, nil
}

// Assemble wires the systems around an already populated world. It fails if
// the world has no drivable player or camera rig, or the rig has no target.
func Assemble(w *ecs.World, level *obj.Level, opts Options) (*Scene, error) {
	player, err := entity.FindPlayer(w)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	camera, err := entity.FindCamera(w)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	var collision system.CollisionQuerier
	if level != nil {
		collision = level.Collision
	}

	controller := system.NewPlayerControllerSystem(collision)
	var physics *system.PhysicsSystem
	if level != nil {
		physics = system.NewPhysicsSystem(level.Collision.Space(), collision, system.DefaultGravity)
	} else {
		physics = system.NewPhysicsSystem(nil, nil, system.DefaultGravity)
	}
	cameras := system.NewCameraSystem(collision)
	if err := cameras.ResolveTargets(w); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	sched := ecs.NewPhaseScheduler(opts.FixedStep, opts.MaxSubSteps)
	sched.Add(ecs.PhaseInput, system.NewReloadSystem())
	sched.Add(ecs.PhaseInput, system.NewInputSystem(opts.Input, controller))
	sched.Add(ecs.PhaseInput, system.NewAnimationSystem())

	sched.Add(ecs.PhasePhysics, controller)
	sched.Add(ecs.PhasePhysics, physics)

	sched.Add(ecs.PhaseLate, system.NewAnimatorSystem())
	sched.Add(ecs.PhaseLate, cameras)
	sched.Add(ecs.PhaseLate, system.NewInteractionLockSystem())
	if opts.Telemetry != nil {
		sched.Add(ecs.PhaseLate, system.NewTelemetrySystem(opts.Telemetry, sched.Steps))
	}

	return &Scene{
		World:      w,
		Level:      level,
		Scheduler:  sched,
		Player:     player,
		Camera:     camera,
		Controller: controller,
		Physics:    physics,
		Cameras:    cameras,
	}, nil
}

// Frame advances one display frame and returns the physics steps taken.
func (s *Scene) Frame(dt float64) int {
	return s.Scheduler.Frame(s.World, dt)
}

// Jump asks the controller to launch the player now.
func (s *Scene) Jump() bool {
	return s.Controller.Jump(s.World, s.Player)
}

// RequestReload queues a prefab reload for the next frame.
func (s *Scene) RequestReload(path string) {
	if err := system.RequestReload(s.World, path); err != nil {
		logger.L().Warn("scene: queue reload", "path", path, "err", err)
	}
}

func (s *Scene) PlayerPosition() mgl64.Vec3 {
	tr, ok := ecs.Get(s.World, s.Player, component.TransformComponent.Kind())
	if !ok {
		return mgl64.Vec3{}
	}
	return tr.Position
}
