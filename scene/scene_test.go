package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/soulslike/ecs"
	"github.com/milk9111/soulslike/ecs/component"
	"github.com/milk9111/soulslike/ecs/entity"
	"github.com/milk9111/soulslike/ecs/system"
	"github.com/milk9111/soulslike/levels"
	"github.com/milk9111/soulslike/obj"
	"github.com/milk9111/soulslike/telemetry"
)

type scriptedInput struct {
	sample component.Input
	jumpAt int
	polls  int
}

func (s *scriptedInput) Poll() (component.Input, error) {
	in := s.sample
	if s.polls == s.jumpAt {
		in.PressJump()
	}
	s.polls++
	return in, nil
}

func newTestScene(t *testing.T, level string, in system.InputSource, rec *telemetry.Recorder) *Scene {
	t.Helper()
	s, err := New(Options{Level: level, Input: in, Telemetry: rec})
	if err != nil {
		t.Fatalf("new scene: %v", err)
	}
	return s
}

func horizontalSpeed(t *testing.T, s *Scene) float64 {
	t.Helper()
	body, ok := ecs.Get(s.World, s.Player, component.PhysicsBodyComponent.Kind())
	if !ok {
		t.Fatal("player has no body")
	}
	return math.Hypot(body.Velocity.X(), body.Velocity.Z())
}

func TestSprintReachesSprintSpeed(t *testing.T) {
	in := &scriptedInput{sample: component.Input{Move: mgl64.Vec2{0, 1}, Sprint: true}, jumpAt: -1}
	s := newTestScene(t, "flat", in, nil)

	for i := 0; i < 30; i++ {
		s.Frame(0.02)
	}
	if got := horizontalSpeed(t, s); math.Abs(got-7) > 1e-9 {
		t.Fatalf("sprint speed = %v, want 7", got)
	}
	cmd, _ := ecs.Get(s.World, s.Player, component.MovementCommandComponent.Kind())
	if cmd.Tier != component.SpeedSprint {
		t.Fatalf("tier = %v", cmd.Tier)
	}
	if pos := s.PlayerPosition(); pos.Z() <= 0 || pos.Y() != 0 {
		t.Fatalf("expected the player to move forward on the ground, got %v", pos)
	}
}

func TestIdlePlayerStaysOnGround(t *testing.T) {
	s := newTestScene(t, "flat", &scriptedInput{jumpAt: -1}, nil)
	for i := 0; i < 50; i++ {
		s.Frame(1.0 / 60.0)
	}
	col, _ := ecs.Get(s.World, s.Player, component.PlayerCollisionComponent.Kind())
	if !col.Grounded || col.AirTime != 0 {
		t.Fatalf("expected grounded idle player, got %+v", col)
	}
	if y := s.PlayerPosition().Y(); y != col.TargetY {
		t.Fatalf("y = %v, want exactly %v", y, col.TargetY)
	}
}

func TestJumpLeavesAndReturnsToGround(t *testing.T) {
	in := &scriptedInput{jumpAt: 5}
	rec := telemetry.NewRecorder(nil)
	s := newTestScene(t, "flat", in, rec)

	peak := 0.0
	for i := 0; i < 120; i++ {
		s.Frame(0.02)
		peak = math.Max(peak, s.PlayerPosition().Y())
	}
	if peak < 0.5 || peak > 1.2 {
		t.Fatalf("jump peak = %v, expected about one meter", peak)
	}
	col, _ := ecs.Get(s.World, s.Player, component.PlayerCollisionComponent.Kind())
	if !col.Grounded || col.Jumping {
		t.Fatalf("expected landed player, got %+v", col)
	}
	if sum := rec.Summary(); sum.Jumps != 1 {
		t.Fatalf("expected one jump in telemetry, got %+v", sum)
	}
}

func TestWallStopsPlayer(t *testing.T) {
	in := &scriptedInput{sample: component.Input{Move: mgl64.Vec2{0, 1}, Sprint: true}, jumpAt: -1}
	s := newTestScene(t, "arena", in, nil)
	for i := 0; i < 250; i++ {
		s.Frame(0.02)
	}
	// The north wall's inner face is at z=19.
	if z := s.PlayerPosition().Z(); z > 19 {
		t.Fatalf("player passed through the wall: z = %v", z)
	}
}

func TestAssembleFailsFast(t *testing.T) {
	t.Run("no_player", func(t *testing.T) {
		w := ecs.NewWorld()
		if _, err := entity.NewCamera(w); err != nil {
			t.Fatal(err)
		}
		if _, err := Assemble(w, nil, Options{}); !errors.Is(err, entity.ErrNoPlayer) {
			t.Fatalf("expected ErrNoPlayer, got %v", err)
		}
	})
	t.Run("no_camera", func(t *testing.T) {
		w := ecs.NewWorld()
		if _, err := entity.NewPlayer(w); err != nil {
			t.Fatal(err)
		}
		if _, err := Assemble(w, nil, Options{}); !errors.Is(err, entity.ErrNoCamera) {
			t.Fatalf("expected ErrNoCamera, got %v", err)
		}
	})
	t.Run("unknown_level", func(t *testing.T) {
		if _, err := New(Options{Level: "nowhere"}); err == nil {
			t.Fatal("expected error for unknown level")
		}
	})
}

func TestNewInLevelSpawns(t *testing.T) {
	floor := levels.Box{Name: "floor", Min: [3]float64{-5, -1, -5}, Max: [3]float64{5, 0, 5}, Layers: []string{"ground"}}
	tests := []struct {
		name     string
		entities []levels.Entity
		wantErr  bool
		wantCam  mgl64.Vec3
	}{
		{name: "no_player", entities: []levels.Entity{{Type: "camera", Position: [3]float64{0, 2, -4}}}, wantErr: true},
		{name: "camera_falls_back_to_player", entities: []levels.Entity{{Type: "player", Position: [3]float64{1, 0, 2}}}, wantCam: mgl64.Vec3{1, 0, 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			level, err := obj.NewLevel(&levels.Level{Name: tc.name, Boxes: []levels.Box{floor}, Entities: tc.entities})
			if err != nil {
				t.Fatal(err)
			}
			s, err := NewInLevel(level, Options{Input: &scriptedInput{jumpAt: -1}})
			if tc.wantErr {
				if !errors.Is(err, ErrNoPlayerSpawn) {
					t.Fatalf("expected ErrNoPlayerSpawn, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			tr, ok := ecs.Get(s.World, s.Camera, component.TransformComponent.Kind())
			if !ok {
				t.Fatal("camera has no transform")
			}
			if tr.Position != tc.wantCam {
				t.Fatalf("camera at %v, want %v", tr.Position, tc.wantCam)
			}
		})
	}
}
