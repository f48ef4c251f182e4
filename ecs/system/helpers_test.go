package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/soulslike/common"
	"github.com/milk9111/soulslike/ecs"
	"github.com/milk9111/soulslike/ecs/component"
)

const testDT = 0.02

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// vecApproxEqual compares per component with an absolute tolerance. mgl64's
// ApproxEqualThreshold goes relative near zero and rejects tiny residues.
func vecApproxEqual(a, b mgl64.Vec3, eps float64) bool {
	for i := range a {
		if !approxEqual(a[i], b[i], eps) {
			return false
		}
	}
	return true
}

// flatGround answers downward casts against an infinite floor at y and
// misses every other query.
type flatGround struct {
	y     float64
	none  bool
	calls int
}

func (f *flatGround) SphereCast(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64, mask common.LayerMask) (common.RaycastHit, bool) {
	f.calls++
	if f.none || dir.Y() >= 0 {
		return common.RaycastHit{}, false
	}
	dist := math.Max(0, origin.Y()-radius-f.y)
	if dist > maxDistance {
		return common.RaycastHit{}, false
	}
	return common.RaycastHit{
		Point:    mgl64.Vec3{origin.X(), f.y, origin.Z()},
		Normal:   common.Up,
		Distance: dist,
	}, true
}

// fixedHit reports the same hit for any query.
type fixedHit struct {
	hit common.RaycastHit
	ok  bool
}

func (f fixedHit) SphereCast(mgl64.Vec3, float64, mgl64.Vec3, float64, common.LayerMask) (common.RaycastHit, bool) {
	return f.hit, f.ok
}

type presenterCall struct {
	kind  string
	name  string
	value float64
	flag  bool
}

type recordingPresenter struct {
	calls       []presenterCall
	interacting bool
}

func (p *recordingPresenter) SetInteracting(v bool) { p.interacting = v }
func (p *recordingPresenter) IsInteracting() bool   { return p.interacting }
func (p *recordingPresenter) PlayTransientAnimation(name string, locks bool) {
	p.interacting = locks
	p.calls = append(p.calls, presenterCall{kind: "play", name: name, flag: locks})
}
func (p *recordingPresenter) SetFloat(param string, value, dampTime, dt float64) {
	p.calls = append(p.calls, presenterCall{kind: "float", name: param, value: value})
}
func (p *recordingPresenter) SetBool(param string, value bool) {
	p.calls = append(p.calls, presenterCall{kind: "bool", name: param, flag: value})
}

func testPlayerTuning() *component.Player {
	return &component.Player{
		WalkingSpeed:        2,
		RunningSpeed:        5,
		SprintingSpeed:      7,
		RotationSpeed:       15,
		Snapping:            true,
		LeapingSpeed:        2,
		FallingAcceleration: 33,
		ProbeRadius:         0.2,
		ProbeHeightOffset:   0.5,
		MaxProbeDistance:    0.5,
		GroundLayers:        common.LayerGround,
		Gravity:             -10,
		JumpHeight:          1,
		SnapTime:            0.1,
	}
}

func testClips() map[string]component.AnimationClip {
	return map[string]component.AnimationClip{
		"Locomotion": {Loop: true},
		"Fall":       {Duration: 1, Loop: true},
		"Land":       {Duration: 0.5},
		"Jump":       {Duration: 0.8, Resets: map[string]bool{component.ParamInteracting: false, component.ParamJumping: false}},
	}
}

// newTestPlayer builds a player with every locomotion component at pos.
func newTestPlayer(t *testing.T, w *ecs.World, pos mgl64.Vec3) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	add := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("add component: %v", err)
		}
	}
	add(ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	add(ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos, Rotation: mgl64.QuatIdent()}))
	add(ecs.Add(w, e, component.PlayerComponent.Kind(), testPlayerTuning()))
	add(ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Mass: 1, Radius: 0.3}))
	add(ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{}))
	add(ecs.Add(w, e, component.PlayerStateMachineComponent.Kind(), &component.PlayerStateMachine{}))
	add(ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	add(ecs.Add(w, e, component.MovementCommandComponent.Kind(), &component.MovementCommand{}))
	add(ecs.Add(w, e, component.InteractionLockComponent.Kind(), &component.InteractionLock{}))
	add(ecs.Add(w, e, component.AnimatorComponent.Kind(), component.NewAnimator(testClips(), "Locomotion", 0.2, false)))
	return e
}

func mustGet[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	if !ok {
		t.Fatalf("entity %v missing component", e)
	}
	return v
}
