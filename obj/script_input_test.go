package obj

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/soulslike/ecs/component"
)

func TestScriptInputPoll(t *testing.T) {
	src := []byte(`
input := func(frame, t) {
	if frame == 0 {
		return {move_y: 1, sprint: true}
	}
	if frame == 1 {
		return {move_x: -2.5, look_x: 0.5, jump: true}
	}
	return {walk: true, move_y: t}
}
`)
	in, err := NewScriptInput(src, 0.5)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	first, err := in.Poll()
	if err != nil {
		t.Fatal(err)
	}
	if first.Move != (mgl64.Vec2{0, 1}) || !first.Sprint || first.JumpPending() {
		t.Fatalf("frame 0: %+v", first)
	}

	second, err := in.Poll()
	if err != nil {
		t.Fatal(err)
	}
	if second.Move != (mgl64.Vec2{-1, 0}) {
		t.Fatalf("frame 1 move should clamp, got %v", second.Move)
	}
	if second.Look.X() != 0.5 || !second.JumpPending() {
		t.Fatalf("frame 1: %+v", second)
	}

	third, err := in.Poll()
	if err != nil {
		t.Fatal(err)
	}
	if !third.Walk || third.Move.Y() != 1 {
		t.Fatalf("frame 2 should see t=1.0, got %+v", third)
	}
	if in.Frame() != 3 {
		t.Fatalf("frame = %d", in.Frame())
	}
}

func TestScriptInputErrors(t *testing.T) {
	if _, err := NewScriptInput([]byte(`x := 1`), 0.02); err == nil {
		t.Fatal("expected compile error without input function")
	}

	tests := []struct {
		name      string
		src       string
		wantPanic bool
	}{
		{"not_callable", `input := func(frame, t) { x := 1; return x() }`, false},
		{"integer_division_by_zero", `input := func(frame, t) { return 1 / (frame - frame) }`, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in, err := NewScriptInput([]byte(tc.src), 0.02)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			got, err := in.Poll()
			if err == nil {
				t.Fatal("expected an error from the failing frame")
			}
			if tc.wantPanic && !errors.Is(err, ErrScriptPanic) {
				t.Fatalf("err = %v, want ErrScriptPanic", err)
			}
			if got != (component.Input{}) {
				t.Fatalf("failed frame should yield zero input, got %+v", got)
			}
			if in.Frame() != 1 {
				t.Fatalf("frame should still advance, got %d", in.Frame())
			}
		})
	}
}

func TestLoadScriptInputEmbedded(t *testing.T) {
	in, err := LoadScriptInput("walk_and_jump.tengo", 1.0/60.0)
	if err != nil {
		t.Fatal(err)
	}
	sample, err := in.Poll()
	if err != nil {
		t.Fatal(err)
	}
	if sample.Move.Y() != 1 || !sample.Walk {
		t.Fatalf("expected walking forward at start, got %+v", sample)
	}
}
