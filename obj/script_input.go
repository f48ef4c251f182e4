package obj

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/soulslike/ecs/component"
	"github.com/milk9111/soulslike/prefabs"
)

// The script defines input(frame, t) returning a map with any of move_x,
// move_y, look_x, look_y, sprint, walk and jump.
const scriptInputDispatch = `
__out = input(__frame, __time)
`

var ErrScriptPanic = errors.New("script input: script panicked")

// ScriptInput plays back input from a tengo script, one call per frame.
type ScriptInput struct {
	Name     string
	compiled *tengo.Compiled
	frameDT  float64
	frame    int
}

func LoadScriptInput(name string, frameDT float64) (*ScriptInput, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script input: load %q: %w", name, err)
	}
	in, err := NewScriptInput(src, frameDT)
	if err != nil {
		return nil, fmt.Errorf("script input: %q: %w", name, err)
	}
	in.Name = name
	return in, nil
}

func NewScriptInput(src []byte, frameDT float64) (*ScriptInput, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), scriptInputDispatch...))
	_ = script.Add("__frame", 0)
	_ = script.Add("__time", 0.0)
	_ = script.Add("__out", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &ScriptInput{compiled: compiled, frameDT: frameDT}, nil
}

// Poll runs the script for the next frame. A panic raised inside the VM
// (integer division by zero, for one) comes back as an error.
func (s *ScriptInput) Poll() (in component.Input, err error) {
	frame := s.frame
	s.frame++

	if err := s.compiled.Set("__frame", frame); err != nil {
		return component.Input{}, err
	}
	if err := s.compiled.Set("__time", float64(frame)*s.frameDT); err != nil {
		return component.Input{}, err
	}
	if err := s.run(); err != nil {
		return component.Input{}, fmt.Errorf("script input: frame %d: %w", frame, err)
	}

	out := s.compiled.Get("__out").Map()
	in.Move = mgl64.Vec2{scriptFloat(out["move_x"]), scriptFloat(out["move_y"])}
	in.Look = mgl64.Vec2{scriptFloat(out["look_x"]), scriptFloat(out["look_y"])}
	in.Sprint = scriptBool(out["sprint"])
	in.Walk = scriptBool(out["walk"])
	if scriptBool(out["jump"]) {
		in.PressJump()
	}
	in.Move[0] = mgl64.Clamp(in.Move.X(), -1, 1)
	in.Move[1] = mgl64.Clamp(in.Move.Y(), -1, 1)
	return in, nil
}

func (s *ScriptInput) run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrScriptPanic, r)
		}
	}()
	return s.compiled.Run()
}

func (s *ScriptInput) Frame() int {
	return s.frame
}

func scriptFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func scriptBool(v any) bool {
	b, _ := v.(bool)
	return b
}
