package component

import "github.com/milk9111/soulslike/common"

// Animator parameter names shared with the locomotion bridge.
const (
	ParamInteracting = "isInteracting"
	ParamJumping     = "isJumping"
	ParamHorizontal  = "Horizontal"
	ParamVertical    = "Vertical"
)

// AnimationClip describes one playable clip. Resets lists bool parameters
// written when a transient play of the clip finishes; nil means the clip only
// releases the interaction lock.
type AnimationClip struct {
	Duration float64
	Loop     bool
	Resets   map[string]bool
}

// Animator is a small parameter-driven clip player. It has no pose data;
// it tracks which clip is active, cross-fade progress and the parameter
// table the locomotion layer writes to.
type Animator struct {
	Clips       map[string]AnimationClip
	DefaultClip string
	CrossFade   float64

	Current   string
	Previous  string
	Elapsed   float64
	Blend     float64
	Transient bool

	floats    map[string]float64
	floatVels map[string]float64
	bools     map[string]bool
	// entering is set until the first Advance enters the default clip.
	entering bool
}

func NewAnimator(clips map[string]AnimationClip, defaultClip string, crossFade float64, interacting bool) *Animator {
	a := &Animator{
		Clips:       clips,
		DefaultClip: defaultClip,
		CrossFade:   crossFade,
		Current:     defaultClip,
		Blend:       1,
		entering:    interacting,
	}
	a.SetBool(ParamInteracting, interacting)
	return a
}

func (a *Animator) SetInteracting(v bool) {
	a.SetBool(ParamInteracting, v)
}

func (a *Animator) IsInteracting() bool {
	return a.Bool(ParamInteracting)
}

func (a *Animator) SetBool(name string, v bool) {
	if a.bools == nil {
		a.bools = make(map[string]bool)
	}
	a.bools[name] = v
}

func (a *Animator) Bool(name string) bool {
	return a.bools[name]
}

// SetFloat moves a float parameter toward value, damped over dampTime.
func (a *Animator) SetFloat(name string, value, dampTime, dt float64) {
	if a.floats == nil {
		a.floats = make(map[string]float64)
		a.floatVels = make(map[string]float64)
	}
	if dampTime <= 0 || dt <= 0 {
		a.floats[name] = value
		a.floatVels[name] = 0
		return
	}
	vel := a.floatVels[name]
	a.floats[name] = common.SmoothDamp(a.floats[name], value, &vel, dampTime, dt)
	a.floatVels[name] = vel
}

func (a *Animator) Float(name string) float64 {
	return a.floats[name]
}

// PlayTransientAnimation cross-fades into a one-off clip and sets the
// interaction lock for its duration.
func (a *Animator) PlayTransientAnimation(name string, locksMovement bool) {
	a.SetBool(ParamInteracting, locksMovement)
	a.play(name)
	a.Transient = true
}

// Advance moves the active clip forward. A finished transient clip applies
// its resets and returns to the default clip. Looping transients hold until
// another transient replaces them. An animator created interacting is
// released by its first Advance.
func (a *Animator) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	if a.entering {
		a.entering = false
		if !a.Transient {
			a.SetBool(ParamInteracting, false)
		}
	}
	a.Elapsed += dt
	if a.Blend < 1 {
		if a.CrossFade <= 0 {
			a.Blend = 1
		} else {
			a.Blend = common.Clamp01(a.Blend + dt/a.CrossFade)
		}
	}
	if !a.Transient {
		return
	}

	clip := a.Clips[a.Current]
	if clip.Loop || a.Elapsed < clip.Duration {
		return
	}
	if clip.Resets == nil {
		a.SetBool(ParamInteracting, false)
	}
	for name, v := range clip.Resets {
		a.SetBool(name, v)
	}
	a.Transient = false
	a.play(a.DefaultClip)
}

func (a *Animator) play(name string) {
	a.Previous = a.Current
	a.Current = name
	a.Elapsed = 0
	a.Blend = 0
	if a.CrossFade <= 0 {
		a.Blend = 1
	}
}

var AnimatorComponent = NewComponent[Animator]()
