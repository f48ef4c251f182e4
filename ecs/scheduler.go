package ecs

import "math"

// System advances a world by dt seconds.
type System interface {
	Update(w *World, dt float64)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World, dt float64)

func (f SystemFunc) Update(w *World, dt float64) { f(w, dt) }

// Phase orders systems within a frame.
type Phase int

const (
	// PhaseInput runs once per display frame with the variable frame dt.
	PhaseInput Phase = iota
	// PhasePhysics runs zero or more times per frame with the fixed step.
	PhasePhysics
	// PhaseLate runs once per display frame after every physics step.
	PhaseLate

	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePhysics:
		return "physics"
	case PhaseLate:
		return "late"
	default:
		return "unknown"
	}
}

const (
	DefaultFixedStep   = 1.0 / 50.0
	DefaultMaxSubSteps = 5
)

// PhaseScheduler drives the three update phases from a variable frame delta.
// Physics systems see only the fixed step; leftover time carries to the next
// frame through the accumulator.
type PhaseScheduler struct {
	FixedStep   float64
	MaxSubSteps int

	phases      [phaseCount][]System
	accumulator float64
	steps       uint64
}

func NewPhaseScheduler(fixedStep float64, maxSubSteps int) *PhaseScheduler {
	if fixedStep <= 0 {
		fixedStep = DefaultFixedStep
	}
	if maxSubSteps <= 0 {
		maxSubSteps = DefaultMaxSubSteps
	}
	return &PhaseScheduler{FixedStep: fixedStep, MaxSubSteps: maxSubSteps}
}

func (s *PhaseScheduler) Add(phase Phase, system System) {
	if system == nil || phase < 0 || phase >= phaseCount {
		return
	}
	s.phases[phase] = append(s.phases[phase], system)
}

func (s *PhaseScheduler) Systems(phase Phase) []System {
	if phase < 0 || phase >= phaseCount {
		return nil
	}
	return append([]System(nil), s.phases[phase]...)
}

// Frame runs one display frame and returns the number of physics steps taken.
// When the substep cap is hit the remaining backlog is dropped rather than
// carried forward, so a long stall cannot snowball.
func (s *PhaseScheduler) Frame(w *World, frameDT float64) int {
	if frameDT < 0 || math.IsNaN(frameDT) || math.IsInf(frameDT, 0) {
		frameDT = 0
	}

	s.run(w, PhaseInput, frameDT)

	s.accumulator += frameDT
	n := 0
	for s.accumulator >= s.FixedStep && n < s.MaxSubSteps {
		s.run(w, PhasePhysics, s.FixedStep)
		s.accumulator -= s.FixedStep
		s.steps++
		n++
	}
	if n == s.MaxSubSteps && s.accumulator >= s.FixedStep {
		s.accumulator = math.Mod(s.accumulator, s.FixedStep)
	}

	s.run(w, PhaseLate, frameDT)
	return n
}

// Step runs a single physics step outside of Frame. Used by headless drivers
// that want exact control over the tick count.
func (s *PhaseScheduler) Step(w *World) {
	s.run(w, PhasePhysics, s.FixedStep)
	s.steps++
}

// Alpha is the fraction of a fixed step left in the accumulator.
func (s *PhaseScheduler) Alpha() float64 {
	return s.accumulator / s.FixedStep
}

// Steps is the total number of physics steps run so far.
func (s *PhaseScheduler) Steps() uint64 {
	return s.steps
}

func (s *PhaseScheduler) run(w *World, phase Phase, dt float64) {
	for _, system := range s.phases[phase] {
		system.Update(w, dt)
	}
}
