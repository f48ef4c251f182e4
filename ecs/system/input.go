package system

import (
	"github.com/milk9111/soulslike/ecs"
	"github.com/milk9111/soulslike/ecs/component"
	"github.com/milk9111/soulslike/logger"
)

// InputSystem samples the input source once per display frame, writes it
// to every player and hands the jump edge to the controller straight away.
type InputSystem struct {
	source     InputSource
	controller *PlayerControllerSystem
}

func NewInputSystem(source InputSource, controller *PlayerControllerSystem) *InputSystem {
	return &InputSystem{source: source, controller: controller}
}

func (i *InputSystem) Update(w *ecs.World, _ float64) {
	if i.source == nil {
		return
	}
	sample, err := i.source.Poll()
	if err != nil {
		logger.L().Warn("input: poll failed", "err", err)
		sample = component.Input{}
	}

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.InputComponent.Kind(), func(_ ecs.Entity, _ *component.PlayerTag, input *component.Input) {
		*input = sample
	})

	if i.controller != nil {
		i.controller.HandleInput(w)
	}
}
