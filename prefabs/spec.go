package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// ScenarioSpec drives a headless run of an input script.
type ScenarioSpec struct {
	Name    string  `yaml:"name"`
	Level   string  `yaml:"level"`
	Script  string  `yaml:"script"`
	Frames  int     `yaml:"frames"`
	FrameDT float64 `yaml:"frame_dt"`
}

func LoadScenarioSpec(filename string) (ScenarioSpec, error) {
	spec, err := LoadSpec[ScenarioSpec](filename)
	if err != nil {
		return spec, err
	}
	if spec.Script == "" {
		return spec, fmt.Errorf("prefabs: scenario %s: script is required", filename)
	}
	if spec.Frames <= 0 {
		spec.Frames = 300
	}
	if spec.FrameDT <= 0 {
		spec.FrameDT = 1.0 / 60.0
	}
	return spec, nil
}
