package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/milk9111/soulslike/config"
	"github.com/milk9111/soulslike/logger"
	"github.com/milk9111/soulslike/obj"
	"github.com/milk9111/soulslike/prefabs"
	"github.com/milk9111/soulslike/scene"
	"github.com/milk9111/soulslike/telemetry"
)

// Config holds scenario command configuration.
type Config struct {
	Runtime  config.Runtime
	Scenario string `env:"SOULSLIKE_SCENARIO"     envDefault:"walk_and_jump.yaml"`
	Output   string `env:"SOULSLIKE_TELEMETRY"`
	Frames   int    `env:"SOULSLIKE_FRAMES"`
}

// ParseConfig reads the environment, then flags in args.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "scenario prefab (yaml)")
	fs.StringVar(&cfg.Output, "out", cfg.Output, "telemetry CSV path; empty writes to stdout")
	fs.IntVar(&cfg.Frames, "frames", cfg.Frames, "override the scenario frame count")

	rt, err := config.ParseRuntime(fs, args)
	if err != nil {
		return Config{}, err
	}
	cfg.Runtime = rt
	return cfg, nil
}

// Run plays the scenario headless and writes one telemetry row per frame.
func Run(ctx context.Context, cfg Config, out io.Writer) (telemetry.Summary, error) {
	if out == nil {
		out = io.Discard
	}
	if cfg.Scenario == "" {
		return telemetry.Summary{}, errors.New("scenario is required")
	}

	spec, err := prefabs.LoadScenarioSpec(cfg.Scenario)
	if err != nil {
		return telemetry.Summary{}, err
	}
	frames := spec.Frames
	if cfg.Frames > 0 {
		frames = cfg.Frames
	}
	level := spec.Level
	if level == "" {
		level = cfg.Runtime.Level
	}

	input, err := obj.LoadScriptInput(spec.Script, spec.FrameDT)
	if err != nil {
		return telemetry.Summary{}, err
	}

	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return telemetry.Summary{}, fmt.Errorf("create telemetry file: %w", err)
		}
		defer f.Close()
		out = f
	}
	recorder := telemetry.NewRecorder(out)

	s, err := scene.New(scene.Options{
		Level:       level,
		Input:       input,
		FixedStep:   cfg.Runtime.FixedStep,
		MaxSubSteps: cfg.Runtime.MaxSubSteps,
		Telemetry:   recorder,
	})
	if err != nil {
		return telemetry.Summary{}, err
	}

	log := logger.L().With("scenario", spec.Name, "level", level)
	log.Info("scenario start", "frames", frames, "frame_dt", spec.FrameDT)
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return recorder.Summary(), err
		}
		s.Frame(spec.FrameDT)
	}

	summary := recorder.Summary()
	log.Info("scenario done", "summary", summary)
	return summary, nil
}
