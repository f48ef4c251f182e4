package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Runtime holds the knobs shared by the demo and the headless runner.
type Runtime struct {
	Level       string  `env:"SOULSLIKE_LEVEL"        envDefault:"arena"`
	LogLevel    string  `env:"SOULSLIKE_LOG_LEVEL"    envDefault:"info"`
	LogFormat   string  `env:"SOULSLIKE_LOG_FORMAT"   envDefault:"console"`
	FixedStep   float64 `env:"SOULSLIKE_FIXED_DT"     envDefault:"0.02"`
	MaxSubSteps int     `env:"SOULSLIKE_MAX_SUBSTEPS" envDefault:"5"`
	HotReload   bool    `env:"SOULSLIKE_HOT_RELOAD"   envDefault:"true"`
	PrefabDir   string  `env:"SOULSLIKE_PREFAB_DIR"   envDefault:"prefabs"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseRuntime reads the environment, then lets flags in args override it.
func ParseRuntime(fs *flag.FlagSet, args []string) (Runtime, error) {
	var cfg Runtime
	if err := ParseEnv(&cfg); err != nil {
		return Runtime{}, err
	}

	fs.StringVar(&cfg.Level, "level", cfg.Level, "level name under levels/")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "console, text or json")
	fs.Float64Var(&cfg.FixedStep, "fixed-dt", cfg.FixedStep, "physics step in seconds")
	fs.IntVar(&cfg.MaxSubSteps, "max-substeps", cfg.MaxSubSteps, "physics steps allowed per frame")
	fs.BoolVar(&cfg.HotReload, "hot-reload", cfg.HotReload, "watch prefabs for changes")
	fs.StringVar(&cfg.PrefabDir, "prefab-dir", cfg.PrefabDir, "directory searched before embedded prefabs")
	if err := fs.Parse(args); err != nil {
		return Runtime{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Runtime{}, err
	}
	return cfg, nil
}

func (r Runtime) Validate() error {
	if r.FixedStep <= 0 {
		return fmt.Errorf("config: fixed step must be positive, got %v", r.FixedStep)
	}
	if r.MaxSubSteps <= 0 {
		return fmt.Errorf("config: max substeps must be positive, got %d", r.MaxSubSteps)
	}
	if r.Level == "" {
		return fmt.Errorf("config: level is required")
	}
	return nil
}
