package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/milk9111/soulslike/logger"
	"github.com/milk9111/soulslike/prefabs"
)

func main() {
	cfg, err := ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		logger.L().Error("config", "err", err)
		os.Exit(2)
	}
	logger.Init(logger.Config{Level: cfg.Runtime.LogLevel, Format: cfg.Runtime.LogFormat})
	prefabs.Dir = cfg.Runtime.PrefabDir

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := Run(ctx, cfg, os.Stdout); err != nil {
		logger.L().Error("scenario failed", "err", err)
		os.Exit(1)
	}
}
