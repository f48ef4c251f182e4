package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/soulslike/config"
	"github.com/milk9111/soulslike/logger"
	"github.com/milk9111/soulslike/prefabs"
)

func main() {
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	cfg, err := config.ParseRuntime(flag.CommandLine, os.Args[1:])
	if err != nil {
		logger.L().Error("config", "err", err)
		os.Exit(2)
	}

	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	prefabs.Dir = cfg.PrefabDir

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("soulslike")
	ebiten.SetTPS(ebiten.SyncWithFPS)

	game, err := NewGame(cfg)
	if err != nil {
		logger.L().Error("startup", "err", err)
		os.Exit(1)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && err != errQuit {
		logger.L().Error("run", "err", err)
		os.Exit(1)
	}
}
