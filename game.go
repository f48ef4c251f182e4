package main

import (
	"errors"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/soulslike/config"
	"github.com/milk9111/soulslike/logger"
	"github.com/milk9111/soulslike/prefabs"
	"github.com/milk9111/soulslike/scene"
	"golang.design/x/clipboard"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	// maxFrameDT caps the delta handed to the scheduler after a stall such
	// as a window drag.
	maxFrameDT = 0.25
)

var errQuit = errors.New("quit")

type Game struct {
	frames int

	scene   *scene.Scene
	input   *Input
	watcher *prefabs.Watcher
	ui      *ebitenui.UI

	paused       bool
	quit         bool
	planarDebug  bool
	clipboardOK  bool
	lastUpdate   time.Time
	lastSnapshot string
}

func NewGame(cfg config.Runtime) (*Game, error) {
	input := NewInput()
	s, err := scene.New(scene.Options{
		Level:       cfg.Level,
		Input:       input,
		FixedStep:   cfg.FixedStep,
		MaxSubSteps: cfg.MaxSubSteps,
	})
	if err != nil {
		return nil, err
	}

	g := &Game{scene: s, input: input}
	g.ui = NewPauseUI(g)

	if cfg.HotReload {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			logger.L().Warn("hot reload disabled", "dir", prefabs.Dir, "err", err)
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		logger.L().Warn("clipboard unavailable", "err", err)
	} else {
		g.clipboardOK = true
	}

	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return errQuit
	}

	now := time.Now()
	dt := 0.0
	if !g.lastUpdate.IsZero() {
		dt = min(now.Sub(g.lastUpdate).Seconds(), maxFrameDT)
	}
	g.lastUpdate = now

	g.drainReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.ui.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.copySnapshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.planarDebug = !g.planarDebug
	}

	g.frames++
	g.scene.Frame(dt)
	return nil
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	if paused {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}
	g.lastUpdate = time.Time{}
}

// drainReloads forwards watcher events into the world without blocking.
func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			logger.L().Debug("prefab changed", "path", change.Path, "kind", change.Kind)
			g.scene.RequestReload(change.Path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			logger.L().Warn("prefab watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) copySnapshot() {
	data, err := Snapshot(g.scene)
	if err != nil {
		logger.L().Warn("snapshot", "err", err)
		return
	}
	g.lastSnapshot = string(data)
	if !g.clipboardOK {
		logger.L().Info("snapshot", "yaml", g.lastSnapshot)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	logger.L().Info("snapshot copied to clipboard", "bytes", len(data))
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawTopDown(screen, g.scene)
	if g.planarDebug {
		drawPlanarSpace(screen, g.scene)
	}
	drawHUD(screen, g.scene, g.frames)
	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
