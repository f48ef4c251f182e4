package main

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/soulslike/common"
	"github.com/milk9111/soulslike/ecs"
	"github.com/milk9111/soulslike/ecs/component"
	"github.com/milk9111/soulslike/scene"
	"golang.org/x/image/colornames"
)

// pixelsPerMeter is the zoom of the top-down debug view.
const pixelsPerMeter = 24.0

// topDown maps world x,z onto the screen with the player at the center and
// +Z pointing up.
type topDown struct {
	center mgl64.Vec3
}

func (t topDown) point(p mgl64.Vec3) (float32, float32) {
	x := baseWidth/2 + (p.X()-t.center.X())*pixelsPerMeter
	y := baseHeight/2 - (p.Z()-t.center.Z())*pixelsPerMeter
	return float32(x), float32(y)
}

func drawTopDown(screen *ebiten.Image, s *scene.Scene) {
	screen.Fill(colornames.Black)
	view := topDown{center: s.PlayerPosition()}

	for _, b := range s.Level.Collision.Boxes(common.LayerAll) {
		x0, y0 := view.point(mgl64.Vec3{b.Min.X(), 0, b.Max.Z()})
		x1, y1 := view.point(mgl64.Vec3{b.Max.X(), 0, b.Min.Z()})
		fill, stroke := boxColors(b.Layers)
		vector.FillRect(screen, x0, y0, x1-x0, y1-y0, fill, false)
		vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, stroke, false)
	}

	if tr, ok := ecs.Get(s.World, s.Player, component.TransformComponent.Kind()); ok {
		radius := 0.3
		if body, ok := ecs.Get(s.World, s.Player, component.PhysicsBodyComponent.Kind()); ok && body.Radius > 0 {
			radius = body.Radius
		}
		cx, cy := view.point(tr.Position)
		clr := colornames.Crimson
		if col, ok := ecs.Get(s.World, s.Player, component.PlayerCollisionComponent.Kind()); ok && !col.Grounded {
			clr = colornames.Orange
		}
		vector.FillCircle(screen, cx, cy, float32(radius*pixelsPerMeter), clr, true)
		fx, fy := view.point(tr.Position.Add(tr.Forward()))
		vector.StrokeLine(screen, cx, cy, fx, fy, 2, colornames.White, true)
	}

	if state, ok := ecs.Get(s.World, s.Camera, component.CameraStateComponent.Kind()); ok {
		px, py := view.point(state.Pivot)
		cx, cy := view.point(state.Position)
		vector.StrokeLine(screen, px, py, cx, cy, 1, colornames.Lightgrey, true)
		vector.FillCircle(screen, cx, cy, 4, colornames.Skyblue, true)
	}
}

func boxColors(layers common.LayerMask) (color.Color, color.Color) {
	switch {
	case layers.Has(common.LayerWall):
		return color.RGBA{R: 90, G: 90, B: 110, A: 200}, colornames.Slategray
	case layers.Has(common.LayerGround):
		return color.RGBA{R: 30, G: 60, B: 30, A: 160}, colornames.Darkolivegreen
	default:
		return color.RGBA{R: 40, G: 40, B: 40, A: 120}, colornames.Dimgray
	}
}

func drawHUD(screen *ebiten.Image, s *scene.Scene, frames int) {
	w := s.World
	var state, tier string
	var speed, airTime float64
	var grounded, jumping, locked bool
	if sm, ok := ecs.Get(w, s.Player, component.PlayerStateMachineComponent.Kind()); ok && sm.State != nil {
		state = sm.State.Name()
	}
	if cmd, ok := ecs.Get(w, s.Player, component.MovementCommandComponent.Kind()); ok {
		tier = cmd.Tier.String()
	}
	if body, ok := ecs.Get(w, s.Player, component.PhysicsBodyComponent.Kind()); ok {
		speed = common.Flatten(body.Velocity).Len()
	}
	if col, ok := ecs.Get(w, s.Player, component.PlayerCollisionComponent.Kind()); ok {
		grounded, jumping, airTime = col.Grounded, col.Jumping, col.AirTime
	}
	if lock, ok := ecs.Get(w, s.Player, component.InteractionLockComponent.Kind()); ok {
		locked = lock.Active
	}
	var yaw, pitch, zoff float64
	if cam, ok := ecs.Get(w, s.Camera, component.CameraStateComponent.Kind()); ok {
		yaw, pitch, zoff = cam.Yaw, cam.Pitch, cam.ZOffset
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"Frames: %d    FPS: %.2f    steps: %d\nstate: %s  tier: %s  speed: %.2f\ngrounded: %v  jumping: %v  air: %.2f  locked: %v\ncamera yaw: %.1f  pitch: %.1f  z: %.2f\n[Esc] pause  [F3] contacts  [F5] snapshot",
		frames, ebiten.ActualFPS(), s.Scheduler.Steps(),
		state, tier, speed,
		grounded, jumping, airTime, locked,
		yaw, pitch, zoff,
	))
}
