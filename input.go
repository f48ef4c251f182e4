package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/soulslike/ecs/component"
)

const (
	stickDeadZone           = 0.15
	defaultMouseSensitivity = 0.1
	defaultStickLookScale   = 1.0
)

// Input binds keyboard, mouse and the first gamepad to locomotion input.
// Mouse look only counts while the cursor is captured.
type Input struct {
	MouseSensitivity float64
	StickLookScale   float64

	prevX, prevY int
	havePrev     bool
}

func NewInput() *Input {
	return &Input{MouseSensitivity: defaultMouseSensitivity, StickLookScale: defaultStickLookScale}
}

// Poll samples the devices for this frame.
func (i *Input) Poll() (component.Input, error) {
	var in component.Input

	var moveX, moveY float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		moveY += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		moveY -= 1
	}

	lookX, lookY := i.mouseDelta()

	in.Sprint = ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	in.Walk = ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	jump := inpututil.IsKeyJustPressed(ebiten.KeySpace)

	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		if ebiten.IsStandardGamepadLayoutAvailable(gid) {
			lx := deadZone(ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal))
			ly := deadZone(ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical))
			if lx != 0 || ly != 0 {
				moveX, moveY = lx, -ly
			}
			rx := deadZone(ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickHorizontal))
			ry := deadZone(ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickVertical))
			lookX += rx * i.StickLookScale
			lookY -= ry * i.StickLookScale

			jump = jump || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
			in.Sprint = in.Sprint || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightRight)
			in.Walk = in.Walk || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftStick)
		}
	}

	in.Move = mgl64.Vec2{mgl64.Clamp(moveX, -1, 1), mgl64.Clamp(moveY, -1, 1)}
	in.Look = mgl64.Vec2{lookX, lookY}
	if jump {
		in.PressJump()
	}
	return in, nil
}

// mouseDelta returns the cursor movement since the last poll, with y up.
func (i *Input) mouseDelta() (float64, float64) {
	x, y := ebiten.CursorPosition()
	if ebiten.CursorMode() != ebiten.CursorModeCaptured || !i.havePrev {
		i.prevX, i.prevY, i.havePrev = x, y, true
		return 0, 0
	}
	dx, dy := x-i.prevX, y-i.prevY
	i.prevX, i.prevY = x, y
	return float64(dx) * i.MouseSensitivity, -float64(dy) * i.MouseSensitivity
}

func deadZone(v float64) float64 {
	if math.Abs(v) < stickDeadZone {
		return 0
	}
	return v
}
