package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Input stores the sampled controls for an entity. Move and Look are in
// [-1,1] per axis: Move.X strafes, Move.Y goes forward.
type Input struct {
	Move   mgl64.Vec2
	Look   mgl64.Vec2
	Sprint bool
	Walk   bool

	jump bool
}

// PressJump latches a jump request until TakeJump consumes it.
func (i *Input) PressJump() {
	i.jump = true
}

// TakeJump reports whether a jump was requested and clears the request.
func (i *Input) TakeJump() bool {
	j := i.jump
	i.jump = false
	return j
}

func (i *Input) JumpPending() bool {
	return i.jump
}

// MoveAmount is |x|+|y| of the move axis clamped to [0,1].
func (i *Input) MoveAmount() float64 {
	return math.Min(1, math.Abs(i.Move.X())+math.Abs(i.Move.Y()))
}

var InputComponent = NewComponent[Input]()
