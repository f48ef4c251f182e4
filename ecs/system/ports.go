package system

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/soulslike/common"
	"github.com/milk9111/soulslike/ecs/component"
)

var ErrNoTarget = errors.New("camera: follow target not found")

// CollisionQuerier answers swept-sphere queries against static geometry.
type CollisionQuerier interface {
	SphereCast(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64, mask common.LayerMask) (common.RaycastHit, bool)
}

// Presenter is the animation layer the locomotion core talks to.
// IsInteracting may change on its own as clips finish.
type Presenter interface {
	SetInteracting(v bool)
	IsInteracting() bool
	PlayTransientAnimation(name string, locksMovement bool)
	SetFloat(param string, value, dampTime, dt float64)
	SetBool(param string, value bool)
}

// InputSource produces one input sample per display frame.
type InputSource interface {
	Poll() (component.Input, error)
}

var _ Presenter = (*component.Animator)(nil)
