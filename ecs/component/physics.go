package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// PhysicsBody is the dynamic state of a character body. The planar (x,z)
// part is mirrored into a Chipmunk body so walls can push back; the vertical
// channel is integrated directly.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Velocity mgl64.Vec3
	// Force accumulates until the next physics step and is then cleared.
	Force  mgl64.Vec3
	Mass   float64
	Radius float64
}

func (b *PhysicsBody) AddForce(f mgl64.Vec3) {
	b.Force = b.Force.Add(f)
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
