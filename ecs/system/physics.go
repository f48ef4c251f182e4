package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/soulslike/common"
	"github.com/milk9111/soulslike/ecs"
	"github.com/milk9111/soulslike/ecs/component"
)

const (
	DefaultGravity    = -9.81
	defaultBodyMass   = 1.0
	defaultBodyRadius = 0.3
)

// PhysicsSystem integrates character bodies. The ground plane (x,z) runs
// through a Chipmunk space so walls stop the body; the vertical channel is
// integrated here and swept against the ground so fast falls cannot tunnel.
type PhysicsSystem struct {
	space     *cp.Space
	collision CollisionQuerier
	gravity   float64

	bodies map[ecs.Entity]*component.PhysicsBody
}

func NewPhysicsSystem(space *cp.Space, collision CollisionQuerier, gravity float64) *PhysicsSystem {
	if space == nil {
		space = cp.NewSpace()
		space.Iterations = 20
	}
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:     space,
		collision: collision,
		gravity:   gravity,
		bodies:    make(map[ecs.Entity]*component.PhysicsBody),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World, dt float64) {
	ps.cleanupRemoved(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, tr *component.Transform) {
		ps.ensureBody(e, body, tr)
		body.Body.SetPosition(cp.Vector{X: tr.Position.X(), Y: tr.Position.Z()})
		body.Body.SetVelocityVector(slideAlongContacts(body.Body, cp.Vector{X: body.Velocity.X(), Y: body.Velocity.Z()}))
		body.Body.SetForce(cp.Vector{X: body.Force.X(), Y: body.Force.Z()})
		body.Body.SetAngularVelocity(0)
	})

	ps.space.Step(dt)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, tr *component.Transform) {
		pos := body.Body.Position()
		vel := body.Body.Velocity()
		tr.Position[0], tr.Position[2] = pos.X, pos.Y
		body.Velocity[0], body.Velocity[2] = vel.X, vel.Y

		ps.integrateVertical(w, e, body, tr, dt)
		body.Force = mgl64.Vec3{}
	})
}

// slideAlongContacts drops the part of v that points into any shape the
// body touched on the last step. Chipmunk moves bodies before it solves
// contacts, so the commanded velocity must not carry the body into a wall.
func slideAlongContacts(b *cp.Body, v cp.Vector) cp.Vector {
	b.EachArbiter(func(arb *cp.Arbiter) {
		if arb.Count() == 0 {
			return
		}
		// Normal points away from b.
		n := arb.Normal()
		if into := v.Dot(n); into > 0 {
			v = v.Sub(n.Mult(into))
		}
	})
	return v
}

func (ps *PhysicsSystem) integrateVertical(w *ecs.World, e ecs.Entity, body *component.PhysicsBody, tr *component.Transform, dt float64) {
	if col, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok && col.Grounded && !col.Jumping {
		body.Velocity[1] = 0
		return
	}

	mass := body.Mass
	if mass <= 0 {
		mass = defaultBodyMass
	}
	body.Velocity[1] += (ps.gravity + body.Force.Y()/mass) * dt
	dy := body.Velocity.Y() * dt
	next := tr.Position.Y() + dy

	if player, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok && dy < 0 && ps.collision != nil {
		origin := tr.Position.Add(mgl64.Vec3{0, player.ProbeHeightOffset, 0})
		hit, ok := ps.collision.SphereCast(origin, player.ProbeRadius, common.Down, player.ProbeHeightOffset-dy, player.GroundLayers)
		if ok && hit.Point.Y() > next {
			next = hit.Point.Y()
			body.Velocity[1] = 0
		}
	}
	tr.Position[1] = next
}

func (ps *PhysicsSystem) ensureBody(e ecs.Entity, body *component.PhysicsBody, tr *component.Transform) {
	if body.Body != nil {
		return
	}
	mass := body.Mass
	if mass <= 0 {
		mass = defaultBodyMass
	}
	radius := body.Radius
	if radius <= 0 {
		radius = defaultBodyRadius
	}

	cpBody := cp.NewBody(mass, math.Inf(1))
	cpBody.SetPosition(cp.Vector{X: tr.Position.X(), Y: tr.Position.Z()})

	shape := cp.NewCircle(cpBody, radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(common.LayerCharacter), uint(common.LayerWall)))

	ps.space.AddBody(cpBody)
	ps.space.AddShape(shape)

	body.Body = cpBody
	body.Shape = shape
	ps.bodies[e] = body
}

func (ps *PhysicsSystem) cleanupRemoved(w *ecs.World) {
	for e, body := range ps.bodies {
		if current, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && current == body {
			continue
		}
		if body.Shape != nil {
			ps.space.RemoveShape(body.Shape)
		}
		if body.Body != nil {
			ps.space.RemoveBody(body.Body)
		}
		body.Body, body.Shape = nil, nil
		delete(ps.bodies, e)
	}
}
