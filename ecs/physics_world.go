package ecs

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/starfolio/common"
)

const ambientCollisionType cp.CollisionType = 1

// PhysicsWorld runs the decorative asteroid field. Bodies live in the scene's
// XY plane and are drawn toward a single attractor (the black hole) with a
// tangential swirl so they orbit instead of piling up.
type PhysicsWorld struct {
	space    *cp.Space
	attract  cp.Vector
	pull     float64
	swirl    float64
	minDist  float64
	maxSpeed float64
}

func NewPhysicsWorld(pull, damping float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	if damping > 0 && damping <= 1 {
		space.SetDamping(damping)
	}
	space.Iterations = 5

	return &PhysicsWorld{
		space:    space,
		pull:     pull,
		swirl:    0.6,
		minDist:  1,
		maxSpeed: 12,
	}
}

// SetAttractor moves the point bodies fall toward. Z is ignored.
func (pw *PhysicsWorld) SetAttractor(v common.Vec3) {
	if pw == nil {
		return
	}
	pw.attract = cp.Vector{X: v.X, Y: v.Y}
}

func (pw *PhysicsWorld) Attractor() common.Vec3 {
	return common.V3(pw.attract.X, pw.attract.Y, 0)
}

// AddBody creates a circular body at pos with an initial velocity.
func (pw *PhysicsWorld) AddBody(pos, vel common.Vec3, radius float64) *cp.Body {
	if radius <= 0 {
		radius = 0.1
	}
	mass := radius * radius
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	body.SetVelocity(vel.X, vel.Y)
	body.SetVelocityUpdateFunc(pw.velocityUpdate)

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetElasticity(0.4)
	shape.SetFriction(0.1)
	shape.SetCollisionType(ambientCollisionType)

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	return body
}

// RemoveBody drops body and its shapes from the space.
func (pw *PhysicsWorld) RemoveBody(body *cp.Body) {
	if pw == nil || body == nil {
		return
	}
	body.EachShape(func(s *cp.Shape) {
		pw.space.RemoveShape(s)
	})
	pw.space.RemoveBody(body)
}

func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

func (pw *PhysicsWorld) velocityUpdate(body *cp.Body, _ cp.Vector, damping, dt float64) {
	delta := pw.attract.Sub(body.Position())
	dist := math.Max(delta.Length(), pw.minDist)
	dir := delta.Mult(1 / dist)

	// Pull falls off with distance; the swirl is perpendicular to it.
	strength := pw.pull / dist
	accel := dir.Mult(strength).Add(dir.Perp().Mult(strength * pw.swirl))
	cp.BodyUpdateVelocity(body, accel, damping, dt)

	if v := body.Velocity(); v.Length() > pw.maxSpeed {
		body.SetVelocityVector(v.Normalize().Mult(pw.maxSpeed))
	}
}
