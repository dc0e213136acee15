// Package constraint implements the distance/spring constraint solver
// (spec.md §4.2): a Gauss-Seidel correction pulling two anchor points
// toward a rest length, with optional damping and angular coupling.
package constraint

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/strata2d/strata/body"
)

const (
	// minLength guards against a singular (zero-length) delta.
	minLength = 1e-6
	// torqueDampen is applied when distributing a correction's angular
	// share, the same role the teacher's contact solver gives its own
	// damping multipliers (constraint/contact.go's SolvePosition).
	torqueDampen = 1.0
	// warming carries a reduced fraction of this step's accumulated
	// impulse into the next step's preSolve, accounting for an
	// incomplete (finite-iteration) solve.
	warming = 0.4
)

// Constraint pins or springs an anchor on BodyA to an anchor on BodyB.
// A nil body treats its point as a fixed world-space anchor. At least
// one of BodyA/BodyB must be non-nil.
type Constraint struct {
	BodyA, BodyB *body.Body
	PointA       mgl64.Vec2 // local offset from BodyA.Position, or world point if BodyA == nil
	PointB       mgl64.Vec2 // local offset from BodyB.Position, or world point if BodyB == nil

	Length    float64 // rest length
	Stiffness float64 // 0..1
	Damping   float64

	AngularStiffness float64

	angleA, angleB float64 // cached reference angles, updated each solve
}

// New creates a constraint, seeding its reference angles from the
// bodies' current orientation.
func New(bodyA, bodyB *body.Body, pointA, pointB mgl64.Vec2, length, stiffness float64) *Constraint {
	c := &Constraint{
		BodyA: bodyA, BodyB: bodyB,
		PointA: pointA, PointB: pointB,
		Length: length, Stiffness: stiffness,
	}
	if bodyA != nil {
		c.angleA = bodyA.Angle
	}
	if bodyB != nil {
		c.angleB = bodyB.Angle
	}
	return c
}

// SolveAll runs one Gauss-Seidel pass over constraints. Per spec §4.2,
// constraints with a static or missing endpoint are solved before fully
// free (both-dynamic) constraints within each pass, which converges
// faster against immovable anchors.
func SolveAll(constraints []*Constraint, timeScale float64) {
	anchored := make([]*Constraint, 0, len(constraints))
	free := make([]*Constraint, 0, len(constraints))
	for _, c := range constraints {
		if c.hasFixedEndpoint() {
			anchored = append(anchored, c)
		} else {
			free = append(free, c)
		}
	}
	for _, c := range anchored {
		c.Solve(timeScale)
	}
	for _, c := range free {
		c.Solve(timeScale)
	}
}

func (c *Constraint) hasFixedEndpoint() bool {
	return c.BodyA == nil || c.BodyB == nil || c.BodyA.IsStatic || c.BodyB.IsStatic
}

// Solve applies one correction pass for c. Both bodies absent or both
// static is a no-op (spec §4.2: "if both bodies static or absent, skip").
func (c *Constraint) Solve(timeScale float64) {
	aStatic := c.BodyA == nil || c.BodyA.IsStatic
	bStatic := c.BodyB == nil || c.BodyB.IsStatic
	if aStatic && bStatic {
		return
	}

	if c.BodyA != nil {
		c.PointA = body.RotateVec(c.PointA, c.BodyA.Angle-c.angleA)
		c.angleA = c.BodyA.Angle
	}
	if c.BodyB != nil {
		c.PointB = body.RotateVec(c.PointB, c.BodyB.Angle-c.angleB)
		c.angleB = c.BodyB.Angle
	}

	worldA, worldB := c.PointA, c.PointB
	if c.BodyA != nil {
		worldA = c.BodyA.Position.Add(c.PointA)
	}
	if c.BodyB != nil {
		worldB = c.BodyB.Position.Add(c.PointB)
	}

	delta := worldA.Sub(worldB)
	length := delta.Len()
	if length < minLength {
		length = minLength
	}

	stiffness := c.Stiffness
	if stiffness < 1 {
		stiffness *= timeScale
	}
	difference := (length - c.Length) / length
	force := delta.Mul(difference * stiffness)

	invMassA, invInertiaA := 0.0, 0.0
	if c.BodyA != nil {
		invMassA, invInertiaA = c.BodyA.InverseMass, c.BodyA.InverseInertia
	}
	invMassB, invInertiaB := 0.0, 0.0
	if c.BodyB != nil {
		invMassB, invInertiaB = c.BodyB.InverseMass, c.BodyB.InverseInertia
	}

	massTotal := invMassA + invMassB
	inertiaTotal := invInertiaA + invInertiaB
	resistanceTotal := massTotal + inertiaTotal
	if massTotal == 0 {
		return
	}

	var normal mgl64.Vec2
	var normalVelocity float64
	if c.Damping > 0 {
		normal = delta.Mul(1 / length)
		var velB, velA mgl64.Vec2
		if c.BodyB != nil {
			velB = c.BodyB.Position.Sub(c.BodyB.PositionPrev)
		}
		if c.BodyA != nil {
			velA = c.BodyA.Position.Sub(c.BodyA.PositionPrev)
		}
		normalVelocity = normal.Dot(velB.Sub(velA))
	}

	if c.BodyA != nil && !c.BodyA.IsStatic {
		share := invMassA / massTotal

		c.BodyA.ConstraintImpulse.X -= force.X() * share
		c.BodyA.ConstraintImpulse.Y -= force.Y() * share
		c.BodyA.Position = mgl64.Vec2{
			c.BodyA.Position.X() - force.X()*share,
			c.BodyA.Position.Y() - force.Y()*share,
		}

		if c.Damping > 0 {
			c.BodyA.PositionPrev = mgl64.Vec2{
				c.BodyA.PositionPrev.X() - c.Damping*normal.X()*normalVelocity*share,
				c.BodyA.PositionPrev.Y() - c.Damping*normal.Y()*normalVelocity*share,
			}
		}

		if resistanceTotal > 0 {
			torque := (body.Cross(c.PointA, force) / resistanceTotal) * torqueDampen * invInertiaA * (1 - c.AngularStiffness)
			c.BodyA.ConstraintImpulse.Angle -= torque
			c.BodyA.Angle -= torque
		}
	}

	if c.BodyB != nil && !c.BodyB.IsStatic {
		share := invMassB / massTotal

		c.BodyB.ConstraintImpulse.X += force.X() * share
		c.BodyB.ConstraintImpulse.Y += force.Y() * share
		c.BodyB.Position = mgl64.Vec2{
			c.BodyB.Position.X() + force.X()*share,
			c.BodyB.Position.Y() + force.Y()*share,
		}

		if c.Damping > 0 {
			c.BodyB.PositionPrev = mgl64.Vec2{
				c.BodyB.PositionPrev.X() + c.Damping*normal.X()*normalVelocity*share,
				c.BodyB.PositionPrev.Y() + c.Damping*normal.Y()*normalVelocity*share,
			}
		}

		if resistanceTotal > 0 {
			torque := (body.Cross(c.PointB, force) / resistanceTotal) * torqueDampen * invInertiaB * (1 - c.AngularStiffness)
			c.BodyB.ConstraintImpulse.Angle += torque
			c.BodyB.Angle += torque
		}
	}
}

// PreSolveAll applies each body's warm-started constraint impulse from
// the previous step before this step's iterations begin.
func PreSolveAll(bodies []*body.Body) {
	for _, b := range bodies {
		impulse := b.ConstraintImpulse
		if b.IsStatic || impulse.IsZero() {
			continue
		}
		b.Position = mgl64.Vec2{b.Position.X() + impulse.X, b.Position.Y() + impulse.Y}
		b.Angle += impulse.Angle
	}
}

// PostSolveAll commits each body's net accumulated constraint impulse to
// its geometry (vertices/axes/bounds), wakes it, and dampens the impulse
// by warming so only a fraction carries into the next step's
// PreSolveAll.
func PostSolveAll(bodies []*body.Body) {
	for _, b := range bodies {
		impulse := b.ConstraintImpulse
		if b.IsStatic || impulse.IsZero() {
			continue
		}

		b.IsSleeping = false
		b.SleepCounter = 0

		delta := mgl64.Vec2{impulse.X, impulse.Y}
		body.Translate(b.Vertices, delta)
		body.Rotate(b.Vertices, impulse.Angle, b.Position)
		b.Axes = body.RotateAxes(b.Axes, impulse.Angle)
		for _, p := range b.Parts {
			body.Translate(p.Vertices, delta)
			body.Rotate(p.Vertices, impulse.Angle, b.Position)
			p.Axes = body.RotateAxes(p.Axes, impulse.Angle)
			p.Bounds.Update(p.Vertices, b.Velocity)
		}
		b.Bounds.Update(b.Vertices, b.Velocity)

		b.ConstraintImpulse = body.ConstraintImpulse{
			X:     impulse.X * warming,
			Y:     impulse.Y * warming,
			Angle: impulse.Angle * warming,
		}
	}
}
