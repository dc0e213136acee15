package strata

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/strata2d/strata/body"
)

// positionDampen scales each iteration's positional correction share
// (spec §4.6).
const positionDampen = 0.9

// positionWarming is the fraction of this step's accumulated position
// impulse carried into the next step's pre-pass (spec §4.6).
const positionWarming = 0.8

// PositionSolver runs the sequential-impulse positional correction pass:
// pre-counts contacts per body, iterates the Gauss-Seidel position
// solve, then commits the accumulated impulse to geometry (spec §4.6).
type PositionSolver struct{}

// Pre zeroes every body's contact count and recounts it from this step's
// active pairs.
func (PositionSolver) Pre(bodies []*body.Body, pairs []*Pair) {
	for _, b := range bodies {
		b.TotalContacts = 0
	}
	for _, p := range pairs {
		if !p.IsActive || p.IsSensor {
			continue
		}
		p.BodyA.TotalContacts += len(p.ActiveContacts)
		p.BodyB.TotalContacts += len(p.ActiveContacts)
	}
}

// Solve runs one Gauss-Seidel position-correction iteration over pairs.
func (PositionSolver) Solve(pairs []*Pair, timeScale float64) {
	for _, p := range pairs {
		if !p.IsActive || p.IsSensor {
			continue
		}
		a, b := p.BodyA, p.BodyB
		normal := p.Collision.Normal

		separation := normal.Dot(
			b.Position.Add(b.PositionImpulse).
				Sub(a.Position.Add(a.PositionImpulse)).
				Sub(p.Collision.Penetration),
		)

		raw := (separation - p.Slop) * timeScale
		if a.IsStatic || b.IsStatic {
			raw *= 2
		}

		if !a.IsStatic && !a.IsSleeping && a.TotalContacts > 0 {
			share := raw * positionDampen / float64(a.TotalContacts)
			a.PositionImpulse = a.PositionImpulse.Sub(normal.Mul(share))
		}
		if !b.IsStatic && !b.IsSleeping && b.TotalContacts > 0 {
			share := raw * positionDampen / float64(b.TotalContacts)
			b.PositionImpulse = b.PositionImpulse.Add(normal.Mul(share))
		}
	}
}

// Post commits each body's accumulated position impulse to its geometry,
// snapping it to zero if the correction opposes the body's current
// velocity (already at rest) or warming it down to carry a reduced
// fraction into next step's pre-pass.
func (PositionSolver) Post(bodies []*body.Body) {
	for _, b := range bodies {
		if b.PositionImpulse == (mgl64.Vec2{}) {
			b.TotalContacts = 0
			continue
		}

		impulse := b.PositionImpulse
		body.Translate(b.Vertices, impulse)
		for _, part := range b.Parts {
			body.Translate(part.Vertices, impulse)
			part.Bounds.Update(part.Vertices, b.Velocity)
		}
		b.Position = b.Position.Add(impulse)
		b.PositionPrev = b.PositionPrev.Add(impulse)
		b.Bounds.Update(b.Vertices, b.Velocity)

		if impulse.Dot(b.Velocity) < 0 {
			b.PositionImpulse = mgl64.Vec2{}
		} else {
			b.PositionImpulse = impulse.Mul(positionWarming)
		}

		b.TotalContacts = 0
	}
}
