package strata

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/strata2d/strata/body"
)

const (
	restingThresh            = 4.0 // spec §4.7
	restingThreshTangent     = 6.0
	frictionNormalMultiplier = 5.0
)

// VelocitySolver runs the sequential-impulse velocity pass: warm-starts
// from cached contact impulses, then iterates Gauss-Seidel normal and
// tangent (Coulomb friction) impulses (spec §4.7).
type VelocitySolver struct{}

// PreSolve applies each active contact's cached impulse as a shift of
// positionPrev/anglePrev, so the warm-started velocity is present before
// the first solve iteration without moving the body.
func (VelocitySolver) PreSolve(pairs []*Pair) {
	for _, p := range pairs {
		if !p.IsActive || p.IsSensor {
			continue
		}
		normal, tangent := solverBasis(p)
		for _, c := range p.ActiveContacts {
			if c.NormalImpulse == 0 && c.TangentImpulse == 0 {
				continue
			}
			impulse := normal.Mul(c.NormalImpulse).Add(tangent.Mul(c.TangentImpulse))
			applyImpulsiveShift(p.BodyA, p.BodyB, c.Vertex.Vec(), impulse)
		}
	}
}

// solverBasis returns the normal and tangent the velocity solver works
// in: the negation of the collision's, so the normal points from B into
// A. An approaching pair then has a negative normal velocity, which the
// accumulate-and-clamp (normal impulse kept at or below zero) and the
// impulsive shift turn into a separating impulse.
func solverBasis(p *Pair) (normal, tangent mgl64.Vec2) {
	return p.Collision.Normal.Mul(-1), p.Collision.Tangent.Mul(-1)
}

// applyImpulsiveShift nudges positionPrev/anglePrev of A and B by the
// same impulse in opposite directions, changing velocity without moving
// position this instant (shared by PreSolve's warm start and Solve's
// per-iteration impulse application).
func applyImpulsiveShift(a, b *body.Body, contactPoint mgl64.Vec2, impulse mgl64.Vec2) {
	if !a.IsStatic && !a.IsSleeping {
		a.PositionPrev = a.PositionPrev.Add(impulse.Mul(a.InverseMass))
		a.AnglePrev += Cross2(contactPoint.Sub(a.Position), impulse) * a.InverseInertia
	}
	if !b.IsStatic && !b.IsSleeping {
		b.PositionPrev = b.PositionPrev.Sub(impulse.Mul(b.InverseMass))
		b.AnglePrev -= Cross2(contactPoint.Sub(b.Position), impulse) * b.InverseInertia
	}
}

// Solve runs one Gauss-Seidel velocity-correction iteration over pairs.
func (VelocitySolver) Solve(pairs []*Pair, timeScale float64) {
	ts2 := timeScale * timeScale

	for _, p := range pairs {
		if !p.IsActive || p.IsSensor {
			continue
		}
		n := len(p.ActiveContacts)
		if n == 0 {
			continue
		}
		contactShare := 1.0 / float64(n)

		a, b := p.BodyA, p.BodyB
		normal, tangent := solverBasis(p)

		velocityA := a.Position.Sub(a.PositionPrev)
		velocityB := b.Position.Sub(b.PositionPrev)
		angularVelocityA := a.Angle - a.AnglePrev
		angularVelocityB := b.Angle - b.AnglePrev

		for _, c := range p.ActiveContacts {
			v := c.Vertex.Vec()
			offA := v.Sub(a.Position)
			offB := v.Sub(b.Position)

			vpA := velocityA.Add(Perp(offA).Mul(angularVelocityA))
			vpB := velocityB.Add(Perp(offB).Mul(angularVelocityB))
			rel := vpA.Sub(vpB)

			vN := normal.Dot(rel)
			vT := tangent.Dot(rel)

			jN := (1 + p.Restitution) * vN

			fn := Clamp(p.Separation+vN, 0, 1) * frictionNormalMultiplier
			maxF := math.Inf(1)
			var jT float64
			if math.Abs(vT) > p.Friction*p.FrictionStatic*fn*ts2 {
				maxF = math.Abs(vT)
				jT = Clamp(p.Friction*sign(vT)*ts2, -maxF, maxF)
			} else {
				jT = vT
			}

			crossA := Cross2(offA, normal)
			crossB := Cross2(offB, normal)
			denom := a.InverseMass + b.InverseMass + a.InverseInertia*crossA*crossA + b.InverseInertia*crossB*crossB
			if denom == 0 {
				continue
			}
			share := contactShare / denom
			jN *= share
			jT *= share

			if vN < 0 && vN*vN > restingThresh*ts2 {
				c.NormalImpulse = 0
			} else {
				old := c.NormalImpulse
				newImpulse := math.Min(old+jN, 0)
				jN = newImpulse - old
				c.NormalImpulse = newImpulse
			}

			if vT*vT > restingThreshTangent*ts2 {
				c.TangentImpulse = 0
			} else {
				old := c.TangentImpulse
				newImpulse := Clamp(old+jT, -maxF, maxF)
				jT = newImpulse - old
				c.TangentImpulse = newImpulse
			}

			impulse := normal.Mul(jN).Add(tangent.Mul(jT))
			applyImpulsiveShift(a, b, v, impulse)
		}
	}
}

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
