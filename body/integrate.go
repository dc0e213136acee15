package body

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultGravityScale is the factor gravity is scaled by before being
// accumulated as a force (spec §4.1).
const DefaultGravityScale = 0.001

// ApplyGravity accumulates gravity as a force (step 3 of the pipeline,
// kept separate from Integrate/step 4 so a caller may apply other
// forces in between within the same step).
func (b *Body) ApplyGravity(gravity mgl64.Vec2, gravityScale float64) {
	if b.IsStatic || b.IsSleeping {
		return
	}
	b.Force = b.Force.Add(gravity.Mul(b.Mass * gravityScale))
}

// Integrate advances position and angle by Time-Corrected Verlet
// integration (spec §4.1): velocity is derived from the displacement
// since the previous step, damped by air friction and scaled by the
// correction factor c, plus an acceleration term scaled by dt². Static
// and sleeping bodies are left untouched; their bounds only change when
// forced by the caller (e.g. after a world-modified rebuild).
func (b *Body) Integrate(dt, timeScale, correction float64) {
	if b.IsStatic || b.IsSleeping {
		return
	}

	deltaScaled2 := math.Pow(dt*timeScale, 2)
	frictionAirComplement := 1 - b.FrictionAir*timeScale

	velocityPrev := b.Position.Sub(b.PositionPrev)
	b.Velocity = velocityPrev.Mul(frictionAirComplement * correction).
		Add(b.Force.Mul(b.InverseMass * deltaScaled2))

	b.PositionPrev = b.Position
	b.Position = b.Position.Add(b.Velocity)

	angularVelocityPrev := b.Angle - b.AnglePrev
	b.AngularVelocity = angularVelocityPrev*frictionAirComplement*correction +
		b.Torque*b.InverseInertia*deltaScaled2

	b.AnglePrev = b.Angle
	b.Angle += b.AngularVelocity

	b.Speed = b.Velocity.Len()
	b.AngularSpeed = math.Abs(b.AngularVelocity)

	Translate(b.Vertices, b.Velocity)
	for _, p := range b.Parts {
		Translate(p.Vertices, b.Velocity)
	}

	if b.AngularVelocity != 0 {
		Rotate(b.Vertices, b.AngularVelocity, b.Position)
		b.Axes = RotateAxes(b.Axes, b.AngularVelocity)
		for _, p := range b.Parts {
			Rotate(p.Vertices, b.AngularVelocity, b.Position)
			p.Axes = RotateAxes(p.Axes, b.AngularVelocity)
		}
	}

	b.Bounds.Update(b.Vertices, b.Velocity)
	for _, p := range b.Parts {
		p.Bounds.Update(p.Vertices, b.Velocity)
	}
}

// UpdateBounds recomputes bounds from the current vertices, used for
// static bodies (which Integrate skips) after a structural change, or
// to force a refresh when the world is marked modified.
func (b *Body) UpdateBounds() {
	b.Bounds.Update(b.Vertices, b.Velocity)
	for _, p := range b.Parts {
		p.Bounds.Update(p.Vertices, b.Velocity)
	}
}
