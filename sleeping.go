package strata

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/strata2d/strata/body"
)

const (
	// minBiasMotion weights the blend of a body's previous filtered
	// motion against its instantaneous motion each step (spec §4.8).
	minBiasMotion = 0.9
	// motionSleepThreshold is the filtered-motion level below which a
	// body starts accumulating sleep counter ticks.
	motionSleepThreshold = 0.08
	// motionWakeThreshold is the counterpart's filtered-motion level
	// above which a sleeping body is woken after a collision.
	motionWakeThreshold = 0.18
)

// SleepingController filters each body's motion and transitions it
// between awake and sleeping (spec §4.8), reducing solver work for
// bodies at rest.
type SleepingController struct{}

// Update runs the per-body sleep/wake filter. A body with a nonzero
// applied force is always woken; enableSleeping gates whether bodies may
// fall asleep at all (Engine option, default off).
func (SleepingController) Update(bodies []*body.Body, timeScale float64, enableSleeping bool) {
	threshold := motionSleepThreshold * timeScale * timeScale * timeScale

	for _, b := range bodies {
		if b.IsStatic {
			continue
		}
		if b.Force != (mgl64.Vec2{}) || b.Torque != 0 {
			wake(b)
			continue
		}
		if !enableSleeping || b.SleepThreshold <= 0 {
			continue
		}

		instant := b.Speed*b.Speed + b.AngularSpeed*b.AngularSpeed
		b.Motion = minBiasMotion*math.Min(b.Motion, instant) + (1-minBiasMotion)*math.Max(b.Motion, instant)

		if b.Motion < threshold {
			b.SleepCounter++
			if b.SleepCounter >= b.SleepThreshold {
				sleep(b)
			}
		} else if b.SleepCounter > 0 {
			b.SleepCounter--
		}
	}
}

// AfterCollisions wakes a sleeping body whose active-pair counterpart
// (neither body static) shows enough filtered motion (spec §4.8).
func (SleepingController) AfterCollisions(pairs []*Pair, timeScale float64) {
	threshold := motionWakeThreshold * timeScale * timeScale * timeScale

	for _, p := range pairs {
		if !p.IsActive {
			continue
		}
		a, b := p.BodyA, p.BodyB
		if a.IsStatic || b.IsStatic {
			continue
		}
		if a.IsSleeping == b.IsSleeping {
			continue
		}

		sleeping, other := a, b
		if b.IsSleeping {
			sleeping, other = b, a
		}
		if other.Motion > threshold {
			wake(sleeping)
		}
	}
}

func sleep(b *body.Body) {
	b.IsSleeping = true
	b.Velocity = mgl64.Vec2{}
	b.AngularVelocity = 0
	b.PositionPrev = b.Position
	b.AnglePrev = b.Angle
	b.PositionImpulse = mgl64.Vec2{}
}

func wake(b *body.Body) {
	b.IsSleeping = false
	b.SleepCounter = 0
}
