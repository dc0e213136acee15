package body

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestApplyGravityAccumulatesScaledForce(t *testing.T) {
	b := square(t, 1, 0, 0, 1, Options{Density: 1})
	b.ApplyGravity(mgl64.Vec2{0, 1}, 0.001)

	expected := b.Mass * 0.001
	if got := b.Force.Y(); got != expected {
		t.Errorf("expected force.Y = %v, got %v", expected, got)
	}
}

func TestApplyGravitySkipsStaticAndSleeping(t *testing.T) {
	b := square(t, 1, 0, 0, 1, Options{IsStatic: true})
	b.ApplyGravity(mgl64.Vec2{0, 1}, 0.001)
	if b.Force != (mgl64.Vec2{}) {
		t.Error("expected a static body to ignore gravity")
	}

	d := square(t, 2, 0, 0, 1, Options{Density: 1})
	d.IsSleeping = true
	d.ApplyGravity(mgl64.Vec2{0, 1}, 0.001)
	if d.Force != (mgl64.Vec2{}) {
		t.Error("expected a sleeping body to ignore gravity")
	}
}

func TestIntegrateAdvancesPositionUnderForce(t *testing.T) {
	b := square(t, 1, 0, 0, 1, Options{Density: 1})
	b.Force = mgl64.Vec2{0, 1}

	for i := 0; i < 5; i++ {
		b.Integrate(1, 1, 1)
	}

	if b.Position.Y() <= 0 {
		t.Errorf("expected the body to have moved in +Y under a sustained force, got %v", b.Position.Y())
	}
}

func TestIntegrateSkipsStaticAndSleeping(t *testing.T) {
	b := square(t, 1, 0, 0, 1, Options{IsStatic: true})
	before := b.Position
	b.Force = mgl64.Vec2{0, 1}
	b.Integrate(1, 1, 1)

	if b.Position != before {
		t.Error("expected a static body not to move under Integrate")
	}
}

func TestIntegrateDampsByFrictionAir(t *testing.T) {
	a := square(t, 1, 0, 0, 1, Options{Density: 1, FrictionAir: 0})
	b := square(t, 2, 0, 0, 1, Options{Density: 1, FrictionAir: 0.5})
	a.SetVelocity(mgl64.Vec2{1, 0})
	b.SetVelocity(mgl64.Vec2{1, 0})

	a.Integrate(1, 1, 1)
	b.Integrate(1, 1, 1)

	if b.Velocity.X() >= a.Velocity.X() {
		t.Errorf("expected higher air friction to damp velocity more: a=%v b=%v", a.Velocity.X(), b.Velocity.X())
	}
}
