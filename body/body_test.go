package body

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func square(t *testing.T, id uint64, cx, cy, half float64, opts Options) *Body {
	t.Helper()
	points := []mgl64.Vec2{
		{cx - half, cy - half},
		{cx - half, cy + half},
		{cx + half, cy + half},
		{cx + half, cy - half},
	}
	b, err := New(id, points, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func TestNewRejectsInvalidGeometry(t *testing.T) {
	_, err := New(1, []mgl64.Vec2{{0, 0}, {1, 1}}, Options{})
	if err == nil {
		t.Fatal("expected an error for too few vertices")
	}
}

func TestNewDerivesMassFromDensity(t *testing.T) {
	b := square(t, 1, 0, 0, 1, Options{Density: 2})
	if b.Mass != 8 { // area 4 * density 2
		t.Errorf("expected mass 8, got %v", b.Mass)
	}
	if b.InverseMass != 1.0/8 {
		t.Errorf("expected inverse mass 1/8, got %v", b.InverseMass)
	}
}

func TestNewStaticBodyHasZeroMass(t *testing.T) {
	b := square(t, 1, 0, 0, 1, Options{IsStatic: true})
	if b.Mass != 0 || b.InverseMass != 0 {
		t.Errorf("expected a static body to have zero mass, got %v/%v", b.Mass, b.InverseMass)
	}
}

func TestSetStaticTogglesMassAndVelocity(t *testing.T) {
	b := square(t, 1, 0, 0, 1, Options{Density: 1})
	b.SetVelocity(mgl64.Vec2{5, 0})

	b.SetStatic(true, 1)
	if b.Mass != 0 || b.Velocity != (mgl64.Vec2{}) {
		t.Error("expected SetStatic(true) to zero mass and velocity")
	}

	b.SetStatic(false, 1)
	if b.Mass == 0 {
		t.Error("expected SetStatic(false) to recompute a nonzero mass")
	}
}

func TestTranslateMovesPositionAndVertices(t *testing.T) {
	b := square(t, 1, 0, 0, 1, Options{})
	before := b.Vertices[0]
	b.Translate(mgl64.Vec2{5, 5})

	if b.Position != (mgl64.Vec2{5, 5}) {
		t.Errorf("expected position (5,5), got %v", b.Position)
	}
	if b.Vertices[0].X != before.X+5 || b.Vertices[0].Y != before.Y+5 {
		t.Error("expected vertices to shift along with position")
	}
}

func TestSetPositionPreservesVelocity(t *testing.T) {
	b := square(t, 1, 0, 0, 1, Options{})
	velocityBefore := b.Position.Sub(b.PositionPrev)
	b.SetPosition(mgl64.Vec2{10, 0})

	if b.Position.Sub(b.PositionPrev) != velocityBefore {
		t.Error("expected SetPosition to teleport without implying velocity")
	}
}

func TestSetVelocityDerivesFromPositionPrev(t *testing.T) {
	b := square(t, 1, 0, 0, 1, Options{})
	b.SetVelocity(mgl64.Vec2{3, 4})

	if b.Speed != 5 {
		t.Errorf("expected speed 5 from a (3,4) velocity, got %v", b.Speed)
	}
	if b.Position.Sub(b.PositionPrev) != (mgl64.Vec2{3, 4}) {
		t.Error("expected PositionPrev to be moved so position-positionPrev equals the velocity")
	}
}

func TestApplyForceAccumulatesTorque(t *testing.T) {
	b := square(t, 1, 0, 0, 1, Options{})
	b.ApplyForce(mgl64.Vec2{1, 0}, mgl64.Vec2{0, 1})

	if b.Torque == 0 {
		t.Error("expected an off-center force to accumulate nonzero torque")
	}
	if b.Force != (mgl64.Vec2{0, 1}) {
		t.Errorf("expected force accumulated, got %v", b.Force)
	}
}

func TestClearForcesZeroesAccumulators(t *testing.T) {
	b := square(t, 1, 0, 0, 1, Options{})
	b.ApplyForce(b.Position, mgl64.Vec2{1, 1})
	b.ClearForces()

	if b.Force != (mgl64.Vec2{}) || b.Torque != 0 {
		t.Error("expected ClearForces to zero both accumulators")
	}
}

func TestAllPartsFallsBackToIdentityPart(t *testing.T) {
	b := square(t, 1, 0, 0, 1, Options{})
	parts := b.AllParts()
	if len(parts) != 1 {
		t.Fatalf("expected a single-part body to report one part, got %d", len(parts))
	}
}
