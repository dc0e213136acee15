package sat

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/strata2d/strata/body"
)

func square(cx, cy, half float64, bodyID uint64) *body.Part {
	points := []mgl64.Vec2{
		{cx - half, cy - half},
		{cx - half, cy + half},
		{cx + half, cy + half},
		{cx + half, cy - half},
	}
	vertices := body.NewVertices(points, bodyID)
	return &body.Part{
		Vertices: vertices,
		Axes:     body.Axes(vertices),
	}
}

func TestFullSATOverlapping(t *testing.T) {
	a := square(0, 0, 1, 1)
	b := square(1.5, 0, 1, 2)

	c := Test(a, b, mgl64.Vec2{0, 0}, mgl64.Vec2{1.5, 0}, nil, 0, 0, 0, 0)
	if !c.Collided {
		t.Fatal("expected overlap")
	}
	if c.Normal.X() <= 0 {
		t.Errorf("expected normal pointing toward B (+X), got %v", c.Normal)
	}
	if c.Depth <= 0 || c.Depth > 1 {
		t.Errorf("unexpected depth %v", c.Depth)
	}
}

func TestFullSATSeparated(t *testing.T) {
	a := square(0, 0, 1, 1)
	b := square(10, 0, 1, 2)

	c := Test(a, b, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 0}, nil, 0, 0, 0, 0)
	if c.Collided {
		t.Fatal("expected no overlap")
	}
}

func TestSwappedArgumentsAgree(t *testing.T) {
	a := square(0, 0, 1, 1)
	b := square(1.2, 0.3, 1, 2)

	ab := Test(a, b, mgl64.Vec2{0, 0}, mgl64.Vec2{1.2, 0.3}, nil, 0, 0, 0, 0)
	ba := Test(b, a, mgl64.Vec2{1.2, 0.3}, mgl64.Vec2{0, 0}, nil, 0, 0, 0, 0)

	if ab.Collided != ba.Collided {
		t.Fatalf("collided mismatch: %v vs %v", ab.Collided, ba.Collided)
	}
	if ab.Collided {
		if mgl64.FloatEqual(ab.Depth, ba.Depth) == false {
			t.Errorf("depth mismatch: %v vs %v", ab.Depth, ba.Depth)
		}
		sum := ab.Normal.Add(ba.Normal)
		if sum.Len() > 1e-6 {
			t.Errorf("normals should be opposite: %v vs %v", ab.Normal, ba.Normal)
		}
	}
}

func TestCoherenceReuseMatchesFullSAT(t *testing.T) {
	a := square(0, 0, 1, 1)
	b := square(1.5, 0, 1, 2)

	full := Test(a, b, mgl64.Vec2{0, 0}, mgl64.Vec2{1.5, 0}, nil, 0, 0, 0, 0)
	if !full.Collided {
		t.Fatal("expected overlap")
	}

	coherent := Test(a, b, mgl64.Vec2{0, 0}, mgl64.Vec2{1.5, 0}, full, 0, 0, 0, 0)
	if !coherent.Collided {
		t.Fatal("expected coherent retest to also report overlap")
	}
	if !mgl64.FloatEqual(coherent.Depth, full.Depth) {
		t.Errorf("coherent depth %v should match full SAT depth %v", coherent.Depth, full.Depth)
	}
}

func TestContainsAgreesWithSAT(t *testing.T) {
	poly := square(0, 0, 2, 1)
	point := square(0.5, 0.5, 0.01, 2) // tiny square standing in for a point body

	inside := body.Contains(poly.Vertices, mgl64.Vec2{0.5, 0.5})
	c := Test(point, poly, mgl64.Vec2{0.5, 0.5}, mgl64.Vec2{0, 0}, nil, 0, 0, 0, 0)

	if inside && !c.Collided {
		t.Error("point inside polygon but SAT reported no collision")
	}
}
