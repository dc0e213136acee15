package body

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func unitSquare(id uint64) []Vertex {
	return NewVertices([]mgl64.Vec2{{0, 0}, {0, 2}, {2, 2}, {2, 0}}, id)
}

func TestSignedAreaAndIsClockwise(t *testing.T) {
	square := unitSquare(1)
	area := SignedArea(square)
	if math.Abs(math.Abs(area)-4) > 1e-9 {
		t.Fatalf("expected area magnitude 4, got %v", area)
	}
	// This ring (0,0)->(0,2)->(2,2)->(2,0) winds clockwise with the Y axis
	// pointing up (negative signed area).
	if !IsClockwise(square) {
		t.Error("expected the ring to be classified clockwise")
	}
}

func TestReverseFlipsWindingAndReindexes(t *testing.T) {
	square := unitSquare(1)
	before := IsClockwise(square)
	Reverse(square)
	if IsClockwise(square) == before {
		t.Error("expected Reverse to flip winding")
	}
	for i, v := range square {
		if v.Index != i {
			t.Errorf("expected contiguous indices after Reverse, vertex %d has Index %d", i, v.Index)
		}
	}
}

func TestCentroidOfSquare(t *testing.T) {
	c := Centroid(unitSquare(1))
	if math.Abs(c.X()-1) > 1e-9 || math.Abs(c.Y()-1) > 1e-9 {
		t.Errorf("expected centroid (1,1), got %v", c)
	}
}

func TestContainsInsideAndOutside(t *testing.T) {
	square := unitSquare(1)
	if !Contains(square, mgl64.Vec2{1, 1}) {
		t.Error("expected center point to be contained")
	}
	if Contains(square, mgl64.Vec2{5, 5}) {
		t.Error("expected far point not to be contained")
	}
}

func TestTranslateShiftsAllVertices(t *testing.T) {
	square := unitSquare(1)
	Translate(square, mgl64.Vec2{10, 0})
	if square[0].X != 10 || square[0].Y != 0 {
		t.Errorf("expected first vertex shifted to (10,0), got (%v,%v)", square[0].X, square[0].Y)
	}
}

func TestAxesDeduplicatesColinearEdges(t *testing.T) {
	square := unitSquare(1)
	axes := Axes(square)
	if len(axes) != 2 {
		t.Fatalf("expected a rectangle to contribute 2 distinct axes, got %d", len(axes))
	}
}

func TestVertexIDStableIdentity(t *testing.T) {
	v := Vertex{X: 1, Y: 2, Index: 3, BodyID: 7}
	id := v.ID()
	if id.BodyID != 7 || id.Index != 3 {
		t.Errorf("unexpected contact id: %+v", id)
	}
}
