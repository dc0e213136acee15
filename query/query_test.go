package query

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/strata2d/strata/body"
)

func square(t *testing.T, id uint64, cx, cy, half float64) *body.Body {
	t.Helper()
	points := []mgl64.Vec2{
		{cx - half, cy - half},
		{cx - half, cy + half},
		{cx + half, cy + half},
		{cx + half, cy - half},
	}
	b, err := body.New(id, points, body.Options{})
	if err != nil {
		t.Fatalf("body.New: %v", err)
	}
	return b
}

func TestCollidesFindsOverlap(t *testing.T) {
	a := square(t, 1, 0, 0, 1)
	b := square(t, 2, 1.5, 0, 1)
	c := square(t, 3, 10, 10, 1)

	got := Collides(a, []*body.Body{b, c})
	if len(got) != 1 || got[0] != b {
		t.Fatalf("expected only the overlapping square, got %v", got)
	}
}

func TestRegionOutsideFiltersOverlapping(t *testing.T) {
	inside := square(t, 1, 0, 0, 1)
	far := square(t, 2, 100, 100, 1)
	bounds := body.Bounds{Min: mgl64.Vec2{-5, -5}, Max: mgl64.Vec2{5, 5}}

	got := Region([]*body.Body{inside, far}, bounds, false)
	if len(got) != 1 || got[0] != inside {
		t.Fatalf("expected only the body inside the region, got %v", got)
	}

	outside := Region([]*body.Body{inside, far}, bounds, true)
	if len(outside) != 1 || outside[0] != far {
		t.Fatalf("expected only the body outside the region, got %v", outside)
	}
}

func TestPointFindsContainingBody(t *testing.T) {
	a := square(t, 1, 0, 0, 2)
	b := square(t, 2, 50, 50, 2)

	got := Point([]*body.Body{a, b}, mgl64.Vec2{0.5, 0.5})
	if len(got) != 1 || got[0] != a {
		t.Fatalf("expected the point to land inside square a, got %v", got)
	}
}

func TestRayCrossesBody(t *testing.T) {
	a := square(t, 1, 5, 0, 1)
	miss := square(t, 2, 5, 50, 1)

	got := Ray([]*body.Body{a, miss}, mgl64.Vec2{-10, 0}, mgl64.Vec2{10, 0}, 0.5)
	if len(got) != 1 || got[0] != a {
		t.Fatalf("expected the horizontal ray to hit only square a, got %v", got)
	}
}

func TestRayMissesWhenNoBodyCrossed(t *testing.T) {
	a := square(t, 1, 5, 50, 1)

	got := Ray([]*body.Body{a}, mgl64.Vec2{-10, 0}, mgl64.Vec2{10, 0}, 0.5)
	if len(got) != 0 {
		t.Errorf("expected no hits, got %v", got)
	}
}
