package sat

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/strata2d/strata/body"
)

func TestSupportsProducesContactsInsideOverlap(t *testing.T) {
	a := square(0, 0, 1, 1)
	b := square(1.5, 0, 1, 2)

	c := Test(a, b, mgl64.Vec2{0, 0}, mgl64.Vec2{1.5, 0}, nil, 0, 0, 0, 0)
	if !c.Collided {
		t.Fatal("expected overlap")
	}
	Supports(c, a, b)

	if len(c.Supports) == 0 {
		t.Fatal("expected at least one support contact")
	}
	if len(c.Supports) > maxSupports {
		t.Fatalf("expected at most %d supports, got %d", maxSupports, len(c.Supports))
	}
	for _, v := range c.Supports {
		if v.BodyID != 2 {
			t.Errorf("expected supports to come from B (id 2), got body %d", v.BodyID)
		}
	}
}

func TestSupportsNoopWhenNotCollided(t *testing.T) {
	c := &Collision{Collided: false}
	a := square(0, 0, 1, 1)
	b := square(10, 0, 1, 2)
	Supports(c, a, b)
	if c.Supports != nil {
		t.Error("expected no supports to be synthesized for a non-colliding result")
	}
}

func TestSupportsIntoReusedScratchDoesNotAliasPriorResult(t *testing.T) {
	a := square(0, 0, 1, 1)
	b := square(1.5, 0, 1, 2)
	c1 := Test(a, b, mgl64.Vec2{0, 0}, mgl64.Vec2{1.5, 0}, nil, 0, 0, 0, 0)

	var scratch []body.Vertex
	SupportsInto(c1, a, b, &scratch)
	first := append([]body.Vertex(nil), c1.Supports...)

	// Reuse the same scratch buffer for an unrelated pair.
	d := square(100, 100, 1, 3)
	e := square(101.5, 100, 1, 4)
	c2 := Test(d, e, mgl64.Vec2{100, 100}, mgl64.Vec2{101.5, 100}, nil, 0, 0, 0, 0)
	SupportsInto(c2, d, e, &scratch)

	if len(c1.Supports) != len(first) {
		t.Fatalf("expected c1.Supports length to survive scratch reuse, got %d want %d", len(c1.Supports), len(first))
	}
	for i, v := range first {
		if c1.Supports[i] != v {
			t.Errorf("expected c1.Supports to be untouched by a later SupportsInto call using the same scratch, index %d changed", i)
		}
	}
}
