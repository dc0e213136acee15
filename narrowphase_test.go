package strata

import (
	"testing"

	"github.com/strata2d/strata/body"
)

func TestDetectorFindsOverlap(t *testing.T) {
	a := newTestBody(t, 1, 0, 0, 1)
	b := newTestBody(t, 2, 1.5, 0, 1)

	d := NewDetector()
	results := d.Detect([][2]*body.Body{{a, b}})

	if len(results) != 1 {
		t.Fatalf("expected 1 colliding result, got %d", len(results))
	}
	if len(results[0].Collision.Supports) == 0 {
		t.Error("expected support contacts to be synthesized")
	}
}

func TestDetectorSkipsTwoStaticBodies(t *testing.T) {
	a := newTestBody(t, 1, 0, 0, 1)
	b := newTestBody(t, 2, 1.5, 0, 1)
	a.SetStatic(true, 0)
	b.SetStatic(true, 0)

	d := NewDetector()
	results := d.Detect([][2]*body.Body{{a, b}})
	if len(results) != 0 {
		t.Errorf("expected static-static pair to be skipped, got %d results", len(results))
	}
}

func TestDetectorHonorsCollisionFilter(t *testing.T) {
	a := newTestBody(t, 1, 0, 0, 1)
	b := newTestBody(t, 2, 1.5, 0, 1)
	a.CollisionFilter = body.CollisionFilter{Category: 1, Mask: 2}
	b.CollisionFilter = body.CollisionFilter{Category: 1, Mask: 2}

	d := NewDetector()
	results := d.Detect([][2]*body.Body{{a, b}})
	if len(results) != 0 {
		t.Errorf("expected filter to exclude the pair, got %d results", len(results))
	}
}

func TestDetectorCoherenceCarriesAcrossSteps(t *testing.T) {
	a := newTestBody(t, 1, 0, 0, 1)
	b := newTestBody(t, 2, 1.5, 0, 1)

	d := NewDetector()
	first := d.Detect([][2]*body.Body{{a, b}})
	if len(first) != 1 {
		t.Fatalf("expected overlap on first step")
	}

	key := partKey(a.ID, 0, b.ID, 0)
	if d.coherence[key] == nil || !d.coherence[key].Collided {
		t.Fatal("expected coherence cache to retain last step's collision")
	}

	second := d.Detect([][2]*body.Body{{a, b}})
	if len(second) != 1 {
		t.Fatalf("expected overlap to persist on second (low-motion) step")
	}
}

func TestDetectorForgetClearsCoherence(t *testing.T) {
	a := newTestBody(t, 1, 0, 0, 1)
	b := newTestBody(t, 2, 1.5, 0, 1)

	d := NewDetector()
	d.Detect([][2]*body.Body{{a, b}})
	d.Forget(a.ID)

	if len(d.coherence) != 0 {
		t.Errorf("expected Forget to clear all coherence entries referencing the body, got %d remaining", len(d.coherence))
	}
}
