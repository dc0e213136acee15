package strata

import (
	"testing"

	"github.com/strata2d/strata/body"
)

func overlappingPair(t *testing.T, slop float64) (*body.Body, *body.Body, *Pair) {
	t.Helper()
	a := newTestBody(t, 1, 0, 0, 1)
	b := newTestBody(t, 2, 1.5, 0, 1)

	d := NewDetector()
	results := d.Detect([][2]*body.Body{{a, b}})
	if len(results) != 1 {
		t.Fatalf("expected overlap, got %d results", len(results))
	}

	cache := NewCache()
	cache.Update(results, 0)
	pair := cache.All()[0]
	pair.Slop = slop
	return a, b, pair
}

func TestPositionSolverSeparatesOverlappingBodies(t *testing.T) {
	a, b, pair := overlappingPair(t, 0.05)
	bodies := []*body.Body{a, b}
	pairs := []*Pair{pair}

	var solver PositionSolver
	initialSeparation := b.Position.Sub(a.Position).Len()

	for i := 0; i < 6; i++ {
		solver.Pre(bodies, pairs)
		solver.Solve(pairs, 1)
	}
	solver.Post(bodies)

	finalSeparation := b.Position.Sub(a.Position).Len()
	if finalSeparation <= initialSeparation {
		t.Errorf("expected positional correction to increase separation: before=%v after=%v",
			initialSeparation, finalSeparation)
	}
}

func TestPositionSolverSkipsStaticBody(t *testing.T) {
	a, b, pair := overlappingPair(t, 0.05)
	a.SetStatic(true, 0)
	bodies := []*body.Body{a, b}
	pairs := []*Pair{pair}

	var solver PositionSolver
	aPos := a.Position

	for i := 0; i < 6; i++ {
		solver.Pre(bodies, pairs)
		solver.Solve(pairs, 1)
	}
	solver.Post(bodies)

	if a.Position != aPos {
		t.Error("expected static body position to remain unchanged")
	}
}

func TestPositionSolverIgnoresSensorPairs(t *testing.T) {
	a, b, pair := overlappingPair(t, 0.05)
	pair.IsSensor = true
	bodies := []*body.Body{a, b}
	pairs := []*Pair{pair}

	var solver PositionSolver
	aPos, bPos := a.Position, b.Position

	solver.Pre(bodies, pairs)
	solver.Solve(pairs, 1)
	solver.Post(bodies)

	if a.Position != aPos || b.Position != bPos {
		t.Error("expected sensor pair to produce no positional correction")
	}
}
