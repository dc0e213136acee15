package strata

import (
	"fmt"
	"sync"

	"github.com/strata2d/strata/body"
	"github.com/strata2d/strata/sat"
)

// narrowphaseResult is one colliding pair produced this step, ready for
// the pair cache to adopt (spec §4.4).
type narrowphaseResult struct {
	BodyA, BodyB *body.Body
	Collision    *sat.Collision
}

// Detector runs the narrowphase over broadphase candidate pairs,
// dispatching each candidate to a per-part SAT test and keeping the
// coherence cache (spec §4.4's "record its body and axis index for
// coherence") keyed by part indices so compound bodies' sub-parts don't
// clobber each other's coherence state.
type Detector struct {
	coherence map[string]*sat.Collision

	// scratchPool hands out support-point working buffers to
	// bestPartCollision's sat.SupportsInto calls (spec §5's "small fixed
	// pool of temporaries... kept per-Engine... to remain reentrant
	// across independent engines"). Kept on the Detector rather than
	// package-level so two Engines never share scratch state.
	scratchPool sync.Pool
}

// NewDetector constructs an empty narrowphase detector.
func NewDetector() *Detector {
	return &Detector{
		coherence:   make(map[string]*sat.Collision),
		scratchPool: sync.Pool{New: func() any { buf := make([]body.Vertex, 0, maxCompoundSupports); return &buf }},
	}
}

// maxCompoundSupports sizes the scratch pool's initial backing array; a
// single SAT test never keeps more than sat's own maxSupports, but the
// buffer is reused across every part-pair in a step so it is sized
// generously to avoid reallocation on the first few collisions.
const maxCompoundSupports = 4

func partKey(bodyA uint64, partA int, bodyB uint64, partB int) string {
	return fmt.Sprintf("%d.%d-%d.%d", bodyA, partA, bodyB, partB)
}

// Detect tests every broadphase candidate pair and returns the colliding
// results. A candidate is skipped when both bodies are static or
// sleeping, or the collision filter forbids it (spec §4.4).
func (d *Detector) Detect(candidates [][2]*body.Body) []narrowphaseResult {
	results := make([]narrowphaseResult, 0, len(candidates))

	for _, pair := range candidates {
		a, b := pair[0], pair[1]
		if (a.IsStatic || a.IsSleeping) && (b.IsStatic || b.IsSleeping) {
			continue
		}
		if !body.CanCollide(a.CollisionFilter, b.CollisionFilter) {
			continue
		}

		best := d.bestPartCollision(a, b)
		if best != nil {
			results = append(results, narrowphaseResult{BodyA: a, BodyB: b, Collision: best})
		}
	}

	return results
}

// bestPartCollision tests every (partA, partB) combination of a compound
// pair and keeps the deepest overlap, synthesizing its support contacts.
func (d *Detector) bestPartCollision(a, b *body.Body) *sat.Collision {
	var best *sat.Collision

	for ai, partA := range a.AllParts() {
		for bi, partB := range b.AllParts() {
			key := partKey(a.ID, ai, b.ID, bi)
			prev := d.coherence[key]

			c := sat.Test(partA, partB, a.Position, b.Position, prev,
				a.Speed, a.AngularSpeed, b.Speed, b.AngularSpeed)
			d.coherence[key] = c

			if !c.Collided {
				continue
			}
			scratch := d.scratchPool.Get().(*[]body.Vertex)
			sat.SupportsInto(c, partA, partB, scratch)
			d.scratchPool.Put(scratch)

			if best == nil || c.Depth > best.Depth {
				best = c
			}
		}
	}

	return best
}

// Forget drops cached coherence state for a body (e.g. on removal from
// the world), so a future body reusing the same id never inherits stale
// axis state.
func (d *Detector) Forget(bodyID uint64) {
	for key := range d.coherence {
		var a, b uint64
		var pa, pb int
		fmt.Sscanf(key, "%d.%d-%d.%d", &a, &pa, &b, &pb)
		if a == bodyID || b == bodyID {
			delete(d.coherence, key)
		}
	}
}
