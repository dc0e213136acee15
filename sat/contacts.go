package sat

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/strata2d/strata/body"
)

// Supports fills in c.Supports by finding, for the collision's normal,
// the 1-2 vertices deepest into the opposing body (spec §4.4): find the
// two vertices of B with smallest projection in direction of normal (the
// nearest vertex and its better-projecting ring neighbor, via
// hill-climb), keep those that lie inside A. If fewer than two survive,
// repeat the search with A projected onto -normal and keep those inside
// B. If still empty, fall back to the single nearest vertex.
func Supports(c *Collision, partA, partB *body.Part) {
	var scratch []body.Vertex
	SupportsInto(c, partA, partB, &scratch)
}

// SupportsInto is Supports's pooled variant: scratch is reused working
// storage for the candidate search, reset and refilled on every call
// rather than freshly allocated. A Detector draws these buffers from its
// own sync.Pool, one Detector per Engine (not a package-level pool, so
// independent engines stay reentrant), for every SupportsInto call in a
// step, since this runs once per candidate pair on the narrowphase's hot
// path.
// c.Supports itself is always a fresh copy, safe to retain after scratch
// is reused by the next call.
func SupportsInto(c *Collision, partA, partB *body.Part, scratch *[]body.Vertex) {
	if !c.Collided {
		return
	}

	*scratch = deepestInside((*scratch)[:0], partB.Vertices, c.Normal, partA.Vertices)
	if len(*scratch) < 2 {
		*scratch = deepestInside(*scratch, partA.Vertices, c.Normal.Mul(-1), partB.Vertices)
	}
	if len(*scratch) == 0 {
		*scratch = append((*scratch)[:0], nearest(partB.Vertices, c.Normal))
	}
	if len(*scratch) > maxSupports {
		*scratch = (*scratch)[:maxSupports]
	}

	c.Supports = append([]body.Vertex(nil), *scratch...)
}

// deepestInside finds the vertex of candidates with the smallest
// projection onto normal (deepest along the contact direction),
// hill-climbs to its better-projecting ring neighbor, and appends
// whichever of the two (candidate, neighbor) lie inside containedBy
// onto out.
func deepestInside(out []body.Vertex, candidates []body.Vertex, normal mgl64.Vec2, containedBy []body.Vertex) []body.Vertex {
	n := len(candidates)
	if n == 0 {
		return out
	}

	best := 0
	bestProj := candidates[0].Vec().Dot(normal)
	for i := 1; i < n; i++ {
		p := candidates[i].Vec().Dot(normal)
		if p < bestProj {
			bestProj = p
			best = i
		}
	}

	prev := (best - 1 + n) % n
	next := (best + 1) % n
	neighbor := prev
	if candidates[next].Vec().Dot(normal) < candidates[prev].Vec().Dot(normal) {
		neighbor = next
	}

	if body.Contains(containedBy, candidates[best].Vec()) {
		out = append(out, candidates[best])
	}
	if body.Contains(containedBy, candidates[neighbor].Vec()) {
		out = append(out, candidates[neighbor])
	}
	return out
}

// nearest returns the single vertex of candidates with the smallest
// projection onto normal, the spec's last-resort fallback when no
// vertex from either body survives the containment test.
func nearest(candidates []body.Vertex, normal mgl64.Vec2) body.Vertex {
	best := candidates[0]
	bestProj := best.Vec().Dot(normal)
	for _, v := range candidates[1:] {
		p := v.Vec().Dot(normal)
		if p < bestProj {
			bestProj = p
			best = v
		}
	}
	return best
}
