// Package sat implements the narrowphase: Separating Axis Theorem overlap
// testing between convex polygons, with support-point contact synthesis
// and one-axis coherence reuse across steps.
package sat

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/strata2d/strata/body"
)

// maxSupports bounds the contact manifold at 1-2 points (a convex
// polygon pair never needs more for a stable face-face or vertex-face
// contact).
const maxSupports = 2

// Collision is the transient per-candidate-pair result of one narrowphase
// test. It is rebuilt fresh each step; persistence across steps lives in
// the pair cache, not here.
type Collision struct {
	BodyA, BodyB     *body.Body
	ParentA, ParentB *body.Body
	Collided         bool

	Normal      mgl64.Vec2 // unit, points from A into B
	Tangent     mgl64.Vec2 // perp(Normal)
	Depth       float64
	Penetration mgl64.Vec2 // Normal * Depth

	Supports []body.Vertex // 1-2 contact vertices

	// AxisBody and AxisNumber identify the separating/minimum-overlap
	// axis used this step, so the next step's one-axis coherence check
	// (spec §4.4) can retest the same axis first.
	AxisBody   int // 0 = A's axis set, 1 = B's
	AxisNumber int
}
