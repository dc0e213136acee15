package strata

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/strata2d/strata/body"
	"github.com/strata2d/strata/constraint"
)

// World is a composite holding bodies, constraints, and child composites,
// plus a bounds rectangle outside which bodies are ignored by the
// broadphase (spec §4.3). Unlike the source material's manual-memory
// composite tree (an arena-with-parent-index design), a Go World holds
// children by direct pointer: the garbage collector handles the
// resulting reference graph natively, so no arena indirection is needed.
// Nested sub-composite bookkeeping beyond enumerating bodies and
// constraints is out of core scope; World implements only the
// documented add/remove/translate/rotate/scale/bounds/setModified
// surface.
type World struct {
	Bodies      []*body.Body
	Constraints []*constraint.Constraint
	Children    []*World

	Bounds     body.Bounds
	IsModified bool
}

// NewWorld constructs a composite bounded by bounds.
func NewWorld(bounds body.Bounds) *World {
	return &World{Bounds: bounds}
}

// AddBody appends b and marks the composite modified.
func (w *World) AddBody(b *body.Body) {
	w.Bodies = append(w.Bodies, b)
	w.IsModified = true
}

// RemoveBody removes b if present and marks the composite modified.
func (w *World) RemoveBody(b *body.Body) {
	for i, existing := range w.Bodies {
		if existing == b {
			w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
			w.IsModified = true
			return
		}
	}
}

// AddConstraint appends c and marks the composite modified.
func (w *World) AddConstraint(c *constraint.Constraint) {
	w.Constraints = append(w.Constraints, c)
	w.IsModified = true
}

// RemoveConstraint removes c if present and marks the composite modified.
func (w *World) RemoveConstraint(c *constraint.Constraint) {
	for i, existing := range w.Constraints {
		if existing == c {
			w.Constraints = append(w.Constraints[:i], w.Constraints[i+1:]...)
			w.IsModified = true
			return
		}
	}
}

// AddChild attaches a sub-composite.
func (w *World) AddChild(child *World) {
	w.Children = append(w.Children, child)
	w.IsModified = true
}

// AllBodies returns every body in the tree rooted at w, depth-first
// (spec §6's allBodies).
func (w *World) AllBodies() []*body.Body {
	out := append([]*body.Body(nil), w.Bodies...)
	for _, c := range w.Children {
		out = append(out, c.AllBodies()...)
	}
	return out
}

// AllConstraints returns every constraint in the tree rooted at w
// (spec §6's allConstraints).
func (w *World) AllConstraints() []*constraint.Constraint {
	out := append([]*constraint.Constraint(nil), w.Constraints...)
	for _, c := range w.Children {
		out = append(out, c.AllConstraints()...)
	}
	return out
}

// AnyModified reports whether w or any descendant was structurally
// mutated since the last call to ClearModified. The dirty flag is kept
// per composite rather than bubbled through parent pointers (the tree
// doesn't keep any); a caller at the root sees the whole subtree's state
// by walking down instead of up.
func (w *World) AnyModified() bool {
	if w.IsModified {
		return true
	}
	for _, c := range w.Children {
		if c.AnyModified() {
			return true
		}
	}
	return false
}

// ClearModified resets w and its subtree's dirty flag, once the Engine
// has serviced it with a full broadphase rebuild.
func (w *World) ClearModified() {
	w.IsModified = false
	for _, c := range w.Children {
		c.ClearModified()
	}
}

// SetModified marks w dirty directly, for callers that mutate body or
// constraint geometry in place without going through Add/Remove.
func (w *World) SetModified() {
	w.IsModified = true
}

// Translate shifts every body in the tree by delta.
func (w *World) Translate(delta mgl64.Vec2) {
	for _, b := range w.AllBodies() {
		b.Translate(delta)
	}
}

// Rotate rotates every body in the tree by angle radians about point.
func (w *World) Rotate(angle float64, point mgl64.Vec2) {
	for _, b := range w.AllBodies() {
		offset := b.Position.Sub(point)
		b.Rotate(angle)
		b.SetPosition(point.Add(Rotate(offset, angle)))
	}
}

// Scale stretches every body in the tree about point by (scaleX, scaleY),
// rederiving mass from density.
func (w *World) Scale(scaleX, scaleY float64, point mgl64.Vec2, density float64) {
	for _, b := range w.AllBodies() {
		offset := b.Position.Sub(point)
		scaled := mgl64.Vec2{offset.X() * scaleX, offset.Y() * scaleY}
		b.Scale(scaleX, scaleY, density)
		b.SetPosition(point.Add(scaled))
	}
}
