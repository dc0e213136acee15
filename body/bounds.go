// Package body implements the rigid body: its kinematic state, convex
// polygon geometry, mass properties, and the Time-Corrected Verlet
// integrator that advances it each step.
package body

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// FromVertices computes the tight AABB of a vertex set.
func FromVertices(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	min := mgl64.Vec2{vertices[0].X, vertices[0].Y}
	max := min
	for _, v := range vertices[1:] {
		if v.X < min[0] {
			min[0] = v.X
		}
		if v.Y < min[1] {
			min[1] = v.Y
		}
		if v.X > max[0] {
			max[0] = v.X
		}
		if v.Y > max[1] {
			max[1] = v.Y
		}
	}
	return Bounds{Min: min, Max: max}
}

// Update recomputes b in place from vertices, then extends it by velocity
// so fast-moving bodies keep overlapping their swept cells in the
// broadphase (spec: "bounds equals the axis-aligned extent of vertices
// optionally expanded by velocity").
func (b *Bounds) Update(vertices []Vertex, velocity mgl64.Vec2) {
	*b = FromVertices(vertices)

	if velocity.X() > 0 {
		b.Max[0] += velocity.X()
	} else {
		b.Min[0] += velocity.X()
	}

	if velocity.Y() > 0 {
		b.Max[1] += velocity.Y()
	} else {
		b.Min[1] += velocity.Y()
	}
}

// Overlaps reports whether b and other share any area.
func (b Bounds) Overlaps(other Bounds) bool {
	return b.Min.X() <= other.Max.X() && b.Max.X() >= other.Min.X() &&
		b.Min.Y() <= other.Max.Y() && b.Max.Y() >= other.Min.Y()
}

// Contains reports whether point lies within b, inclusive of the edges.
func (b Bounds) Contains(point mgl64.Vec2) bool {
	return point.X() >= b.Min.X() && point.X() <= b.Max.X() &&
		point.Y() >= b.Min.Y() && point.Y() <= b.Max.Y()
}

// Translate shifts b by delta in place.
func (b *Bounds) Translate(delta mgl64.Vec2) {
	b.Min = b.Min.Add(delta)
	b.Max = b.Max.Add(delta)
}

// Width and Height report the extent of b along each axis.
func (b Bounds) Width() float64  { return b.Max.X() - b.Min.X() }
func (b Bounds) Height() float64 { return b.Max.Y() - b.Min.Y() }

// Union returns the smallest bounds containing both a and b, used by the
// broadphase grid to span a body's region before and after a move.
func Union(a, b Bounds) Bounds {
	return Bounds{
		Min: mgl64.Vec2{math.Min(a.Min.X(), b.Min.X()), math.Min(a.Min.Y(), b.Min.Y())},
		Max: mgl64.Vec2{math.Max(a.Max.X(), b.Max.X()), math.Max(a.Max.Y(), b.Max.Y())},
	}
}
