// Package query implements ad-hoc spatial lookups over a body list,
// independent of the broadphase/narrowphase pipeline: collides, ray,
// region, and point (spec §6).
package query

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/strata2d/strata/body"
	"github.com/strata2d/strata/sat"
)

// DefaultRayWidth is the ray's default perpendicular thickness, matching
// matter.js's near-zero default so a ray behaves like an idealized line
// unless a caller asks for a thicker cast.
const DefaultRayWidth = 1e-100

// Collides returns every body in bodies whose bounds and polygon overlap
// target, using the same SAT test the narrowphase runs (spec §4.4).
func Collides(target *body.Body, bodies []*body.Body) []*body.Body {
	var out []*body.Body
	for _, b := range bodies {
		if b == target {
			continue
		}
		if !target.Bounds.Overlaps(b.Bounds) {
			continue
		}
		if anyPartCollides(target, b) {
			out = append(out, b)
		}
	}
	return out
}

func anyPartCollides(a, b *body.Body) bool {
	for _, partA := range a.AllParts() {
		for _, partB := range b.AllParts() {
			c := sat.Test(partA, partB, a.Position, b.Position, nil, 0, 0, 0, 0)
			if c.Collided {
				return true
			}
		}
	}
	return false
}

// Region returns the bodies whose bounds overlap bounds (or, with
// outside=true, those that do NOT overlap it) — spec §6's `region`.
func Region(bodies []*body.Body, bounds body.Bounds, outside bool) []*body.Body {
	var out []*body.Body
	for _, b := range bodies {
		if b.Bounds.Overlaps(bounds) != outside {
			out = append(out, b)
		}
	}
	return out
}

// Point returns every body in bodies whose polygon (any part) contains
// point — spec §6's `point`.
func Point(bodies []*body.Body, point mgl64.Vec2) []*body.Body {
	var out []*body.Body
	for _, b := range bodies {
		if !b.Bounds.Contains(point) {
			continue
		}
		for _, part := range b.AllParts() {
			if body.Contains(part.Vertices, point) {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

// Ray returns every body in bodies whose polygon (any part) intersects
// the segment from a to b, thickened by width (spec §6's `ray`, default
// width DefaultRayWidth). Each candidate is first rejected against its
// bounds before the exact per-edge segment intersection test runs.
func Ray(bodies []*body.Body, a, b mgl64.Vec2, width float64) []*body.Body {
	if width <= 0 {
		width = DefaultRayWidth
	}
	rayBounds := body.Bounds{
		Min: mgl64.Vec2{math.Min(a.X(), b.X()), math.Min(a.Y(), b.Y())},
		Max: mgl64.Vec2{math.Max(a.X(), b.X()), math.Max(a.Y(), b.Y())},
	}

	dir := b.Sub(a)
	length := dir.Len()
	var perp mgl64.Vec2
	if length > 1e-12 {
		perp = mgl64.Vec2{-dir.Y() / length, dir.X() / length}.Mul(width / 2)
	}

	var out []*body.Body
	for _, cand := range bodies {
		if !rayBounds.Overlaps(grow(cand.Bounds, width)) {
			continue
		}
		if rayIntersectsBody(cand, a.Sub(perp), b.Sub(perp)) ||
			rayIntersectsBody(cand, a.Add(perp), b.Add(perp)) ||
			rayIntersectsBody(cand, a, b) {
			out = append(out, cand)
		}
	}
	return out
}

func grow(bounds body.Bounds, amount float64) body.Bounds {
	half := mgl64.Vec2{amount / 2, amount / 2}
	return body.Bounds{Min: bounds.Min.Sub(half), Max: bounds.Max.Add(half)}
}

func rayIntersectsBody(b *body.Body, a, c mgl64.Vec2) bool {
	for _, part := range b.AllParts() {
		n := len(part.Vertices)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			if segmentsIntersect(a, c, part.Vertices[i].Vec(), part.Vertices[j].Vec()) {
				return true
			}
		}
		if body.Contains(part.Vertices, a) {
			return true
		}
	}
	return false
}

// segmentsIntersect reports whether segment p1-p2 crosses segment p3-p4.
func segmentsIntersect(p1, p2, p3, p4 mgl64.Vec2) bool {
	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}
	return false
}

func direction(a, b, c mgl64.Vec2) float64 {
	return body.Cross(c.Sub(a), b.Sub(a))
}

func onSegment(a, b, p mgl64.Vec2) bool {
	return math.Min(a.X(), b.X()) <= p.X() && p.X() <= math.Max(a.X(), b.X()) &&
		math.Min(a.Y(), b.Y()) <= p.Y() && p.Y() <= math.Max(a.Y(), b.Y())
}
