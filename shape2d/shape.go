// Package shape2d validates the convex polygon geometry a body is built
// from. Geometry constructors for common shapes (rectangles, polygons
// from SVG paths) are an external collaborator's concern (spec.md §1);
// this package only validates and normalizes points a caller already has.
package shape2d

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sentinel errors for the InvalidInput taxonomy (spec.md §7): construction
// time failures that make a shape unusable, but never abort a running
// simulation step.
var (
	ErrEmpty      = errors.New("shape2d: vertex list is empty")
	ErrTooFew     = errors.New("shape2d: at least 3 vertices are required")
	ErrNonFinite  = errors.New("shape2d: vertex coordinates must be finite")
	ErrNonConvex  = errors.New("shape2d: vertices do not describe a convex polygon")
	ErrDegenerate = errors.New("shape2d: polygon has zero area")
)

// Validate checks that points describe a non-degenerate convex polygon
// with finite coordinates, and returns a copy reordered to clockwise
// winding: negative signed area, i.e. clockwise with the Y axis pointing
// up. spec.md §9 leaves convexity enforcement as an open
// question for the source material; here it is resolved by validating
// at construction and rejecting non-convex input outright.
func Validate(points []mgl64.Vec2) ([]mgl64.Vec2, error) {
	if len(points) == 0 {
		return nil, ErrEmpty
	}
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFew, len(points))
	}

	for i, p := range points {
		if math.IsNaN(p.X()) || math.IsNaN(p.Y()) || math.IsInf(p.X(), 0) || math.IsInf(p.Y(), 0) {
			return nil, fmt.Errorf("%w: vertex %d = %v", ErrNonFinite, i, p)
		}
	}

	area := signedArea(points)
	if math.Abs(area) < 1e-12 {
		return nil, ErrDegenerate
	}

	out := make([]mgl64.Vec2, len(points))
	copy(out, points)
	if area > 0 {
		// Counter-clockwise input (positive shoelace area): reverse to
		// the clockwise convention the rest of the engine assumes.
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}

	if !isConvex(out) {
		return nil, ErrNonConvex
	}

	return out, nil
}

func signedArea(points []mgl64.Vec2) float64 {
	var area float64
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += points[i].X()*points[j].Y() - points[j].X()*points[i].Y()
	}
	return area / 2
}

// isConvex reports whether a clockwise ring turns consistently at every
// vertex (no reflex angle), the defining property of a convex polygon.
func isConvex(points []mgl64.Vec2) bool {
	n := len(points)
	if n < 3 {
		return false
	}
	sign := 0
	for i := 0; i < n; i++ {
		a := points[i]
		b := points[(i+1)%n]
		c := points[(i+2)%n]
		edge1 := b.Sub(a)
		edge2 := c.Sub(b)
		cross := edge1.X()*edge2.Y() - edge1.Y()*edge2.X()
		if math.Abs(cross) < 1e-12 {
			continue // colinear edge, neither left nor right turn
		}
		s := 1
		if cross < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return sign != 0
}
