package body

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vertex is one point of a body's convex polygon. It carries its ring
// index and the id of the body that owns it, rather than an owning
// pointer back to the body: pair/contact caches key contacts by
// (BodyID, Index), and an integer pair is stable across the body's
// lifetime in a way a pointer back-reference would not need to be.
type Vertex struct {
	X, Y   float64
	Index  int
	BodyID uint64
}

// Vec returns the vertex position as a mgl64.Vec2.
func (v Vertex) Vec() mgl64.Vec2 { return mgl64.Vec2{v.X, v.Y} }

// ContactID is the stable identity of a vertex used as a contact point:
// (vertexOwnerBodyId, vertexIndex).
type ContactID struct {
	BodyID uint64
	Index  int
}

// ID returns v's stable contact identity.
func (v Vertex) ID() ContactID { return ContactID{BodyID: v.BodyID, Index: v.Index} }

// NewVertices builds a vertex ring from raw points, tagging each with
// bodyID and its ring index. Points are taken as given; callers that
// need a clockwise ring must pass clockwise points (shape2d validates
// this at construction).
func NewVertices(points []mgl64.Vec2, bodyID uint64) []Vertex {
	out := make([]Vertex, len(points))
	for i, p := range points {
		out[i] = Vertex{X: p.X(), Y: p.Y(), Index: i, BodyID: bodyID}
	}
	return out
}

// SignedArea returns the shoelace-formula signed area of the ring.
// Negative indicates a ring that winds clockwise with the Y axis pointing
// up (the same ring appears counter-clockwise on a Y-down screen).
func SignedArea(vertices []Vertex) float64 {
	var area float64
	n := len(vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += vertices[i].X*vertices[j].Y - vertices[j].X*vertices[i].Y
	}
	return area / 2
}

// IsClockwise reports whether the ring has negative signed area, i.e.
// winds clockwise with the Y axis pointing up: the orientation
// shape2d.Validate produces and the rest of the engine assumes.
func IsClockwise(vertices []Vertex) bool {
	return SignedArea(vertices) < 0
}

// Reverse flips the winding order of vertices in place, re-tagging
// indices so ring-neighbor lookups stay contiguous.
func Reverse(vertices []Vertex) {
	for i, j := 0, len(vertices)-1; i < j; i, j = i+1, j-1 {
		vertices[i], vertices[j] = vertices[j], vertices[i]
	}
	for i := range vertices {
		vertices[i].Index = i
	}
}

// Centroid returns the area-weighted centroid of the ring (not the
// simple vertex average, which is biased for irregular polygons).
func Centroid(vertices []Vertex) mgl64.Vec2 {
	var cx, cy, area float64
	n := len(vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := vertices[i].X*vertices[j].Y - vertices[j].X*vertices[i].Y
		cx += (vertices[i].X + vertices[j].X) * cross
		cy += (vertices[i].Y + vertices[j].Y) * cross
		area += cross
	}
	area /= 2
	if math.Abs(area) < 1e-12 {
		return Mean(vertices)
	}
	factor := 1.0 / (6 * area)
	return mgl64.Vec2{cx * factor, cy * factor}
}

// Mean returns the simple arithmetic mean of the ring's points.
func Mean(vertices []Vertex) mgl64.Vec2 {
	var sum mgl64.Vec2
	for _, v := range vertices {
		sum = sum.Add(v.Vec())
	}
	if len(vertices) == 0 {
		return sum
	}
	return sum.Mul(1 / float64(len(vertices)))
}

// Inertia computes the planar scalar moment of inertia of the polygon
// about its own centroid, scaled to the given mass, using the standard
// polygon second-moment formula (spec: rotational inertia is a scalar,
// not a tensor).
func Inertia(vertices []Vertex, mass float64) float64 {
	var numerator, denominator float64
	n := len(vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a := vertices[i].Vec()
		b := vertices[j].Vec()
		cross := math.Abs(Cross(a, b))
		numerator += cross * (a.Dot(a) + a.Dot(b) + b.Dot(b))
		denominator += cross
	}
	if denominator == 0 {
		return 0
	}
	return (mass / 6) * (numerator / denominator)
}

// Cross is the scalar (z component) of the 3D cross product a × b.
func Cross(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// Translate shifts every vertex by delta in place.
func Translate(vertices []Vertex, delta mgl64.Vec2) {
	for i := range vertices {
		vertices[i].X += delta.X()
		vertices[i].Y += delta.Y()
	}
}

// Rotate rotates every vertex about point by angle radians, in place.
func Rotate(vertices []Vertex, angle float64, point mgl64.Vec2) {
	if angle == 0 {
		return
	}
	s, c := math.Sin(angle), math.Cos(angle)
	for i := range vertices {
		dx := vertices[i].X - point.X()
		dy := vertices[i].Y - point.Y()
		vertices[i].X = point.X() + dx*c - dy*s
		vertices[i].Y = point.Y() + dx*s + dy*c
	}
}

// Scale scales every vertex about point by (scaleX, scaleY), in place.
func Scale(vertices []Vertex, scaleX, scaleY float64, point mgl64.Vec2) {
	for i := range vertices {
		vertices[i].X = point.X() + (vertices[i].X-point.X())*scaleX
		vertices[i].Y = point.Y() + (vertices[i].Y-point.Y())*scaleY
	}
}

// Contains reports whether point lies inside the convex ring.
func Contains(vertices []Vertex, point mgl64.Vec2) bool {
	n := len(vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		edge := vertices[j].Vec().Sub(vertices[i].Vec())
		toPoint := point.Sub(vertices[i].Vec())
		// Clockwise ring: interior is to the right of each directed edge.
		if Cross(edge, toPoint) > 0 {
			return false
		}
	}
	return true
}

// RotateVec rotates a single vector by angle radians about the origin,
// used to carry a constraint's local anchor offset through a body's
// angular delta since the last solve.
func RotateVec(v mgl64.Vec2, angle float64) mgl64.Vec2 {
	if angle == 0 {
		return v
	}
	s, c := math.Sin(angle), math.Cos(angle)
	return mgl64.Vec2{v.X()*c - v.Y()*s, v.X()*s + v.Y()*c}
}

// RotateAxes rotates a set of unit axis directions by angle radians
// about the origin (axes are directions, not points, so they are never
// translated).
func RotateAxes(axes []mgl64.Vec2, angle float64) []mgl64.Vec2 {
	if angle == 0 {
		return axes
	}
	s, c := math.Sin(angle), math.Cos(angle)
	out := make([]mgl64.Vec2, len(axes))
	for i, a := range axes {
		out[i] = mgl64.Vec2{a.X()*c - a.Y()*s, a.X()*s + a.Y()*c}
	}
	return out
}

// Axes returns the unit edge normals of the ring, deduplicated by
// gradient so that colinear edges (e.g. a rectangle's opposite sides)
// contribute one axis rather than two (spec: "axes... deduplicated by
// gradient").
func Axes(vertices []Vertex) []mgl64.Vec2 {
	n := len(vertices)
	seen := make(map[int64]bool, n)
	axes := make([]mgl64.Vec2, 0, n)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		edge := vertices[j].Vec().Sub(vertices[i].Vec())
		normal := mgl64.Vec2{-edge.Y(), edge.X()}
		length := normal.Len()
		if length < 1e-12 {
			continue
		}
		normal = normal.Mul(1 / length)

		gradient := math.Inf(1)
		if math.Abs(normal.X()) > 1e-12 {
			gradient = normal.Y() / normal.X()
		}
		// Round to a fixed precision so near-equal gradients collapse.
		key := int64(math.Round(gradient * 1e6))
		if seen[key] {
			continue
		}
		seen[key] = true
		axes = append(axes, normal)
	}
	return axes
}
