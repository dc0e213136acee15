package body

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/strata2d/strata/shape2d"
)

// CollisionFilter controls which bodies are allowed to collide, matching
// matter.js's category/mask/group semantics: two bodies with the same
// non-zero group always (positive) or never (negative) collide,
// regardless of mask; otherwise the pair collides only if each
// category bit is present in the other's mask.
type CollisionFilter struct {
	Category uint32
	Mask     uint32
	Group    int32
}

// DefaultCollisionFilter collides with everything.
func DefaultCollisionFilter() CollisionFilter {
	return CollisionFilter{Category: 1, Mask: 0xFFFFFFFF, Group: 0}
}

// CanCollide reports whether two filters permit a collision.
func CanCollide(a, b CollisionFilter) bool {
	if a.Group != 0 && a.Group == b.Group {
		return a.Group > 0
	}
	return a.Category&b.Mask != 0 && b.Category&a.Mask != 0
}

// ConstraintImpulse accumulates the positional correction a constraint
// has applied to a body this step; the angular component is kept
// co-located with the positional ones so warm-start semantics (§4.2)
// can carry all three through a single decaying multiply.
type ConstraintImpulse struct {
	X, Y, Angle float64
}

// IsZero reports whether the impulse has no accumulated correction.
func (c ConstraintImpulse) IsZero() bool {
	return c.X == 0 && c.Y == 0 && c.Angle == 0
}

// Region identifies the span of broadphase grid cells a body currently
// occupies. Valid is false until the broadphase has placed the body at
// least once.
type Region struct {
	ColMin, ColMax, RowMin, RowMax int
	Valid                          bool
}

// Equal reports whether two regions cover the same cell span.
func (r Region) Equal(o Region) bool {
	return r.Valid == o.Valid && r.ColMin == o.ColMin && r.ColMax == o.ColMax &&
		r.RowMin == o.RowMin && r.RowMax == o.RowMax
}

// Options configures a new Body. Zero-valued fields fall back to the
// defaults documented on each field.
type Options struct {
	IsStatic bool
	IsSensor bool

	// Density is used to derive Mass from polygon area when Mass is
	// zero. Defaults to 0.001 (matter.js's default) when both are zero.
	Density float64
	// Mass overrides the density-derived mass when non-zero.
	Mass float64

	Friction       float64 // default 0.1
	FrictionStatic float64 // default 0.5
	Restitution    float64 // default 0
	Slop           float64 // default 0.05
	FrictionAir    float64 // default 0.01, velocity drag per unit time

	SleepThreshold  int // default 60
	CollisionFilter CollisionFilter
}

func (o Options) withDefaults() Options {
	if o.Density == 0 {
		o.Density = 0.001
	}
	if o.FrictionStatic == 0 {
		o.FrictionStatic = 0.5
	}
	if o.Slop == 0 {
		o.Slop = 0.05
	}
	if o.SleepThreshold == 0 {
		o.SleepThreshold = 60
	}
	if o.CollisionFilter == (CollisionFilter{}) {
		o.CollisionFilter = DefaultCollisionFilter()
	}
	if o.Friction == 0 {
		o.Friction = 0.1
	}
	if o.FrictionAir == 0 {
		o.FrictionAir = 0.01
	}
	return o
}

// Body is a convex rigid polygon (or, via Parts, a compound of several)
// participating in the simulation.
type Body struct {
	ID uint64

	Position     mgl64.Vec2
	PositionPrev mgl64.Vec2
	Angle        float64
	AnglePrev    float64
	Velocity     mgl64.Vec2
	AngularVelocity float64
	Speed           float64
	AngularSpeed    float64

	Mass, InverseMass       float64
	Inertia, InverseInertia float64

	Friction, FrictionStatic, Restitution, Slop float64
	FrictionAir                                 float64

	Vertices []Vertex
	Axes     []mgl64.Vec2
	Bounds   Bounds
	Area     float64

	// Parts holds every convex piece of a compound body, Parts[0] being
	// the identity part (this Body's own geometry). Single-part bodies
	// leave Parts nil; callers should use AllParts().
	Parts []*Part

	Force  mgl64.Vec2
	Torque float64

	PositionImpulse   mgl64.Vec2
	ConstraintImpulse ConstraintImpulse
	TotalContacts     int

	IsStatic   bool
	IsSensor   bool
	IsSleeping bool

	SleepCounter   int
	SleepThreshold int
	Motion         float64

	CollisionFilter CollisionFilter

	Region Region
}

// Part is one convex piece of a compound body.
type Part struct {
	Vertices []Vertex
	Axes     []mgl64.Vec2
	Bounds   Bounds
	Area     float64
}

// New validates points (see shape2d.Validate), builds the clockwise
// vertex ring, and computes mass/inertia from density unless Options.Mass
// overrides it. Static bodies get zero inverse mass/inertia.
func New(id uint64, points []mgl64.Vec2, opts Options) (*Body, error) {
	clockwise, err := shape2d.Validate(points)
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	b := &Body{
		ID:              id,
		Friction:        opts.Friction,
		FrictionStatic:  opts.FrictionStatic,
		Restitution:     opts.Restitution,
		Slop:            opts.Slop,
		FrictionAir:     opts.FrictionAir,
		IsStatic:        opts.IsStatic,
		IsSensor:        opts.IsSensor,
		SleepThreshold:  opts.SleepThreshold,
		CollisionFilter: opts.CollisionFilter,
	}

	b.Vertices = NewVertices(clockwise, id)
	b.Position = Centroid(b.Vertices)
	b.PositionPrev = b.Position
	b.Area = math.Abs(SignedArea(b.Vertices))
	b.Axes = Axes(b.Vertices)
	b.Bounds.Update(b.Vertices, mgl64.Vec2{})

	b.setMass(opts)

	return b, nil
}

func (b *Body) setMass(opts Options) {
	if b.IsStatic {
		b.Mass, b.InverseMass = 0, 0
		b.Inertia, b.InverseInertia = 0, 0
		return
	}

	mass := opts.Mass
	if mass == 0 {
		mass = opts.Density * b.Area
	}
	if mass <= 0 {
		mass = 1e-9 // degenerate dynamic body: clamp rather than divide by zero (spec §4.9)
	}

	b.Mass = mass
	b.InverseMass = 1 / mass

	local := make([]Vertex, len(b.Vertices))
	copy(local, b.Vertices)
	Translate(local, b.Position.Mul(-1))
	b.Inertia = Inertia(local, mass)
	if b.Inertia <= 0 {
		b.Inertia = mass
	}
	b.InverseInertia = 1 / b.Inertia
}

// SetStatic toggles whether b participates in gravity/integration and
// recomputes its mass properties accordingly.
func (b *Body) SetStatic(isStatic bool, density float64) {
	b.IsStatic = isStatic
	if isStatic {
		b.Mass, b.InverseMass = 0, 0
		b.Inertia, b.InverseInertia = 0, 0
		b.Velocity = mgl64.Vec2{}
		b.AngularVelocity = 0
		return
	}
	b.setMass(Options{Density: density})
}

// SetMass overrides the body's mass directly, rescaling inertia to
// match (inertia scales linearly with mass for a fixed shape).
func (b *Body) SetMass(mass float64) {
	if b.IsStatic || mass <= 0 {
		return
	}
	ratio := mass / b.Mass
	b.Mass = mass
	b.InverseMass = 1 / mass
	b.Inertia *= ratio
	b.InverseInertia = 1 / b.Inertia
}

// SetInertia overrides the body's moment of inertia directly.
func (b *Body) SetInertia(inertia float64) {
	if b.IsStatic || inertia <= 0 {
		return
	}
	b.Inertia = inertia
	b.InverseInertia = 1 / inertia
}

// AllParts returns every convex piece participating in collision: just
// b for a simple body, or b followed by each compound sub-part.
func (b *Body) AllParts() []*Part {
	if len(b.Parts) == 0 {
		return []*Part{{Vertices: b.Vertices, Axes: b.Axes, Bounds: b.Bounds, Area: b.Area}}
	}
	return b.Parts
}

// SetPosition moves the body to position, translating vertices, parts,
// and bounds by the delta. PositionPrev is shifted by the same delta, so
// this is a teleport that keeps the body's current velocity rather than
// implying a new one.
func (b *Body) SetPosition(position mgl64.Vec2) {
	delta := position.Sub(b.Position)
	b.Translate(delta)
}

// Translate shifts the body (and its parts) by delta in place.
func (b *Body) Translate(delta mgl64.Vec2) {
	b.Position = b.Position.Add(delta)
	b.PositionPrev = b.PositionPrev.Add(delta)
	Translate(b.Vertices, delta)
	b.Bounds.Translate(delta)
	for _, p := range b.Parts {
		Translate(p.Vertices, delta)
		p.Bounds.Translate(delta)
	}
}

// SetAngle rotates the body to angle, about its own position.
func (b *Body) SetAngle(angle float64) {
	b.Rotate(angle - b.Angle)
}

// Rotate turns the body (and its parts) by delta radians about its
// current position, in place, and rebuilds edge axes.
func (b *Body) Rotate(delta float64) {
	if delta == 0 {
		return
	}
	b.Angle += delta
	b.AnglePrev += delta
	Rotate(b.Vertices, delta, b.Position)
	b.Axes = Axes(b.Vertices)
	b.Bounds.Update(b.Vertices, b.Velocity)
	for _, p := range b.Parts {
		Rotate(p.Vertices, delta, b.Position)
		p.Axes = Axes(p.Vertices)
		p.Bounds.Update(p.Vertices, b.Velocity)
	}
}

// Scale stretches the body (and its parts) about its own position by
// (scaleX, scaleY), recomputing mass properties from the new area.
func (b *Body) Scale(scaleX, scaleY, density float64) {
	Scale(b.Vertices, scaleX, scaleY, b.Position)
	b.Area = math.Abs(SignedArea(b.Vertices))
	b.Axes = Axes(b.Vertices)
	b.Bounds.Update(b.Vertices, b.Velocity)
	for _, p := range b.Parts {
		Scale(p.Vertices, scaleX, scaleY, b.Position)
		p.Area = math.Abs(SignedArea(p.Vertices))
		p.Axes = Axes(p.Vertices)
		p.Bounds.Update(p.Vertices, b.Velocity)
	}
	if density == 0 {
		density = 0.001
	}
	b.setMass(Options{Density: density})
}

// SetVelocity and SetAngularVelocity override the implicit
// position-Prev-derived velocity directly, by moving PositionPrev/
// AnglePrev to match (Verlet integration has no standalone velocity
// state to assign).
func (b *Body) SetVelocity(v mgl64.Vec2) {
	b.Velocity = v
	b.PositionPrev = b.Position.Sub(v)
	b.Speed = v.Len()
}

func (b *Body) SetAngularVelocity(w float64) {
	b.AngularVelocity = w
	b.AnglePrev = b.Angle - w
	b.AngularSpeed = math.Abs(w)
}

// ApplyForce accumulates force applied at a world-space point, adding
// the resulting torque about the body's centre of mass.
func (b *Body) ApplyForce(point, force mgl64.Vec2) {
	b.Force = b.Force.Add(force)
	offset := point.Sub(b.Position)
	b.Torque += offset.X()*force.Y() - offset.Y()*force.X()
}

// ClearForces zeroes the force and torque accumulators (step stage 13).
func (b *Body) ClearForces() {
	b.Force = mgl64.Vec2{}
	b.Torque = 0
}
