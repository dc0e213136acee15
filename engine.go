package strata

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/strata2d/strata/body"
	"github.com/strata2d/strata/constraint"
)

// DefaultGravity is Earth-scale downward acceleration in world units per
// step, matching matter.js's {0, 1} convention once combined with
// body.DefaultGravityScale.
var DefaultGravity = mgl64.Vec2{0, 1}

// EngineOptions configures a new Engine. Zero-valued fields fall back to
// the defaults documented on each field (spec §6).
type EngineOptions struct {
	Gravity      mgl64.Vec2 // default DefaultGravity
	GravityScale float64    // default body.DefaultGravityScale

	PositionIterations   int // default 6
	VelocityIterations   int // default 4
	ConstraintIterations int // default 2
	EnableSleeping       bool

	TimeScale float64 // default 1

	BucketWidth, BucketHeight float64 // default DefaultBucketSize each
}

func (o EngineOptions) withDefaults() EngineOptions {
	if o.Gravity == (mgl64.Vec2{}) {
		o.Gravity = DefaultGravity
	}
	if o.GravityScale == 0 {
		o.GravityScale = body.DefaultGravityScale
	}
	if o.PositionIterations == 0 {
		o.PositionIterations = 6
	}
	if o.VelocityIterations == 0 {
		o.VelocityIterations = 4
	}
	if o.ConstraintIterations == 0 {
		o.ConstraintIterations = 2
	}
	if o.TimeScale == 0 {
		o.TimeScale = 1
	}
	if o.BucketWidth == 0 {
		o.BucketWidth = DefaultBucketSize
	}
	if o.BucketHeight == 0 {
		o.BucketHeight = DefaultBucketSize
	}
	return o
}

// Engine drives one World through the deterministic step pipeline
// (spec §2): it owns the broadphase grid, narrowphase detector, pair
// cache, solvers, sleeping controller, and event dispatcher that
// collaborate each Update.
type Engine struct {
	World *World

	Grid     *Grid
	Cache    *Cache
	Detector *Detector
	Events   *Events

	sleeping SleepingController
	position PositionSolver
	velocity VelocitySolver

	Options EngineOptions

	timestamp float64
}

// NewEngine constructs an Engine bound to world, with its own broadphase
// grid sized from opts.
func NewEngine(world *World, opts EngineOptions) *Engine {
	opts = opts.withDefaults()
	return &Engine{
		World:    world,
		Grid:     NewGrid(opts.BucketWidth, opts.BucketHeight),
		Cache:    NewCache(),
		Detector: NewDetector(),
		Events:   NewEvents(),
		Options:  opts,
	}
}

// Timestamp returns the cumulative simulated time, advanced by dt on
// every Update.
func (e *Engine) Timestamp() float64 { return e.timestamp }

// Update advances the simulation by dt (default 16.6667ms, a 60Hz frame)
// scaled by correction (default 1, matter.js's runner delta-correction
// factor for a step whose dt differs from the previous one). It runs the
// full single-threaded, deterministic pipeline of spec §2/§5: sleeping,
// gravity, integration, two constraint passes, broadphase, narrowphase,
// pair caching, post-collision wake, position solver, velocity solver,
// and events, always iterating bodies/constraints/pairs in the stable
// order they were added.
func (e *Engine) Update(dt, correction float64) {
	if dt <= 0 {
		dt = 1000.0 / 60.0
	}
	if correction <= 0 {
		correction = 1
	}
	timeScale := e.Options.TimeScale

	bodies := e.World.AllBodies()
	constraints := e.World.AllConstraints()

	// 2: sleeping controller, run before gravity so a body already
	// asleep this step never gets force-woken by its own resting weight.
	e.sleeping.Update(bodies, timeScale, e.Options.EnableSleeping)

	// 3: apply gravity, 4: integrate (Time-Corrected Verlet).
	for _, b := range bodies {
		b.ApplyGravity(e.Options.Gravity, e.Options.GravityScale)
		b.Integrate(dt, timeScale, correction)
	}

	// 5: constraint pass 1 (warm start, Gauss-Seidel iterations, commit).
	constraint.PreSolveAll(bodies)
	for i := 0; i < e.Options.ConstraintIterations; i++ {
		constraint.SolveAll(constraints, timeScale)
	}
	constraint.PostSolveAll(bodies)

	// 6: broadphase update. A structurally modified world forces a full
	// grid rebuild, since added/removed bodies invalidate incremental
	// region tracking.
	modified := e.World.AnyModified()
	if modified {
		e.Grid.Clear()
	}
	worldBounds := e.World.Bounds
	for _, b := range bodies {
		if !b.IsStatic {
			b.UpdateBounds()
		}
		e.Grid.Update(b, worldBounds, modified)
	}
	e.Grid.Rebuild()
	e.World.ClearModified()

	// 7: narrowphase detection over the broadphase's candidate pairs.
	results := e.Detector.Detect(e.Grid.CandidatePairs())

	// 8: pair cache update (contact synthesis, warm-start carry-over).
	e.Cache.Update(results, e.timestamp)
	e.Cache.RemoveOld(e.timestamp)
	pairs := e.Cache.All()

	// 9: wake sleeping bodies whose active counterpart is still moving.
	e.sleeping.AfterCollisions(pairs, timeScale)

	// 10: position solver (penetration correction).
	e.position.Pre(bodies, pairs)
	for i := 0; i < e.Options.PositionIterations; i++ {
		e.position.Solve(pairs, timeScale)
	}
	e.position.Post(bodies)

	// 11: constraint pass 2, identical to pass 1.
	constraint.PreSolveAll(bodies)
	for i := 0; i < e.Options.ConstraintIterations; i++ {
		constraint.SolveAll(constraints, timeScale)
	}
	constraint.PostSolveAll(bodies)

	// 12: velocity solver (sequential impulses, warm-started).
	e.velocity.PreSolve(pairs)
	for i := 0; i < e.Options.VelocityIterations; i++ {
		e.velocity.Solve(pairs, timeScale)
	}

	// 13: events, then clear forces for the next step.
	e.Events.DispatchCollisions(e.Cache)
	e.Events.DispatchSleep(bodies)
	for _, b := range bodies {
		b.ClearForces()
	}

	e.timestamp += dt
}

// RemoveBody detaches b from the engine's own bookkeeping (broadphase
// placement, narrowphase coherence, pair cache, sleep tracking) in
// addition to removing it from the world, so a removed body leaves no
// dangling state behind.
func (e *Engine) RemoveBody(b *body.Body) {
	e.World.RemoveBody(b)
	e.Detector.Forget(b.ID)
	e.Events.Forget(b)
	e.Cache.Forget(b.ID)
}
