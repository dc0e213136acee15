package sat

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/strata2d/strata/body"
)

// coherenceMotionThreshold bounds the combined linear+angular motion
// estimate below which the previous step's separating axis is retested
// first (spec §4.4), rather than running full SAT every step.
const coherenceMotionThreshold = 0.2

// Test runs SAT between partA and partB, reusing prev's separating axis
// when the pair's combined motion is small. centerA/centerB orient the
// resulting normal to point from A into B.
func Test(partA, partB *body.Part, centerA, centerB mgl64.Vec2, prev *Collision,
	speedA, angularSpeedA, speedB, angularSpeedB float64) *Collision {

	motion := speedA*speedA + angularSpeedA*angularSpeedA + speedB*speedB + angularSpeedB*angularSpeedB

	if prev != nil && prev.Collided && motion < coherenceMotionThreshold {
		axis, ok := axisAt(partA, partB, prev.AxisBody, prev.AxisNumber)
		if ok {
			overlap := overlapOn(partA, partB, axis)
			if overlap <= 0 {
				return &Collision{Collided: false}
			}
			normal := orient(axis, centerA, centerB)
			return &Collision{
				Collided:    true,
				Normal:      normal,
				Tangent:     mgl64.Vec2{-normal.Y(), normal.X()},
				Depth:       overlap,
				Penetration: normal.Mul(overlap),
				AxisBody:    prev.AxisBody,
				AxisNumber:  prev.AxisNumber,
			}
		}
	}

	return fullSAT(partA, partB, centerA, centerB)
}

// axisAt fetches axis axisNumber from partA's (axisBody==0) or partB's
// (axisBody==1) axis list, reporting false if the index is now
// out-of-range (a body's axis count can change between steps via
// Body.Scale or constraint rotation).
func axisAt(partA, partB *body.Part, axisBody, axisNumber int) (mgl64.Vec2, bool) {
	axes := partA.Axes
	if axisBody == 1 {
		axes = partB.Axes
	}
	if axisNumber < 0 || axisNumber >= len(axes) {
		return mgl64.Vec2{}, false
	}
	return axes[axisNumber], true
}

func fullSAT(partA, partB *body.Part, centerA, centerB mgl64.Vec2) *Collision {
	minOverlap := math.Inf(1)
	var minAxis mgl64.Vec2
	minBody, minNumber := 0, 0

	for i, axis := range partA.Axes {
		overlap := overlapOn(partA, partB, axis)
		if overlap <= 0 {
			return &Collision{Collided: false, AxisBody: 0, AxisNumber: i}
		}
		if overlap < minOverlap {
			minOverlap, minAxis = overlap, axis
			minBody, minNumber = 0, i
		}
	}
	for i, axis := range partB.Axes {
		overlap := overlapOn(partA, partB, axis)
		if overlap <= 0 {
			return &Collision{Collided: false, AxisBody: 1, AxisNumber: i}
		}
		if overlap < minOverlap {
			minOverlap, minAxis = overlap, axis
			minBody, minNumber = 1, i
		}
	}

	normal := orient(minAxis, centerA, centerB)
	return &Collision{
		Collided:    true,
		Normal:      normal,
		Tangent:     mgl64.Vec2{-normal.Y(), normal.X()},
		Depth:       minOverlap,
		Penetration: normal.Mul(minOverlap),
		AxisBody:    minBody,
		AxisNumber:  minNumber,
	}
}

// overlapOn returns the projection overlap of partA/partB along axis.
func overlapOn(partA, partB *body.Part, axis mgl64.Vec2) float64 {
	minA, maxA := project(partA.Vertices, axis)
	minB, maxB := project(partB.Vertices, axis)
	return math.Min(maxA, maxB) - math.Max(minA, minB)
}

func project(vertices []body.Vertex, axis mgl64.Vec2) (float64, float64) {
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, v := range vertices {
		p := v.Vec().Dot(axis)
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	return min, max
}

// orient returns axis (or its negation) so it points from A's centroid
// toward B's, which is SAT's convention for "normal points from A into
// B" (spec §3).
func orient(axis mgl64.Vec2, centerA, centerB mgl64.Vec2) mgl64.Vec2 {
	d := centerB.Sub(centerA)
	if axis.Dot(d) < 0 {
		axis = axis.Mul(-1)
	}
	return axis
}
