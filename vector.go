package strata

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Perp returns the vector rotated 90° counter-clockwise: (x,y) -> (-y,x).
// The velocity solver uses it to turn a contact offset into the direction
// of the velocity a body's rotation gives that point.
func Perp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v.Y(), v.X()}
}

// Cross2 returns the scalar (z-component) of the 3D cross product of two
// planar vectors: a.X*b.Y - a.Y*b.X.
func Cross2(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// CrossScalarVec rotates and scales v by a scalar "cross" operand s,
// equivalent to the 3D cross product of a z-axis scalar with a planar
// vector: s × v = (-s*v.Y, s*v.X).
func CrossScalarVec(s float64, v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-s * v.Y(), s * v.X()}
}

// Rotate rotates v by angle radians about the origin.
func Rotate(v mgl64.Vec2, angle float64) mgl64.Vec2 {
	if angle == 0 {
		return v
	}
	s, c := math.Sin(angle), math.Cos(angle)
	return mgl64.Vec2{
		v.X()*c - v.Y()*s,
		v.X()*s + v.Y()*c,
	}
}

// RotateAbout rotates v about the given origin point by angle radians.
func RotateAbout(v, origin mgl64.Vec2, angle float64) mgl64.Vec2 {
	return Rotate(v.Sub(origin), angle).Add(origin)
}

// Clamp restricts v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
