package body

import "math"

// CombineFriction takes the minimum of two bodies' kinetic friction: the
// slicker surface dominates sliding contact.
func CombineFriction(a, b float64) float64 {
	return math.Min(a, b)
}

// CombineFrictionStatic takes the maximum of two bodies' static
// friction, so a single high-grip material is enough to hold a resting
// contact still.
func CombineFrictionStatic(a, b float64) float64 {
	return math.Max(a, b)
}

// CombineRestitution takes the maximum of two bodies' restitution: if
// either material bounces, the contact bounces.
func CombineRestitution(a, b float64) float64 {
	return math.Max(a, b)
}
