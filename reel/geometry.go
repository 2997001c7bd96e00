package reel

import "math"

// Epsilon is the smallest loop height treated as a valid strip
const Epsilon = 0.0001

// Mod returns a floor-style modulo in [0, m)
// Negative inputs wrap positive; a degenerate modulus (m <= Epsilon) yields 0
func Mod(a, m float64) float64 {
	if m <= Epsilon {
		return 0
	}
	r := a - math.Floor(a/m)*m
	// Float rounding on tiny negative inputs can land exactly on m
	if r >= m || r < 0 {
		return 0
	}
	return r
}

// CenterIndex returns the unique index aligned with the selection marker
// round(offset/itemSpacing) reduced into [0, uniqueCount)
func CenterIndex(offset, itemSpacing float64, uniqueCount int) int {
	if uniqueCount <= 0 || itemSpacing <= Epsilon {
		return 0
	}
	idx := int(math.Round(offset/itemSpacing)) % uniqueCount
	if idx < 0 {
		idx += uniqueCount
	}
	return idx
}
