package peaks

import (
	"math"
)

// Peak is an immutable value representing a local maximum detected in the
// Hough accumulator.  X is the q/pT bin (column) and Y the phi bin (row)
type Peak struct {
	// X is the q/pT bin coordinate of the maximum
	X float64
	// Y is the phi bin coordinate of the maximum
	Y float64
	// Height is the vote count of the unsmoothed accumulator at the
	// maximum
	Height float64
}

// DistanceTo returns the Euclidean distance in bins to another peak
func (p Peak) DistanceTo(other Peak) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y

	return math.Sqrt(dx*dx + dy*dy)
}

// WithinTolerance reports whether another peak lies within the given
// distance
func (p Peak) WithinTolerance(other Peak, tolerance float64) bool {
	return p.DistanceTo(other) <= tolerance
}
