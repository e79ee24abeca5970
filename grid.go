package houghlite

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Accumulator is a dense 2D histogram of Hough transform votes over the
// (phi, q/pT) parameter space.  Rows index phi bins and columns index q/pT
// bins.  The grid is owned by the caller, one per (event, slice) histogram,
// and is read-only input to the peak detector and matcher.
type Accumulator struct {
	*mat.Dense
}

// NewAccumulator returns a zeroed accumulator with the given binning
func NewAccumulator(nbinPhi, nbinQpt int) *Accumulator {
	return &Accumulator{
		Dense: mat.NewDense(nbinPhi, nbinQpt, nil),
	}
}

// NewAccumulatorFromDense wraps an existing dense matrix of vote counts
func NewAccumulatorFromDense(m *mat.Dense) *Accumulator {
	return &Accumulator{
		Dense: m,
	}
}

// NumPhi returns the number of phi bins (rows)
func (a *Accumulator) NumPhi() int {
	r, _ := a.Dims()
	return r
}

// NumQpt returns the number of q/pT bins (columns)
func (a *Accumulator) NumQpt() int {
	_, c := a.Dims()
	return c
}

// CheckFinite validates that the grid has at least one bin in each dimension
// and contains no NaN or infinite vote counts
func (a *Accumulator) CheckFinite() error {

	r, c := a.Dims()

	if r < 1 || c < 1 {
		return fmt.Errorf("%w: accumulator has empty dimension %dx%d",
			ErrInvalidInput, r, c)
	}

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := a.At(i, j)

			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: non-finite vote count at bin (%d,%d)",
					ErrInvalidInput, i, j)
			}
		}
	}

	return nil
}

// MaxValue returns the largest vote count in the grid
func (a *Accumulator) MaxValue() float64 {

	r, c := a.Dims()
	max := math.Inf(-1)

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := a.At(i, j); v > max {
				max = v
			}
		}
	}

	return max
}
