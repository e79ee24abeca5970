package houghlite

import (
	"fmt"
)

// HoughParams defines the struct containing the Hough accumulator binning
// and matching parameters
type HoughParams struct {
	// NbinPhi is the number of phi bins in the accumulator (rows)
	NbinPhi int
	// NbinQpt is the number of q/pT bins in the accumulator (columns)
	NbinQpt int
	// SquareSize is the half-width of the training squares extracted
	// around each peak, giving squares of side 2*SquareSize+1
	SquareSize int
	// Tolerance is the maximum Euclidean distance in bins between a
	// detected peak and a true track position for the pair to be matched
	Tolerance float64
}

// DefaultHoughParams returns an instance of HoughParams configured with the
// binning used for the ttbar/particle-gun accumulator samples featuring:
//   - Phi bins: 7000
//   - q/pT bins: 216
//   - Square half-width: 16
//   - Match tolerance: 6 bins
func DefaultHoughParams() HoughParams {
	return HoughParams{
		NbinPhi:    7000,
		NbinQpt:    216,
		SquareSize: 16,
		Tolerance:  6.0,
	}
}

// Validate checks the Hough parameters are usable for matching and square
// extraction
func (p HoughParams) Validate() error {

	if p.NbinPhi < 1 || p.NbinQpt < 1 {
		return fmt.Errorf("%w: accumulator binning %dx%d must be positive",
			ErrConfiguration, p.NbinPhi, p.NbinQpt)
	}

	if p.SquareSize <= 0 {
		return fmt.Errorf("%w: square size %d must be positive",
			ErrConfiguration, p.SquareSize)
	}

	if p.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance %f must not be negative",
			ErrConfiguration, p.Tolerance)
	}

	return nil
}

// PeakParams defines the struct containing the peak detection parameters
type PeakParams struct {
	// ThresholdAbs is the absolute minimum vote count for a cell to be
	// considered a peak candidate
	ThresholdAbs float64
	// ThresholdRel is the minimum vote count expressed as a fraction of
	// the grid maximum.  The effective threshold is the larger of the
	// absolute and relative thresholds
	ThresholdRel float64
	// MinDistance is the half-width of the local maximum neighbourhood
	// and the minimum separation enforced between returned peaks
	MinDistance int
	// SmoothSigma is the Gaussian smoothing sigma applied before the
	// maxima search.  Zero disables smoothing.  Peak heights are always
	// reported from the unsmoothed grid
	SmoothSigma float64
}

// DefaultPeakParams returns an instance of PeakParams configured with
// default values:
//   - Absolute threshold: 5 votes
//   - Relative threshold: disabled (0)
//   - Minimum peak separation: 2 bins
//   - Smoothing: disabled (0)
func DefaultPeakParams() PeakParams {
	return PeakParams{
		ThresholdAbs: 5.0,
		ThresholdRel: 0.0,
		MinDistance:  2,
		SmoothSigma:  0.0,
	}
}

// Validate checks the peak detection parameters
func (p PeakParams) Validate() error {

	if p.ThresholdAbs < 0 {
		return fmt.Errorf("%w: absolute threshold %f must not be negative",
			ErrConfiguration, p.ThresholdAbs)
	}

	if p.ThresholdRel < 0 || p.ThresholdRel > 1 {
		return fmt.Errorf("%w: relative threshold %f must be in [0,1]",
			ErrConfiguration, p.ThresholdRel)
	}

	if p.MinDistance < 1 {
		return fmt.Errorf("%w: minimum distance %d must be at least 1",
			ErrConfiguration, p.MinDistance)
	}

	if p.SmoothSigma < 0 {
		return fmt.Errorf("%w: smoothing sigma %f must not be negative",
			ErrConfiguration, p.SmoothSigma)
	}

	return nil
}

// ProcessingParams defines the struct containing the event processing
// parameters
type ProcessingParams struct {
	// SliceList is the list of slice numbers to process.  Slice -1 is a
	// sentinel meaning the full angular range
	SliceList []int
	// TotalSlices is the number of angular slices the accumulator range
	// is divided into
	TotalSlices int
	// MinHits is the minimum number of detector hits for a true track to
	// be considered
	MinHits int
	// VzRange is the accepted vertex z-position range (min, max)
	VzRange [2]float64
	// PhiOffset shifts slice windows by the given number of phi bins,
	// wrapping around the angular boundary
	PhiOffset float64
	// Easing is the name of the registered easing strategy used to place
	// slice boundaries
	Easing string
}

// DefaultProcessingParams returns an instance of ProcessingParams configured
// with default values:
//   - Slices: full range only (-1)
//   - Total slices: 32
//   - Minimum hits: 4
//   - Vertex z range: (-200, 200)
//   - Easing: InSquare
func DefaultProcessingParams() ProcessingParams {
	return ProcessingParams{
		SliceList:   []int{-1},
		TotalSlices: 32,
		MinHits:     4,
		VzRange:     [2]float64{-200, 200},
		PhiOffset:   0,
		Easing:      "InSquare",
	}
}

// Validate checks the processing parameters
func (p ProcessingParams) Validate() error {

	if p.TotalSlices < 1 {
		return fmt.Errorf("%w: total slices %d must be positive",
			ErrConfiguration, p.TotalSlices)
	}

	for _, s := range p.SliceList {
		if s < -1 || s >= p.TotalSlices {
			return fmt.Errorf("%w: slice %d outside range [-1,%d)",
				ErrConfiguration, s, p.TotalSlices)
		}
	}

	if p.MinHits < 0 {
		return fmt.Errorf("%w: minimum hits %d must not be negative",
			ErrConfiguration, p.MinHits)
	}

	if p.VzRange[0] >= p.VzRange[1] {
		return fmt.Errorf("%w: vertex z range (%f,%f) is empty",
			ErrConfiguration, p.VzRange[0], p.VzRange[1])
	}

	return nil
}
