/*
Package peaks locates local maxima in Hough accumulator grids.

The search compares every cell against its clipped Chebyshev neighbourhood,
applies combined absolute/relative thresholds and enforces a minimum
separation between the returned peaks through non-maximum suppression.
*/
package peaks

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	houghlite "github.com/swdee/go-houghlite"
)

// Detector finds local maxima in a 2D Hough accumulator
type Detector struct {
	// Params are the peak detection parameters
	Params houghlite.PeakParams
}

// NewDetector returns an instance of the peak detector
func NewDetector(p houghlite.PeakParams) *Detector {
	return &Detector{
		Params: p,
	}
}

// candidate is a cell that passed the threshold and local maximum tests
type candidate struct {
	row, col int
	// value is the search grid (smoothed when configured) vote count used
	// for suppression ranking
	value float64
	// order is the row-major detection order used for deterministic tie
	// breaks
	order int
}

// Find locates the local maxima of the accumulator and returns them ordered
// by descending height.  Heights are always reported from the unsmoothed
// grid at the detected coordinates, even when smoothing is enabled for
// localisation
func (d *Detector) Find(grid *houghlite.Accumulator) ([]Peak, error) {

	if err := d.Params.Validate(); err != nil {
		return nil, err
	}

	if err := grid.CheckFinite(); err != nil {
		return nil, err
	}

	// search the smoothed copy when configured, report heights from the
	// original
	var search mat.Matrix = grid

	if d.Params.SmoothSigma > 0 {
		search = gaussianSmooth(grid, d.Params.SmoothSigma)
	}

	threshold := d.effectiveThreshold(search)
	cands := d.collectCandidates(search, threshold)
	kept := d.suppress(cands)

	// build peaks with original grid heights
	result := make([]Peak, 0, len(kept))

	for _, c := range kept {
		result = append(result, Peak{
			X:      float64(c.col),
			Y:      float64(c.row),
			Height: grid.At(c.row, c.col),
		})
	}

	// order by descending height, detection order on ties
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Height > result[j].Height
	})

	return result, nil
}

// effectiveThreshold combines the absolute threshold with the relative
// threshold scaled by the search grid maximum
func (d *Detector) effectiveThreshold(search mat.Matrix) float64 {

	threshold := d.Params.ThresholdAbs

	if d.Params.ThresholdRel > 0 {
		rel := d.Params.ThresholdRel * mat.Max(search)

		if rel > threshold {
			threshold = rel
		}
	}

	return threshold
}

// collectCandidates scans every cell and keeps those strictly above the
// threshold that are the maximum of their Chebyshev neighbourhood of
// half-width MinDistance.  The neighbourhood is clipped at the grid edges.
// Equal valued cells within one neighbourhood resolve to the lowest row,
// then lowest column
func (d *Detector) collectCandidates(search mat.Matrix, threshold float64) []candidate {

	rows, cols := search.Dims()
	dist := d.Params.MinDistance

	var cands []candidate

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {

			v := search.At(i, j)

			if v <= threshold {
				continue
			}

			if !isNeighbourhoodMax(search, i, j, v, dist, rows, cols) {
				continue
			}

			cands = append(cands, candidate{
				row:   i,
				col:   j,
				value: v,
				order: len(cands),
			})
		}
	}

	return cands
}

// isNeighbourhoodMax reports whether cell (i,j) holds the maximum of its
// clipped neighbourhood.  A tie with another cell only disqualifies (i,j)
// when the other cell precedes it in row-major order
func isNeighbourhoodMax(search mat.Matrix, i, j int, v float64, dist,
	rows, cols int) bool {

	iLo := max(0, i-dist)
	iHi := min(rows-1, i+dist)
	jLo := max(0, j-dist)
	jHi := min(cols-1, j+dist)

	for i2 := iLo; i2 <= iHi; i2++ {
		for j2 := jLo; j2 <= jHi; j2++ {

			if i2 == i && j2 == j {
				continue
			}

			v2 := search.At(i2, j2)

			if v2 > v {
				return false
			}

			if v2 == v && (i2 < i || (i2 == i && j2 < j)) {
				return false
			}
		}
	}

	return true
}

// suppress drops any candidate lying within Euclidean distance MinDistance
// of a higher ranked one.  Rank is by descending search value with ties
// resolved by detection order
func (d *Detector) suppress(cands []candidate) []candidate {

	ranked := make([]candidate, len(cands))
	copy(ranked, cands)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].value > ranked[j].value
	})

	minDist := float64(d.Params.MinDistance)
	kept := make([]candidate, 0, len(ranked))

	for _, c := range ranked {

		suppressed := false

		for _, k := range kept {
			dr := float64(c.row - k.row)
			dc := float64(c.col - k.col)

			if dr*dr+dc*dc < minDist*minDist {
				suppressed = true
				break
			}
		}

		if !suppressed {
			kept = append(kept, c)
		}
	}

	return kept
}

func max(a, b int) int {
	if a > b {
		return a
	}

	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}

	return b
}
