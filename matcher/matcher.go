/*
Package matcher associates detected accumulator peaks with the true tracks
that produced them and extracts labeled training squares.

Assignment is greedy nearest-neighbour: all (track, peak) pairs within
tolerance are ranked by ascending distance and the closest remaining pair is
assigned first.  This is the defined tie-break policy rather than an optimal
bipartite matching.
*/
package matcher

import (
	"math"
	"sort"

	houghlite "github.com/swdee/go-houghlite"
	"github.com/swdee/go-houghlite/peaks"
)

// Matcher classifies detected peaks against true tracks and extracts
// training squares around them
type Matcher struct {
	// Params are the Hough accumulator and matching parameters
	Params houghlite.HoughParams
}

// NewMatcher returns an instance of the peak to track matcher
func NewMatcher(p houghlite.HoughParams) *Matcher {
	return &Matcher{
		Params: p,
	}
}

// pair is a (track, peak) candidate within matching tolerance
type pair struct {
	track int
	peak  int
	dist  float64
}

// MatchAndExtract matches detected peaks against the true tracks of the
// active slice and extracts a training square around every peak.  Matched
// tracks are marked reconstructed and their peaks labeled true positives,
// all remaining peaks become false positives.  The returned mask is aligned
// with the detected peak slice and holds true where the peak matched a
// track.  An empty peak list is not an error and produces an empty
// collection with all tracks left unreconstructed
func (m *Matcher) MatchAndExtract(grid *houghlite.Accumulator,
	detected []peaks.Peak, tracks *houghlite.TrackCollection,
	eventID, sliceNum int) (*houghlite.SquareCollection, []bool, error) {

	if err := m.Params.Validate(); err != nil {
		return nil, nil, err
	}

	mask := m.assign(detected, tracks)

	squares := houghlite.NewSquareCollection()

	for i, p := range detected {
		squares.Add(m.extractSquare(grid, p, mask[i], eventID, sliceNum))
	}

	return squares, mask, nil
}

// assign performs the greedy nearest-neighbour assignment and marks matched
// tracks reconstructed.  A zero tolerance produces no matches
func (m *Matcher) assign(detected []peaks.Peak,
	tracks *houghlite.TrackCollection) []bool {

	mask := make([]bool, len(detected))

	if m.Params.Tolerance <= 0 || len(detected) == 0 || tracks.Len() == 0 {
		return mask
	}

	// collect all candidate pairs within tolerance
	var pairs []pair

	for ti, t := range tracks.Tracks() {

		expected := peaks.Peak{
			X: t.QptBin,
			Y: t.PhiBin,
		}

		for pi, p := range detected {
			d := p.DistanceTo(expected)

			if d <= m.Params.Tolerance {
				pairs = append(pairs, pair{
					track: ti,
					peak:  pi,
					dist:  d,
				})
			}
		}
	}

	// globally closest pair first, ties resolved by track then peak order
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].dist < pairs[j].dist
	})

	trackUsed := make([]bool, tracks.Len())

	for _, pr := range pairs {

		if trackUsed[pr.track] || mask[pr.peak] {
			continue
		}

		trackUsed[pr.track] = true
		mask[pr.peak] = true
		tracks.At(pr.track).MarkReconstructed()
	}

	return mask
}

// extractSquare copies the sub-grid of side 2*SquareSize+1 centred on the
// peak's rounded coordinates.  Cells beyond the accumulator boundary stay
// zero so every square has uniform shape
func (m *Matcher) extractSquare(grid *houghlite.Accumulator, p peaks.Peak,
	matched bool, eventID, sliceNum int) *houghlite.TrainingSquare {

	size := m.Params.SquareSize
	side := 2*size + 1

	rows, cols := grid.Dims()

	cy := int(math.Round(p.Y))
	cx := int(math.Round(p.X))

	data := make([]float64, side*side)

	for r := 0; r < side; r++ {

		gr := cy - size + r

		if gr < 0 || gr >= rows {
			continue
		}

		for c := 0; c < side; c++ {

			gc := cx - size + c

			if gc < 0 || gc >= cols {
				continue
			}

			data[r*side+c] = grid.At(gr, gc)
		}
	}

	return &houghlite.TrainingSquare{
		Side:         side,
		Data:         data,
		TruePositive: matched,
		PeakX:        p.X,
		PeakY:        p.Y,
		EventID:      eventID,
		Slice:        sliceNum,
	}
}
