package houghlite

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

// TrainingSquare is a fixed size sub-grid snapshot extracted around a
// detected peak, labeled by whether the peak matched a true track.  It is
// never mutated after construction
type TrainingSquare struct {
	// Side is the width and height of the square in bins
	Side int
	// Data holds the vote counts in row-major order, zero padded where the
	// square extends past the accumulator boundary
	Data []float64
	// TruePositive records whether the source peak was matched to a true
	// track within tolerance
	TruePositive bool
	// PeakX and PeakY are the accumulator coordinates of the source peak
	PeakX float64
	PeakY float64
	// EventID and Slice identify the histogram the square was extracted
	// from
	EventID int
	Slice   int
}

// At returns the vote count at row r, column c of the square
func (s *TrainingSquare) At(r, c int) float64 {
	return s.Data[r*s.Side+c]
}

// MaxValue returns the largest vote count in the square
func (s *TrainingSquare) MaxValue() float64 {

	max := 0.0

	for _, v := range s.Data {
		if v > max {
			max = v
		}
	}

	return max
}

// SquareSummary holds the aggregate counts of a square collection
type SquareSummary struct {
	TruePositives  int
	FalsePositives int
	Total          int
	// TruePositiveRatio is TruePositives over Total, zero when empty
	TruePositiveRatio float64
}

// SquareCollection aggregates training squares across an entire analysis
// run.  It is append-only and grows monotonically for the run's lifetime.
// Appending is serialized so a parallelized orchestrator can add squares
// from concurrent events
type SquareCollection struct {
	mu      sync.Mutex
	squares []*TrainingSquare
	numTrue int
}

// NewSquareCollection returns an empty square collection
func NewSquareCollection() *SquareCollection {
	return &SquareCollection{}
}

// Add appends a square to the collection
func (sc *SquareCollection) Add(s *TrainingSquare) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.squares = append(sc.squares, s)

	if s.TruePositive {
		sc.numTrue++
	}
}

// AddAll appends every square of another collection
func (sc *SquareCollection) AddAll(other *SquareCollection) {
	for _, s := range other.Squares() {
		sc.Add(s)
	}
}

// Len returns the number of squares in the collection
func (sc *SquareCollection) Len() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	return len(sc.squares)
}

// Squares returns a snapshot of the collected squares in insertion order
func (sc *SquareCollection) Squares() []*TrainingSquare {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	out := make([]*TrainingSquare, len(sc.squares))
	copy(out, sc.squares)

	return out
}

// TruePositiveCount returns the number of squares labeled as matched peaks
func (sc *SquareCollection) TruePositiveCount() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	return sc.numTrue
}

// FalsePositiveCount returns the number of squares labeled as unmatched
// peaks
func (sc *SquareCollection) FalsePositiveCount() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	return len(sc.squares) - sc.numTrue
}

// Summary returns the aggregate counts of the collection
func (sc *SquareCollection) Summary() SquareSummary {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	s := SquareSummary{
		TruePositives:  sc.numTrue,
		FalsePositives: len(sc.squares) - sc.numTrue,
		Total:          len(sc.squares),
	}

	if s.Total > 0 {
		s.TruePositiveRatio = float64(s.TruePositives) / float64(s.Total)
	}

	return s
}

// TrainingData returns the collection as a stacked feature matrix with one
// flattened square per row, along with the aligned label vector holding 1
// for true positives and 0 for false positives.  A nil matrix is returned
// when the collection is empty
func (sc *SquareCollection) TrainingData() (*mat.Dense, []float64) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if len(sc.squares) == 0 {
		return nil, nil
	}

	cols := sc.squares[0].Side * sc.squares[0].Side
	features := mat.NewDense(len(sc.squares), cols, nil)
	labels := make([]float64, len(sc.squares))

	for i, s := range sc.squares {
		features.SetRow(i, s.Data)

		if s.TruePositive {
			labels[i] = 1
		}
	}

	return features, labels
}
