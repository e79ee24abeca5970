package pipeline

import (
	"sync"
)

// Counts holds the aggregate totals of an analysis run
type Counts struct {
	// Events is the number of distinct events seen
	Events int
	// Histograms is the number of histograms processed
	Histograms int
	// TrueTracks is the total number of true tracks over all processed
	// slices
	TrueTracks int
	// Matched is the number of tracks matched to a peak
	Matched int
	// TruePositives and FalsePositives are the labeled square counts
	TruePositives  int
	FalsePositives int
}

// Efficiency returns the fraction of true tracks matched to a peak, zero
// when no true tracks were seen
func (c Counts) Efficiency() float64 {

	if c.TrueTracks == 0 {
		return 0
	}

	return float64(c.Matched) / float64(c.TrueTracks)
}

// Statistics accumulates run counts.  Updates are serialized so pool
// workers can record slices concurrently
type Statistics struct {
	mu     sync.Mutex
	counts Counts
	events map[int]struct{}
}

// NewStatistics returns an empty statistics accumulator
func NewStatistics() *Statistics {
	return &Statistics{
		events: make(map[int]struct{}),
	}
}

// AddHistogram records one processed histogram and its event
func (s *Statistics) AddHistogram(eventID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counts.Histograms++

	if _, ok := s.events[eventID]; !ok {
		s.events[eventID] = struct{}{}
		s.counts.Events++
	}
}

// AddSlice records the outcome of one processed slice
func (s *Statistics) AddSlice(trueTracks, matched, truePos, falsePos int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counts.TrueTracks += trueTracks
	s.counts.Matched += matched
	s.counts.TruePositives += truePos
	s.counts.FalsePositives += falsePos
}

// Counts returns a snapshot of the current totals
func (s *Statistics) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counts
}
