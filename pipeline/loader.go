/*
Package pipeline drives the peak detection, track slicing and matching
stages across the histograms of an analysis run.

The pipeline does not know how event data is stored.  Histograms and true
tracks come from a caller supplied Loader and the accumulated results leave
through a Sink, so file formats, plotting and persistence stay outside the
core.
*/
package pipeline

import (
	houghlite "github.com/swdee/go-houghlite"
)

// Histogram is one Hough accumulator delivered by a Loader, identified by
// the event and angular slice it was filled for
type Histogram struct {
	// EventID identifies the event the accumulator was filled from
	EventID int
	// Slice is the angular slice number, FullRange (-1) for the whole
	// accumulator
	Slice int
	// Grid holds the vote counts
	Grid *houghlite.Accumulator
}

// Loader supplies accumulator histograms and the true tracks of each event.
// The pipeline does not know the underlying storage format
type Loader interface {
	// Next returns the next histogram of the run, or io.EOF when the run
	// is exhausted
	Next() (*Histogram, error)

	// Tracks returns the true tracks recorded for the given event
	Tracks(eventID int) (*houghlite.TrackCollection, error)
}

// Sink receives the analysis products once a run completes
type Sink interface {
	// WriteSquares receives the labeled training squares of the run
	WriteSquares(squares *houghlite.SquareCollection) error

	// WriteTracks receives the true tracks of the run with their final
	// reconstruction state
	WriteTracks(tracks *houghlite.TrackCollection) error
}

// Progress is invoked synchronously after each slice is processed with the
// counts of that slice.  It only receives counts, formatting and display
// are the caller's concern
type Progress func(eventID, sliceNum, peaksFound, tracksInSlice, matched int)
