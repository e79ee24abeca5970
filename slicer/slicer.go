package slicer

import (
	"math"

	houghlite "github.com/swdee/go-houghlite"
)

// FullRange is the sentinel slice number selecting the full angular range,
// bypassing the easing function
const FullRange = -1

// Slicer selects the subset of true tracks whose angular coordinate falls
// inside a slice's eased window, treating the phi axis as circular
type Slicer struct {
	hough houghlite.HoughParams
	proc  houghlite.ProcessingParams
	ease  EasingFunc
}

// New returns a Slicer using the easing strategy named in the processing
// parameters
func New(hough houghlite.HoughParams, proc houghlite.ProcessingParams) (*Slicer, error) {

	if err := hough.Validate(); err != nil {
		return nil, err
	}

	if err := proc.Validate(); err != nil {
		return nil, err
	}

	ease, err := ForName(proc.Easing)

	if err != nil {
		return nil, err
	}

	return &Slicer{
		hough: hough,
		proc:  proc,
		ease:  ease,
	}, nil
}

// Window returns the [start, end) phi bin window of the given slice.  The
// normalised slice boundaries are mapped through the easing function and
// scaled to the full angular range.  Slice FullRange returns the whole
// range.  A configured phi offset shifts the window and may wrap it past
// the angular boundary, in which case end is smaller than start
func (s *Slicer) Window(sliceIdx, totalSlices int) (float64, float64) {

	nbin := float64(s.hough.NbinPhi)

	if sliceIdx == FullRange {
		return 0, nbin
	}

	t0 := float64(sliceIdx) / float64(totalSlices)
	t1 := float64(sliceIdx+1) / float64(totalSlices)

	start := s.ease(t0) * nbin
	end := s.ease(t1) * nbin

	if s.proc.PhiOffset != 0 {
		start = wrapPhi(start+s.proc.PhiOffset, nbin)
		end = wrapPhi(end+s.proc.PhiOffset, nbin)
	}

	return start, end
}

// Contains reports whether the given phi bin falls inside a window.  A
// window with end < start wraps around the angular boundary and covers
// [start, nbin) joined with [0, end)
func (s *Slicer) Contains(phiBin, start, end float64) bool {

	if end < start {
		return phiBin >= start || phiBin < end
	}

	return phiBin >= start && phiBin < end
}

// FilterTracksForSlice returns the tracks belonging to the given slice.
// The vertex z-position range applies to every slice.  Slice FullRange
// retains all angles but drops tracks whose q/pT bin lies within a square
// half-width of the grid edge, where extracted squares would be dominated
// by padding.  The returned collection shares track pointers with the input
// so reconstruction flags propagate
func (s *Slicer) FilterTracksForSlice(tracks *houghlite.TrackCollection,
	sliceIdx int) *houghlite.TrackCollection {

	filtered := tracks.FilterByVz(s.proc.VzRange[0], s.proc.VzRange[1])

	if sliceIdx == FullRange {
		return s.filterEdgeMargin(filtered)
	}

	start, end := s.Window(sliceIdx, s.proc.TotalSlices)

	inSlice := houghlite.NewTrackCollection(nil)

	for _, t := range filtered.Tracks() {
		if s.Contains(t.PhiBin, start, end) {
			inSlice.Add(t)
		}
	}

	return inSlice
}

// filterEdgeMargin keeps tracks whose q/pT bin is more than a square
// half-width away from either grid edge
func (s *Slicer) filterEdgeMargin(tracks *houghlite.TrackCollection) *houghlite.TrackCollection {

	size := float64(s.hough.SquareSize)
	hi := float64(s.hough.NbinQpt) - size

	kept := houghlite.NewTrackCollection(nil)

	for _, t := range tracks.Tracks() {
		if t.QptBin > size && t.QptBin < hi {
			kept.Add(t)
		}
	}

	return kept
}

// wrapPhi reduces a phi bin coordinate into [0, nbin)
func wrapPhi(phi, nbin float64) float64 {

	phi = math.Mod(phi, nbin)

	if phi < 0 {
		phi += nbin
	}

	return phi
}
