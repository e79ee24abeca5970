package pipeline

import (
	"fmt"
	"io"
	"sort"
	"sync"

	houghlite "github.com/swdee/go-houghlite"
	"github.com/swdee/go-houghlite/matcher"
	"github.com/swdee/go-houghlite/peaks"
	"github.com/swdee/go-houghlite/slicer"
)

// Analysis orchestrates the peak detection, slicing and matching stages
// over the histograms of a run and aggregates the labeled squares and
// statistics
type Analysis struct {
	proc     houghlite.ProcessingParams
	detector *peaks.Detector
	slc      *slicer.Slicer
	match    *matcher.Matcher
	progress Progress

	squares *houghlite.SquareCollection
	stats   *Statistics

	// cacheMu guards the per event track cache
	cacheMu    sync.Mutex
	trackCache map[int]*houghlite.TrackCollection
}

// NewAnalysis returns an analysis run over the given parameters.  All
// configuration is validated here and not re-validated mid-run.  The
// progress callback may be nil
func NewAnalysis(hough houghlite.HoughParams, peak houghlite.PeakParams,
	proc houghlite.ProcessingParams, progress Progress) (*Analysis, error) {

	if err := peak.Validate(); err != nil {
		return nil, err
	}

	// validates the hough and processing parameters and resolves the
	// easing strategy
	slc, err := slicer.New(hough, proc)

	if err != nil {
		return nil, err
	}

	return &Analysis{
		proc:       proc,
		detector:   peaks.NewDetector(peak),
		slc:        slc,
		match:      matcher.NewMatcher(hough),
		progress:   progress,
		squares:    houghlite.NewSquareCollection(),
		stats:      NewStatistics(),
		trackCache: make(map[int]*houghlite.TrackCollection),
	}, nil
}

// Run processes every histogram the loader supplies, then flushes the
// accumulated squares and final track states to the sink.  A nil sink skips
// the flush.  Slices listed in the processing parameters are analysed, all
// others are counted and skipped
func (a *Analysis) Run(loader Loader, sink Sink) (Counts, error) {

	for {
		hist, err := loader.Next()

		if err == io.EOF {
			break
		}

		if err != nil {
			return a.stats.Counts(), fmt.Errorf("error loading histogram: %w", err)
		}

		if err := a.processHistogram(hist, loader); err != nil {
			return a.stats.Counts(), err
		}
	}

	if err := a.flush(sink); err != nil {
		return a.stats.Counts(), err
	}

	return a.stats.Counts(), nil
}

// Squares returns the labeled squares accumulated so far
func (a *Analysis) Squares() *houghlite.SquareCollection {
	return a.squares
}

// Stats returns a snapshot of the run totals
func (a *Analysis) Stats() Counts {
	return a.stats.Counts()
}

// sliceWanted reports whether the slice number is in the configured slice
// list
func (a *Analysis) sliceWanted(sliceNum int) bool {

	for _, s := range a.proc.SliceList {
		if s == sliceNum {
			return true
		}
	}

	return false
}

// eventTracks returns the minimum-hits filtered tracks of the given event,
// loading them on first use
func (a *Analysis) eventTracks(loader Loader, eventID int) (*houghlite.TrackCollection, error) {
	a.cacheMu.Lock()
	defer a.cacheMu.Unlock()

	if tracks, ok := a.trackCache[eventID]; ok {
		return tracks, nil
	}

	if loader == nil {
		return nil, fmt.Errorf("no tracks cached for event %d", eventID)
	}

	tracks, err := loader.Tracks(eventID)

	if err != nil {
		return nil, fmt.Errorf("error loading tracks for event %d: %w",
			eventID, err)
	}

	tracks = tracks.FilterByHits(a.proc.MinHits)
	a.trackCache[eventID] = tracks

	return tracks, nil
}

// processHistogram runs the detect, slice and match stages over one
// histogram
func (a *Analysis) processHistogram(hist *Histogram, loader Loader) error {

	a.stats.AddHistogram(hist.EventID)

	if !a.sliceWanted(hist.Slice) {
		return nil
	}

	tracks, err := a.eventTracks(loader, hist.EventID)

	if err != nil {
		return err
	}

	inSlice := a.slc.FilterTracksForSlice(tracks, hist.Slice)

	detected, err := a.detector.Find(hist.Grid)

	if err != nil {
		return fmt.Errorf("event %d slice %d: %w", hist.EventID, hist.Slice, err)
	}

	sliceSquares, mask, err := a.match.MatchAndExtract(hist.Grid, detected,
		inSlice, hist.EventID, hist.Slice)

	if err != nil {
		return fmt.Errorf("event %d slice %d: %w", hist.EventID, hist.Slice, err)
	}

	a.squares.AddAll(sliceSquares)

	matched := 0

	for _, m := range mask {
		if m {
			matched++
		}
	}

	a.stats.AddSlice(inSlice.Len(), matched,
		sliceSquares.TruePositiveCount(), sliceSquares.FalsePositiveCount())

	if a.progress != nil {
		a.progress(hist.EventID, hist.Slice, len(detected), inSlice.Len(),
			matched)
	}

	return nil
}

// flush hands the accumulated squares and the final track states of every
// loaded event to the sink
func (a *Analysis) flush(sink Sink) error {

	if sink == nil {
		return nil
	}

	if err := sink.WriteSquares(a.squares); err != nil {
		return fmt.Errorf("error writing squares: %w", err)
	}

	a.cacheMu.Lock()

	eventIDs := make([]int, 0, len(a.trackCache))

	for id := range a.trackCache {
		eventIDs = append(eventIDs, id)
	}

	sort.Ints(eventIDs)

	all := houghlite.NewTrackCollection(nil)

	for _, id := range eventIDs {
		for _, t := range a.trackCache[id].Tracks() {
			all.Add(t)
		}
	}

	a.cacheMu.Unlock()

	if err := sink.WriteTracks(all); err != nil {
		return fmt.Errorf("error writing tracks: %w", err)
	}

	return nil
}
