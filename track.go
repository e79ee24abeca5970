package houghlite

// Track represents a true particle track in the detector along with its
// expected position in the Hough accumulator
type Track struct {
	// EventID is the identifier of the event the track belongs to
	EventID int
	// PhiBin is the expected phi bin (row) of the track in the accumulator
	PhiBin float64
	// QptBin is the expected q/pT bin (column) of the track
	QptBin float64
	// Eta is the track pseudorapidity
	Eta float64
	// Vz is the vertex z-position
	Vz float64
	// Hits is the number of detector hits on the track
	Hits int
	// PzOverPt is the ratio of longitudinal to transverse momentum
	PzOverPt float64
	// ParticleType is the PDG particle ID
	ParticleType int
	// Charge is the electric charge in units of e resolved from the
	// particle type
	Charge float64
	// Phi is the azimuthal angle at the vertex
	Phi float64
	// Pt is the transverse momentum
	Pt float64
	// Pz is the longitudinal momentum
	Pz float64

	// reconstructed records whether a detected peak was matched to the
	// track.  Once set it is never cleared
	reconstructed bool
}

// MarkReconstructed records that a peak was matched to the track
func (t *Track) MarkReconstructed() {
	t.reconstructed = true
}

// IsReconstructed reports whether the track has been matched to a peak
func (t *Track) IsReconstructed() bool {
	return t.reconstructed
}

// InVzRange reports whether the track vertex lies strictly inside the given
// z range
func (t *Track) InVzRange(vzMin, vzMax float64) bool {
	return vzMin < t.Vz && t.Vz < vzMax
}

// TrackCollection is an ordered container of the tracks for one event.  It
// owns its tracks exclusively for the duration of the event analysis
type TrackCollection struct {
	tracks []*Track
}

// NewTrackCollection returns a collection holding the given tracks
func NewTrackCollection(tracks []*Track) *TrackCollection {
	return &TrackCollection{
		tracks: tracks,
	}
}

// Add appends a track to the collection
func (tc *TrackCollection) Add(t *Track) {
	tc.tracks = append(tc.tracks, t)
}

// Len returns the number of tracks in the collection
func (tc *TrackCollection) Len() int {
	return len(tc.tracks)
}

// At returns the track at the given index
func (tc *TrackCollection) At(i int) *Track {
	return tc.tracks[i]
}

// Tracks returns the underlying track slice in insertion order
func (tc *TrackCollection) Tracks() []*Track {
	return tc.tracks
}

// FilterByVz returns a new collection holding the tracks whose vertex
// z-position lies strictly inside the given range.  The returned collection
// shares track pointers with the receiver so reconstruction flags propagate
func (tc *TrackCollection) FilterByVz(vzMin, vzMax float64) *TrackCollection {

	filtered := make([]*Track, 0, len(tc.tracks))

	for _, t := range tc.tracks {
		if t.InVzRange(vzMin, vzMax) {
			filtered = append(filtered, t)
		}
	}

	return NewTrackCollection(filtered)
}

// FilterByHits returns a new collection holding the tracks with more than
// the given number of detector hits
func (tc *TrackCollection) FilterByHits(minHits int) *TrackCollection {

	filtered := make([]*Track, 0, len(tc.tracks))

	for _, t := range tc.tracks {
		if t.Hits > minHits {
			filtered = append(filtered, t)
		}
	}

	return NewTrackCollection(filtered)
}

// ByEvent returns the tracks grouped by event ID
func (tc *TrackCollection) ByEvent() map[int][]*Track {

	byEvent := make(map[int][]*Track)

	for _, t := range tc.tracks {
		byEvent[t.EventID] = append(byEvent[t.EventID], t)
	}

	return byEvent
}

// CountReconstructed returns the number of tracks matched to a peak
func (tc *TrackCollection) CountReconstructed() int {

	count := 0

	for _, t := range tc.tracks {
		if t.IsReconstructed() {
			count++
		}
	}

	return count
}

// Reconstructed returns a new collection holding only the tracks matched to
// a peak
func (tc *TrackCollection) Reconstructed() *TrackCollection {

	filtered := make([]*Track, 0, len(tc.tracks))

	for _, t := range tc.tracks {
		if t.IsReconstructed() {
			filtered = append(filtered, t)
		}
	}

	return NewTrackCollection(filtered)
}
