package houghlite

import (
	"testing"
)

// TestMarkReconstructed checks the flag is set-once and counted
func TestMarkReconstructed(t *testing.T) {

	track := &Track{EventID: 1}

	if track.IsReconstructed() {
		t.Errorf("Expected a new track to be unreconstructed")
	}

	track.MarkReconstructed()
	track.MarkReconstructed()

	if !track.IsReconstructed() {
		t.Errorf("Expected the track to be reconstructed")
	}

	tc := NewTrackCollection([]*Track{track, {EventID: 1}})

	if tc.CountReconstructed() != 1 {
		t.Errorf("Expected 1 reconstructed track, got %d",
			tc.CountReconstructed())
	}
}

// TestFilterByVz checks the strict vertex range bounds
func TestFilterByVz(t *testing.T) {

	tc := NewTrackCollection([]*Track{
		{Vz: -250},
		{Vz: -200},
		{Vz: 0},
		{Vz: 199.9},
		{Vz: 200},
	})

	filtered := tc.FilterByVz(-200, 200)

	if filtered.Len() != 2 {
		t.Fatalf("Expected 2 tracks strictly inside the range, got %d",
			filtered.Len())
	}

	for _, tr := range filtered.Tracks() {
		if tr.Vz <= -200 || tr.Vz >= 200 {
			t.Errorf("Track with vz %v must not pass the strict range", tr.Vz)
		}
	}
}

// TestFilterByHits checks the strict minimum hit requirement
func TestFilterByHits(t *testing.T) {

	tc := NewTrackCollection([]*Track{
		{Hits: 3},
		{Hits: 4},
		{Hits: 5},
	})

	filtered := tc.FilterByHits(4)

	if filtered.Len() != 1 {
		t.Fatalf("Expected 1 track with more than 4 hits, got %d",
			filtered.Len())
	}

	if filtered.At(0).Hits != 5 {
		t.Errorf("Expected the 5 hit track, got %d hits", filtered.At(0).Hits)
	}
}

// TestFilterSharesPointers checks reconstruction flags set through a
// filtered collection propagate to the source
func TestFilterSharesPointers(t *testing.T) {

	tc := NewTrackCollection([]*Track{
		{Vz: 0, Hits: 8},
		{Vz: 300, Hits: 8},
	})

	filtered := tc.FilterByVz(-200, 200)
	filtered.At(0).MarkReconstructed()

	if tc.CountReconstructed() != 1 {
		t.Errorf("Expected the flag to propagate to the source collection")
	}
}

// TestByEvent checks grouping by event ID
func TestByEvent(t *testing.T) {

	tc := NewTrackCollection([]*Track{
		{EventID: 1},
		{EventID: 2},
		{EventID: 1},
	})

	byEvent := tc.ByEvent()

	if len(byEvent) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(byEvent))
	}

	if len(byEvent[1]) != 2 || len(byEvent[2]) != 1 {
		t.Errorf("Unexpected grouping: %d tracks in event 1, %d in event 2",
			len(byEvent[1]), len(byEvent[2]))
	}
}

// TestReconstructed checks the reconstructed-only view
func TestReconstructed(t *testing.T) {

	first := &Track{EventID: 1}
	first.MarkReconstructed()

	tc := NewTrackCollection([]*Track{first, {EventID: 2}})

	rec := tc.Reconstructed()

	if rec.Len() != 1 || rec.At(0) != first {
		t.Errorf("Expected only the reconstructed track in the view")
	}
}
