package peaks

import (
	"errors"
	"math"
	"testing"

	houghlite "github.com/swdee/go-houghlite"
)

// testParams returns detector parameters used across the tests
func testParams() houghlite.PeakParams {
	return houghlite.PeakParams{
		ThresholdAbs: 5.0,
		ThresholdRel: 0.0,
		MinDistance:  2,
		SmoothSigma:  0.0,
	}
}

// gridWithSpikes returns a zeroed grid with the given (row, col, height)
// spikes set
func gridWithSpikes(rows, cols int, spikes [][3]float64) *houghlite.Accumulator {

	grid := houghlite.NewAccumulator(rows, cols)

	for _, s := range spikes {
		grid.Set(int(s[0]), int(s[1]), s[2])
	}

	return grid
}

// TestFindSingleSpike checks the scenario of one isolated spike in an
// otherwise empty grid
func TestFindSingleSpike(t *testing.T) {

	grid := gridWithSpikes(10, 10, [][3]float64{{5, 5, 20.0}})

	d := NewDetector(testParams())
	found, err := d.Find(grid)

	if err != nil {
		t.Fatalf("Find returned an error: %v", err)
	}

	if len(found) != 1 {
		t.Fatalf("Expected 1 peak, got %d", len(found))
	}

	p := found[0]

	if p.X != 5 || p.Y != 5 || p.Height != 20.0 {
		t.Errorf("Expected Peak(5, 5, 20.0), got Peak(%v, %v, %v)",
			p.X, p.Y, p.Height)
	}
}

// TestFindThresholdFloor checks cells at or below the effective threshold
// are never returned
func TestFindThresholdFloor(t *testing.T) {

	// one spike below the threshold, one exactly at it
	grid := gridWithSpikes(10, 10, [][3]float64{
		{2, 2, 4.0},
		{7, 7, 5.0},
	})

	d := NewDetector(testParams())
	found, err := d.Find(grid)

	if err != nil {
		t.Fatalf("Find returned an error: %v", err)
	}

	if len(found) != 0 {
		t.Errorf("Expected no peaks at or below threshold, got %d", len(found))
	}
}

// TestFindRelativeThreshold checks the effective threshold is the larger
// of absolute and relative thresholds
func TestFindRelativeThreshold(t *testing.T) {

	grid := gridWithSpikes(10, 10, [][3]float64{
		{5, 5, 20.0},
		{2, 2, 6.0},
	})

	p := testParams()
	p.ThresholdRel = 0.5 // effective threshold 10

	d := NewDetector(p)
	found, err := d.Find(grid)

	if err != nil {
		t.Fatalf("Find returned an error: %v", err)
	}

	if len(found) != 1 {
		t.Fatalf("Expected 1 peak above relative threshold, got %d", len(found))
	}

	if found[0].Height != 20.0 {
		t.Errorf("Expected the 20.0 spike, got height %v", found[0].Height)
	}
}

// TestFindMinDistance checks that no two returned peaks are closer than
// the minimum distance
func TestFindMinDistance(t *testing.T) {

	// the 8.0 spike sits inside the neighbourhood of the 10.0 spike
	grid := gridWithSpikes(10, 10, [][3]float64{
		{2, 2, 10.0},
		{2, 4, 8.0},
		{2, 8, 7.0},
	})

	p := testParams()
	p.MinDistance = 3

	d := NewDetector(p)
	found, err := d.Find(grid)

	if err != nil {
		t.Fatalf("Find returned an error: %v", err)
	}

	if len(found) != 2 {
		t.Fatalf("Expected 2 peaks, got %d", len(found))
	}

	for i := 0; i < len(found); i++ {
		for j := i + 1; j < len(found); j++ {
			if found[i].DistanceTo(found[j]) < float64(p.MinDistance) {
				t.Errorf("Peaks %d and %d closer than minimum distance: %v",
					i, j, found[i].DistanceTo(found[j]))
			}
		}
	}
}

// TestFindOrdering checks peaks are returned in descending height order
func TestFindOrdering(t *testing.T) {

	grid := gridWithSpikes(20, 20, [][3]float64{
		{2, 2, 10.0},
		{10, 10, 30.0},
		{16, 4, 20.0},
	})

	d := NewDetector(testParams())
	found, err := d.Find(grid)

	if err != nil {
		t.Fatalf("Find returned an error: %v", err)
	}

	if len(found) != 3 {
		t.Fatalf("Expected 3 peaks, got %d", len(found))
	}

	expected := []float64{30.0, 20.0, 10.0}

	for i, h := range expected {
		if found[i].Height != h {
			t.Errorf("Expected height %v at rank %d, got %v", h, i,
				found[i].Height)
		}
	}
}

// TestFindPlateauTieBreak checks equal valued neighbouring cells resolve
// to the lowest row then lowest column
func TestFindPlateauTieBreak(t *testing.T) {

	grid := gridWithSpikes(10, 10, [][3]float64{
		{4, 4, 10.0},
		{4, 5, 10.0},
		{5, 4, 10.0},
		{5, 5, 10.0},
	})

	d := NewDetector(testParams())
	found, err := d.Find(grid)

	if err != nil {
		t.Fatalf("Find returned an error: %v", err)
	}

	if len(found) != 1 {
		t.Fatalf("Expected 1 peak from the plateau, got %d", len(found))
	}

	if found[0].Y != 4 || found[0].X != 4 {
		t.Errorf("Expected plateau peak at (4,4), got (%v,%v)",
			found[0].X, found[0].Y)
	}
}

// TestFindBoundaryPeak checks cells near the grid edge stay eligible with
// a clipped neighbourhood
func TestFindBoundaryPeak(t *testing.T) {

	grid := gridWithSpikes(10, 10, [][3]float64{{0, 0, 20.0}})

	d := NewDetector(testParams())
	found, err := d.Find(grid)

	if err != nil {
		t.Fatalf("Find returned an error: %v", err)
	}

	if len(found) != 1 {
		t.Fatalf("Expected 1 corner peak, got %d", len(found))
	}

	if found[0].X != 0 || found[0].Y != 0 {
		t.Errorf("Expected peak at (0,0), got (%v,%v)", found[0].X, found[0].Y)
	}
}

// TestFindNonFinite checks grids with non-finite vote counts are rejected
func TestFindNonFinite(t *testing.T) {

	grid := houghlite.NewAccumulator(5, 5)
	grid.Set(2, 2, math.NaN())

	d := NewDetector(testParams())
	_, err := d.Find(grid)

	if !errors.Is(err, houghlite.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

// TestFindInvalidParams checks parameter validation runs at entry
func TestFindInvalidParams(t *testing.T) {

	grid := houghlite.NewAccumulator(5, 5)

	p := testParams()
	p.MinDistance = 0

	d := NewDetector(p)
	_, err := d.Find(grid)

	if !errors.Is(err, houghlite.ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration, got %v", err)
	}
}

// TestFindSmoothedHeight checks smoothing localises on the blurred grid
// but reports heights from the original
func TestFindSmoothedHeight(t *testing.T) {

	grid := gridWithSpikes(11, 11, [][3]float64{{5, 5, 100.0}})

	p := testParams()
	p.SmoothSigma = 1.0
	p.ThresholdAbs = 1.0

	d := NewDetector(p)
	found, err := d.Find(grid)

	if err != nil {
		t.Fatalf("Find returned an error: %v", err)
	}

	if len(found) != 1 {
		t.Fatalf("Expected 1 peak, got %d", len(found))
	}

	if found[0].X != 5 || found[0].Y != 5 {
		t.Errorf("Expected peak at (5,5), got (%v,%v)", found[0].X, found[0].Y)
	}

	if found[0].Height != 100.0 {
		t.Errorf("Expected unsmoothed height 100.0, got %v", found[0].Height)
	}
}
