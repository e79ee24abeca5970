package main

import (
	"flag"
	"io"
	"log"
	"math"
	"math/rand"

	houghlite "github.com/swdee/go-houghlite"
	"github.com/swdee/go-houghlite/peaks"
	"github.com/swdee/go-houghlite/pipeline"
	"github.com/swdee/go-houghlite/render"
)

// pionPDG is the particle type assigned to the generated tracks
const pionPDG = 211

// memLoader serves generated histograms and tracks from memory
type memLoader struct {
	hists  []*pipeline.Histogram
	tracks map[int]*houghlite.TrackCollection
	next   int
}

func (l *memLoader) Next() (*pipeline.Histogram, error) {

	if l.next >= len(l.hists) {
		return nil, io.EOF
	}

	h := l.hists[l.next]
	l.next++

	return h, nil
}

func (l *memLoader) Tracks(eventID int) (*houghlite.TrackCollection, error) {
	return l.tracks[eventID], nil
}

// logSink logs the run products instead of persisting them
type logSink struct{}

func (s *logSink) WriteSquares(squares *houghlite.SquareCollection) error {

	features, labels := squares.TrainingData()

	if features == nil {
		log.Println("no training squares extracted")
		return nil
	}

	rows, cols := features.Dims()
	log.Printf("training data: %d squares of %d features, %d labels",
		rows, cols, len(labels))

	return nil
}

func (s *logSink) WriteTracks(tracks *houghlite.TrackCollection) error {
	log.Printf("final tracks: %d total, %d reconstructed",
		tracks.Len(), tracks.CountReconstructed())

	return nil
}

func main() {

	events := flag.Int("events", 4, "Number of synthetic events to generate")
	tracksPerEvent := flag.Int("tracks", 12, "True tracks per event")
	noise := flag.Float64("noise", 2.0, "Mean background votes per bin")
	seed := flag.Int64("seed", 42, "Random seed")
	workers := flag.Int("workers", 1, "Worker pool size, 1 runs synchronously")
	saveFile := flag.String("save", "", "Save an accumulator render of the first event to this image file")

	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	hough := houghlite.DefaultHoughParams()
	// keep the synthetic grids small enough to eyeball
	hough.NbinPhi = 600
	hough.NbinQpt = 216

	peakP := houghlite.DefaultPeakParams()
	peakP.ThresholdAbs = 12

	proc := houghlite.DefaultProcessingParams()

	charges := houghlite.NewChargeLookup()

	loader := buildLoader(rng, hough, *events, *tracksPerEvent, *noise, charges)

	progress := func(eventID, sliceNum, peaksFound, tracksInSlice, matched int) {
		log.Printf("event %d slice %d: peaks=%d tracks=%d matched=%d",
			eventID, sliceNum, peaksFound, tracksInSlice, matched)
	}

	analysis, err := pipeline.NewAnalysis(hough, peakP, proc, progress)

	if err != nil {
		log.Fatal("error creating analysis: ", err)
	}

	var counts pipeline.Counts

	if *workers > 1 {
		counts, err = analysis.RunParallel(loader, &logSink{}, *workers)
	} else {
		counts, err = analysis.Run(loader, &logSink{})
	}

	if err != nil {
		log.Fatal("analysis failed: ", err)
	}

	log.Printf("events=%d histograms=%d trueTracks=%d matched=%d "+
		"truePos=%d falsePos=%d efficiency=%.2f",
		counts.Events, counts.Histograms, counts.TrueTracks, counts.Matched,
		counts.TruePositives, counts.FalsePositives, counts.Efficiency())

	if *saveFile != "" {
		saveRender(*saveFile, loader, hough, peakP)
	}
}

// buildLoader generates the synthetic events.  Each track deposits a
// Gaussian blob of votes at its accumulator position on top of uniform
// background noise
func buildLoader(rng *rand.Rand, hough houghlite.HoughParams, events,
	tracksPerEvent int, noise float64,
	charges *houghlite.ChargeLookup) *memLoader {

	loader := &memLoader{
		tracks: make(map[int]*houghlite.TrackCollection),
	}

	for ev := 0; ev < events; ev++ {

		grid := houghlite.NewAccumulator(hough.NbinPhi, hough.NbinQpt)

		// background noise
		for r := 0; r < hough.NbinPhi; r++ {
			for c := 0; c < hough.NbinQpt; c++ {
				grid.Set(r, c, math.Floor(rng.Float64()*noise*2))
			}
		}

		tc := houghlite.NewTrackCollection(nil)

		for i := 0; i < tracksPerEvent; i++ {

			// alternate particle and antiparticle to get both charge signs
			pdg := pionPDG

			if i%2 == 1 {
				pdg = -pionPDG
			}

			q, err := charges.Charge(pdg)

			if err != nil {
				log.Fatal("charge lookup failed: ", err)
			}

			// the charge sign picks the accumulator half the track
			// curvature falls into
			margin := hough.SquareSize + 1
			half := hough.NbinQpt / 2
			phiBin := float64(margin + rng.Intn(hough.NbinPhi-2*margin))

			var qptBin float64

			if q < 0 {
				qptBin = float64(margin + rng.Intn(half-margin))
			} else {
				qptBin = float64(half + rng.Intn(half-margin))
			}

			tc.Add(&houghlite.Track{
				EventID:      ev,
				PhiBin:       phiBin,
				QptBin:       qptBin,
				Vz:           rng.Float64()*300 - 150,
				Hits:         8,
				ParticleType: pdg,
				Charge:       q,
				Pt:           1 + rng.Float64()*9,
			})

			depositVotes(grid, phiBin, qptBin, 40+rng.Float64()*20)
		}

		loader.tracks[ev] = tc
		loader.hists = append(loader.hists, &pipeline.Histogram{
			EventID: ev,
			Slice:   -1,
			Grid:    grid,
		})
	}

	return loader
}

// depositVotes adds a Gaussian blob of votes centred on the given bin
func depositVotes(grid *houghlite.Accumulator, phiBin, qptBin, height float64) {

	rows, cols := grid.Dims()
	const spread = 2.5

	for dr := -8; dr <= 8; dr++ {
		for dc := -8; dc <= 8; dc++ {

			r := int(phiBin) + dr
			c := int(qptBin) + dc

			if r < 0 || r >= rows || c < 0 || c >= cols {
				continue
			}

			d2 := float64(dr*dr + dc*dc)
			v := height * math.Exp(-d2/(2*spread*spread))

			grid.Set(r, c, grid.At(r, c)+math.Floor(v))
		}
	}
}

// saveRender writes a heatmap of the first event with its peaks and true
// tracks marked
func saveRender(filename string, loader *memLoader,
	hough houghlite.HoughParams, peakP houghlite.PeakParams) {

	first := loader.hists[0]

	detector := peaks.NewDetector(peakP)
	detected, err := detector.Find(first.Grid)

	if err != nil {
		log.Fatal("peak detection failed: ", err)
	}

	opts := render.DefaultOptions()
	opts.StartPhi = 0
	opts.EndPhi = hough.NbinPhi
	opts.SquareSize = hough.SquareSize

	err = render.AccumulatorToFile(filename, first.Grid, detected, nil,
		loader.tracks[first.EventID], opts)

	if err != nil {
		log.Fatal("render failed: ", err)
	}

	log.Printf("saved accumulator render to %s", filename)
}
