/*
Package render draws Hough accumulator windows as heatmap images with the
detected peaks and true track positions marked, for visually inspecting the
detection and matching stages.  It is a diagnostic collaborator and is
never imported by the core packages.
*/
package render

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
	xdraw "golang.org/x/image/draw"

	houghlite "github.com/swdee/go-houghlite"
	"github.com/swdee/go-houghlite/peaks"
)

var (
	// peakColor outlines the squares around detected peaks
	peakColor = color.RGBA{R: 255, G: 56, B: 56, A: 255}
	// haloColor outlines the inflated halo around matched peaks
	haloColor = color.RGBA{R: 0, G: 194, B: 255, A: 255}
	// trueColor marks true track positions
	trueColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Options defines the parameters for rendering an accumulator window
type Options struct {
	// StartPhi and EndPhi bound the phi bin rows drawn
	StartPhi int
	EndPhi   int
	// SquareSize is the half-width of the boxes drawn around peaks,
	// matching the training square half-width
	SquareSize int
	// TrueMarkerSize is the half-width of the markers drawn at true track
	// positions
	TrueMarkerSize int
	// HaloMargin is the extra margin of the outline drawn around matched
	// peaks
	HaloMargin int
	// Scale is the integer upscaling factor applied to the rendered
	// image, 1 for native size
	Scale int
	// LineThickness of the peak boxes
	LineThickness int
}

// DefaultOptions returns the rendering options used for the accumulator
// inspection plots
func DefaultOptions() Options {
	return Options{
		StartPhi:       1000,
		EndPhi:         2000,
		SquareSize:     16,
		TrueMarkerSize: 3,
		HaloMargin:     4,
		Scale:          1,
		LineThickness:  3,
	}
}

// Accumulator renders the configured phi window of the grid as a heatmap
// with boxes around the detected peaks, halos around matched peaks and
// markers at the true track positions.  The mask aligns with the detected
// peaks and may be nil to skip halos, tracks may be nil to skip markers
func Accumulator(grid *houghlite.Accumulator, detected []peaks.Peak,
	mask []bool, tracks *houghlite.TrackCollection,
	opts Options) (image.Image, error) {

	mat, err := renderMat(grid, detected, mask, tracks, opts)

	if err != nil {
		return nil, err
	}

	defer mat.Close()

	img, err := mat.ToImage()

	if err != nil {
		return nil, fmt.Errorf("error converting render to image: %w", err)
	}

	if opts.Scale > 1 {
		b := img.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*opts.Scale,
			b.Dy()*opts.Scale))

		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)

		return dst, nil
	}

	return img, nil
}

// AccumulatorToFile renders the accumulator window and writes it to the
// given image file
func AccumulatorToFile(filename string, grid *houghlite.Accumulator,
	detected []peaks.Peak, mask []bool, tracks *houghlite.TrackCollection,
	opts Options) error {

	mat, err := renderMat(grid, detected, mask, tracks, opts)

	if err != nil {
		return err
	}

	defer mat.Close()

	if gocv.IMWrite(filename, mat) {
		return nil
	}

	return fmt.Errorf("failed to write to file %s", filename)
}

// renderMat draws the window into a BGR Mat
func renderMat(grid *houghlite.Accumulator, detected []peaks.Peak,
	mask []bool, tracks *houghlite.TrackCollection,
	opts Options) (gocv.Mat, error) {

	rows, cols := grid.Dims()

	start := opts.StartPhi

	if start < 0 {
		start = 0
	}

	end := opts.EndPhi

	if end > rows {
		end = rows
	}

	if end <= start {
		return gocv.Mat{}, fmt.Errorf("empty phi window [%d,%d) for %d rows",
			opts.StartPhi, opts.EndPhi, rows)
	}

	img := gocv.NewMatWithSize(end-start, cols, gocv.MatTypeCV8UC3)

	// window maximum sets the heatmap scale
	max := 0.0

	for r := start; r < end; r++ {
		for c := 0; c < cols; c++ {
			if v := grid.At(r, c); v > max {
				max = v
			}
		}
	}

	if max == 0 {
		max = 1
	}

	// paint the heatmap, Mats are BGR ordered
	for r := start; r < end; r++ {
		for c := 0; c < cols; c++ {

			clr := heatColor(grid.At(r, c) / max)

			img.SetUCharAt(r-start, c*3+0, clr.B)
			img.SetUCharAt(r-start, c*3+1, clr.G)
			img.SetUCharAt(r-start, c*3+2, clr.R)
		}
	}

	// boxes around detected peaks, halo outline when matched
	for i, p := range detected {

		rect := image.Rect(
			int(p.X)-opts.SquareSize, int(p.Y)-start-opts.SquareSize,
			int(p.X)+opts.SquareSize, int(p.Y)-start+opts.SquareSize)

		gocv.Rectangle(&img, rect, peakColor, opts.LineThickness)

		if mask != nil && i < len(mask) && mask[i] {

			halo := inflateSquare(rect, float64(opts.HaloMargin))

			if len(halo) > 0 {
				ptsVec := gocv.NewPointsVectorFromPoints([][]image.Point{halo})
				gocv.Polylines(&img, ptsVec, true, haloColor, 1)
				ptsVec.Close()
			}
		}
	}

	// small markers at the true track positions
	if tracks != nil {
		for _, t := range tracks.Tracks() {

			rect := image.Rect(
				int(t.QptBin)-opts.TrueMarkerSize,
				int(t.PhiBin)-start-opts.TrueMarkerSize,
				int(t.QptBin)+opts.TrueMarkerSize,
				int(t.PhiBin)-start+opts.TrueMarkerSize)

			gocv.Rectangle(&img, rect, trueColor, 1)
		}
	}

	return img, nil
}
