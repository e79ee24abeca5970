package render

import (
	"image"

	clipper "github.com/ctessum/go.clipper"
)

// inflateSquare expands a peak square outline by the given margin using
// polygon offsetting, so the drawn halo clears the box it surrounds
func inflateSquare(rect image.Rectangle, margin float64) []image.Point {

	// convert the square corners to a Clipper Path
	path := clipper.Path{
		&clipper.IntPoint{X: clipper.CInt(rect.Min.X), Y: clipper.CInt(rect.Min.Y)},
		&clipper.IntPoint{X: clipper.CInt(rect.Max.X), Y: clipper.CInt(rect.Min.Y)},
		&clipper.IntPoint{X: clipper.CInt(rect.Max.X), Y: clipper.CInt(rect.Max.Y)},
		&clipper.IntPoint{X: clipper.CInt(rect.Min.X), Y: clipper.CInt(rect.Max.Y)},
	}

	// create a ClipperOffset object and add the path
	co := clipper.NewClipperOffset()
	co.AddPath(path, clipper.JtMiter, clipper.EtClosedPolygon)

	// execute the offset operation
	solution := co.Execute(margin)

	// convert the solution back to points
	var points []image.Point

	for _, sol := range solution {
		for _, pt := range sol {
			points = append(points, image.Point{X: int(pt.X), Y: int(pt.Y)})
		}
	}

	return points
}
