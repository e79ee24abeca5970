package peaks

import (
	"image"
	"math"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"

	houghlite "github.com/swdee/go-houghlite"
)

// gaussianSmooth returns a blurred copy of the accumulator used for maxima
// localisation.  The kernel width covers three sigma on each side, rounded
// up to the next odd size
func gaussianSmooth(grid *houghlite.Accumulator, sigma float64) *mat.Dense {

	rows, cols := grid.Dims()

	src := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV64F)
	defer src.Close()

	srcData, err := src.DataPtrFloat64()

	if err != nil {
		// a freshly created continuous Mat always exposes its buffer
		panic(err)
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			srcData[i*cols+j] = grid.At(i, j)
		}
	}

	dst := gocv.NewMat()
	defer dst.Close()

	ksize := 2*int(math.Ceil(3*sigma)) + 1

	gocv.GaussianBlur(src, &dst, image.Pt(ksize, ksize), sigma, sigma,
		gocv.BorderReflect101)

	dstData, err := dst.DataPtrFloat64()

	if err != nil {
		panic(err)
	}

	out := mat.NewDense(rows, cols, nil)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, dstData[i*cols+j])
		}
	}

	return out
}
