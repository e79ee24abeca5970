package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// heatStops are the anchor colours of the accumulator heatmap, a
// viridis-like gradient from dark purple through teal to yellow
var heatStops = []struct {
	pos float64
	hex string
}{
	{0.0, "#440154"},
	{0.25, "#3b528b"},
	{0.5, "#21918c"},
	{0.75, "#5ec962"},
	{1.0, "#fde725"},
}

// heatColor maps a normalised vote count in [0,1] to a heatmap colour by
// blending between the gradient anchor stops in Luv space
func heatColor(t float64) color.RGBA {

	if t <= 0 {
		return toRGBA(mustHex(heatStops[0].hex))
	}

	if t >= 1 {
		return toRGBA(mustHex(heatStops[len(heatStops)-1].hex))
	}

	for i := 0; i < len(heatStops)-1; i++ {

		lo := heatStops[i]
		hi := heatStops[i+1]

		if t >= lo.pos && t <= hi.pos {
			frac := (t - lo.pos) / (hi.pos - lo.pos)
			blend := mustHex(lo.hex).BlendLuv(mustHex(hi.hex), frac)

			return toRGBA(blend.Clamped())
		}
	}

	return toRGBA(mustHex(heatStops[len(heatStops)-1].hex))
}

func mustHex(s string) colorful.Color {

	c, err := colorful.Hex(s)

	if err != nil {
		panic(err)
	}

	return c
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()

	return color.RGBA{R: r, G: g, B: b, A: 255}
}
