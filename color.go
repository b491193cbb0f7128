package main

import (
	"image/color"

	"git.sr.ht/~whereswaldon/linegraph/chart"
)

var colors = []color.NRGBA{
	{R: 0x2b, G: 0x7f, B: 0xa8, A: 0xff}, //#2b7fa8
	{R: 0xa4, G: 0x63, B: 0x3a, A: 0xff}, //#a4633a
	{R: 0x51, G: 0x85, B: 0x4d, A: 0xff}, //#51854d
	{R: 0x72, G: 0x6c, B: 0xae, A: 0xff}, //#726cae
	{R: 0x85, G: 0x76, B: 0x25, A: 0xff}, //#857625
	{R: 0x97, G: 0x5f, B: 0x91, A: 0xff}, //#975f91
}

// palette colors the lines of series when the configuration names none.
var palette = func() []chart.Color {
	out := make([]chart.Color, len(colors))
	for i, c := range colors {
		out[i] = chart.Solid(c)
	}
	return out
}()

// swatch returns the color used to represent a series in the key.
func swatch(c chart.Color) color.NRGBA {
	stops := c.Stops()
	if len(stops) == 0 {
		return color.NRGBA{A: 255}
	}
	return stops[len(stops)-1]
}
