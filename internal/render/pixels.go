package render

import (
	"image/color"

	"par-ca/internal/core"
)

// Colorer answers the per-cell color query of an automaton.
type Colorer interface {
	Grid() core.Grid
	Color(index int) color.RGBA
}

// FillRGBA writes one RGBA pixel per cell into buf, laid out row-major so
// that cell (col, row) lands at pixel (col, row). buf must hold 4*cols*rows
// bytes.
func FillRGBA(buf []byte, src Colorer) {
	g := src.Grid()
	for col := 0; col < g.Cols; col++ {
		base := col * g.Rows
		for row := 0; row < g.Rows; row++ {
			c := src.Color(base + row)
			p := (row*g.Cols + col) * 4
			buf[p+0] = c.R
			buf[p+1] = c.G
			buf[p+2] = c.B
			buf[p+3] = c.A
		}
	}
}

// Tint blends c towards overlay by weight in [0,1].
func Tint(c, overlay color.RGBA, weight float64) color.RGBA {
	if weight <= 0 {
		return c
	}
	if weight >= 1 {
		return overlay
	}
	inv := 1 - weight
	return color.RGBA{
		R: uint8(float64(c.R)*inv + float64(overlay.R)*weight + 0.5),
		G: uint8(float64(c.G)*inv + float64(overlay.G)*weight + 0.5),
		B: uint8(float64(c.B)*inv + float64(overlay.B)*weight + 0.5),
		A: uint8(float64(c.A)*inv + float64(overlay.A)*weight + 0.5),
	}
}

// WorkerHues returns n distinguishable colors, one per worker.
func WorkerHues(n int) []color.RGBA {
	base := []color.RGBA{
		{R: 230, G: 41, B: 55, A: 255},
		{R: 0, G: 228, B: 48, A: 255},
		{R: 0, G: 121, B: 241, A: 255},
		{R: 255, G: 161, B: 0, A: 255},
		{R: 135, G: 60, B: 190, A: 255},
		{R: 0, G: 200, B: 200, A: 255},
	}
	hues := make([]color.RGBA, n)
	for i := range hues {
		hues[i] = base[i%len(base)]
	}
	return hues
}
