package cyclic

import (
	"fmt"
	"image/color"
	"sort"

	"par-ca/internal/core"
)

// Rainbow cycles through eight saturated hues.
var Rainbow = []color.RGBA{
	{R: 255, G: 109, B: 194, A: 255}, // pink
	{R: 230, G: 41, B: 55, A: 255},   // red
	{R: 255, G: 161, B: 0, A: 255},   // orange
	{R: 253, G: 249, B: 0, A: 255},   // yellow
	{R: 0, G: 228, B: 48, A: 255},    // green
	{R: 0, G: 121, B: 241, A: 255},   // blue
	{R: 135, G: 60, B: 190, A: 255},  // violet
	{R: 255, G: 0, B: 255, A: 255},   // magenta
}

// Grayscale fades from white towards black in 18 steps of 1/i.
var Grayscale = buildGrayscale(18)

func buildGrayscale(n int) []color.RGBA {
	palette := make([]color.RGBA, n)
	for i := range palette {
		v := uint8(255/float64(i+1) + 0.5)
		palette[i] = color.RGBA{R: v, G: v, B: v, A: 255}
	}
	return palette
}

var palettes = map[string][]color.RGBA{
	"rainbow":   Rainbow,
	"grayscale": Grayscale,
}

// Palette looks up a named palette.
func Palette(name string) ([]color.RGBA, error) {
	p, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown palette %q (have %v)", core.ErrConfig, name, PaletteNames())
	}
	return p, nil
}

// PaletteNames lists the named palettes in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
