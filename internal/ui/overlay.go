//go:build ebiten

package ui

import (
	"par-ca/internal/core"
	"par-ca/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay tints every cell with the color of the worker that steps its
// chunk. Chunk boundaries never change, so the image is built once. C
// toggles it.
type Overlay struct {
	grid    core.Grid
	img     *ebiten.Image
	visible bool
}

// NewOverlay builds the overlay when sim exposes its partition. It returns
// nil otherwise; a nil Overlay draws nothing.
func NewOverlay(sim core.Sim) *Overlay {
	cm, ok := render.ChunkMapOf(sim)
	if !ok {
		return nil
	}
	g := sim.Grid()
	buf := make([]byte, 4*g.Total())
	render.FillRGBA(buf, cm)
	img := ebiten.NewImage(g.Cols, g.Rows)
	img.WritePixels(buf)
	return &Overlay{grid: g, img: img}
}

// Update handles the visibility toggle.
func (o *Overlay) Update() {
	if o == nil {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		o.visible = !o.visible
	}
}

// Draw renders the overlay when visible.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o == nil || !o.visible {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(o.grid.CellSize, o.grid.CellSize)
	screen.DrawImage(o.img, op)
}
