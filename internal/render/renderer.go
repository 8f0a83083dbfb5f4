//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads automaton colors into a single image, one pixel per
// cell, and draws it scaled by the cell size.
type GridPainter struct {
	cols, rows int
	img        *ebiten.Image
	buf        []byte
}

// NewGridPainter allocates a painter for a cols x rows grid.
func NewGridPainter(cols, rows int) *GridPainter {
	gp := &GridPainter{cols: cols, rows: rows, buf: make([]byte, 4*cols*rows)}
	gp.img = ebiten.NewImage(cols, rows)
	return gp
}

// Blit refreshes the painter image from src and draws it onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, src Colorer) {
	g := src.Grid()
	if g.Cols != gp.cols || g.Rows != gp.rows {
		return
	}
	FillRGBA(gp.buf, src)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.CellSize, g.CellSize)
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.cols, gp.rows }
