package core

import (
	"fmt"
	"math"
)

// Grid describes the fixed cell layout of an automaton. Cells are stored
// column-major: index = col*Rows + row.
type Grid struct {
	Cols, Rows int
	CellSize   float64
}

// NewGrid derives the grid that fits a width x height viewport when every
// cell is cellSize units square.
func NewGrid(width, height, cellSize float64) (Grid, error) {
	if cellSize <= 0 || math.IsNaN(cellSize) {
		return Grid{}, fmt.Errorf("%w: cell size must be positive, got %v", ErrConfig, cellSize)
	}
	cols := int(width / cellSize)
	rows := int(height / cellSize)
	if cols <= 0 || rows <= 0 {
		return Grid{}, fmt.Errorf("%w: viewport %vx%v holds no %v-sized cells", ErrConfig, width, height, cellSize)
	}
	return Grid{Cols: cols, Rows: rows, CellSize: cellSize}, nil
}

// Total returns the number of cells in the grid.
func (g Grid) Total() int { return g.Cols * g.Rows }

// Coords returns the (col, row) coordinates of a linear index.
func (g Grid) Coords(index int) (int, int) {
	return index / g.Rows, index % g.Rows
}

// Index returns the linear index for coordinates (col, row).
func (g Grid) Index(col, row int) int { return col*g.Rows + row }

// Neighbors writes the linear indices of the in-bounds 8-connected
// neighbors of index into buf and returns the filled prefix. Offsets are
// visited column-major from (-1,-1) to (1,1); edges do not wrap.
func (g Grid) Neighbors(index int, buf *[8]int) []int {
	col, row := g.Coords(index)
	n := 0
	for dc := -1; dc <= 1; dc++ {
		nc := col + dc
		if nc < 0 || nc >= g.Cols {
			continue
		}
		for dr := -1; dr <= 1; dr++ {
			if dc == 0 && dr == 0 {
				continue
			}
			nr := row + dr
			if nr < 0 || nr >= g.Rows {
				continue
			}
			buf[n] = nc*g.Rows + nr
			n++
		}
	}
	return buf[:n]
}
