package core

import "fmt"

// Options is the construction contract shared by every automaton: viewport
// and cell size determine the grid, Threads and Chunks the parallelism.
type Options struct {
	Width, Height float64
	CellSize      float64

	Threads int
	Chunks  int

	// Seed drives initial sampling. Zero selects a time-derived seed.
	Seed int64
}

// DefaultOptions returns options for an 800x600 viewport of 5-unit cells.
func DefaultOptions() Options {
	return Options{
		Width:    800,
		Height:   600,
		CellSize: 5,
		Threads:  4,
		Chunks:   16,
	}
}

// Validate checks the concurrency parameters and derives the grid. The chunk
// count is checked against the derived cell count.
func (o Options) Validate() (Grid, error) {
	if o.Threads < 1 {
		return Grid{}, fmt.Errorf("%w: thread count must be at least 1, got %d", ErrConfig, o.Threads)
	}
	if o.Chunks < 1 {
		return Grid{}, fmt.Errorf("%w: chunk count must be at least 1, got %d", ErrConfig, o.Chunks)
	}
	g, err := NewGrid(o.Width, o.Height, o.CellSize)
	if err != nil {
		return Grid{}, err
	}
	if o.Chunks > g.Total() {
		return Grid{}, fmt.Errorf("%w: chunk count %d exceeds cell count %d", ErrConfig, o.Chunks, g.Total())
	}
	return g, nil
}
