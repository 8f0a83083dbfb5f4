package render

import (
	"image/color"
	"sort"

	"par-ca/internal/core"
)

// Partitioned is implemented by automata that expose how their grid is
// split among workers.
type Partitioned interface {
	Grid() core.Grid
	Chunks() []core.Chunk
	Workers() int
	WorkerFor(chunk int) int
}

// overlayAlpha is the opacity of the chunk overlay.
const overlayAlpha = 96

// ChunkMap colors each cell by the worker that owns its chunk. Colors are
// translucent and alpha-premultiplied.
type ChunkMap struct {
	grid   core.Grid
	chunks []core.Chunk
	owner  []int
	hues   []color.RGBA
}

// NewChunkMap captures the partition of p.
func NewChunkMap(p Partitioned) *ChunkMap {
	chunks := p.Chunks()
	owner := make([]int, len(chunks))
	for i := range chunks {
		owner[i] = p.WorkerFor(i)
	}
	return &ChunkMap{grid: p.Grid(), chunks: chunks, owner: owner, hues: WorkerHues(p.Workers())}
}

// ChunkMapOf returns a ChunkMap when sim exposes its partition.
func ChunkMapOf(sim any) (*ChunkMap, bool) {
	p, ok := sim.(Partitioned)
	if !ok {
		return nil, false
	}
	return NewChunkMap(p), true
}

// Grid returns the grid layout.
func (m *ChunkMap) Grid() core.Grid { return m.grid }

// Chunk returns the chunk that contains index.
func (m *ChunkMap) Chunk(index int) int {
	return sort.Search(len(m.chunks), func(i int) bool { return m.chunks[i].End > index })
}

// Worker returns the worker that steps index.
func (m *ChunkMap) Worker(index int) int { return m.owner[m.Chunk(index)] }

// Hue returns the opaque color of the worker that steps index.
func (m *ChunkMap) Hue(index int) color.RGBA { return m.hues[m.Worker(index)] }

// Color returns the translucent overlay color of index.
func (m *ChunkMap) Color(index int) color.RGBA {
	h := m.Hue(index)
	scale := func(v uint8) uint8 { return uint8(uint16(v) * overlayAlpha / 255) }
	return color.RGBA{R: scale(h.R), G: scale(h.G), B: scale(h.B), A: overlayAlpha}
}
