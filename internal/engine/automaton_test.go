package engine

import (
	"errors"
	"image/color"
	"slices"
	"strings"
	"testing"

	"par-ca/internal/core"
)

// sumRule mixes every neighbor into the next state, so any misplaced or
// missing neighbor changes the result.
type sumRule struct{}

func (sumRule) Sample(rng *core.RNG) uint8 { return uint8(rng.IntN(7)) }

func (sumRule) Step(state uint8, neighbors []uint8) uint8 {
	sum := int(state)
	for i, n := range neighbors {
		sum += int(n) * (i + 2)
	}
	return uint8(sum % 7)
}

func (sumRule) Color(state uint8) color.RGBA {
	v := state * 36
	return color.RGBA{R: v, G: v, B: v, A: 255}
}

// countRule stores the number of neighbors each cell sees.
type countRule struct{}

func (countRule) Sample(*core.RNG) int { return 0 }

func (countRule) Step(_ int, neighbors []int) int { return len(neighbors) }

func (countRule) Color(int) color.RGBA { return color.RGBA{} }

type panicRule struct{ at int }

func (panicRule) Sample(*core.RNG) int { return 1 }

func (r panicRule) Step(state int, neighbors []int) int {
	if len(neighbors) == r.at {
		panic("boom")
	}
	return state
}

func (panicRule) Color(int) color.RGBA { return color.RGBA{} }

func testOptions(cols, rows, threads, chunks int) core.Options {
	return core.Options{
		Width:    float64(cols),
		Height:   float64(rows),
		CellSize: 1,
		Threads:  threads,
		Chunks:   chunks,
		Seed:     42,
	}
}

// sequentialStep is the reference: one generation computed in place of the
// worker pool.
func sequentialStep[S any](g core.Grid, rule Rule[S], cells []S) []S {
	out := make([]S, len(cells))
	var buf [8]int
	for i := range cells {
		idx := g.Neighbors(i, &buf)
		nbrs := make([]S, len(idx))
		for k, n := range idx {
			nbrs[k] = cells[n]
		}
		out[i] = rule.Step(cells[i], nbrs)
	}
	return out
}

func TestAdvanceMatchesSequentialStep(t *testing.T) {
	a, err := New[uint8]("sum", testOptions(13, 9, 3, 5), sumRule{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	expected := append([]uint8(nil), a.Cells()...)
	for gen := 0; gen < 10; gen++ {
		expected = sequentialStep(a.Grid(), a.Rule(), expected)
		if err := a.Advance(); err != nil {
			t.Fatalf("Advance: %v", err)
		}
		if !slices.Equal(expected, a.Cells()) {
			t.Fatalf("generation %d differs from sequential reference", gen+1)
		}
	}
	if a.Generation() != 10 {
		t.Fatalf("generation = %d, expected 10", a.Generation())
	}
	if a.Phase() != Idle {
		t.Fatalf("phase = %v between calls, expected idle", a.Phase())
	}
}

func TestAdvanceIndependentOfParallelism(t *testing.T) {
	const cols, rows, gens = 17, 11, 6
	var reference []uint8
	for _, threads := range []int{1, 2, 3, 8} {
		for _, chunks := range []int{1, 2, 7, 64, cols * rows} {
			a, err := New[uint8]("sum", testOptions(cols, rows, threads, chunks), sumRule{})
			if err != nil {
				t.Fatalf("New(%d threads, %d chunks): %v", threads, chunks, err)
			}
			for i := 0; i < gens; i++ {
				if err := a.Advance(); err != nil {
					t.Fatalf("Advance(%d threads, %d chunks): %v", threads, chunks, err)
				}
			}
			if reference == nil {
				reference = append([]uint8(nil), a.Cells()...)
			} else if !slices.Equal(reference, a.Cells()) {
				t.Fatalf("%d threads, %d chunks diverged from the single-worker result", threads, chunks)
			}
			if err := a.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}
		}
	}
}

func TestNeighborCountsSeenByRule(t *testing.T) {
	a, err := New[int]("count", testOptions(5, 4, 2, 3), countRule{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()
	if err := a.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	g := a.Grid()
	for i, n := range a.Cells() {
		col, row := g.Coords(i)
		edgeCol := col == 0 || col == g.Cols-1
		edgeRow := row == 0 || row == g.Rows-1
		expected := 8
		switch {
		case edgeCol && edgeRow:
			expected = 3
		case edgeCol || edgeRow:
			expected = 5
		}
		if n != expected {
			t.Fatalf("cell (%d,%d) saw %d neighbors, expected %d", col, row, n, expected)
		}
	}
}

func TestColorsReflectGenerations(t *testing.T) {
	a, err := New[uint8]("sum", testOptions(6, 6, 2, 4), sumRule{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	initial := append([]uint8(nil), a.Cells()...)
	for i, s := range initial {
		if a.Color(i) != (sumRule{}).Color(s) {
			t.Fatalf("generation 0 color of cell %d does not match its sampled state", i)
		}
	}

	step := sequentialStep(a.Grid(), a.Rule(), initial)
	if err := a.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	g := a.Grid()
	for i, s := range step {
		col, row := g.Coords(i)
		if a.ColorAt(col, row) != (sumRule{}).Color(s) {
			t.Fatalf("cell (%d,%d) color does not reflect exactly one step", col, row)
		}
	}
}

func TestSameSeedSamplesSameGrid(t *testing.T) {
	a, err := New[uint8]("sum", testOptions(8, 8, 1, 1), sumRule{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()
	b, err := New[uint8]("sum", testOptions(8, 8, 4, 8), sumRule{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Close()
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("same seed sampled different initial grids")
	}
}

func TestNewRejectsBadConfiguration(t *testing.T) {
	for _, opts := range []core.Options{
		testOptions(4, 4, 0, 1),
		testOptions(4, 4, 1, 0),
		testOptions(4, 4, 1, 17),
		testOptions(0, 4, 1, 1),
	} {
		if _, err := New[uint8]("sum", opts, sumRule{}); !errors.Is(err, core.ErrConfig) {
			t.Fatalf("New(%+v) err = %v, expected ErrConfig", opts, err)
		}
	}
	if _, err := New[uint8]("sum", testOptions(4, 4, 1, 1), nil); !errors.Is(err, core.ErrConfig) {
		t.Fatalf("nil rule err = %v, expected ErrConfig", err)
	}
}

func TestWorkerFaultIsFatal(t *testing.T) {
	// Only corner cells have three neighbors.
	a, err := New[int]("panic", testOptions(4, 4, 2, 4), panicRule{at: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before := append([]int(nil), a.Cells()...)

	err = a.Advance()
	if !errors.Is(err, core.ErrWorkerFault) {
		t.Fatalf("Advance err = %v, expected ErrWorkerFault", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("fault should carry the panic value: %v", err)
	}
	if a.Generation() != 0 {
		t.Fatalf("generation advanced to %d after a fault", a.Generation())
	}
	if !slices.Equal(before, a.Cells()) {
		t.Fatal("faulted generation must not be visible")
	}
	if again := a.Advance(); !errors.Is(again, core.ErrWorkerFault) {
		t.Fatalf("fault should be sticky, got %v", again)
	}
	if err := a.Close(); !errors.Is(err, core.ErrWorkerFault) {
		t.Fatalf("Close err = %v, expected the recovered fault", err)
	}
}

func TestClose(t *testing.T) {
	a, err := New[uint8]("sum", testOptions(4, 4, 3, 4), sumRule{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := a.Advance(); !errors.Is(err, core.ErrClosed) {
		t.Fatalf("Advance after Close err = %v, expected ErrClosed", err)
	}
}

func TestChunkAssignmentRoundRobin(t *testing.T) {
	a, err := New[uint8]("sum", testOptions(10, 10, 3, 8), sumRule{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()
	if a.Workers() != 3 || len(a.Chunks()) != 8 {
		t.Fatalf("workers=%d chunks=%d", a.Workers(), len(a.Chunks()))
	}
	for i := range a.Chunks() {
		if a.WorkerFor(i) != i%3 {
			t.Fatalf("chunk %d assigned to worker %d", i, a.WorkerFor(i))
		}
	}
}

func TestLeaseSettle(t *testing.T) {
	var l lease
	l.open(4)
	l.acquire()
	l.acquire()
	l.release()
	if err := l.settle(); !errors.Is(err, core.ErrProtocol) {
		t.Fatalf("settle with a holder err = %v, expected ErrProtocol", err)
	}
	l.release()
	if err := l.settle(); err != nil {
		t.Fatalf("settle: %v", err)
	}
}

func TestCollectRejectsBrokenResults(t *testing.T) {
	a, err := New[uint8]("sum", testOptions(2, 2, 1, 2), sumRule{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	run := func(results ...result[uint8]) error {
		ch := make(chan result[uint8], len(results))
		for _, r := range results {
			ch <- r
		}
		err := a.collect(ch)
		a.gen++ // fresh stamps for the next case
		return err
	}
	full := func(chunk int) result[uint8] {
		c := a.Chunks()[chunk]
		var ups []update[uint8]
		for i := c.Start; i < c.End; i++ {
			ups = append(ups, update[uint8]{index: i})
		}
		return result[uint8]{gen: a.gen, chunk: chunk, updates: ups}
	}

	if err := run(full(0), full(1)); err != nil {
		t.Fatalf("complete results rejected: %v", err)
	}

	short := full(1)
	short.updates = short.updates[:1]
	if err := run(full(0), short); !errors.Is(err, core.ErrProtocol) {
		t.Fatalf("missing update err = %v, expected ErrProtocol", err)
	}

	if err := run(full(0), full(0)); !errors.Is(err, core.ErrProtocol) {
		t.Fatalf("duplicate update err = %v, expected ErrProtocol", err)
	}

	stale := full(1)
	stale.gen = a.gen + 5
	if err := run(full(0), stale); !errors.Is(err, core.ErrProtocol) {
		t.Fatalf("stale result err = %v, expected ErrProtocol", err)
	}
}

func TestPhaseString(t *testing.T) {
	for p, want := range map[Phase]string{Idle: "idle", Dispatching: "dispatching", Collecting: "collecting", Swapping: "swapping", Phase(9): "phase(9)"} {
		if p.String() != want {
			t.Fatalf("Phase(%d).String() = %q, expected %q", int32(p), p.String(), want)
		}
	}
}

func TestLoad(t *testing.T) {
	a, err := New[int]("count", testOptions(3, 2, 1, 1), countRule{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()
	if err := a.Load([]int{1, 2}); !errors.Is(err, core.ErrConfig) {
		t.Fatalf("short Load err = %v, expected ErrConfig", err)
	}
	states := []int{1, 2, 3, 4, 5, 6}
	if err := a.Load(states); err != nil {
		t.Fatalf("Load: %v", err)
	}
	states[0] = 99
	if a.Cells()[0] != 1 {
		t.Fatal("Load must copy the provided states")
	}
}
