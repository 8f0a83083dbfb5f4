package engine

import (
	"errors"
	"fmt"
	"image/color"

	"par-ca/internal/core"
)

// Phase is the dispatcher state. An automaton is Idle between Advance calls
// and passes through the other phases, in order, once per generation.
type Phase int32

const (
	Idle Phase = iota
	Dispatching
	Collecting
	Swapping
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dispatching:
		return "dispatching"
	case Collecting:
		return "collecting"
	case Swapping:
		return "swapping"
	}
	return fmt.Sprintf("phase(%d)", int32(p))
}

// Automaton is a cellular automaton over a fixed grid whose generations are
// computed in parallel. Advance, Close and the query methods must be called
// from a single goroutine.
type Automaton[S any] struct {
	name   string
	grid   core.Grid
	rule   Rule[S]
	chunks []core.Chunk

	cur, next []S
	// stamps[i] is one more than the last generation that wrote cell i.
	stamps  []uint64
	batches [][]update[S]

	pool  *pool[S]
	lease lease
	phase Phase
	gen   uint64

	err    error
	closed bool
}

// New validates opts, samples the initial grid and starts opts.Threads
// workers. Nothing is started when validation fails.
func New[S any](name string, opts core.Options, rule Rule[S]) (*Automaton[S], error) {
	if rule == nil {
		return nil, fmt.Errorf("%w: %s: nil rule", core.ErrConfig, name)
	}
	grid, err := opts.Validate()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	chunks, err := core.Partition(grid.Total(), opts.Chunks)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	total := grid.Total()
	a := &Automaton[S]{
		name:    name,
		grid:    grid,
		rule:    rule,
		chunks:  chunks,
		cur:     make([]S, total),
		next:    make([]S, total),
		stamps:  make([]uint64, total),
		batches: make([][]update[S], len(chunks)),
	}
	for i, c := range chunks {
		a.batches[i] = make([]update[S], 0, c.Len())
	}

	rng := core.NewRNG(core.ResolveSeed(opts.Seed))
	for i := range a.cur {
		a.cur[i] = rule.Sample(rng)
	}

	depth := (len(chunks) + opts.Threads - 1) / opts.Threads
	a.pool = newPool(grid, rule, opts.Threads, depth)
	return a, nil
}

// Name returns the automaton identifier.
func (a *Automaton[S]) Name() string { return a.name }

// Grid returns the grid layout.
func (a *Automaton[S]) Grid() core.Grid { return a.grid }

// Generation returns the number of completed generations.
func (a *Automaton[S]) Generation() uint64 { return a.gen }

// Phase returns the dispatcher state.
func (a *Automaton[S]) Phase() Phase { return a.phase }

// Rule returns the transition rule.
func (a *Automaton[S]) Rule() Rule[S] { return a.rule }

// Cells exposes the current generation. Callers must not modify it.
func (a *Automaton[S]) Cells() []S { return a.cur }

// Load replaces the current generation with states, which must cover the
// whole grid. The generation counter is not changed.
func (a *Automaton[S]) Load(states []S) error {
	if len(states) != len(a.cur) {
		return fmt.Errorf("%w: %s: loading %d states into %d cells", core.ErrConfig, a.name, len(states), len(a.cur))
	}
	copy(a.cur, states)
	return nil
}

// Chunks returns the fixed partition of the grid.
func (a *Automaton[S]) Chunks() []core.Chunk { return a.chunks }

// Workers returns the number of worker goroutines.
func (a *Automaton[S]) Workers() int { return a.pool.size() }

// WorkerFor returns the worker that steps the given chunk every generation.
func (a *Automaton[S]) WorkerFor(chunk int) int { return chunk % a.pool.size() }

// Color returns the display color of the cell at index.
func (a *Automaton[S]) Color(index int) color.RGBA { return a.rule.Color(a.cur[index]) }

// ColorAt returns the display color of the cell at (col, row).
func (a *Automaton[S]) ColorAt(col, row int) color.RGBA {
	return a.Color(a.grid.Index(col, row))
}

// Parameters forwards the rule's parameter snapshot when it has one.
func (a *Automaton[S]) Parameters() core.ParameterSnapshot {
	if p, ok := a.rule.(core.ParameterProvider); ok {
		return p.Parameters()
	}
	return core.ParameterSnapshot{}
}

// Advance computes one generation. Either every cell moves to the next
// generation or, on a fatal error, none does; fatal errors are sticky.
func (a *Automaton[S]) Advance() error {
	if a.closed {
		return core.ErrClosed
	}
	if a.err != nil {
		return a.err
	}
	if err := a.advance(); err != nil {
		a.err = fmt.Errorf("%s: generation %d: %w", a.name, a.gen, err)
		a.phase = Idle
		return a.err
	}
	a.gen++
	a.phase = Idle
	return nil
}

func (a *Automaton[S]) advance() error {
	a.phase = Dispatching
	results := make(chan result[S], len(a.chunks))
	a.lease.open(a.gen)
	a.lease.acquire()
	v := view[S]{gen: a.gen, cells: a.cur, l: &a.lease}
	for i, c := range a.chunks {
		a.lease.acquire()
		a.pool.submit(a.WorkerFor(i), job[S]{
			view:    v,
			chunk:   i,
			span:    c,
			out:     a.batches[i],
			results: results,
		})
	}

	a.phase = Collecting
	err := a.collect(results)
	a.lease.release()
	if err != nil {
		return err
	}

	a.phase = Swapping
	if err := a.lease.settle(); err != nil {
		return err
	}
	a.cur, a.next = a.next, a.cur
	return nil
}

// collect is the generation barrier: it receives exactly one result per
// chunk and accepts exactly one update per cell.
func (a *Automaton[S]) collect(results <-chan result[S]) error {
	var faults []error
	stamp := a.gen + 1
	written := 0
	for range a.chunks {
		res := <-results
		if res.err != nil {
			faults = append(faults, res.err)
			continue
		}
		if res.gen != a.gen {
			faults = append(faults, fmt.Errorf("%w: chunk %d answered for generation %d", core.ErrProtocol, res.chunk, res.gen))
			continue
		}
		a.batches[res.chunk] = res.updates
		for _, u := range res.updates {
			if a.stamps[u.index] == stamp {
				faults = append(faults, fmt.Errorf("%w: cell %d updated twice", core.ErrProtocol, u.index))
				continue
			}
			a.stamps[u.index] = stamp
			a.next[u.index] = u.state
			written++
		}
	}
	if len(faults) > 0 {
		return errors.Join(faults...)
	}
	if written != len(a.cur) {
		return fmt.Errorf("%w: received %d of %d cell updates", core.ErrProtocol, written, len(a.cur))
	}
	return nil
}

// Close stops the workers and returns the first fault any of them
// recovered. It is safe to call more than once.
func (a *Automaton[S]) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	return a.pool.close()
}
