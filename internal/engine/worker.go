package engine

import (
	"fmt"

	"par-ca/internal/core"

	"golang.org/x/sync/errgroup"
)

type update[S any] struct {
	index int
	state S
}

// job asks a worker to step one chunk of a generation. The worker fills out,
// which the dispatcher owns again once the result arrives.
type job[S any] struct {
	view    view[S]
	chunk   int
	span    core.Chunk
	out     []update[S]
	results chan<- result[S]
}

type result[S any] struct {
	gen     uint64
	chunk   int
	updates []update[S]
	err     error
}

// pool is a fixed set of long-lived workers, each draining its own queue.
type pool[S any] struct {
	queues []chan job[S]
	group  errgroup.Group
}

func newPool[S any](grid core.Grid, rule Rule[S], workers, depth int) *pool[S] {
	p := &pool[S]{queues: make([]chan job[S], workers)}
	for i := range p.queues {
		q := make(chan job[S], depth)
		p.queues[i] = q
		w := &worker[S]{grid: grid, rule: rule}
		p.group.Go(func() error { return w.run(q) })
	}
	return p
}

func (p *pool[S]) size() int { return len(p.queues) }

func (p *pool[S]) submit(worker int, j job[S]) { p.queues[worker] <- j }

// close stops accepting work. Queued jobs still run before workers exit.
func (p *pool[S]) close() error {
	for _, q := range p.queues {
		close(q)
	}
	return p.group.Wait()
}

type worker[S any] struct {
	grid core.Grid
	rule Rule[S]

	nbrIdx [8]int
	nbrs   [8]S
}

// run processes jobs until the queue is closed and returns the first fault
// it recovered, if any.
func (w *worker[S]) run(queue <-chan job[S]) error {
	var first error
	for j := range queue {
		res := result[S]{gen: j.view.gen, chunk: j.chunk}
		res.updates, res.err = w.step(j)
		if res.err != nil && first == nil {
			first = res.err
		}
		j.results <- res
	}
	return first
}

// step computes every cell of the job's chunk. The lease is released before
// the result is sent so that a complete barrier implies no readers remain.
func (w *worker[S]) step(j job[S]) (out []update[S], err error) {
	defer j.view.l.release()
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("%w: chunk %d [%d,%d) of generation %d: %v",
				core.ErrWorkerFault, j.chunk, j.span.Start, j.span.End, j.view.gen, r)
		}
	}()

	cells := j.view.cells
	out = j.out[:0]
	for i := j.span.Start; i < j.span.End; i++ {
		idx := w.grid.Neighbors(i, &w.nbrIdx)
		for k, n := range idx {
			w.nbrs[k] = cells[n]
		}
		out = append(out, update[S]{index: i, state: w.rule.Step(cells[i], w.nbrs[:len(idx)])})
	}
	return out, nil
}
