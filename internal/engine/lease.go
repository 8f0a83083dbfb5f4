package engine

import (
	"fmt"
	"sync/atomic"

	"par-ca/internal/core"
)

// lease tracks who is still reading the current buffer during a generation.
// The dispatcher may only swap buffers once every holder has released it.
type lease struct {
	gen     uint64
	holders atomic.Int64
}

// view is a read-only window onto the current buffer, valid for a single
// generation.
type view[S any] struct {
	gen   uint64
	cells []S
	l     *lease
}

func (l *lease) open(gen uint64) {
	l.gen = gen
	l.holders.Store(0)
}

func (l *lease) acquire() { l.holders.Add(1) }

func (l *lease) release() { l.holders.Add(-1) }

// settle reports an error unless every holder has released the lease.
func (l *lease) settle() error {
	if n := l.holders.Load(); n != 0 {
		return fmt.Errorf("%w: generation %d buffer still held by %d readers at swap", core.ErrProtocol, l.gen, n)
	}
	return nil
}
