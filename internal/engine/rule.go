// Package engine advances cellular automata one generation at a time on a
// fixed pool of worker goroutines.
//
// The dispatcher owns both grid buffers. Each generation it lends the current
// buffer to the workers through a generation-tagged lease, fans one job per
// chunk out to the workers round-robin, and waits on a counted barrier for
// exactly one update per cell before swapping buffers.
package engine

import (
	"image/color"

	"par-ca/internal/core"
)

// Rule is the transition logic of one automaton kind. Implementations carry
// their own immutable parameters and must be safe for concurrent use: Step is
// called from every worker at once.
type Rule[S any] interface {
	// Sample draws a random initial state.
	Sample(rng *core.RNG) S
	// Step computes the next state of a cell from its current state and the
	// states of its in-bounds neighbors. It must depend on nothing else.
	Step(state S, neighbors []S) S
	// Color maps a state to its display color.
	Color(state S) color.RGBA
}
