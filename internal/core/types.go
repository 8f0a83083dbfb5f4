package core

import (
	"image/color"
	"sort"
)

// Sim is the contract an external driver uses to run an automaton: one
// Advance per generation and a per-cell Color query for rendering.
type Sim interface {
	Name() string
	Grid() Grid
	Generation() uint64
	Advance() error
	Color(index int) color.RGBA
	Close() error
}

// Factory constructs a Sim from the shared options and a rule-specific
// key/value configuration.
type Factory func(opts Options, cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// SimNames returns the registered names in sorted order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
