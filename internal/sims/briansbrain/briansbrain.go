package briansbrain

import (
	"fmt"
	"image/color"
	"strconv"

	"par-ca/internal/core"
	"par-ca/internal/engine"
)

// State is the state of a single cell.
type State uint8

const (
	Dead State = iota
	Dying
	Alive
)

// Config holds parameters for Brian's Brain.
type Config struct {
	// AliveRatio is the probability that a cell starts firing.
	AliveRatio float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{AliveRatio: 0.5}
}

// FromMap populates a Config from a string map. The only key is
// "percentage" (0-100).
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	if v, ok := cfg["percentage"]; ok {
		p, err := strconv.Atoi(v)
		if err != nil || p < 0 || p > 100 {
			return c, fmt.Errorf("%w: percentage must be an integer in 0-100, got %q", core.ErrConfig, v)
		}
		c.AliveRatio = float64(p) / 100
	}
	return c, nil
}

// Rule implements Brian's Brain: firing cells start dying, dying cells die,
// and dead cells fire when exactly two neighbors are firing.
type Rule struct {
	AliveRatio float64
}

// Sample returns Alive with probability AliveRatio, Dead otherwise.
func (r Rule) Sample(rng *core.RNG) State {
	if rng.Float64() < r.AliveRatio {
		return Alive
	}
	return Dead
}

// Step advances the automaton by one tick for a single cell.
func (r Rule) Step(state State, neighbors []State) State {
	switch state {
	case Alive:
		return Dying
	case Dying:
		return Dead
	}
	firing := 0
	for _, n := range neighbors {
		if n == Alive {
			firing++
		}
	}
	if firing == 2 {
		return Alive
	}
	return Dead
}

// Color maps Dead to black, Dying to blue and Alive to white.
func (r Rule) Color(state State) color.RGBA {
	switch state {
	case Alive:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	case Dying:
		return color.RGBA{R: 0, G: 121, B: 241, A: 255}
	}
	return color.RGBA{A: 255}
}

// Parameters describes the rule for the HUD.
func (r Rule) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name:   "Brian's Brain",
		Params: []core.Parameter{core.FloatParam("alive_ratio", "Alive ratio", r.AliveRatio)},
	}}}
}

// New creates a Brain automaton.
func New(opts core.Options, c Config) (*engine.Automaton[State], error) {
	if c.AliveRatio < 0 || c.AliveRatio > 1 {
		return nil, fmt.Errorf("%w: alive ratio %v outside [0,1]", core.ErrConfig, c.AliveRatio)
	}
	return engine.New[State]("briansbrain", opts, Rule{AliveRatio: c.AliveRatio})
}

func init() {
	core.Register("briansbrain", func(opts core.Options, cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		b, err := New(opts, c)
		if err != nil {
			return nil, err
		}
		return b, nil
	})
}
