// Package life implements binary life-like automata configured with B/S
// rule strings.
package life

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
	Alive
)

// DefaultRule is Conway's Game of Life.
const DefaultRule = "B3S23"

// Config holds the parameters of a life-like automaton.
type Config struct {
	// AliveRatio is the probability that a cell starts Alive.
	AliveRatio float64
	Rule       string
}

// DefaultConfig returns Conway's rule with half of the cells alive.
func DefaultConfig() Config {
	return Config{AliveRatio: 0.5, Rule: DefaultRule}
}

// FromMap populates a Config from a string map. Recognized keys are
// "percentage" (0-100) and "rule".
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	if v, ok := cfg["percentage"]; ok {
		ratio, err := parsePercentage(v)
		if err != nil {
			return c, err
		}
		c.AliveRatio = ratio
	}
	if v, ok := cfg["rule"]; ok && v != "" {
		c.Rule = v
	}
	return c, nil
}

func parsePercentage(v string) (float64, error) {
	p, err := strconv.Atoi(v)
	if err != nil || p < 0 || p > 100 {
		return 0, fmt.Errorf("%w: percentage must be an integer in 0-100, got %q", core.ErrConfig, v)
	}
	return float64(p) / 100, nil
}

// Rule is a life-like transition rule.
type Rule struct {
	Masks
	AliveRatio float64
}

// NewRule parses the configured rule string.
func NewRule(c Config) (Rule, error) {
	m, err := ParseRule(c.Rule)
	if err != nil {
		return Rule{}, err
	}
	if c.AliveRatio < 0 || c.AliveRatio > 1 {
		return Rule{}, fmt.Errorf("%w: alive ratio %v outside [0,1]", core.ErrConfig, c.AliveRatio)
	}
	return Rule{Masks: m, AliveRatio: c.AliveRatio}, nil
}

// Sample returns Alive with probability AliveRatio.
func (r Rule) Sample(rng *core.RNG) State {
	if rng.Float64() < r.AliveRatio {
		return Alive
	}
	return Dead
}

// Step applies the birth mask to dead cells and the survival mask to live ones.
func (r Rule) Step(state State, neighbors []State) State {
	count := 0
	for _, n := range neighbors {
		if n == Alive {
			count++
		}
	}
	mask := r.Birth
	if state == Alive {
		mask = r.Survive
	}
	if mask&(1<<count) != 0 {
		return Alive
	}
	return Dead
}

// Color draws live cells black on white.
func (r Rule) Color(state State) color.RGBA {
	if state == Alive {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}

// Parameters describes the rule for the HUD.
func (r Rule) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Life",
		Params: []core.Parameter{
			core.StringParam("rule", "Rule", r.Masks.String()),
			core.FloatParam("alive_ratio", "Alive ratio", r.AliveRatio),
		},
	}}}
}

// New builds a life-like automaton.
func New(opts core.Options, c Config) (*engine.Automaton[State], error) {
	rule, err := NewRule(c)
	if err != nil {
		return nil, err
	}
	return engine.New[State]("life", opts, rule)
}

func init() {
	core.Register("life", func(opts core.Options, cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		a, err := New(opts, c)
		if err != nil {
			return nil, err
		}
		return a, nil
	})
}
