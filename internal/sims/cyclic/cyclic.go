// Package cyclic implements the cyclic cellular automaton: each cell holds
// an index into a palette and advances to the next index once enough of its
// neighbors already hold it.
package cyclic

import (
	"fmt"
	"image/color"
	"strconv"

	"par-ca/internal/core"
	"par-ca/internal/engine"
)

// State is a palette index.
type State uint8

// Config holds parameters for the cyclic automaton.
type Config struct {
	Palette   string
	Threshold int
}

// DefaultConfig returns the grayscale palette with threshold 1.
func DefaultConfig() Config {
	return Config{Palette: "grayscale", Threshold: 1}
}

// FromMap populates a Config from a string map. Recognized keys are
// "palette" and "threshold" (1-8).
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	if v, ok := cfg["palette"]; ok && v != "" {
		c.Palette = v
	}
	if v, ok := cfg["threshold"]; ok {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("%w: threshold %q is not an integer", core.ErrConfig, v)
		}
		c.Threshold = parsed
	}
	return c, nil
}

// Rule is the cyclic transition rule.
type Rule struct {
	palette   []color.RGBA
	threshold int
}

// NewRule resolves the palette and checks the threshold.
func NewRule(c Config) (Rule, error) {
	palette, err := Palette(c.Palette)
	if err != nil {
		return Rule{}, err
	}
	return NewRuleWithPalette(palette, c.Threshold)
}

// NewRuleWithPalette builds a rule over an explicit palette of 1-256 colors.
func NewRuleWithPalette(palette []color.RGBA, threshold int) (Rule, error) {
	if len(palette) == 0 || len(palette) > 256 {
		return Rule{}, fmt.Errorf("%w: palette needs 1-256 colors, got %d", core.ErrConfig, len(palette))
	}
	if threshold < 1 || threshold > 8 {
		return Rule{}, fmt.Errorf("%w: threshold must be in 1-8, got %d", core.ErrConfig, threshold)
	}
	return Rule{palette: palette, threshold: threshold}, nil
}

// Size returns the number of states.
func (r Rule) Size() int { return len(r.palette) }

// Sample draws a uniform palette index.
func (r Rule) Sample(rng *core.RNG) State {
	v := int(rng.Float64() * float64(len(r.palette)))
	if v >= len(r.palette) {
		v = len(r.palette) - 1
	}
	return State(v)
}

// Step advances the cell when at least threshold neighbors hold the next
// value.
func (r Rule) Step(state State, neighbors []State) State {
	next := State((int(state) + 1) % len(r.palette))
	count := 0
	for _, n := range neighbors {
		if n == next {
			count++
		}
	}
	if count >= r.threshold {
		return next
	}
	return state
}

// Color returns the palette entry for state.
func (r Rule) Color(state State) color.RGBA { return r.palette[state] }

// Parameters describes the rule for the HUD.
func (r Rule) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Cyclic",
		Params: []core.Parameter{
			core.IntParam("states", "States", len(r.palette)),
			core.IntParam("threshold", "Threshold", r.threshold),
		},
	}}}
}

// New builds a cyclic automaton.
func New(opts core.Options, c Config) (*engine.Automaton[State], error) {
	rule, err := NewRule(c)
	if err != nil {
		return nil, err
	}
	return engine.New[State]("cyclic", opts, rule)
}

func init() {
	core.Register("cyclic", func(opts core.Options, cfg map[string]string) (core.Sim, error) {
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
