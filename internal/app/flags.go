package app

import (
	"flag"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"par-ca/internal/core"

	"github.com/shirou/gopsutil/v3/cpu"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim string

	Width, Height float64
	Fullscreen    bool
	CellSize      float64
	GensPerSec    int

	Threads int
	Chunks  int
	Seed    int64

	Percentage int
	Rule       string
	Threshold  int
	Palette    string
}

// DefaultThreads returns the number of logical CPUs.
func DefaultThreads() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	threads := DefaultThreads()
	return &Config{
		Sim:        "life",
		Width:      800,
		Height:     600,
		CellSize:   5,
		GensPerSec: 10,
		Threads:    threads,
		Chunks:     threads * 4,
		Percentage: 50,
		Rule:       "B3S23",
		Threshold:  1,
		Palette:    "grayscale",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "automaton to run: "+strings.Join(core.SimNames(), ", "))
	fs.Float64Var(&c.Width, "width", c.Width, "viewport width")
	fs.Float64Var(&c.Height, "height", c.Height, "viewport height")
	fs.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "use the whole screen as viewport")
	fs.Float64Var(&c.CellSize, "cell-size", c.CellSize, "cell edge length in viewport units")
	fs.IntVar(&c.GensPerSec, "gens-per-sec", c.GensPerSec, "generations per second")
	fs.IntVar(&c.Threads, "threads", c.Threads, "worker goroutines")
	fs.IntVar(&c.Chunks, "chunks", c.Chunks, "work chunks per generation")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for initial sampling (0 = current time)")
	fs.IntVar(&c.Percentage, "percentage", c.Percentage, "initial alive percentage (life, briansbrain)")
	fs.StringVar(&c.Rule, "rule", c.Rule, "birth/survival rule (life)")
	fs.IntVar(&c.Threshold, "threshold", c.Threshold, "matching neighbors needed to advance (cyclic)")
	fs.StringVar(&c.Palette, "palette", c.Palette, "palette: rainbow or grayscale (cyclic)")
}

// Options returns the engine options for a width x height viewport.
func (c *Config) Options(width, height float64) core.Options {
	return core.Options{
		Width:    width,
		Height:   height,
		CellSize: c.CellSize,
		Threads:  c.Threads,
		Chunks:   c.Chunks,
		Seed:     c.Seed,
	}
}

// RuleParams returns the rule-specific settings as flag-style key/value
// pairs. Each rule reads only the keys it knows.
func (c *Config) RuleParams() map[string]string {
	return map[string]string{
		"percentage": strconv.Itoa(c.Percentage),
		"rule":       c.Rule,
		"threshold":  strconv.Itoa(c.Threshold),
		"palette":    c.Palette,
	}
}

// Build constructs the configured automaton for a width x height viewport.
func (c *Config) Build(width, height float64) (core.Sim, error) {
	factory, ok := core.Sims()[c.Sim]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sim %q (have %s)", core.ErrConfig, c.Sim, strings.Join(core.SimNames(), ", "))
	}
	if c.GensPerSec < 1 {
		return nil, fmt.Errorf("%w: gens-per-sec must be at least 1, got %d", core.ErrConfig, c.GensPerSec)
	}
	return factory(c.Options(width, height), c.RuleParams())
}
