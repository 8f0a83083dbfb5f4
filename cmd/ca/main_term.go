//go:build !ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"par-ca/internal/app"
	_ "par-ca/internal/sims/briansbrain"
	_ "par-ca/internal/sims/cyclic"
	_ "par-ca/internal/sims/life"
	"par-ca/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

// run owns the terminal; errors are reported only after the screen has been
// restored.
func run(cfg *app.Config) (err error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	width, height := cfg.Width, cfg.Height
	if cfg.Fullscreen {
		sw, sh := screen.Size()
		width, height = term.Viewport(sw, sh, cfg.CellSize)
	}

	sim, err := cfg.Build(width, height)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, sim.Close())
	}()

	return term.New(screen, sim, cfg.GensPerSec).Run()
}
