//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"par-ca/internal/app"
	_ "par-ca/internal/sims/briansbrain"
	_ "par-ca/internal/sims/cyclic"
	_ "par-ca/internal/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	width, height := cfg.Width, cfg.Height
	if cfg.Fullscreen {
		w, h := ebiten.Monitor().Size()
		width, height = float64(w), float64(h)
	}

	sim, err := cfg.Build(width, height)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, cfg.GensPerSec)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("par-ca - " + sim.Name())
	ebiten.SetWindowSize(w, h)
	ebiten.SetFullscreen(cfg.Fullscreen)

	runErr := ebiten.RunGame(game)
	closeErr := sim.Close()
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Fatal(runErr)
	}
	if closeErr != nil {
		log.Fatal(closeErr)
	}
}
