//go:build ebiten

package app

import (
	"par-ca/internal/core"
	"par-ca/internal/render"
	"par-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts an automaton to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	timer   *core.GenerationTimer

	paused   bool
	tickOnce bool
}

// New constructs a Game for the provided automaton.
func New(sim core.Sim, gensPerSec int) *Game {
	g := sim.Grid()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(g.Cols, g.Rows),
		hud:     ui.NewHUD(sim),
		overlay: ui.NewOverlay(sim),
		timer:   core.NewGenerationTimer(gensPerSec),
	}
}

// Update handles input and advances the automaton when a generation is due.
// A failed generation ends the game with that error.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if _, dy := ebiten.Wheel(); dy > 0 {
		g.timer.IncRate()
	} else if dy < 0 {
		g.timer.DecRate()
	}
	g.hud.Update()
	g.overlay.Update()

	due := g.timer.Due()
	if (!g.paused && due) || g.tickOnce {
		g.tickOnce = false
		if err := g.sim.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// Draw renders the current generation.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.timer.Rate(), g.paused)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	grid := g.sim.Grid()
	return int(float64(grid.Cols) * grid.CellSize), int(float64(grid.Rows) * grid.CellSize)
}
