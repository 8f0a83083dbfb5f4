//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strings"

	"par-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	hudPadding    = 6
	hudLineHeight = 14
)

// HUD shows the generation counter, the generation rate and the rule
// parameters in the top-left corner. H toggles it.
type HUD struct {
	sim      core.Sim
	visible  bool
	snapshot core.ParameterSnapshot
}

// NewHUD constructs a HUD for the provided automaton.
func NewHUD(sim core.Sim) *HUD {
	h := &HUD{sim: sim, visible: true}
	if provider, ok := sim.(core.ParameterProvider); ok {
		h.snapshot = provider.Parameters()
	}
	return h
}

// Update handles the visibility toggle.
func (h *HUD) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		h.visible = !h.visible
	}
}

// Draw renders the panel.
func (h *HUD) Draw(screen *ebiten.Image, rate int, paused bool) {
	if !h.visible {
		return
	}
	lines := h.lines(rate, paused)
	width := 0
	for _, l := range lines {
		if len(l) > width {
			width = len(l)
		}
	}
	face := basicfont.Face7x13
	panelW := float32(width*face.Advance + 2*hudPadding)
	panelH := float32(len(lines)*hudLineHeight + 2*hudPadding)
	vector.DrawFilledRect(screen, 0, 0, panelW, panelH, color.RGBA{A: 170}, false)
	for i, l := range lines {
		y := hudPadding + (i+1)*hudLineHeight - 3
		text.Draw(screen, l, face, hudPadding, y, color.White)
	}
}

func (h *HUD) lines(rate int, paused bool) []string {
	state := "running"
	if paused {
		state = "paused"
	}
	g := h.sim.Grid()
	lines := []string{
		fmt.Sprintf("%s  %dx%d", h.sim.Name(), g.Cols, g.Rows),
		fmt.Sprintf("gen %d  %d gen/s  %s", h.sim.Generation(), rate, state),
	}
	for _, group := range h.snapshot.Groups {
		parts := make([]string, 0, len(group.Params))
		for _, p := range group.Params {
			parts = append(parts, p.Label+"="+p.Value)
		}
		lines = append(lines, strings.Join(parts, "  "))
	}
	return lines
}
