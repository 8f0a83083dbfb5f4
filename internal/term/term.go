// Package term runs an automaton in a terminal. Each cell is drawn as two
// character columns so that cells look roughly square; the bottom line shows
// a status bar.
package term

import (
	"fmt"
	"image/color"
	"time"

	"par-ca/internal/core"
	"par-ca/internal/render"

	"github.com/gdamore/tcell/v2"
)

// pollInterval bounds how late a due generation can be noticed.
const pollInterval = 5 * time.Millisecond

// Viewport returns the viewport that yields one grid cell per two terminal
// columns, leaving the last row for the status bar.
func Viewport(screenW, screenH int, cellSize float64) (float64, float64) {
	return float64(screenW/2) * cellSize, float64(screenH-1) * cellSize
}

// Frontend draws an automaton on a tcell screen and handles keys:
// q/Esc quit, space pauses, n single-steps, +/- change the rate and c
// toggles the chunk overlay.
type Frontend struct {
	screen tcell.Screen
	sim    core.Sim
	timer  *core.GenerationTimer
	chunks *render.ChunkMap

	paused     bool
	tickOnce   bool
	showChunks bool
}

// New returns a frontend for sim on an initialized screen.
func New(screen tcell.Screen, sim core.Sim, gensPerSec int) *Frontend {
	f := &Frontend{screen: screen, sim: sim, timer: core.NewGenerationTimer(gensPerSec)}
	f.chunks, _ = render.ChunkMapOf(sim)
	return f
}

// Run loops until the user quits or a generation fails.
func (f *Frontend) Run() error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go f.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	f.Draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if f.HandleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				f.screen.Sync()
			}
			f.Draw()
		case <-ticker.C:
			advanced, err := f.Tick()
			if err != nil {
				return err
			}
			if advanced {
				f.Draw()
			}
		}
	}
}

// Tick advances one generation when one is due or was requested.
func (f *Frontend) Tick() (bool, error) {
	due := f.timer.Due()
	if (f.paused || !due) && !f.tickOnce {
		return false, nil
	}
	f.tickOnce = false
	if err := f.sim.Advance(); err != nil {
		return false, err
	}
	return true, nil
}

// HandleKey applies a key press and reports whether the user asked to quit.
func (f *Frontend) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}
	switch ev.Rune() {
	case 'q':
		return true
	case ' ':
		f.paused = !f.paused
	case 'n':
		f.tickOnce = true
	case '+', '=':
		f.timer.IncRate()
	case '-':
		f.timer.DecRate()
	case 'c':
		f.showChunks = f.chunks != nil && !f.showChunks
	}
	return false
}

// Draw paints the current generation and the status bar.
func (f *Frontend) Draw() {
	g := f.sim.Grid()
	for col := 0; col < g.Cols; col++ {
		for row := 0; row < g.Rows; row++ {
			i := g.Index(col, row)
			c := f.sim.Color(i)
			if f.showChunks {
				c = render.Tint(c, f.chunks.Hue(i), 0.35)
			}
			style := tcell.StyleDefault.Background(toColor(c))
			f.screen.SetContent(col*2, row, ' ', nil, style)
			f.screen.SetContent(col*2+1, row, ' ', nil, style)
		}
	}
	f.drawStatus(g.Rows)
	f.screen.Show()
}

func (f *Frontend) drawStatus(y int) {
	state := "running"
	if f.paused {
		state = "paused"
	}
	g := f.sim.Grid()
	line := fmt.Sprintf(" %s %dx%d  gen %d  %d gen/s  %s  [q]uit [space] pause [n]ext [+/-] rate [c]hunks",
		f.sim.Name(), g.Cols, g.Rows, f.sim.Generation(), f.timer.Rate(), state)
	w, _ := f.screen.Size()
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(line) {
			r = rune(line[x])
		}
		f.screen.SetContent(x, y, r, nil, style)
	}
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
