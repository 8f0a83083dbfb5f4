package term

import (
	"testing"

	"par-ca/internal/core"
	"par-ca/internal/engine"
	"par-ca/internal/sims/life"

	"github.com/gdamore/tcell/v2"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func newLife(t *testing.T, screenW, screenH int) *engine.Automaton[life.State] {
	t.Helper()
	w, h := Viewport(screenW, screenH, 1)
	opts := core.Options{Width: w, Height: h, CellSize: 1, Threads: 2, Chunks: 4, Seed: 1}
	a, err := life.New(opts, life.Config{AliveRatio: 0, Rule: life.DefaultRule})
	if err != nil {
		t.Fatalf("life.New: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestViewport(t *testing.T) {
	w, h := Viewport(81, 25, 5)
	if w != 200 || h != 120 {
		t.Fatalf("viewport = %vx%v, expected 200x120", w, h)
	}
}

func TestDrawPaintsCellsAsDoubleColumns(t *testing.T) {
	screen := newScreen(t, 8, 4)
	a := newLife(t, 8, 4)
	g := a.Grid()
	if g.Cols != 4 || g.Rows != 3 {
		t.Fatalf("grid = %dx%d", g.Cols, g.Rows)
	}
	cells := make([]life.State, g.Total())
	cells[g.Index(1, 2)] = life.Alive
	if err := a.Load(cells); err != nil {
		t.Fatalf("Load: %v", err)
	}

	f := New(screen, a, 10)
	f.Draw()

	for _, x := range []int{2, 3} {
		_, _, style, _ := screen.GetContent(x, 2)
		_, bg, _ := style.Decompose()
		if bg != tcell.NewRGBColor(0, 0, 0) {
			t.Fatalf("alive cell column %d background = %v", x, bg)
		}
	}
	_, _, style, _ := screen.GetContent(0, 0)
	if _, bg, _ := style.Decompose(); bg != tcell.NewRGBColor(255, 255, 255) {
		t.Fatalf("dead cell background = %v", bg)
	}
	if r, _, _, _ := screen.GetContent(1, 3); r != 'l' {
		t.Fatalf("status bar should start with the sim name, got %q", r)
	}
}

func TestKeysAndTick(t *testing.T) {
	screen := newScreen(t, 8, 4)
	a := newLife(t, 8, 4)
	f := New(screen, a, 1)

	key := func(r rune) bool { return f.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)) }

	if key(' ') || !f.paused {
		t.Fatal("space should pause")
	}
	if advanced, err := f.Tick(); err != nil || advanced {
		t.Fatalf("paused Tick = %v, %v", advanced, err)
	}
	key('n')
	if advanced, err := f.Tick(); err != nil || !advanced {
		t.Fatalf("single step Tick = %v, %v", advanced, err)
	}
	if a.Generation() != 1 {
		t.Fatalf("generation = %d after single step", a.Generation())
	}

	key('+')
	key('+')
	if f.timer.Rate() != 3 {
		t.Fatalf("rate = %d", f.timer.Rate())
	}
	key('-')
	if f.timer.Rate() != 2 {
		t.Fatalf("rate = %d", f.timer.Rate())
	}

	key('c')
	if !f.showChunks {
		t.Fatal("c should enable the chunk overlay")
	}
	f.Draw()

	if !key('q') {
		t.Fatal("q should quit")
	}
	if !f.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("Esc should quit")
	}
}
