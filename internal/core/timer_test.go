package core

import (
	"testing"
	"time"
)

func TestGenerationTimerRate(t *testing.T) {
	timer := NewGenerationTimer(2)
	timer.DecRate()
	timer.DecRate()
	if got := timer.Rate(); got != 1 {
		t.Fatalf("rate = %d, expected clamp to 1", got)
	}
	timer.IncRate()
	if got := timer.Rate(); got != 2 {
		t.Fatalf("rate = %d, expected 2", got)
	}
	if NewGenerationTimer(0).Rate() != 1 {
		t.Fatal("zero rate should clamp to 1")
	}
}

func TestGenerationTimerCarriesElapsedTime(t *testing.T) {
	now := time.Unix(0, 0)
	timer := NewGenerationTimer(10)
	timer.now = func() time.Time { return now }

	if !timer.Due() {
		t.Fatal("first generation should be due immediately")
	}
	if timer.Due() {
		t.Fatal("no time passed, generation should not be due")
	}

	now = now.Add(250 * time.Millisecond)
	due := 0
	for timer.Due() {
		due++
	}
	if due != 2 {
		t.Fatalf("250ms at 10 gen/s yielded %d generations, expected 2", due)
	}

	now = now.Add(50 * time.Millisecond)
	if !timer.Due() {
		t.Fatal("carried 50ms plus 50ms should make a generation due")
	}
}

func TestRegistry(t *testing.T) {
	Register("", func(Options, map[string]string) (Sim, error) { return nil, nil })
	Register("nil-factory", nil)
	if _, ok := Sims()[""]; ok {
		t.Fatal("empty name must not register")
	}
	if _, ok := Sims()["nil-factory"]; ok {
		t.Fatal("nil factory must not register")
	}
	Register("zz-test", func(Options, map[string]string) (Sim, error) { return nil, nil })
	defer delete(sims, "zz-test")
	names := SimNames()
	if len(names) == 0 || names[len(names)-1] != "zz-test" {
		t.Fatalf("SimNames = %v", names)
	}
}

func TestResolveSeed(t *testing.T) {
	if ResolveSeed(7) != 7 {
		t.Fatal("non-zero seed must be kept")
	}
	if ResolveSeed(0) == 0 {
		t.Fatal("zero seed must be replaced")
	}
	a, b := NewRNG(3), NewRNG(3)
	for i := 0; i < 16; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("same seed produced different draws")
		}
	}
}
