package core

import "time"

// GenerationTimer paces generations at an adjustable generations-per-second
// rate. The rate never drops below one generation per second.
type GenerationTimer struct {
	rate        int
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewGenerationTimer constructs a timer targeting the given rate.
func NewGenerationTimer(rate int) *GenerationTimer {
	t := &GenerationTimer{now: time.Now}
	t.SetRate(rate)
	t.accumulator = t.step
	return t
}

// SetRate changes the generation rate. It is safe to call from the main loop.
func (t *GenerationTimer) SetRate(rate int) {
	if rate < 1 {
		rate = 1
	}
	t.rate = rate
	t.step = time.Second / time.Duration(rate)
}

// Rate returns the current generations-per-second target.
func (t *GenerationTimer) Rate() int { return t.rate }

// IncRate speeds the timer up by one generation per second.
func (t *GenerationTimer) IncRate() { t.SetRate(t.rate + 1) }

// DecRate slows the timer down by one generation per second.
func (t *GenerationTimer) DecRate() { t.SetRate(t.rate - 1) }

// Due reports whether the next generation should be computed now. Elapsed
// time carries over, so a slow frame does not lose generations.
func (t *GenerationTimer) Due() bool {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
	}
	t.accumulator += now.Sub(t.last)
	t.last = now
	if t.accumulator >= t.step {
		t.accumulator -= t.step
		return true
	}
	return false
}
