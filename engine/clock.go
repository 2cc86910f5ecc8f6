package engine

import (
	"time"

	"github.com/benbjohnson/clock"
)

// MaxDelta caps the seconds reported between two iterations. Longer gaps
// (debugger pauses, window drags) are treated as exactly one second.
const MaxDelta = 1.0

// FrameTime is the timing state carried from one iteration to the next.
type FrameTime struct {
	Last    time.Time
	Delta   float64
	Skipped bool
	Clamped bool
}

// Clock samples wall time once per iteration.
type Clock struct {
	source clock.Clock
}

func NewClock(source clock.Clock) *Clock {
	if source == nil {
		source = clock.New()
	}
	return &Clock{source: source}
}

func (c *Clock) Now() time.Time {
	return c.source.Now()
}

// Advance moves ft to the current time and reports whether the frame must
// skip rendering. Last always becomes now, even on a skip.
func (c *Clock) Advance(ft *FrameTime) bool {
	now := c.source.Now()
	prev := ft.Last
	ft.Last = now
	ft.Clamped = false

	if !now.After(prev) {
		ft.Delta = 0
		ft.Skipped = true
		return true
	}

	delta := now.Sub(prev).Seconds()
	if delta > MaxDelta {
		delta = MaxDelta
		ft.Clamped = true
	}
	ft.Delta = delta
	ft.Skipped = false
	return false
}
