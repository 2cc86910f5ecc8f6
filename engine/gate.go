package engine

import (
	"github.com/milk9111/frameloop/logging"
	"github.com/rs/zerolog"
)

// FrameGate decides per iteration whether rendering happens. Logic timing
// always advances; only drawing and presentation are skipped.
type FrameGate struct {
	clock    *Clock
	renderer Renderer
	stats    *FrameStats
	log      zerolog.Logger
	throttle *logging.Throttle
}

func NewFrameGate(c *Clock, r Renderer, stats *FrameStats, logger zerolog.Logger) *FrameGate {
	return &FrameGate{
		clock:    c,
		renderer: r,
		stats:    stats,
		log:      logger,
		throttle: logging.NewThrottle(logging.DefaultThrottleInterval, 1),
	}
}

// Decide advances ft and reports whether this frame must skip rendering.
func (g *FrameGate) Decide(ft *FrameTime) bool {
	skip := g.clock.Advance(ft)
	g.stats.frame(*ft)

	switch {
	case skip:
		g.warn(ft, "time went back")
		return true
	case ft.Clamped:
		g.warn(ft, "time between frames was longer than the delta ceiling")
	}

	if g.renderer != nil {
		g.renderer.PrepareFrame(*ft)
	}
	return false
}

func (g *FrameGate) warn(ft *FrameTime, msg string) {
	ok, dropped := g.throttle.AllowAt(ft.Last)
	if !ok {
		return
	}
	g.log.Debug().Time("now", ft.Last).Int("suppressed", dropped).Msg(msg)
}
