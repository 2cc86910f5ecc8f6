package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FrameStats exposes loop counters. A nil *FrameStats records nothing.
type FrameStats struct {
	Iterations prometheus.Counter
	Skipped    prometheus.Counter
	Clamped    prometheus.Counter
	Presented  prometheus.Counter
	Events     *prometheus.CounterVec
	Delta      prometheus.Histogram
}

// NewFrameStats creates the collectors and registers them with reg when reg
// is not nil.
func NewFrameStats(reg prometheus.Registerer) *FrameStats {
	f := promauto.With(reg)
	return &FrameStats{
		Iterations: f.NewCounter(prometheus.CounterOpts{
			Namespace: "frameloop",
			Name:      "iterations_total",
			Help:      "Main loop iterations started.",
		}),
		Skipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: "frameloop",
			Name:      "frames_skipped_total",
			Help:      "Iterations whose rendering was skipped because time did not advance.",
		}),
		Clamped: f.NewCounter(prometheus.CounterOpts{
			Namespace: "frameloop",
			Name:      "frames_clamped_total",
			Help:      "Iterations whose delta time exceeded the ceiling.",
		}),
		Presented: f.NewCounter(prometheus.CounterOpts{
			Namespace: "frameloop",
			Name:      "frames_presented_total",
			Help:      "Frames handed to the renderer for presentation.",
		}),
		Events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frameloop",
			Name:      "events_total",
			Help:      "Platform events drained by the event pump.",
		}, []string{"kind"}),
		Delta: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "frameloop",
			Name:      "frame_delta_seconds",
			Help:      "Clamped delta time of rendered frames.",
			Buckets:   []float64{0.004, 0.008, 0.0167, 0.025, 0.0333, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (s *FrameStats) iteration() {
	if s == nil {
		return
	}
	s.Iterations.Inc()
}

func (s *FrameStats) frame(ft FrameTime) {
	if s == nil {
		return
	}
	if ft.Skipped {
		s.Skipped.Inc()
		return
	}
	if ft.Clamped {
		s.Clamped.Inc()
	}
	s.Delta.Observe(ft.Delta)
}

func (s *FrameStats) presented() {
	if s == nil {
		return
	}
	s.Presented.Inc()
}

func (s *FrameStats) event(kind EventKind) {
	if s == nil {
		return
	}
	s.Events.WithLabelValues(kind.String()).Inc()
}
