package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/frameloop/engine"
)

// Host adapts the engine to ebiten's game loop: every ebiten Update is one
// engine iteration and Draw shows the last presented frame.
type Host struct {
	engine *engine.Engine
	window *Window
	events *EventSource
	// AfterStep runs after each iteration that kept the engine running.
	AfterStep func()
}

func NewHost(eng *engine.Engine, window *Window, events *EventSource) *Host {
	return &Host{engine: eng, window: window, events: events}
}

func (h *Host) Update() error {
	h.events.Sample()
	if !h.engine.Step() {
		if err := h.engine.Shutdown(); err != nil {
			return err
		}
		return ebiten.Termination
	}
	if h.AfterStep != nil {
		h.AfterStep()
	}
	return nil
}

func (h *Host) Draw(screen *ebiten.Image) {
	h.window.Draw(screen)
}

func (h *Host) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	h.window.Layout(int(outsideWidth), int(outsideHeight))
	return outsideWidth, outsideHeight
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
