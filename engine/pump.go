package engine

import (
	"github.com/rs/zerolog"
)

// EventPump drains the platform queue once per iteration and fans events out
// to the device collaborators.
type EventPump struct {
	source   EventSource
	input    Input
	window   WindowState
	quit     *QuitFlag
	stats    *FrameStats
	log      zerolog.Logger
	handlers map[EventKind]func(Event)
}

func NewEventPump(source EventSource, in Input, window WindowState, quit *QuitFlag, stats *FrameStats, logger zerolog.Logger) *EventPump {
	p := &EventPump{
		source: source,
		input:  in,
		window: window,
		quit:   quit,
		stats:  stats,
		log:    logger,
	}
	p.handlers = map[EventKind]func(Event){
		EventControllerAdded: func(ev Event) {
			p.input.OnControllerAdded(ev.(ControllerAddedEvent).Device)
		},
		EventControllerRemoved: func(ev Event) {
			p.input.OnControllerRemoved(ev.(ControllerRemovedEvent).Device)
		},
		EventAxis: func(ev Event) {
			p.input.OnAxisChanged(ev.(AxisEvent))
		},
		EventButton: func(ev Event) {
			b := ev.(ButtonEvent)
			p.input.OnButtonChanged(b, b.Down)
		},
		EventKey: func(ev Event) {
			k := ev.(KeyEvent)
			if k.Down && k.Repeat {
				return
			}
			p.input.OnKeyChanged(k.Code, k.Down)
		},
		EventMouseButton: func(ev Event) {
			m := ev.(MouseButtonEvent)
			p.input.OnMouseButton(m.Button, m.Down)
		},
		EventMouseMove: func(ev Event) {
			p.input.OnMouseMove(ev.(MouseMoveEvent))
		},
		EventWindowResized: func(Event) {
			if p.window != nil {
				p.window.SetAutoFit(false)
			}
		},
	}
	return p
}

// Pump drains every pending event. It returns true as soon as a quit event is
// seen; events queued behind it are left unread.
func (p *EventPump) Pump() bool {
	for {
		ev, ok := p.source.PollEvent()
		if !ok {
			return false
		}
		p.stats.event(ev.Kind())

		if ev.Kind() == EventQuit {
			if p.quit.Request() {
				p.log.Info().Msg("quit requested by platform")
			}
			return true
		}

		handle, ok := p.handlers[ev.Kind()]
		if !ok {
			p.log.Debug().Stringer("kind", ev.Kind()).Msg("unhandled event")
			continue
		}
		handle(ev)
	}
}
