package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/frameloop/engine"
	"github.com/milk9111/frameloop/input"
)

var mouseButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
}

// EventSource turns ebiten's polled device state into engine events. Sample
// runs once per Update, before the engine pumps the queue.
type EventSource struct {
	queue  engine.EventQueue
	window *Window

	pads    []ebiten.GamepadID
	known   map[ebiten.GamepadID]bool
	axes    map[ebiten.GamepadID][2]float64
	keys    []ebiten.Key
	cursor  engine.Vec2I
	winSize engine.Vec2I
	closed  bool
}

func NewEventSource(window *Window) *EventSource {
	return &EventSource{
		window: window,
		known:  make(map[ebiten.GamepadID]bool),
		axes:   make(map[ebiten.GamepadID][2]float64),
	}
}

var _ engine.EventSource = (*EventSource)(nil)

func (s *EventSource) PollEvent() (engine.Event, bool) {
	return s.queue.PollEvent()
}

// Push queues a synthetic event, e.g. a quit from a UI button.
func (s *EventSource) Push(ev engine.Event) {
	s.queue.Push(ev)
}

func (s *EventSource) Sample() {
	if ebiten.IsWindowBeingClosed() && !s.closed {
		s.closed = true
		s.queue.Push(engine.QuitEvent{})
	}

	s.sampleGamepads()
	s.sampleKeys()
	s.sampleMouse()
	s.sampleWindow()
}

func (s *EventSource) sampleGamepads() {
	s.pads = inpututil.AppendJustConnectedGamepadIDs(s.pads[:0])
	for _, id := range s.pads {
		s.known[id] = true
		s.queue.Push(engine.ControllerAddedEvent{Device: engine.DeviceID(id)})
	}
	for id := range s.known {
		if !inpututil.IsGamepadJustDisconnected(id) {
			continue
		}
		delete(s.known, id)
		delete(s.axes, id)
		s.queue.Push(engine.ControllerRemovedEvent{Device: engine.DeviceID(id)})
	}

	for id := range s.known {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		dev := engine.DeviceID(id)
		for b := ebiten.StandardGamepadButton(0); b <= ebiten.StandardGamepadButtonMax; b++ {
			switch {
			case inpututil.IsStandardGamepadButtonJustPressed(id, b):
				s.queue.Push(engine.ButtonEvent{Device: dev, Button: engine.Button(b), Down: true})
			case inpututil.IsStandardGamepadButtonJustReleased(id, b):
				s.queue.Push(engine.ButtonEvent{Device: dev, Button: engine.Button(b), Down: false})
			}
		}
		prev := s.axes[id]
		cur := [2]float64{
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
		}
		if cur[0] != prev[0] {
			s.queue.Push(engine.AxisEvent{Device: dev, Axis: input.AxisLeftX, Value: cur[0]})
		}
		if cur[1] != prev[1] {
			s.queue.Push(engine.AxisEvent{Device: dev, Axis: input.AxisLeftY, Value: cur[1]})
		}
		s.axes[id] = cur
	}
}

func (s *EventSource) sampleKeys() {
	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		s.queue.Push(engine.KeyEvent{Code: engine.KeyCode(k), Down: true})
	}
	s.keys = inpututil.AppendJustReleasedKeys(s.keys[:0])
	for _, k := range s.keys {
		s.queue.Push(engine.KeyEvent{Code: engine.KeyCode(k), Down: false})
	}
}

func (s *EventSource) sampleMouse() {
	for _, b := range mouseButtons {
		switch {
		case inpututil.IsMouseButtonJustPressed(b):
			s.queue.Push(engine.MouseButtonEvent{Button: engine.MouseButton(b), Down: true})
		case inpututil.IsMouseButtonJustReleased(b):
			s.queue.Push(engine.MouseButtonEvent{Button: engine.MouseButton(b), Down: false})
		}
	}
	x, y := ebiten.CursorPosition()
	p := engine.Vec2I{X: x, Y: y}
	if p != s.cursor {
		d := p.Sub(s.cursor)
		s.cursor = p
		s.queue.Push(engine.MouseMoveEvent{X: x, Y: y, DX: d.X, DY: d.Y})
	}
}

func (s *EventSource) sampleWindow() {
	w, h := ebiten.WindowSize()
	size := engine.Vec2I{X: w, Y: h}
	if size == s.winSize {
		return
	}
	first := !s.winSize.Positive()
	s.winSize = size
	if first || s.window == nil || size == s.window.RequestedSize() {
		return
	}
	s.queue.Push(engine.WindowResizedEvent{Width: w, Height: h})
}
