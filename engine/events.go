package engine

import "fmt"

// EventKind classifies platform events for dispatch.
type EventKind int

const (
	EventQuit EventKind = iota + 1
	EventControllerAdded
	EventControllerRemoved
	EventAxis
	EventButton
	EventKey
	EventMouseButton
	EventMouseMove
	EventWindowResized
)

func (k EventKind) String() string {
	switch k {
	case EventQuit:
		return "quit"
	case EventControllerAdded:
		return "controller_added"
	case EventControllerRemoved:
		return "controller_removed"
	case EventAxis:
		return "axis"
	case EventButton:
		return "button"
	case EventKey:
		return "key"
	case EventMouseButton:
		return "mouse_button"
	case EventMouseMove:
		return "mouse_move"
	case EventWindowResized:
		return "window_resized"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

type (
	DeviceID    int
	Axis        int
	Button      int
	KeyCode     int
	MouseButton int
)

// Event is one platform event. The concrete types below are the closed set
// the pump understands.
type Event interface {
	Kind() EventKind
}

type QuitEvent struct{}

type ControllerAddedEvent struct {
	Device DeviceID
}

type ControllerRemovedEvent struct {
	Device DeviceID
}

type AxisEvent struct {
	Device DeviceID
	Axis   Axis
	Value  float64
}

type ButtonEvent struct {
	Device DeviceID
	Button Button
	Down   bool
}

type KeyEvent struct {
	Code   KeyCode
	Down   bool
	Repeat bool
}

type MouseButtonEvent struct {
	Button MouseButton
	Down   bool
}

type MouseMoveEvent struct {
	X, Y   int
	DX, DY int
}

type WindowResizedEvent struct {
	Width, Height int
}

func (QuitEvent) Kind() EventKind              { return EventQuit }
func (ControllerAddedEvent) Kind() EventKind   { return EventControllerAdded }
func (ControllerRemovedEvent) Kind() EventKind { return EventControllerRemoved }
func (AxisEvent) Kind() EventKind              { return EventAxis }
func (ButtonEvent) Kind() EventKind            { return EventButton }
func (KeyEvent) Kind() EventKind               { return EventKey }
func (MouseButtonEvent) Kind() EventKind       { return EventMouseButton }
func (MouseMoveEvent) Kind() EventKind         { return EventMouseMove }
func (WindowResizedEvent) Kind() EventKind     { return EventWindowResized }

// EventSource is the platform event queue.
type EventSource interface {
	// PollEvent removes and returns the next pending event.
	PollEvent() (Event, bool)
}

// EventQueue is a FIFO EventSource, used by platforms that synthesize events
// from polled device state.
type EventQueue struct {
	items []Event
	head  int
}

func (q *EventQueue) Push(ev Event) {
	if q == nil || ev == nil {
		return
	}
	q.items = append(q.items, ev)
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items) - q.head
}

func (q *EventQueue) PollEvent() (Event, bool) {
	if q == nil || q.head >= len(q.items) {
		return nil, false
	}
	ev := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return ev, true
}
