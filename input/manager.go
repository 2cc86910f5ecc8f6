package input

import (
	"slices"

	"github.com/milk9111/frameloop/engine"
	"github.com/milk9111/frameloop/logging"
	"github.com/rs/zerolog"
)

type controller struct {
	id      engine.DeviceID
	axes    map[engine.Axis]float64
	buttons map[engine.Button]bool
}

// Manager is the input collaborator of the engine. It folds device events
// into logical key state and keeps the previous iteration's state for edge
// queries.
type Manager struct {
	bindings Bindings
	deadzone float64

	// controllers in attach order; the first one drives logical keys.
	controllers []*controller
	keys        map[engine.KeyCode]bool
	mouse       map[engine.MouseButton]bool
	cursor      engine.Vec2I

	prev [keyCount]bool

	log zerolog.Logger
}

var _ engine.Input = (*Manager)(nil)

type Option func(*Manager)

func WithBindings(b Bindings) Option {
	return func(m *Manager) { m.bindings = b }
}

func WithDeadzone(d float64) Option {
	return func(m *Manager) { m.deadzone = d }
}

func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		bindings: NewBindings(),
		deadzone: DefaultDeadzone,
		keys:     make(map[engine.KeyCode]bool),
		mouse:    make(map[engine.MouseButton]bool),
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetBindings swaps the bindings, e.g. after a config reload. Edge state is
// kept so a held key does not report a new press.
func (m *Manager) SetBindings(b Bindings, deadzone float64) {
	m.bindings = b
	m.deadzone = deadzone
}

func (m *Manager) Init() error {
	return nil
}

// Quit detaches every controller and forgets held keys.
func (m *Manager) Quit() error {
	m.controllers = nil
	clear(m.keys)
	clear(m.mouse)
	m.prev = [keyCount]bool{}
	return nil
}

// PrepareEdgeState records the current logical state so that IsJustPressed
// reports presses that arrive during this iteration's event pump.
func (m *Manager) PrepareEdgeState() {
	for k := Key(0); k < keyCount; k++ {
		m.prev[k] = m.IsPressed(k)
	}
}

func (m *Manager) OnControllerAdded(id engine.DeviceID) {
	if m.find(id) != nil {
		return
	}
	m.controllers = append(m.controllers, &controller{
		id:      id,
		axes:    make(map[engine.Axis]float64),
		buttons: make(map[engine.Button]bool),
	})
	m.log.Info().Int("device", int(id)).Msg("controller attached")
}

func (m *Manager) OnControllerRemoved(id engine.DeviceID) {
	i := slices.IndexFunc(m.controllers, func(c *controller) bool { return c.id == id })
	if i < 0 {
		return
	}
	m.controllers = slices.Delete(m.controllers, i, i+1)
	m.log.Info().Int("device", int(id)).Msg("controller detached")
}

func (m *Manager) OnAxisChanged(ev engine.AxisEvent) {
	if c := m.find(ev.Device); c != nil {
		c.axes[ev.Axis] = ev.Value
	}
}

func (m *Manager) OnButtonChanged(ev engine.ButtonEvent, down bool) {
	if c := m.find(ev.Device); c != nil {
		c.buttons[ev.Button] = down
	}
}

func (m *Manager) OnKeyChanged(code engine.KeyCode, down bool) {
	m.keys[code] = down
}

func (m *Manager) OnMouseButton(b engine.MouseButton, down bool) {
	m.mouse[b] = down
}

func (m *Manager) OnMouseMove(ev engine.MouseMoveEvent) {
	m.cursor = engine.Vec2I{X: ev.X, Y: ev.Y}
}

// PrimaryController returns the controller that drives logical keys.
func (m *Manager) PrimaryController() (engine.DeviceID, bool) {
	if len(m.controllers) == 0 {
		return 0, false
	}
	return m.controllers[0].id, true
}

// IsPressed reports whether any binding of k is held.
func (m *Manager) IsPressed(k Key) bool {
	for _, code := range m.bindings.Keys[k] {
		if m.keys[code] {
			return true
		}
	}
	if len(m.controllers) == 0 {
		return false
	}
	c := m.controllers[0]
	for _, b := range m.bindings.Buttons[k] {
		if c.buttons[b] {
			return true
		}
	}
	switch k {
	case Left:
		return c.axes[AxisLeftX] < -m.deadzone
	case Right:
		return c.axes[AxisLeftX] > m.deadzone
	case Up:
		return c.axes[AxisLeftY] < -m.deadzone
	case Down:
		return c.axes[AxisLeftY] > m.deadzone
	}
	return false
}

// IsJustPressed reports a press that happened since the last PrepareEdgeState.
func (m *Manager) IsJustPressed(k Key) bool {
	if k < 0 || k >= keyCount {
		return false
	}
	return m.IsPressed(k) && !m.prev[k]
}

// IsJustReleased reports a release since the last PrepareEdgeState.
func (m *Manager) IsJustReleased(k Key) bool {
	if k < 0 || k >= keyCount {
		return false
	}
	return !m.IsPressed(k) && m.prev[k]
}

func (m *Manager) IsMouseDown(b engine.MouseButton) bool {
	return m.mouse[b]
}

// Cursor is the last reported mouse position in window coordinates.
func (m *Manager) Cursor() engine.Vec2I {
	return m.cursor
}

func (m *Manager) find(id engine.DeviceID) *controller {
	for _, c := range m.controllers {
		if c.id == id {
			return c
		}
	}
	return nil
}
