package input

import (
	"testing"

	"github.com/milk9111/frameloop/engine"
	"github.com/stretchr/testify/require"
)

const (
	keyZ     engine.KeyCode = 25
	keyEnter engine.KeyCode = 60
	padSouth engine.Button  = 0
)

func testManager() *Manager {
	b := NewBindings()
	b.BindKey(A, keyZ)
	b.BindKey(Start, keyEnter)
	b.BindButton(A, padSouth)
	return NewManager(WithBindings(b))
}

func TestKeyboardEdges(t *testing.T) {
	m := testManager()

	m.PrepareEdgeState()
	m.OnKeyChanged(keyZ, true)
	require.True(t, m.IsPressed(A))
	require.True(t, m.IsJustPressed(A))
	require.False(t, m.IsJustPressed(Start))

	m.PrepareEdgeState()
	require.True(t, m.IsPressed(A))
	require.False(t, m.IsJustPressed(A))

	m.OnKeyChanged(keyZ, false)
	require.True(t, m.IsJustReleased(A))
	m.PrepareEdgeState()
	require.False(t, m.IsJustReleased(A))
}

func TestPrimaryControllerDrivesKeys(t *testing.T) {
	m := testManager()
	m.OnControllerAdded(3)
	m.OnControllerAdded(7)
	m.OnControllerAdded(3)

	id, ok := m.PrimaryController()
	require.True(t, ok)
	require.Equal(t, engine.DeviceID(3), id)

	m.PrepareEdgeState()
	m.OnButtonChanged(engine.ButtonEvent{Device: 7, Button: padSouth, Down: true}, true)
	require.False(t, m.IsPressed(A))

	m.OnButtonChanged(engine.ButtonEvent{Device: 3, Button: padSouth, Down: true}, true)
	require.True(t, m.IsJustPressed(A))

	m.OnControllerRemoved(3)
	id, _ = m.PrimaryController()
	require.Equal(t, engine.DeviceID(7), id)
	require.True(t, m.IsPressed(A))

	m.OnControllerRemoved(7)
	m.OnControllerRemoved(7)
	_, ok = m.PrimaryController()
	require.False(t, ok)
	require.False(t, m.IsPressed(A))
}

func TestStickDirections(t *testing.T) {
	cases := []struct {
		name  string
		axis  engine.Axis
		value float64
		want  Key
	}{
		{"left", AxisLeftX, -0.8, Left},
		{"right", AxisLeftX, 0.5, Right},
		{"up", AxisLeftY, -1, Up},
		{"down", AxisLeftY, 0.3, Down},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := testManager()
			m.OnControllerAdded(1)
			m.PrepareEdgeState()
			m.OnAxisChanged(engine.AxisEvent{Device: 1, Axis: c.axis, Value: c.value})
			require.True(t, m.IsJustPressed(c.want))
			for _, k := range []Key{Left, Right, Up, Down} {
				if k != c.want {
					require.False(t, m.IsPressed(k), k.String())
				}
			}
		})
	}
}

func TestStickDeadzone(t *testing.T) {
	m := testManager()
	m.OnControllerAdded(1)
	m.OnAxisChanged(engine.AxisEvent{Device: 1, Axis: AxisLeftX, Value: 0.1})
	require.False(t, m.IsPressed(Right))

	m = NewManager(WithDeadzone(0.05))
	m.OnControllerAdded(1)
	m.OnAxisChanged(engine.AxisEvent{Device: 1, Axis: AxisLeftX, Value: 0.1})
	require.True(t, m.IsPressed(Right))
}

func TestMouseState(t *testing.T) {
	m := NewManager()
	m.OnMouseButton(0, true)
	m.OnMouseMove(engine.MouseMoveEvent{X: 40, Y: 12, DX: 4})
	require.True(t, m.IsMouseDown(0))
	require.Equal(t, engine.Vec2I{X: 40, Y: 12}, m.Cursor())

	require.NoError(t, m.Quit())
	require.False(t, m.IsMouseDown(0))
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey(" Start ")
	require.NoError(t, err)
	require.Equal(t, Start, k)

	_, err = ParseKey("turbo")
	require.Error(t, err)

	require.Len(t, Keys(), int(keyCount))
	require.Equal(t, "key(99)", Key(99).String())
	require.False(t, NewManager().IsJustPressed(Key(99)))
}
