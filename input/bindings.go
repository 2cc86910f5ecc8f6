package input

import "github.com/milk9111/frameloop/engine"

// Stick axes reported by the platform for the primary analog stick.
const (
	AxisLeftX engine.Axis = 0
	AxisLeftY engine.Axis = 1
)

// DefaultDeadzone is the stick magnitude below which the directional keys
// stay released.
const DefaultDeadzone = 0.2

// Bindings maps logical keys to the keyboard codes and controller buttons
// that press them.
type Bindings struct {
	Keys    map[Key][]engine.KeyCode
	Buttons map[Key][]engine.Button
}

func NewBindings() Bindings {
	return Bindings{
		Keys:    make(map[Key][]engine.KeyCode),
		Buttons: make(map[Key][]engine.Button),
	}
}

// BindKey adds code as a source for k.
func (b *Bindings) BindKey(k Key, code engine.KeyCode) {
	if b.Keys == nil {
		b.Keys = make(map[Key][]engine.KeyCode)
	}
	b.Keys[k] = append(b.Keys[k], code)
}

// BindButton adds a controller button as a source for k.
func (b *Bindings) BindButton(k Key, button engine.Button) {
	if b.Buttons == nil {
		b.Buttons = make(map[Key][]engine.Button)
	}
	b.Buttons[k] = append(b.Buttons[k], button)
}
