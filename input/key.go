package input

import (
	"fmt"
	"strings"
)

// Key is a logical button the game reads, independent of the device that
// produced it.
type Key int

const (
	A Key = iota
	B
	X
	Y
	L
	R
	Start
	Select
	Up
	Down
	Left
	Right
	Screenshot
	keyCount
)

var keyNames = [keyCount]string{
	A:          "a",
	B:          "b",
	X:          "x",
	Y:          "y",
	L:          "l",
	R:          "r",
	Start:      "start",
	Select:     "select",
	Up:         "up",
	Down:       "down",
	Left:       "left",
	Right:      "right",
	Screenshot: "screenshot",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return fmt.Sprintf("key(%d)", int(k))
	}
	return keyNames[k]
}

// Keys lists every logical key.
func Keys() []Key {
	out := make([]Key, keyCount)
	for i := range out {
		out[i] = Key(i)
	}
	return out
}

// ParseKey resolves a logical key name, case-insensitively.
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range keyNames {
		if n == name {
			return Key(k), nil
		}
	}
	return 0, fmt.Errorf("input: unknown key %q", name)
}
