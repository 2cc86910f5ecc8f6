package platform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/frameloop/config"
	"github.com/milk9111/frameloop/engine"
	"github.com/milk9111/frameloop/input"
	"go.uber.org/multierr"
)

var gamepadButtons = map[string]ebiten.StandardGamepadButton{
	"right_bottom":       ebiten.StandardGamepadButtonRightBottom,
	"right_right":        ebiten.StandardGamepadButtonRightRight,
	"right_left":         ebiten.StandardGamepadButtonRightLeft,
	"right_top":          ebiten.StandardGamepadButtonRightTop,
	"front_top_left":     ebiten.StandardGamepadButtonFrontTopLeft,
	"front_top_right":    ebiten.StandardGamepadButtonFrontTopRight,
	"front_bottom_left":  ebiten.StandardGamepadButtonFrontBottomLeft,
	"front_bottom_right": ebiten.StandardGamepadButtonFrontBottomRight,
	"center_left":        ebiten.StandardGamepadButtonCenterLeft,
	"center_right":       ebiten.StandardGamepadButtonCenterRight,
	"center_center":      ebiten.StandardGamepadButtonCenterCenter,
	"left_stick":         ebiten.StandardGamepadButtonLeftStick,
	"right_stick":        ebiten.StandardGamepadButtonRightStick,
	"left_top":           ebiten.StandardGamepadButtonLeftTop,
	"left_bottom":        ebiten.StandardGamepadButtonLeftBottom,
	"left_left":          ebiten.StandardGamepadButtonLeftLeft,
	"left_right":         ebiten.StandardGamepadButtonLeftRight,
}

// Bindings resolves configured key and button names. Every unknown name is
// reported.
func Bindings(cfg config.InputConfig) (input.Bindings, error) {
	b := input.NewBindings()
	var errs error

	for _, name := range sortedKeys(cfg.Keys) {
		k, err := input.ParseKey(name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		for _, keyName := range cfg.Keys[name] {
			var key ebiten.Key
			if err := key.UnmarshalText([]byte(keyName)); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("platform: key %q for %s: %w", keyName, k, err))
				continue
			}
			b.BindKey(k, engine.KeyCode(key))
		}
	}

	for _, name := range sortedKeys(cfg.Buttons) {
		k, err := input.ParseKey(name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		for _, buttonName := range cfg.Buttons[name] {
			button, ok := gamepadButtons[strings.ToLower(strings.TrimSpace(buttonName))]
			if !ok {
				errs = multierr.Append(errs, fmt.Errorf("platform: unknown gamepad button %q for %s", buttonName, k))
				continue
			}
			b.BindButton(k, engine.Button(button))
		}
	}

	return b, errs
}

func sortedKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
