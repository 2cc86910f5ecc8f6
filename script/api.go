package script

import (
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/frameloop/input"
	"github.com/milk9111/frameloop/sound"
)

func (rt *Runtime) api() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["just_pressed"] = &tengo.UserFunction{Name: "just_pressed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(rt.keyQuery(args, true)), nil
	}}

	values["pressed"] = &tengo.UserFunction{Name: "pressed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(rt.keyQuery(args, false)), nil
	}}

	values["music"] = rt.songFunc("music", func(s sound.Song) error { return rt.music.SetWithFade(s) })
	values["music_now"] = rt.songFunc("music_now", func(s sound.Song) error { return rt.music.SetImmediate(s) })
	values["battle"] = rt.songFunc("battle", func(s sound.Song) error { return rt.music.SetForeground(s) })

	values["end_battle"] = &tengo.UserFunction{Name: "end_battle", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if rt.music == nil {
			return tengo.FalseValue, nil
		}
		rt.music.FadeForegroundToAmbient()
		return tengo.TrueValue, nil
	}}

	values["phase"] = &tengo.UserFunction{Name: "phase", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if rt.music == nil {
			return &tengo.String{Value: sound.Idle.String()}, nil
		}
		slot := sound.Ambient
		if len(args) > 0 && strings.TrimSpace(objectAsString(args[0])) == sound.Foreground.String() {
			slot = sound.Foreground
		}
		return &tengo.String{Value: rt.music.Phase(slot).String()}, nil
	}}

	values["next"] = &tengo.UserFunction{Name: "next", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" || !rt.defines(name) {
			rt.log.Warn().Str("state", name).Msg("next: unknown state")
			return tengo.FalseValue, nil
		}
		rt.next(name)
		return tengo.TrueValue, nil
	}}

	values["quit"] = &tengo.UserFunction{Name: "quit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(rt.sched.Quit.Request()), nil
	}}

	values["delta"] = &tengo.UserFunction{Name: "delta", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: rt.sched.DeltaTime()}, nil
	}}

	values["iteration"] = &tengo.UserFunction{Name: "iteration", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(rt.sched.Iteration())}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		rt.log.Info().Str("script", rt.name).Str("state", rt.current).Msg(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func (rt *Runtime) songFunc(name string, apply func(sound.Song) error) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if rt.music == nil {
			return tengo.FalseValue, nil
		}
		song := sound.None
		if len(args) > 0 {
			song = sound.Song(strings.TrimSpace(objectAsString(args[0])))
		}
		if err := apply(song); err != nil {
			return &tengo.Error{Value: &tengo.String{Value: err.Error()}}, nil
		}
		return tengo.TrueValue, nil
	}}
}

func (rt *Runtime) keyQuery(args []tengo.Object, edge bool) bool {
	if rt.keys == nil || len(args) < 1 {
		return false
	}
	k, err := input.ParseKey(objectAsString(args[0]))
	if err != nil {
		return false
	}
	if edge {
		return rt.keys.IsJustPressed(k)
	}
	return rt.keys.IsPressed(k)
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Undefined:
		return ""
	default:
		return strings.Trim(v.String(), "\"")
	}
}
