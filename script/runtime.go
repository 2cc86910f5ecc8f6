package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/frameloop/engine"
	"github.com/milk9111/frameloop/input"
	"github.com/milk9111/frameloop/logging"
	"github.com/milk9111/frameloop/sound"
	"github.com/rs/zerolog"
)

var (
	ErrUnknownState = errors.New("script: unknown state")
	ErrNoStates     = errors.New("script: no states defined")
)

// Music is the part of the crossfader scripts drive.
type Music interface {
	SetImmediate(sound.Song) error
	SetWithFade(sound.Song) error
	SetForeground(sound.Song) error
	FadeForegroundToAmbient()
	Phase(sound.Slot) sound.Phase
}

// Keys answers edge queries for logical keys.
type Keys interface {
	IsJustPressed(input.Key) bool
	IsPressed(input.Key) bool
}

// A behaviour script defines a `states` map of functions. The running state
// is called once per iteration with the frameloop API and a persistent data
// map; calling next(name) switches the primary callback to another state
// from the following iteration on.
const dispatchScript = `
__fn := states[__state]
__missing := !is_callable(__fn)
if !__missing {
	__fn(__api, __data)
}
`

// Runtime runs a tengo behaviour script as the engine's primary callback.
type Runtime struct {
	name     string
	compiled *tengo.Compiled
	data     *tengo.Map
	initial  string
	current  string

	sched *engine.Scheduler
	music Music
	keys  Keys

	log      zerolog.Logger
	throttle *logging.Throttle
	failures int
}

type Option func(*Runtime)

func WithLogger(l zerolog.Logger) Option {
	return func(rt *Runtime) { rt.log = l }
}

// New compiles src. name identifies the script in logs and errors.
func New(name string, src []byte, sched *engine.Scheduler, music Music, keys Keys, opts ...Option) (*Runtime, error) {
	if sched == nil {
		return nil, fmt.Errorf("script: %s: nil scheduler", name)
	}
	rt := &Runtime{
		name:     name,
		data:     &tengo.Map{Value: map[string]tengo.Object{}},
		sched:    sched,
		music:    music,
		keys:     keys,
		log:      logging.Nop(),
		throttle: logging.NewThrottle(logging.DefaultThrottleInterval, 1),
	}
	for _, opt := range opts {
		opt(rt)
	}
	if err := rt.compile(src); err != nil {
		return nil, err
	}
	return rt, nil
}

func (rt *Runtime) compile(src []byte) error {
	script := tengo.NewScript([]byte(string(src) + "\n" + dispatchScript))
	_ = script.Add("__state", "")
	_ = script.Add("__api", map[string]any{})
	_ = script.Add("__data", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("script: compile %s: %w", rt.name, err)
	}

	// Evaluate the top level once to read the declared states.
	if err := compiled.Set("__api", &tengo.ImmutableMap{Value: map[string]tengo.Object{}}); err != nil {
		return fmt.Errorf("script: %s: %w", rt.name, err)
	}
	if err := compiled.Run(); err != nil {
		return fmt.Errorf("script: %s: %w", rt.name, err)
	}
	states, ok := compiled.Get("states").Value().(map[string]any)
	if !ok || len(states) == 0 {
		return fmt.Errorf("%w in %s", ErrNoStates, rt.name)
	}

	initial := ""
	if compiled.IsDefined("initial_state") {
		initial = strings.TrimSpace(compiled.Get("initial_state").String())
	}
	if initial == "" {
		for s := range states {
			if initial == "" || s < initial {
				initial = s
			}
		}
	}
	if _, ok := states[initial]; !ok {
		return fmt.Errorf("%w %q in %s", ErrUnknownState, initial, rt.name)
	}

	rt.compiled = compiled
	rt.initial = initial
	return nil
}

// Reload recompiles the script from src. The data map and the current state
// survive when the new script still defines that state.
func (rt *Runtime) Reload(src []byte) error {
	if err := rt.compile(src); err != nil {
		return err
	}
	if rt.current != "" && !rt.defines(rt.current) {
		rt.log.Warn().Str("state", rt.current).Str("initial", rt.initial).Msg("state removed on reload")
		rt.current = ""
		rt.Start()
	}
	rt.failures = 0
	rt.log.Info().Str("script", rt.name).Msg("reloaded")
	return nil
}

// Start arms the primary slot with the initial state.
func (rt *Runtime) Start() {
	rt.next(rt.initial)
}

// Goto arms the primary slot with state from the next iteration on.
func (rt *Runtime) Goto(state string) error {
	if !rt.defines(state) {
		return fmt.Errorf("%w %q in %s", ErrUnknownState, state, rt.name)
	}
	rt.next(state)
	return nil
}

// Initial is the state Start runs.
func (rt *Runtime) Initial() string {
	return rt.initial
}

// Current is the state that ran last.
func (rt *Runtime) Current() string {
	return rt.current
}

// Data exposes the persistent script data map.
func (rt *Runtime) Data() map[string]any {
	out := make(map[string]any, len(rt.data.Value))
	for k, v := range rt.data.Value {
		out[k] = tengo.ToInterface(v)
	}
	return out
}

// Callback returns the primary callback running state.
func (rt *Runtime) Callback(state string) engine.Callback {
	return func() {
		if err := rt.Run(state); err != nil {
			rt.failures++
			if ok, dropped := rt.throttle.AllowAt(rt.sched.Frame().Last); ok {
				rt.log.Error().Err(err).Str("state", state).Int("suppressed", dropped).Msg("behaviour failed")
			}
		}
	}
}

// Failures counts iterations whose state returned an error.
func (rt *Runtime) Failures() int {
	return rt.failures
}

// Run executes state once.
func (rt *Runtime) Run(state string) error {
	rt.current = state
	if err := rt.compiled.Set("__state", state); err != nil {
		return fmt.Errorf("script: %s: state %s: %w", rt.name, state, err)
	}
	if err := rt.compiled.Set("__api", rt.api()); err != nil {
		return fmt.Errorf("script: %s: state %s: %w", rt.name, state, err)
	}
	if err := rt.compiled.Set("__data", rt.data); err != nil {
		return fmt.Errorf("script: %s: state %s: %w", rt.name, state, err)
	}
	if err := rt.compiled.Run(); err != nil {
		return fmt.Errorf("script: %s: state %s: %w", rt.name, state, err)
	}
	if rt.compiled.Get("__missing").Bool() {
		return fmt.Errorf("%w %q in %s", ErrUnknownState, state, rt.name)
	}
	return nil
}

func (rt *Runtime) defines(state string) bool {
	states, ok := rt.compiled.Get("states").Value().(map[string]any)
	if !ok {
		return false
	}
	_, ok = states[state]
	return ok
}

func (rt *Runtime) next(state string) {
	rt.sched.Primary.Set(rt.Callback(state))
}
