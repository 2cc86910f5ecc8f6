package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/milk9111/frameloop/logging"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"
)

// State is the lifecycle of the loop driver.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateQuitting
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StateQuitting:
		return "quitting"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// StartFunc builds the game object. It runs after every subsystem is up and
// usually arms the first primary callback.
type StartFunc func(s *Scheduler) error

type subsystem struct {
	name string
	quit func() error
}

// Engine is the single driver of the main loop. Every other component is
// polled by it once per iteration.
type Engine struct {
	sched    *Scheduler
	clock    *Clock
	gate     *FrameGate
	pump     *EventPump
	diag     *DiagnosticFilter
	stats    *FrameStats
	log      zerolog.Logger
	source   clock.Clock
	input    Input
	events   EventSource
	renderer Renderer
	audio    Audio
	importer Importer
	start    StartFunc
	state    State
	acquired []subsystem
}

type Option func(*Engine)

func WithInput(in Input) Option                  { return func(e *Engine) { e.input = in } }
func WithEventSource(src EventSource) Option     { return func(e *Engine) { e.events = src } }
func WithRenderer(r Renderer) Option             { return func(e *Engine) { e.renderer = r } }
func WithAudio(a Audio) Option                   { return func(e *Engine) { e.audio = a } }
func WithImporter(i Importer) Option             { return func(e *Engine) { e.importer = i } }
func WithStart(fn StartFunc) Option              { return func(e *Engine) { e.start = fn } }
func WithClock(c clock.Clock) Option             { return func(e *Engine) { e.source = c } }
func WithLogger(l zerolog.Logger) Option         { return func(e *Engine) { e.log = l } }
func WithStats(s *FrameStats) Option             { return func(e *Engine) { e.stats = s } }
func WithDiagnostics(d *DiagnosticFilter) Option { return func(e *Engine) { e.diag = d } }

// New wires an engine. Input, event source and renderer are required; audio
// and importer default to no-ops.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		sched: NewScheduler(),
		log:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	switch {
	case e.input == nil:
		return nil, fmt.Errorf("%w: input", ErrMissingCollaborator)
	case e.events == nil:
		return nil, fmt.Errorf("%w: event source", ErrMissingCollaborator)
	case e.renderer == nil:
		return nil, fmt.Errorf("%w: renderer", ErrMissingCollaborator)
	}
	if e.audio == nil {
		e.audio = nopAudio{}
	}
	if e.importer == nil {
		e.importer = NopImporter{}
	}
	if e.diag == nil {
		e.diag = NewDiagnosticFilter(e.log, DefaultIgnoredDiagnostics...)
	}

	window, _ := e.renderer.(WindowState)
	e.clock = NewClock(e.source)
	e.gate = NewFrameGate(e.clock, e.renderer, e.stats, e.log)
	e.pump = NewEventPump(e.events, e.input, window, &e.sched.Quit, e.stats, e.log)
	return e, nil
}

func (e *Engine) Scheduler() *Scheduler {
	return e.sched
}

func (e *Engine) State() State {
	return e.state
}

// Init brings up the subsystems in dependency order: the window and graphics
// context first, audio last before the game object. On failure everything
// already acquired is released in reverse order. A stopped engine cannot be
// restarted.
func (e *Engine) Init() error {
	switch e.state {
	case StateNotStarted:
	case StateStopped:
		return ErrStopped
	default:
		return ErrAlreadyStarted
	}

	steps := []struct {
		name string
		init func() error
		quit func() error
	}{
		{"renderer", e.renderer.Init, e.renderer.Quit},
		{"input", e.input.Init, e.input.Quit},
		{"importer", e.importer.Init, e.importer.Quit},
		{"audio", e.audio.Init, e.audio.Deinit},
	}
	for _, step := range steps {
		if err := step.init(); err != nil {
			err = fmt.Errorf("engine: init %s: %w", step.name, err)
			e.state = StateStopped
			return multierr.Append(err, e.release())
		}
		e.acquired = append(e.acquired, subsystem{name: step.name, quit: step.quit})
		e.log.Debug().Str("subsystem", step.name).Msg("initialized")
	}

	if e.start != nil {
		if err := e.start(e.sched); err != nil {
			err = fmt.Errorf("engine: start game: %w", err)
			e.state = StateStopped
			return multierr.Append(err, e.release())
		}
	}

	e.sched.frame = FrameTime{Last: e.clock.Now()}
	e.state = StateRunning
	e.log.Info().Msg("main loop running")
	return nil
}

// Step runs one iteration and reports whether the loop should continue.
func (e *Engine) Step() bool {
	if e.state != StateRunning {
		return false
	}
	if e.sched.Quit.Requested() {
		e.state = StateQuitting
		return false
	}

	e.sched.iteration++
	e.stats.iteration()

	e.input.PrepareEdgeState()
	if e.pump.Pump() {
		e.state = StateQuitting
		return false
	}

	e.audio.Update()

	if !e.gate.Decide(&e.sched.frame) {
		e.sched.Primary.RunIfPresent()
		e.sched.Secondary.RunIfPresent()
		if err := e.renderer.PresentFrame(); err != nil {
			e.reportPresent(err)
		}
		e.stats.presented()
	}

	if e.sched.Quit.Requested() {
		e.state = StateQuitting
		return false
	}
	return true
}

func (e *Engine) reportPresent(err error) {
	var d *Diagnostic
	if errors.As(err, &d) {
		e.diag.Report(*d)
		return
	}
	e.log.Warn().Err(err).Msg("present frame")
}

// Run initializes the engine, iterates until quit or ctx is done, and shuts
// down.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.Init(); err != nil {
		return err
	}
	for e.Step() {
		if ctx.Err() != nil {
			e.sched.Quit.Request()
		}
	}
	return e.Shutdown()
}

// Shutdown releases audio, importer, input and renderer, the reverse of
// acquisition. It is safe to call more than once.
func (e *Engine) Shutdown() error {
	if e.state == StateStopped {
		return nil
	}
	e.state = StateQuitting
	err := e.release()
	e.state = StateStopped
	e.log.Info().Err(err).Msg("main loop stopped")
	return err
}

func (e *Engine) release() error {
	var err error
	for i := len(e.acquired) - 1; i >= 0; i-- {
		s := e.acquired[i]
		if qerr := s.quit(); qerr != nil {
			err = multierr.Append(err, fmt.Errorf("engine: quit %s: %w", s.name, qerr))
		}
	}
	e.acquired = nil
	return err
}
