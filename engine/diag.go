package engine

import (
	"fmt"
	"time"

	"github.com/milk9111/frameloop/logging"
	"github.com/rs/zerolog"
)

type Severity int

const (
	SeverityNotification Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityNotification:
		return "notification"
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Diagnostic is a non-fatal message from the graphics or audio backend.
type Diagnostic struct {
	ID       int
	Type     string
	Severity Severity
	Message  string
	Err      error
}

func (d *Diagnostic) Error() string {
	if d.Err != nil {
		return fmt.Sprintf("diagnostic %d (%s): %s: %v", d.ID, d.Type, d.Message, d.Err)
	}
	return fmt.Sprintf("diagnostic %d (%s): %s", d.ID, d.Type, d.Message)
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}

// Known-benign driver ids: legacy profile calls made by capture tools hooking
// the context, and two NVIDIA performance notes.
var DefaultIgnoredDiagnostics = []int{1280, 131154, 131218}

// DiagnosticFilter drops known-benign diagnostics by id and logs the rest.
type DiagnosticFilter struct {
	ignored  map[int]struct{}
	log      zerolog.Logger
	throttle *logging.Throttle
	now      func() time.Time
}

func NewDiagnosticFilter(logger zerolog.Logger, ignored ...int) *DiagnosticFilter {
	f := &DiagnosticFilter{
		ignored:  make(map[int]struct{}, len(ignored)),
		log:      logger,
		throttle: logging.NewThrottle(logging.DefaultThrottleInterval, 4),
		now:      time.Now,
	}
	for _, id := range ignored {
		f.ignored[id] = struct{}{}
	}
	return f
}

// Report logs d unless it is suppressed, and reports whether it was logged.
func (f *DiagnosticFilter) Report(d Diagnostic) bool {
	if f == nil {
		return false
	}
	if d.Severity == SeverityNotification {
		return false
	}
	if _, ok := f.ignored[d.ID]; ok {
		return false
	}
	ok, dropped := f.throttle.AllowAt(f.now())
	if !ok {
		return false
	}
	f.log.Warn().
		Int("id", d.ID).
		Str("type", d.Type).
		Stringer("severity", d.Severity).
		Int("suppressed", dropped).
		Err(d.Err).
		Msg(d.Message)
	return true
}
