package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/milk9111/frameloop/engine"
	"github.com/milk9111/frameloop/logging"
	"github.com/rs/zerolog"
)

// DefaultDir is where screenshots go when no directory is configured.
const DefaultDir = "Screenshots"

const stampLayout = "01-02-2006_15-04-05"

// DiagnosticSaveFailed identifies failed writes in the diagnostics Save
// returns.
const DiagnosticSaveFailed = 0x5c01

// Name returns the file name for a screenshot taken at t, e.g.
// Screenshot_03-09-2024_17-04-05-042.png.
func Name(t time.Time) string {
	return fmt.Sprintf("Screenshot_%s-%03d.png", t.Format(stampLayout), t.Nanosecond()/int(time.Millisecond))
}

// Saver writes PNG screenshots into a directory it creates on demand.
type Saver struct {
	dir     string
	clock   clock.Clock
	onSaved []func(path string, img image.Image)
	log     zerolog.Logger
}

type Option func(*Saver)

func WithClock(c clock.Clock) Option {
	return func(s *Saver) { s.clock = c }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Saver) { s.log = l }
}

// OnSaved registers fn to run after each successful save.
func OnSaved(fn func(path string, img image.Image)) Option {
	return func(s *Saver) { s.onSaved = append(s.onSaved, fn) }
}

func NewSaver(dir string, opts ...Option) *Saver {
	if dir == "" {
		dir = DefaultDir
	}
	s := &Saver{dir: dir, log: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = clock.New()
	}
	return s
}

func (s *Saver) Dir() string {
	return s.dir
}

// Save encodes img and returns the path it was written to. Failures come
// back as an *engine.Diagnostic.
func (s *Saver) Save(img image.Image) (string, error) {
	path, err := s.write(img)
	if err != nil {
		return "", &engine.Diagnostic{
			ID:       DiagnosticSaveFailed,
			Type:     "screenshot",
			Severity: engine.SeverityMedium,
			Message:  "screenshot not saved",
			Err:      err,
		}
	}
	s.log.Info().Str("path", path).Msg("screenshot saved")
	for _, fn := range s.onSaved {
		fn(path, img)
	}
	return path, nil
}

func (s *Saver) write(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("screenshot: nil image")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: create %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, Name(s.clock.Now()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("screenshot: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("screenshot: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("screenshot: close %s: %w", path, err)
	}
	return path, nil
}
