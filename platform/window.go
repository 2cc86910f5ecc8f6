package platform

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/frameloop/engine"
	"github.com/milk9111/frameloop/logging"
	"github.com/milk9111/frameloop/screenshot"
	"github.com/rs/zerolog"
)

type WindowConfig struct {
	Title      string
	Size       engine.Vec2I
	Scale      int
	Fullscreen bool
}

// Window is the renderer collaborator. The game draws into a logical canvas;
// PresentFrame copies it to the front buffer that ebiten shows, scaled into
// the letterbox rectangle of the current window.
type Window struct {
	cfg WindowConfig

	canvas *ebiten.Image
	front  *ebiten.Image

	logical    engine.Vec2I
	outside    engine.Vec2I
	screenRect engine.Rect
	autoFit    bool
	// requested is the last window size set programmatically, so the event
	// source can tell it apart from a user resize.
	requested engine.Vec2I

	saver    *screenshot.Saver
	wantShot bool
	trigger  func() bool
	overlay  func(screen *ebiten.Image)
	layers   []func(canvas *ebiten.Image)

	log zerolog.Logger
}

type WindowOption func(*Window)

func WithWindowLogger(l zerolog.Logger) WindowOption {
	return func(w *Window) { w.log = l }
}

func WithScreenshots(s *screenshot.Saver) WindowOption {
	return func(w *Window) { w.saver = s }
}

// WithScreenshotTrigger is consulted on every present; true saves that frame.
func WithScreenshotTrigger(fn func() bool) WindowOption {
	return func(w *Window) { w.trigger = fn }
}

// WithOverlay draws fn in window coordinates after the letterboxed canvas.
func WithOverlay(fn func(screen *ebiten.Image)) WindowOption {
	return func(w *Window) { w.overlay = fn }
}

// WithCanvasLayer draws fn onto the canvas right before each present.
func WithCanvasLayer(fn func(canvas *ebiten.Image)) WindowOption {
	return func(w *Window) { w.layers = append(w.layers, fn) }
}

func NewWindow(cfg WindowConfig, opts ...WindowOption) *Window {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	w := &Window{cfg: cfg, autoFit: true, log: logging.Nop()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

var _ engine.Renderer = (*Window)(nil)
var _ engine.WindowState = (*Window)(nil)

func (w *Window) Init() error {
	if !w.cfg.Size.Positive() {
		return fmt.Errorf("platform: invalid logical size %v", w.cfg.Size)
	}
	ebiten.SetWindowTitle(w.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetFullscreen(w.cfg.Fullscreen)
	w.SetMinimumWindowSize(w.cfg.Size)
	return nil
}

// SetMinimumWindowSize sets the logical screen size. While auto-fit is on the
// window is resized to the logical size times the configured scale.
func (w *Window) SetMinimumWindowSize(size engine.Vec2I) {
	if !size.Positive() {
		panic(fmt.Sprintf("platform: invalid logical size %v", size))
	}
	if size != w.logical {
		w.logical = size
		w.canvas = ebiten.NewImage(size.X, size.Y)
		w.front = ebiten.NewImage(size.X, size.Y)
	}
	ebiten.SetWindowSizeLimits(size.X, size.Y, -1, -1)
	if w.autoFit {
		w.resize(size.Scale(w.cfg.Scale))
	}
}

func (w *Window) resize(size engine.Vec2I) {
	w.requested = size
	ebiten.SetWindowSize(size.X, size.Y)
	w.log.Debug().Stringer("size", size).Msg("window resized")
}

// SetAutoFit is cleared by the event pump when the user resizes the window.
func (w *Window) SetAutoFit(enabled bool) {
	if w.autoFit == enabled {
		return
	}
	w.autoFit = enabled
	w.log.Debug().Bool("auto_fit", enabled).Msg("window auto-fit")
	if enabled && w.logical.Positive() {
		w.resize(w.logical.Scale(w.cfg.Scale))
	}
}

func (w *Window) AutoFit() bool {
	return w.autoFit
}

// RequestedSize is the last size the window set for itself.
func (w *Window) RequestedSize() engine.Vec2I {
	return w.requested
}

// PrepareFrame recomputes the letterbox and clears the canvas.
func (w *Window) PrepareFrame(engine.FrameTime) {
	w.screenRect = engine.Letterbox(w.outside, w.logical)
	if w.canvas != nil {
		w.canvas.Clear()
	}
}

// PresentFrame publishes the canvas and writes a pending screenshot.
func (w *Window) PresentFrame() error {
	if w.front == nil {
		return nil
	}
	for _, layer := range w.layers {
		layer(w.canvas)
	}
	w.front.Clear()
	w.front.DrawImage(w.canvas, nil)
	if w.trigger != nil && w.trigger() {
		w.wantShot = true
	}
	if !w.wantShot {
		return nil
	}
	w.wantShot = false
	if w.saver == nil {
		return nil
	}
	if _, err := w.saver.Save(w.snapshot()); err != nil {
		return err
	}
	return nil
}

func (w *Window) snapshot() image.Image {
	b := w.front.Bounds()
	img := image.NewRGBA(b)
	w.front.ReadPixels(img.Pix)
	return img
}

// RequestScreenshot saves the next presented frame.
func (w *Window) RequestScreenshot() {
	w.wantShot = true
}

func (w *Window) Quit() error {
	if w.canvas != nil {
		w.canvas.Deallocate()
		w.front.Deallocate()
	}
	w.canvas, w.front = nil, nil
	return nil
}

// Canvas is the logical-resolution image the game draws into.
func (w *Window) Canvas() *ebiten.Image {
	return w.canvas
}

func (w *Window) LogicalSize() engine.Vec2I {
	return w.logical
}

// ScreenRect is the letterbox rectangle in window coordinates.
func (w *Window) ScreenRect() engine.Rect {
	return w.screenRect
}

// ToLogical maps a window position onto the canvas.
func (w *Window) ToLogical(p engine.Vec2I) (engine.Vec2I, bool) {
	if !w.screenRect.Contains(p) {
		return engine.Vec2I{}, false
	}
	size := w.screenRect.Size()
	rel := p.Sub(w.screenRect.TopLeft)
	return engine.Vec2I{X: rel.X * w.logical.X / size.X, Y: rel.Y * w.logical.Y / size.Y}, true
}

// Layout records the window size; the screen is always the full window.
func (w *Window) Layout(outsideWidth, outsideHeight int) {
	w.outside = engine.Vec2I{X: outsideWidth, Y: outsideHeight}
}

// Draw shows the front buffer.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if w.front != nil && w.screenRect.Size().Positive() {
		size := w.screenRect.Size()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(size.X)/float64(w.logical.X), float64(size.Y)/float64(w.logical.Y))
		op.GeoM.Translate(float64(w.screenRect.TopLeft.X), float64(w.screenRect.TopLeft.Y))
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(w.front, op)
	}
	if w.overlay != nil {
		w.overlay(screen)
	}
}
