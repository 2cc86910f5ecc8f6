package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/frameloop/assets"
	"github.com/milk9111/frameloop/config"
	"github.com/milk9111/frameloop/engine"
	"github.com/milk9111/frameloop/input"
	"github.com/milk9111/frameloop/platform"
	"github.com/milk9111/frameloop/script"
	"github.com/milk9111/frameloop/sound"
	"github.com/rs/zerolog"
)

// Game is the jukebox: a scripted primary behaviour over the crossfader,
// a volume visualizer on the canvas and a button panel on top.
type Game struct {
	cfg        config.Config
	configPath string
	debug      bool

	songs *sound.Table
	mixer *sound.VoiceMixer
	keys  *input.Manager

	window *platform.Window
	events *platform.EventSource

	sched     *engine.Scheduler
	fader     *sound.Crossfader
	behaviour *script.Runtime
	watcher   *config.Watcher
	ui        *ebitenui.UI
	nowLabel  func(string)

	log zerolog.Logger
}

func newGame(cfg config.Config, configPath string, songs *sound.Table, mixer *sound.VoiceMixer, keys *input.Manager, log zerolog.Logger) *Game {
	return &Game{
		cfg:        cfg,
		configPath: configPath,
		debug:      cfg.Log.Level == "debug",
		songs:      songs,
		mixer:      mixer,
		keys:       keys,
		log:        log,
	}
}

func (g *Game) attach(window *platform.Window, events *platform.EventSource) {
	g.window = window
	g.events = events
}

// start is the engine's game object factory: it installs the first primary
// callback.
func (g *Game) start(s *engine.Scheduler) error {
	g.sched = s
	g.fader = sound.NewCrossfader(g.mixer, g.songs, &s.Secondary,
		sound.WithFadeSeconds(g.cfg.Audio.FadeSeconds),
		sound.WithLogger(g.log.With().Str("component", "crossfade").Logger()),
	)

	src, err := assets.LoadScript(g.cfg.Script.Path)
	if err != nil {
		return err
	}
	name := g.cfg.Script.Path
	if name == "" {
		name = assets.DefaultScript
	}
	rt, err := script.New(name, src, s, g.fader, g.keys, script.WithLogger(g.log))
	if err != nil {
		return err
	}
	g.behaviour = rt
	rt.Start()

	g.ui = newJukeboxUI(g)

	if g.cfg.Script.Reload {
		g.watch()
	}

	s.Quit.OnQuit(func() {
		g.log.Info().Uint64("iteration", s.Iteration()).Msg("quit requested")
	})
	return nil
}

func (g *Game) watch() {
	var files []string
	if g.configPath != "" {
		files = append(files, g.configPath)
	}
	if p := g.cfg.Script.Path; p != "" {
		if _, err := os.Stat(p); err == nil {
			files = append(files, p)
		}
	}
	if len(files) == 0 {
		return
	}
	w, err := config.NewWatcher(files...)
	if err != nil {
		g.log.Warn().Err(err).Msg("hot reload disabled")
		return
	}
	g.watcher = w
}

// afterStep runs after every iteration that kept the loop alive.
func (g *Game) afterStep() {
	if g.ui != nil {
		g.nowLabel(g.nowPlaying())
		g.ui.Update()
	}
	for {
		name, ok := g.watcher.Poll()
		if !ok {
			break
		}
		g.reload(name)
	}
}

func (g *Game) reload(name string) {
	if p := g.cfg.Script.Path; p != "" {
		if abs, err := filepath.Abs(p); err == nil && abs == name {
			src, err := os.ReadFile(p)
			if err == nil {
				err = g.behaviour.Reload(src)
			}
			if err != nil {
				g.log.Error().Err(err).Str("path", p).Msg("script reload")
			}
			return
		}
	}

	cfg, err := config.Load(g.configPath)
	if err != nil {
		g.log.Error().Err(err).Msg("config reload")
		return
	}
	bindings, err := platform.Bindings(cfg.Input)
	if err != nil {
		g.log.Warn().Err(err).Msg("input bindings")
	}
	g.keys.SetBindings(bindings, cfg.Input.Deadzone)
	g.fader.SetFadeSeconds(cfg.Audio.FadeSeconds)
	g.log.Info().Str("path", name).Msg("config reloaded")
}

func (g *Game) close() {
	if err := g.watcher.Close(); err != nil {
		g.log.Warn().Err(err).Msg("close watcher")
	}
}

func (g *Game) nowPlaying() string {
	amb := g.fader.Current(sound.Ambient)
	fg := g.fader.Current(sound.Foreground)
	switch {
	case fg != nil:
		return fmt.Sprintf("Battle: %s", fg.Song)
	case amb != nil:
		return fmt.Sprintf("Now playing: %s", amb.Song)
	default:
		return "Silence"
	}
}

var (
	barBack    = color.NRGBA{R: 0x22, G: 0x22, B: 0x33, A: 0xff}
	barAmbient = color.NRGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	barBattle  = color.NRGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xff}
)

func (g *Game) screenshotPressed() bool {
	return g.keys.IsJustPressed(input.Screenshot)
}

// drawCanvas renders one volume bar per slot on the logical canvas.
func (g *Game) drawCanvas(canvas *ebiten.Image) {
	if g.fader == nil {
		return
	}
	size := g.window.LogicalSize()
	screen := engine.RectFromSize(engine.Vec2I{}, size)
	canvas.Fill(color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff})

	top := screen.Point(engine.AnchorTopLeft)
	ebitenutil.DebugPrintAt(canvas, g.behaviour.Current(), top.X+4, top.Y+2)

	slots := []struct {
		slot sound.Slot
		clr  color.Color
		at   engine.Anchor
	}{
		{sound.Ambient, barAmbient, engine.AnchorLeft},
		{sound.Foreground, barBattle, engine.AnchorBottomLeft},
	}
	barWidth := size.X - 8
	for _, s := range slots {
		p := screen.Point(s.at)
		y := p.Y - 28
		if s.at == engine.AnchorLeft {
			y = p.Y - 12
		}
		vector.DrawFilledRect(canvas, float32(p.X+4), float32(y), float32(barWidth), 8, barBack, false)
		label := fmt.Sprintf("%s %s", s.slot, g.fader.Phase(s.slot))
		if t := g.fader.Current(s.slot); t != nil {
			vol := g.mixer.Volume(t.Handle)
			vector.DrawFilledRect(canvas, float32(p.X+4), float32(y), float32(float64(barWidth)*vol), 8, s.clr, false)
			label = fmt.Sprintf("%s %s %.2f", t.Song, g.fader.Phase(s.slot), vol)
		}
		ebitenutil.DebugPrintAt(canvas, label, p.X+4, y+8)
	}
}

// drawOverlay draws the panel and debug HUD in window coordinates.
func (g *Game) drawOverlay(screen *ebiten.Image) {
	if g.ui != nil {
		g.ui.Draw(screen)
	}
	if !g.debug {
		return
	}
	b := screen.Bounds()
	r := engine.Rect{
		TopLeft:     engine.Vec2I{X: b.Min.X, Y: b.Min.Y},
		BottomRight: engine.Vec2I{X: b.Max.X, Y: b.Max.Y},
	}
	p := r.Point(engine.AnchorTopRight)
	hud := fmt.Sprintf("TPS %.1f FPS %.1f dt %.3f", ebiten.ActualTPS(), ebiten.ActualFPS(), g.sched.DeltaTime())
	ebitenutil.DebugPrintAt(screen, hud, p.X-len(hud)*6-4, p.Y+2)
}
