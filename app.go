package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/frameloop/assets"
	"github.com/milk9111/frameloop/config"
	"github.com/milk9111/frameloop/engine"
	"github.com/milk9111/frameloop/input"
	"github.com/milk9111/frameloop/logging"
	"github.com/milk9111/frameloop/platform"
	"github.com/milk9111/frameloop/screenshot"
	"github.com/milk9111/frameloop/sound"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
)

func run(ctx context.Context, opts *options, stderr io.Writer) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.ScriptPath != "" {
		cfg.Script.Path = opts.ScriptPath
	}
	if opts.MetricsAddr != "" {
		cfg.Metrics.Addr = opts.MetricsAddr
	}
	if opts.Debug {
		cfg.Log.Level = "debug"
		cfg.Log.Pretty = true
	}

	log := logging.New(logging.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, Output: stderr})

	if opts.BaseMonitor {
		if monitors := ebiten.AppendMonitors(nil); len(monitors) > 0 {
			ebiten.SetMonitor(monitors[0])
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	stats := engine.NewFrameStats(reg)
	if cfg.Metrics.Addr != "" {
		srv := serveMetrics(cfg.Metrics.Addr, reg, logging.Component(log, "metrics"))
		defer shutdownMetrics(srv)
	}

	songs, err := loadSongs(cfg.Resources)
	if err != nil {
		log.Error().Err(err).Msg("load song table")
		return err
	}

	var saverOpts []screenshot.Option
	saverOpts = append(saverOpts, screenshot.WithLogger(logging.Component(log, "screenshot")))
	if cfg.Screenshots.Clipboard {
		clip := platform.NewClipboard(logging.Component(log, "clipboard"))
		saverOpts = append(saverOpts, screenshot.OnSaved(clip.CopyImage))
	}
	saver := screenshot.NewSaver(cfg.Screenshots.Dir, saverOpts...)

	bindings, err := platform.Bindings(cfg.Input)
	if err != nil {
		log.Warn().Err(err).Msg("input bindings")
	}
	keys := input.NewManager(
		input.WithBindings(bindings),
		input.WithDeadzone(cfg.Input.Deadzone),
		input.WithLogger(logging.Component(log, "input")),
	)

	mixer := sound.NewVoiceMixer(
		platform.NewAudioBackend(cfg.Audio.SampleRate, cfg.Audio.Volume, assets.NewLoader(cfg.Resources.Dir)),
		sound.WithMixerLogger(logging.Component(log, "mixer")),
	)

	game := newGame(cfg, opts.ConfigPath, songs, mixer, keys, logging.Component(log, "game"))

	window := platform.NewWindow(
		platform.WindowConfig{
			Title:      cfg.Window.Title,
			Size:       engine.Vec2I{X: cfg.Window.Width, Y: cfg.Window.Height},
			Scale:      cfg.Window.Scale,
			Fullscreen: cfg.Window.Fullscreen,
		},
		platform.WithWindowLogger(logging.Component(log, "window")),
		platform.WithScreenshots(saver),
		platform.WithScreenshotTrigger(game.screenshotPressed),
		platform.WithCanvasLayer(game.drawCanvas),
		platform.WithOverlay(game.drawOverlay),
	)
	events := platform.NewEventSource(window)
	game.attach(window, events)

	eng, err := engine.New(
		engine.WithInput(keys),
		engine.WithEventSource(events),
		engine.WithRenderer(window),
		engine.WithAudio(mixer),
		engine.WithStart(game.start),
		engine.WithStats(stats),
		engine.WithDiagnostics(engine.NewDiagnosticFilter(logging.Component(log, "driver"), engine.DefaultIgnoredDiagnostics...)),
		engine.WithLogger(logging.Component(log, "engine")),
	)
	if err != nil {
		return err
	}
	if err := eng.Init(); err != nil {
		log.Error().Err(err).Msg("engine init failed")
		return err
	}
	defer game.close()

	host := platform.NewHost(eng, window, events)
	host.AfterStep = func() {
		if ctx.Err() != nil {
			eng.Scheduler().Quit.Request()
		}
		game.afterStep()
	}

	ebiten.SetTPS(cfg.Window.TPS)
	runErr := ebiten.RunGame(host)
	err = multierr.Append(runErr, eng.Shutdown())
	if err != nil {
		log.Error().Err(err).Msg("stopped with error")
		return err
	}
	log.Info().Uint64("iterations", eng.Scheduler().Iteration()).Msg("stopped")
	return nil
}

func loadSongs(cfg config.ResourcesConfig) (*sound.Table, error) {
	if cfg.Songs == "" {
		return sound.ParseTable(assets.SongTable())
	}
	data, err := os.ReadFile(cfg.Songs)
	if err != nil {
		return nil, fmt.Errorf("read song table: %w", err)
	}
	return sound.ParseTable(data)
}
