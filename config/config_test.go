package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, AutosizeScale, cfg.Window.Scale)
	require.Equal(t, 1.0, cfg.Audio.FadeSeconds)
	require.Equal(t, "Screenshots", cfg.Screenshots.Dir)
	require.Len(t, cfg.Input.Keys, 13)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
window:
  title: jukebox
audio:
  fade_seconds: 2.5
input:
  keys:
    a: [Space]
log:
  level: debug
`))
	require.NoError(t, err)
	require.Equal(t, "jukebox", cfg.Window.Title)
	require.Equal(t, 240, cfg.Window.Width)
	require.Equal(t, 2.5, cfg.Audio.FadeSeconds)
	require.Equal(t, 44100, cfg.Audio.SampleRate)
	require.Equal(t, map[string][]string{"a": {"Space"}}, cfg.Input.Keys)
	require.Len(t, cfg.Input.Buttons, 12)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"bad_yaml", "window: [1"},
		{"zero_width", "window:\n  width: 0\n"},
		{"negative_fade", "audio:\n  fade_seconds: -1\n"},
		{"loud", "audio:\n  volume: 2\n"},
		{"deadzone", "input:\n  deadzone: 1\n"},
		{"no_screenshot_dir", "screenshots:\n  dir: \" \"\n"},
		{"tps", "window:\n  tps: -5\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.data))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "frameloop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metrics:\n  addr: \":9100\"\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9100", cfg.Metrics.Addr)
}
