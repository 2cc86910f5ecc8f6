package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// AutosizeScale is the window multiple applied to the logical screen while
// the window is auto-fitting.
const AutosizeScale = 3

type Config struct {
	Window      WindowConfig     `yaml:"window"`
	Audio       AudioConfig      `yaml:"audio"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
	Input       InputConfig      `yaml:"input"`
	Log         LogConfig        `yaml:"log"`
	Metrics     MetricsConfig    `yaml:"metrics"`
	Script      ScriptConfig     `yaml:"script"`
	Resources   ResourcesConfig  `yaml:"resources"`
}

type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Scale      int    `yaml:"scale"`
	Fullscreen bool   `yaml:"fullscreen"`
	// TPS is the fixed iteration rate the host asks the platform for.
	TPS int `yaml:"tps"`
}

type AudioConfig struct {
	SampleRate  int     `yaml:"sample_rate"`
	FadeSeconds float64 `yaml:"fade_seconds"`
	Volume      float64 `yaml:"volume"`
}

type ScreenshotConfig struct {
	Dir       string `yaml:"dir"`
	Clipboard bool   `yaml:"clipboard"`
}

// InputConfig binds logical key names to platform key names and standard
// gamepad button names.
type InputConfig struct {
	Deadzone float64             `yaml:"deadzone"`
	Keys     map[string][]string `yaml:"keys"`
	Buttons  map[string][]string `yaml:"buttons"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type ScriptConfig struct {
	// Path of a tengo behaviour script on disk. Empty runs the built-in
	// jukebox.
	Path   string `yaml:"path"`
	Reload bool   `yaml:"reload"`
}

type ResourcesConfig struct {
	Dir   string `yaml:"dir"`
	Songs string `yaml:"songs"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "frameloop",
			Width:  240,
			Height: 160,
			Scale:  AutosizeScale,
			TPS:    60,
		},
		Audio: AudioConfig{
			SampleRate:  44100,
			FadeSeconds: 1,
			Volume:      1,
		},
		Screenshots: ScreenshotConfig{Dir: "Screenshots"},
		Input: InputConfig{
			Deadzone: 0.2,
			Keys: map[string][]string{
				"a":          {"X"},
				"b":          {"Z"},
				"x":          {"C"},
				"y":          {"V"},
				"l":          {"Q"},
				"r":          {"W"},
				"start":      {"Enter"},
				"select":     {"Backspace"},
				"up":         {"ArrowUp"},
				"down":       {"ArrowDown"},
				"left":       {"ArrowLeft"},
				"right":      {"ArrowRight"},
				"screenshot": {"F12"},
			},
			Buttons: map[string][]string{
				"a":      {"right_bottom"},
				"b":      {"right_right"},
				"x":      {"right_left"},
				"y":      {"right_top"},
				"l":      {"front_top_left"},
				"r":      {"front_top_right"},
				"start":  {"center_right"},
				"select": {"center_left"},
				"up":     {"left_top"},
				"down":   {"left_bottom"},
				"left":   {"left_left"},
				"right":  {"left_right"},
			},
		},
		Log:       LogConfig{Level: "info"},
		Resources: ResourcesConfig{Dir: "Assets"},
	}
}

// Load reads the YAML file at path over the defaults. An empty path yields
// the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over the defaults and validates the result. Maps given
// in data replace the default maps entirely.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(strings.TrimSpace(string(data))) > 0 {
		var over Config
		if err := yaml.Unmarshal(data, &over); err != nil {
			return Config{}, fmt.Errorf("unmarshal: %w", err)
		}
		if over.Input.Keys != nil {
			cfg.Input.Keys = nil
		}
		if over.Input.Buttons != nil {
			cfg.Input.Buttons = nil
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("unmarshal: %w", err)
		}
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.Scale <= 0 {
		errs = append(errs, fmt.Errorf("window scale %d must be positive", c.Window.Scale))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window tps %d must be positive", c.Window.TPS))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio sample rate %d must be positive", c.Audio.SampleRate))
	}
	if c.Audio.FadeSeconds < 0 {
		errs = append(errs, fmt.Errorf("audio fade %v must not be negative", c.Audio.FadeSeconds))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio volume %v must be within [0, 1]", c.Audio.Volume))
	}
	if c.Input.Deadzone < 0 || c.Input.Deadzone >= 1 {
		errs = append(errs, fmt.Errorf("input deadzone %v must be within [0, 1)", c.Input.Deadzone))
	}
	if strings.TrimSpace(c.Screenshots.Dir) == "" {
		errs = append(errs, errors.New("screenshots dir is empty"))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid: %w", multierr.Combine(errs...))
}
