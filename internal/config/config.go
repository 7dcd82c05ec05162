// Package config loads the viewer settings from an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"

	"solarsystem/internal/solar"
)

// EnvVar names the config file; DefaultPath is tried when it is unset.
const (
	EnvVar      = "SOLAR_CONFIG"
	DefaultPath = "solar.toml"
)

type Config struct {
	Window     Window             `toml:"window"`
	Display    solar.DisplayScale `toml:"display"`
	Camera     solar.CameraConfig `toml:"camera"`
	Rates      solar.RateConfig   `toml:"rates"`
	Simulation solar.Parameters   `toml:"simulation"`
	Assets     Assets             `toml:"assets"`
	Audio      Audio              `toml:"audio"`
	Log        Log                `toml:"log"`
}

type Window struct {
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Title   string `toml:"title"`
	VSync   bool   `toml:"vsync"`
	Samples int    `toml:"samples"` // MSAA samples, 0 disables
}

type Assets struct {
	Root        string `toml:"root"`         // textures and sounds are resolved against this
	Bodies      string `toml:"bodies"`       // body table; empty uses the built-in one
	MaxDecoders int    `toml:"max_decoders"` // concurrent texture decodes
	Background  string `toml:"background"`   // backdrop image; empty draws a flat colour
}

type Audio struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
	Click   bool    `toml:"click"` // UI click on selection
}

type Log struct {
	Level string `toml:"level"`
}

func Default() Config {
	return Config{
		Window: Window{
			Width:   1280,
			Height:  800,
			Title:   "Solar System",
			VSync:   true,
			Samples: 4,
		},
		Display:    solar.DefaultDisplayScale(),
		Camera:     solar.DefaultCameraConfig(),
		Rates:      solar.DefaultRates(),
		Simulation: solar.DefaultParameters(),
		Assets: Assets{
			Root:        "assets",
			MaxDecoders: 4,
			Background:  "textures/planetgalaxybackround.jpg",
		},
		Audio: Audio{Enabled: true, Volume: 0.6, Click: true},
		Log:   Log{Level: "info"},
	}
}

// FromEnv loads the file named by SOLAR_CONFIG. When the variable is unset
// solar.toml is read if present, otherwise the defaults are returned.
func FromEnv() (Config, error) {
	if p := os.Getenv(EnvVar); p != "" {
		return Load(p)
	}
	cfg, err := Load(DefaultPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Load reads path over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	cfg.Simulation.Clamp()
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.Samples < 0 {
		return fmt.Errorf("window: samples must not be negative")
	}
	if err := c.Display.Validate(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	if err := validateCamera(&c.Camera); err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	if !positive(c.Rates.OrbitRate) || !positive(c.Rates.SpinRate) {
		return fmt.Errorf("rates: orbit and spin rates must be positive")
	}
	if c.Assets.MaxDecoders < 1 {
		return fmt.Errorf("assets: max_decoders must be at least 1")
	}
	if math.IsNaN(c.Audio.Volume) || c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio: volume %g out of [0,1]", c.Audio.Volume)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

func validateCamera(c *solar.CameraConfig) error {
	if !(c.FOV > 0 && c.FOV < 180) {
		return fmt.Errorf("fov %g out of (0,180)", c.FOV)
	}
	if !(c.Near > 0) || !(c.Far > c.Near) {
		return fmt.Errorf("need 0 < near < far, got %g, %g", c.Near, c.Far)
	}
	for _, d := range []float64{c.FocusDuration, c.StarFocusDuration, c.OverviewDuration} {
		if math.IsNaN(d) || d < 0 {
			return fmt.Errorf("durations must not be negative")
		}
	}
	if c.MaxDistance > 0 && c.MaxDistance < c.MinDistance {
		return fmt.Errorf("max_distance below min_distance")
	}
	if _, err := solar.EasingByName(c.Easing); err != nil {
		return err
	}
	return nil
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

// LogLevel parses Log.Level ("debug", "info", "warn", "error").
func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, err
	}
	return lvl, nil
}

// Logger returns a text logger on w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	lvl, _ := c.LogLevel()
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
