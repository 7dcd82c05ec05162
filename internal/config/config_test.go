package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goki/mat32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 75, int(cfg.Camera.FOV))
	assert.Equal(t, mat32.Vec3{Y: 400, Z: 250}, cfg.Camera.OverviewPosition)
	assert.Equal(t, 1.0, cfg.Simulation.Speed)
	assert.Equal(t, 1.5, cfg.Simulation.LightIntensity)
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
[window]
width = 1920
height = 1080

[camera]
overview_duration = 6
easing = "cubic-out"
overview_position = { x = 0, y = 800, z = 500 }

[simulation]
speed = 2.5

[assets]
background = ""

[log]
level = "debug"
`))
	require.NoError(t, err)

	assert.Equal(t, 1920, cfg.Window.Width)
	assert.Equal(t, "Solar System", cfg.Window.Title, "unset keys keep their defaults")
	assert.Equal(t, 6.0, cfg.Camera.OverviewDuration)
	assert.Equal(t, 2.0, cfg.Camera.FocusDuration)
	assert.Equal(t, "cubic-out", cfg.Camera.Easing)
	assert.Equal(t, mat32.Vec3{Y: 800, Z: 500}, cfg.Camera.OverviewPosition)
	assert.Equal(t, 2.5, cfg.Simulation.Speed)
	assert.Empty(t, cfg.Assets.Background)
	assert.Equal(t, "assets", cfg.Assets.Root)

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestDecodeClampsSimulation(t *testing.T) {
	cfg, err := Decode(strings.NewReader("[simulation]\nspeed = 40\nlight_intensity = -3\n"))
	require.NoError(t, err)
	assert.Equal(t, 5.0, cfg.Simulation.Speed)
	assert.Equal(t, 0.0, cfg.Simulation.LightIntensity)
}

func TestDecodeRejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":   "[window]\nfullscreen = true\n",
		"bad size":      "[window]\nwidth = 0\n",
		"bad easing":    "[camera]\neasing = \"bounce\"\n",
		"bad fov":       "[camera]\nfov = 190\n",
		"near/far":      "[camera]\nnear = 10\nfar = 1\n",
		"bad display":   "[display]\nstar_radius = -1\n",
		"bad rate":      "[rates]\norbit_rate = 0\n",
		"bad decoders":  "[assets]\nmax_decoders = 0\n",
		"bad volume":    "[audio]\nvolume = 2\n",
		"bad log level": "[log]\nlevel = \"chatty\"\n",
		"syntax":        "[window\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func TestLoadAndFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte("[audio]\nenabled = false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Audio.Enabled)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	t.Setenv(EnvVar, path)
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.Audio.Enabled)

	t.Setenv(EnvVar, "")
	t.Chdir(dir)
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg, "no file means defaults")
}

func TestLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "warn"
	var buf bytes.Buffer
	log := cfg.Logger(&buf)
	log.Info("hidden")
	log.Warn("shown", "body", "earth")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "body=earth")
}
