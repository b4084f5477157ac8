package config

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sector-renderer/internal/logging"
	"sector-renderer/internal/snapshot"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "walk.json", `{
		"width": 640,
		"format": "tga",
		"spawn": {"x": 1, "y": 3, "sector": 0, "yaw": 45},
		"script": [{"intents": ["forward"], "seconds": 1.5}]
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, "tga", cfg.Format)
	require.NotNil(t, cfg.Spawn)
	assert.Equal(t, Spawn{X: 1, Y: 3, Yaw: 45}, *cfg.Spawn)
	require.Len(t, cfg.Script, 1)
	assert.Equal(t, []string{"forward"}, cfg.Script[0].Intents)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "walk.yaml", `
height: 120
hud: true
tick_rate: 120
script:
  - intents: [turn_left, forward]
    seconds: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Height)
	assert.True(t, cfg.HUD)
	assert.Equal(t, 120.0, cfg.TickRate)
	require.Len(t, cfg.Script, 1)
	assert.Equal(t, 2.0, cfg.Script[0].Seconds)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "bad.json", "{"))
	assert.ErrorContains(t, err, "config: parse")
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, "webp", cfg.Format)
	assert.InDelta(t, 60, cfg.TickRate, 1e-9)
	assert.Equal(t, 30.0, cfg.FrameRate)
	assert.Equal(t, 0.25, cfg.MaxFrame)
	assert.Equal(t, 1.6, cfg.PlayerHeight)
	assert.Equal(t, 0.25, cfg.PlayerRadius)
	assert.Equal(t, 3.0, cfg.Speed)
	assert.Equal(t, 1.6, cfg.TurnRate)
	assert.Equal(t, 60.0, cfg.FovY)
	assert.Equal(t, DefaultScript, cfg.Script)
	assert.NoError(t, cfg.Validate())
}

func TestFlagsOverrideFile(t *testing.T) {
	cfg := Config{Width: 640, Workers: 2, OutputDir: "out", Format: "tga"}
	cfg.Resolve(Flags{Width: 100, OutputDir: "other", Format: "webp", MetricsAddr: ":9100"})
	assert.Equal(t, ":9100", cfg.MetricsAddr)

	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "other", cfg.OutputDir)
	assert.Equal(t, "webp", cfg.Format)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"format":    func(c *Config) { c.Format = "gif" },
		"log level": func(c *Config) { c.LogLevel = "loud" },
		"clip":      func(c *Config) { c.Near = 5000 },
		"fov":       func(c *Config) { c.FovY = 190 },
	}
	for name, mutate := range cases {
		var cfg Config
		cfg.Resolve(Flags{})
		mutate(&cfg)
		assert.Error(t, cfg.Validate(), name)
	}

	var cfg Config
	cfg.Resolve(Flags{})
	cfg.Format = "bmp"
	assert.ErrorIs(t, cfg.Validate(), snapshot.ErrFormat)
}

func TestSessionOptions(t *testing.T) {
	cfg := Config{Spawn: &Spawn{X: 1, Y: 2, Sector: 1, Yaw: 180}}
	cfg.Resolve(Flags{})
	opts := cfg.SessionOptions(logging.Discard())

	assert.InDelta(t, 1.0/60, opts.Step, 1e-12)
	assert.InDelta(t, math.Pi, opts.Spawn.Yaw, 1e-12)
	assert.Equal(t, 1, opts.Spawn.Sector)
	assert.InDelta(t, math.Pi/3, opts.FovY, 1e-12)
	assert.Equal(t, 3.0, opts.Tuning.Speed)
}

func TestBatchConfig(t *testing.T) {
	cfg := Config{Format: "tga", Fog: 0.1, Grain: 0.2, Seed: 9}
	cfg.Resolve(Flags{})
	bc := cfg.BatchConfig(nil)

	assert.Equal(t, snapshot.TGA, bc.Format)
	assert.Equal(t, 0.8, bc.Shading.Checker)
	assert.Equal(t, 1.0, bc.Shading.Exposure)
	assert.Equal(t, 0.1, bc.Shading.Fog)
	assert.Equal(t, 0.2, bc.Shading.Grain)
	assert.Equal(t, int64(9), bc.Shading.Seed)
	assert.Nil(t, bc.Metrics)
}

func TestTimeline(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	tl, err := cfg.Timeline()
	require.NoError(t, err)
	assert.Equal(t, 6.5, tl.Duration())
}
