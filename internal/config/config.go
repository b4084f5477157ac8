package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"sector-renderer/internal/batch"
	"sector-renderer/internal/input"
	"sector-renderer/internal/logging"
	"sector-renderer/internal/mathutil"
	"sector-renderer/internal/player"
	"sector-renderer/internal/raster"
	"sector-renderer/internal/session"
	"sector-renderer/internal/snapshot"
)

// Config holds all configurable paths, simulation and render settings.
type Config struct {
	// Output
	OutputDir   string `json:"output_dir" yaml:"output_dir"`
	Format      string `json:"format" yaml:"format"`
	LogLevel    string `json:"log_level" yaml:"log_level"`
	MetricsAddr string `json:"metrics_addr" yaml:"metrics_addr"` // serve /metrics here while rendering

	// Render settings
	Width       int     `json:"width" yaml:"width"`
	Height      int     `json:"height" yaml:"height"`
	Supersample int     `json:"supersample" yaml:"supersample"`
	Workers     int     `json:"workers" yaml:"workers"`
	HUD         bool    `json:"hud" yaml:"hud"`
	Minimap     bool    `json:"minimap" yaml:"minimap"`
	Checker     float64 `json:"checker" yaml:"checker"`
	Exposure    float64 `json:"exposure" yaml:"exposure"`
	ToneMap     bool    `json:"tonemap" yaml:"tonemap"`
	Fog         float64 `json:"fog" yaml:"fog"`
	Grain       float64 `json:"grain" yaml:"grain"`
	Seed        int64   `json:"seed" yaml:"seed"`

	// Simulation
	TickRate  float64 `json:"tick_rate" yaml:"tick_rate"`   // Hz
	FrameRate float64 `json:"frame_rate" yaml:"frame_rate"` // recorded frames per second
	MaxFrame  float64 `json:"max_frame" yaml:"max_frame"`   // seconds

	// Player
	Spawn        *Spawn  `json:"spawn" yaml:"spawn"`
	PlayerHeight float64 `json:"player_height" yaml:"player_height"`
	PlayerRadius float64 `json:"player_radius" yaml:"player_radius"`
	Speed        float64 `json:"speed" yaml:"speed"`
	TurnRate     float64 `json:"turn_rate" yaml:"turn_rate"`

	// Camera
	FovY float64 `json:"fov_y" yaml:"fov_y"` // degrees
	Near float64 `json:"near" yaml:"near"`
	Far  float64 `json:"far" yaml:"far"`

	Script []input.Step `json:"script" yaml:"script"`
}

// Spawn places the player at start. Yaw is in degrees.
type Spawn struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Sector int     `json:"sector" yaml:"sector"`
	Yaw    float64 `json:"yaw" yaml:"yaw"`
}

// DefaultScript walks from the first room through the portal and looks
// around in the second.
var DefaultScript = []input.Step{
	{Intents: []string{"forward"}, Seconds: 2.5},
	{Intents: []string{"turn_left"}, Seconds: 1},
	{Intents: []string{"forward", "strafe_right"}, Seconds: 1},
	{Intents: []string{"turn_right"}, Seconds: 2},
}

// Load reads a config file and returns Config. Files ending in .yaml or
// .yml are parsed as YAML, everything else as JSON.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir   string
	Format      string
	LogLevel    string
	MetricsAddr string
	Width       int
	Height      int
	Supersample int
	Workers     int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.MetricsAddr != "" {
		c.MetricsAddr = flags.MetricsAddr
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.OutputDir == "" {
		c.OutputDir = "frames"
	}
	if c.Format == "" {
		c.Format = string(snapshot.WebP)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 320
	}
	if c.Height <= 0 {
		c.Height = 200
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Checker <= 0 {
		c.Checker = raster.DefaultShading().Checker
	}
	if c.Exposure <= 0 {
		c.Exposure = raster.DefaultShading().Exposure
	}

	// Simulation
	if c.TickRate <= 0 {
		c.TickRate = 1 / session.DefaultStep
	}
	if c.FrameRate <= 0 {
		c.FrameRate = 30
	}
	if c.MaxFrame <= 0 {
		c.MaxFrame = session.DefaultMaxFrame
	}

	// Player
	if c.Spawn == nil {
		c.Spawn = &Spawn{X: 2, Y: 2, Yaw: 90}
	}
	if c.PlayerHeight <= 0 {
		c.PlayerHeight = player.DefaultHeight
	}
	if c.PlayerRadius <= 0 {
		c.PlayerRadius = player.DefaultRadius
	}
	if c.Speed <= 0 {
		c.Speed = player.DefaultSpeed
	}
	if c.TurnRate <= 0 {
		c.TurnRate = player.DefaultTurnRate
	}

	// Camera
	if c.FovY <= 0 {
		c.FovY = 60
	}
	if c.Near <= 0 {
		c.Near = 0.05
	}
	if c.Far <= 0 {
		c.Far = 2000
	}

	if len(c.Script) == 0 {
		c.Script = DefaultScript
	}
}

// Validate checks values Resolve cannot repair.
func (c *Config) Validate() error {
	if _, err := snapshot.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Near >= c.Far {
		return fmt.Errorf("config: near %.3f must be below far %.3f", c.Near, c.Far)
	}
	if c.FovY >= 180 {
		return fmt.Errorf("config: fov_y %.1f must be below 180", c.FovY)
	}
	if _, err := input.NewTimeline(c.Script); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Timeline parses the script.
func (c *Config) Timeline() (*input.Timeline, error) {
	return input.NewTimeline(c.Script)
}

// Logger builds the logger for the configured level. An unparsable level
// falls back to INFO.
func (c *Config) Logger() *logging.Logger {
	level, _ := logging.ParseLevel(c.LogLevel)
	return logging.New(os.Stderr, level)
}

// SessionOptions maps the player, simulation and camera settings.
func (c *Config) SessionOptions(log *logging.Logger) session.Options {
	opts := session.Options{
		Height:   c.PlayerHeight,
		Radius:   c.PlayerRadius,
		Tuning:   player.Tuning{Speed: c.Speed, TurnRate: c.TurnRate},
		Step:     1 / c.TickRate,
		MaxFrame: c.MaxFrame,
		FovY:     mathutil.Deg2Rad(c.FovY),
		Near:     c.Near,
		Far:      c.Far,
		Logger:   log,
	}
	if c.Spawn != nil {
		opts.Spawn = session.Spawn{
			Pos:    mathutil.V2(c.Spawn.X, c.Spawn.Y),
			Sector: c.Spawn.Sector,
			Yaw:    mathutil.Deg2Rad(c.Spawn.Yaw),
		}
	}
	return opts
}

// BatchConfig maps the output and render settings.
func (c *Config) BatchConfig(log *logging.Logger) batch.Config {
	format, _ := snapshot.ParseFormat(c.Format)
	return batch.Config{
		OutputDir:   c.OutputDir,
		Format:      format,
		Width:       c.Width,
		Height:      c.Height,
		Supersample: c.Supersample,
		Workers:     c.Workers,
		Shading: raster.Shading{
			Checker:  c.Checker,
			Exposure: c.Exposure,
			ToneMap:  c.ToneMap,
			Fog:      c.Fog,
			Grain:    c.Grain,
			Seed:     c.Seed,
		},
		HUD:     c.HUD,
		Minimap: c.Minimap,
		Logger:  log,
	}
}
