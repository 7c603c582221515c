package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/seesaw/internal/seesaw"
	"github.com/san-kum/seesaw/internal/storage"
)

const (
	DefaultBackend       = storage.BackendGdata
	DefaultAppName       = "seesaw"
	DefaultDataDir       = ".seesaw"
	DefaultCooldown      = time.Second
	DefaultFall          = 2 * time.Second
	DefaultTilt          = 800 * time.Millisecond
	DefaultFrameRate     = 60
	DefaultTiltTolerance = 0.1
	DefaultVolume        = 0.1
	DefaultTheme         = "classic"
)

type Config struct {
	Backend  string         `yaml:"backend" env:"SEESAW_BACKEND"`
	AppName  string         `yaml:"app_name" env:"SEESAW_APP_NAME"`
	DataDir  string         `yaml:"data_dir" env:"SEESAW_DATA_DIR"`
	Seed     int64          `yaml:"seed" env:"SEESAW_SEED"`
	Theme    string         `yaml:"theme" env:"SEESAW_THEME"`
	Sound    SoundConfig    `yaml:"sound" envPrefix:"SEESAW_SOUND_"`
	Timing   TimingConfig   `yaml:"timing" envPrefix:"SEESAW_"`
	Geometry GeometryConfig `yaml:"geometry"`
}

type SoundConfig struct {
	Enabled bool    `yaml:"enabled" env:"ENABLED"`
	Volume  float64 `yaml:"volume" env:"VOLUME"`
}

type TimingConfig struct {
	Cooldown      time.Duration `yaml:"cooldown" env:"COOLDOWN"`
	Fall          time.Duration `yaml:"fall" env:"FALL"`
	Tilt          time.Duration `yaml:"tilt" env:"TILT"`
	FrameRate     int           `yaml:"frame_rate" env:"FRAME_RATE"`
	TiltTolerance float64       `yaml:"tilt_tolerance" env:"TILT_TOLERANCE"`
}

type GeometryConfig struct {
	ContainerWidth  float64 `yaml:"container_width"`
	ContainerHeight float64 `yaml:"container_height"`
	BarWidth        float64 `yaml:"bar_width"`
	BarHeight       float64 `yaml:"bar_height"`
	BarTop          float64 `yaml:"bar_top"`
	ObjectSize      float64 `yaml:"object_size"`
	FallDistance    float64 `yaml:"fall_distance"`
}

func DefaultConfig() *Config {
	g := seesaw.DefaultGeometry()
	return &Config{
		Backend: DefaultBackend,
		AppName: DefaultAppName,
		DataDir: DefaultDataDir,
		Theme:   DefaultTheme,
		Sound: SoundConfig{
			Enabled: true,
			Volume:  DefaultVolume,
		},
		Timing: TimingConfig{
			Cooldown:      DefaultCooldown,
			Fall:          DefaultFall,
			Tilt:          DefaultTilt,
			FrameRate:     DefaultFrameRate,
			TiltTolerance: DefaultTiltTolerance,
		},
		Geometry: GeometryConfig{
			ContainerWidth:  g.ContainerWidth,
			ContainerHeight: g.ContainerHeight,
			BarWidth:        g.BarWidth,
			BarHeight:       g.BarHeight,
			BarTop:          g.BarTop,
			ObjectSize:      g.ObjectSize,
			FallDistance:    g.FallDistance,
		},
	}
}

// Load reads a yaml file over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Merge(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge overlays the fields present in a yaml file onto cfg.
func Merge(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overlays SEESAW_* variables, loading dotenv files first. Missing
// dotenv files are ignored.
func ApplyEnv(cfg *Config, dotenv ...string) error {
	for _, f := range dotenv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case storage.BackendGdata, storage.BackendSQLite, storage.BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.Timing.Cooldown < 0 {
		return fmt.Errorf("cooldown must not be negative, got %s", c.Timing.Cooldown)
	}
	if c.Timing.Fall <= 0 {
		return fmt.Errorf("fall duration must be positive, got %s", c.Timing.Fall)
	}
	if c.Timing.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %d", c.Timing.FrameRate)
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return fmt.Errorf("volume must be within [0, 1], got %f", c.Sound.Volume)
	}
	g := c.Geometry
	if g.BarWidth <= 0 || g.BarHeight <= 0 || g.ObjectSize <= 0 || g.ContainerWidth <= 0 || g.ContainerHeight <= 0 {
		return fmt.Errorf("geometry sizes must be positive")
	}
	if g.BarWidth > g.ContainerWidth {
		return fmt.Errorf("bar width %.0f exceeds container width %.0f", g.BarWidth, g.ContainerWidth)
	}
	return nil
}

func (c *Config) SeesawGeometry() seesaw.Geometry {
	return seesaw.Geometry{
		ContainerWidth:  c.Geometry.ContainerWidth,
		ContainerHeight: c.Geometry.ContainerHeight,
		BarWidth:        c.Geometry.BarWidth,
		BarHeight:       c.Geometry.BarHeight,
		BarTop:          c.Geometry.BarTop,
		ObjectSize:      c.Geometry.ObjectSize,
		FallDistance:    c.Geometry.FallDistance,
		FallDuration:    c.Timing.Fall,
	}
}

func (c *Config) FrameInterval() time.Duration {
	if c.Timing.FrameRate <= 0 {
		return time.Second / DefaultFrameRate
	}
	return time.Second / time.Duration(c.Timing.FrameRate)
}

// ControllerOptions fills the timing and geometry part of seesaw.Options.
func (c *Config) ControllerOptions() seesaw.Options {
	return seesaw.Options{
		Geometry:      c.SeesawGeometry(),
		Cooldown:      c.Timing.Cooldown,
		FrameInterval: c.FrameInterval(),
		TiltTolerance: c.Timing.TiltTolerance,
		Weights:       seesaw.NewWeightSource(c.Seed),
	}
}
