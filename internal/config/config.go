package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/theme"
)

const (
	DefaultColor  = "#3b82f6"
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultFPS    = 60
	DefaultFrames = 600
)

type Config struct {
	Particles ParticleConfig `yaml:"particles" toml:"particles"`
	Window    WindowConfig   `yaml:"window" toml:"window"`
	// Theme forces "dark" or "light". Empty means use the stored preference.
	Theme string `yaml:"theme" toml:"theme"`
	// Seed for the particle field; 0 picks one from the clock.
	Seed int64 `yaml:"seed" toml:"seed"`
}

type ParticleConfig struct {
	Count        int     `yaml:"count" toml:"count"`
	SpeedX       float64 `yaml:"speed_x" toml:"speed_x"`
	SpeedY       float64 `yaml:"speed_y" toml:"speed_y"`
	MinRadius    float64 `yaml:"min_radius" toml:"min_radius"`
	RadiusSpread float64 `yaml:"radius_spread" toml:"radius_spread"`
	Color        string  `yaml:"color" toml:"color"`
	DarkAlpha    float64 `yaml:"dark_alpha" toml:"dark_alpha"`
	LightAlpha   float64 `yaml:"light_alpha" toml:"light_alpha"`
}

type WindowConfig struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
	FPS    int `yaml:"fps" toml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Particles: ParticleConfig{
			Count:        field.DefaultCount,
			SpeedX:       field.DefaultSpeedX,
			SpeedY:       field.DefaultSpeedY,
			MinRadius:    field.DefaultMinRadius,
			RadiusSpread: field.DefaultRadiusSpread,
			Color:        DefaultColor,
			DarkAlpha:    field.DefaultDarkAlpha,
			LightAlpha:   field.DefaultLightAlpha,
		},
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
		},
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a config file over the defaults. Files ending in .toml are
// decoded as TOML, everything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if isTOML(path) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := toml.NewEncoder(f).Encode(cfg); err != nil {
			f.Close()
			return fmt.Errorf("encode %s: %w", path, err)
		}
		return f.Close()
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.Window.FPS)
	}
	switch c.Theme {
	case "", theme.Dark, theme.Light:
	default:
		return fmt.Errorf("unknown theme %q (want %q or %q)", c.Theme, theme.Dark, theme.Light)
	}
	opts, err := c.Options()
	if err != nil {
		return err
	}
	return opts.Validate()
}

// Options converts the particle section into animator options.
func (c *Config) Options() (field.Options, error) {
	paint, err := ParsePaint(c.Particles.Color)
	if err != nil {
		return field.Options{}, err
	}

	opts := field.DefaultOptions()
	opts.Count = c.Particles.Count
	opts.SpeedX = c.Particles.SpeedX
	opts.SpeedY = c.Particles.SpeedY
	opts.MinRadius = c.Particles.MinRadius
	opts.RadiusSpread = c.Particles.RadiusSpread
	opts.Color = paint
	opts.DarkAlpha = c.Particles.DarkAlpha
	opts.LightAlpha = c.Particles.LightAlpha
	return opts, nil
}

// ParsePaint reads a "#rrggbb" color into an opaque-RGB paint with zero alpha.
func ParsePaint(hex string) (field.Paint, error) {
	col, err := colorful.Hex(hex)
	if err != nil {
		return field.Paint{}, fmt.Errorf("particle color %q: %w", hex, err)
	}
	r, g, b := col.RGB255()
	return field.Paint{R: r, G: g, B: b}, nil
}
