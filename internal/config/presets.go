package config

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownPreset = errors.New("unknown preset")

var Presets = map[string]ParticleConfig{
	"default": DefaultConfig().Particles,
	"dense": {
		Count: 200, SpeedX: 0.2, SpeedY: 0.1, MinRadius: 0.5, RadiusSpread: 1.5,
		Color: DefaultColor, DarkAlpha: 0.2, LightAlpha: 0.1,
	},
	"calm": {
		Count: 30, SpeedX: 0.08, SpeedY: 0.04, MinRadius: 1.5, RadiusSpread: 3,
		Color: DefaultColor, DarkAlpha: 0.15, LightAlpha: 0.08,
	},
	"storm": {
		Count: 120, SpeedX: 3, SpeedY: 1.5, MinRadius: 1, RadiusSpread: 2.5,
		Color: DefaultColor, DarkAlpha: 0.3, LightAlpha: 0.15,
	},
	"ember": {
		Count: 60, SpeedX: 0.3, SpeedY: 0.6, MinRadius: 1, RadiusSpread: 2,
		Color: "#f97316", DarkAlpha: 0.35, LightAlpha: 0.2,
	},
}

// GetPreset returns the default config with the named particle preset
// applied, or nil if there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Particles = p
	return cfg
}

// ApplyPreset replaces the particle section of cfg.
func ApplyPreset(cfg *Config, name string) error {
	p, ok := Presets[name]
	if !ok {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	cfg.Particles = p
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
