package config

import (
	"sort"
	"time"
)

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"quick": with(func(c *Config) {
		c.Timing.Cooldown = 250 * time.Millisecond
		c.Timing.Fall = 800 * time.Millisecond
		c.Timing.Tilt = 400 * time.Millisecond
	}),
	"slowmo": with(func(c *Config) {
		c.Theme = "ocean"
		c.Timing.Fall = 5 * time.Second
		c.Timing.Tilt = 2 * time.Second
	}),
	"silent": with(func(c *Config) {
		c.Sound.Enabled = false
	}),
	"sandbox": with(func(c *Config) {
		c.Backend = "memory"
		c.Timing.Cooldown = 0
		c.Sound.Enabled = false
	}),
}

func with(edit func(*Config)) *Config {
	c := DefaultConfig()
	edit(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
