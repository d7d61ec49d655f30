package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"corner": withDefaults(func(c *Config) {
		c.Radius = 4
		c.InitialState = [][]float64{{50}, {50}, {10}, {10}}
	}),
	"dilute": withDefaults(func(c *Config) {
		c.Particles = 10
		c.Radius = 0.5
		c.MaxSpeed = 20
		c.Duration = 20
	}),
	"dense": withDefaults(func(c *Config) {
		c.Particles = 400
		c.RelativeRadius = 0.005
		c.MaxSpeed = 5
		c.RecordEvery = 50
	}),
	"resting": withDefaults(func(c *Config) {
		c.InitialState = [][]float64{{20, 50, 80}, {50, 50, 50}, {0, 0, 0}, {0, 0, 0}}
	}),
}

func withDefaults(apply func(*Config)) *Config {
	c := DefaultConfig()
	apply(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
