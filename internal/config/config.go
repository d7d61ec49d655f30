package config

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/san-kum/boxsim/internal/geometry"
	"github.com/san-kum/boxsim/internal/particles"
	"github.com/san-kum/boxsim/internal/sim"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSideLength  = 100.0
	DefaultRadius      = 1.0
	DefaultParticles   = 50
	DefaultDuration    = 10.0
	DefaultMaxSpeed    = 10.0
	DefaultFrameRate   = 30
	DefaultRecordEvery = 10
)

type Config struct {
	SideLength     float64 `yaml:"side_length"`
	Radius         float64 `yaml:"particle_radius"`
	RelativeRadius float64 `yaml:"relative_radius"`
	Particles      int     `yaml:"particle_count"`
	Seed           int64   `yaml:"seed"`
	Duration       float64 `yaml:"duration"`
	MaxSpeed       float64 `yaml:"max_speed"`
	Animate        bool    `yaml:"animate"`
	MaxSteps       int     `yaml:"max_steps"`
	RecordEvery    int     `yaml:"record_every"`
	FrameRate      int     `yaml:"frame_rate"`
	// InitialState holds rows pos_x, pos_y, vel_x, vel_y. When set it
	// replaces the random draw and Particles is ignored.
	InitialState [][]float64  `yaml:"initial_state,omitempty"`
	Log          LoggerConfig `yaml:"log"`
}

type LoggerConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	File        string `yaml:"file"`
	MaxSize     int    `yaml:"max_size"`
	MaxBackups  int    `yaml:"max_backups"`
	MaxAge      int    `yaml:"max_age"`
	Compress    bool   `yaml:"compress"`
	ServiceName string `yaml:"service_name"`
}

func DefaultConfig() *Config {
	return &Config{
		SideLength:  DefaultSideLength,
		Radius:      DefaultRadius,
		Particles:   DefaultParticles,
		Duration:    DefaultDuration,
		MaxSpeed:    DefaultMaxSpeed,
		RecordEvery: DefaultRecordEvery,
		FrameRate:   DefaultFrameRate,
		Log: LoggerConfig{
			Level:       "info",
			Format:      "console",
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      28,
			ServiceName: "boxsim",
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over base. base is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	if c.InitialState != nil {
		cp.InitialState = make([][]float64, len(c.InitialState))
		for i, row := range c.InitialState {
			cp.InitialState[i] = append([]float64(nil), row...)
		}
	}
	return &cp
}

// Keys understood by Override, matching the YAML field names.
var overrideKeys = []string{
	"side_length", "particle_radius", "relative_radius", "particle_count",
	"seed", "duration", "max_speed", "animate", "max_steps", "record_every",
	"frame_rate", "log.level", "log.format", "log.file",
}

// Override copies every key that v reports as set (changed flag, env var or
// explicit Set) onto c.
func (c *Config) Override(v *viper.Viper) {
	for _, key := range overrideKeys {
		if !v.IsSet(key) {
			continue
		}
		switch key {
		case "side_length":
			c.SideLength = v.GetFloat64(key)
		case "particle_radius":
			c.Radius = v.GetFloat64(key)
		case "relative_radius":
			c.RelativeRadius = v.GetFloat64(key)
		case "particle_count":
			c.Particles = v.GetInt(key)
		case "seed":
			c.Seed = v.GetInt64(key)
		case "duration":
			c.Duration = v.GetFloat64(key)
		case "max_speed":
			c.MaxSpeed = v.GetFloat64(key)
		case "animate":
			c.Animate = v.GetBool(key)
		case "max_steps":
			c.MaxSteps = v.GetInt(key)
		case "record_every":
			c.RecordEvery = v.GetInt(key)
		case "frame_rate":
			c.FrameRate = v.GetInt(key)
		case "log.level":
			c.Log.Level = v.GetString(key)
		case "log.format":
			c.Log.Format = v.GetString(key)
		case "log.file":
			c.Log.File = v.GetString(key)
		}
	}
}

// Box resolves the particle radius, preferring RelativeRadius when positive.
func (c *Config) Box() particles.Box {
	if c.RelativeRadius > 0 {
		return particles.NewBoxRelative(c.SideLength, c.RelativeRadius)
	}
	return particles.Box{SideLength: c.SideLength, Radius: c.Radius}
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Duration:    c.Duration,
		MaxSteps:    c.MaxSteps,
		Animate:     c.Animate,
		RecordEvery: c.RecordEvery,
	}
}

func (c *Config) Validate() error {
	if c.RelativeRadius < 0 || math.IsNaN(c.RelativeRadius) {
		return fmt.Errorf("relative radius must be non-negative, got %f", c.RelativeRadius)
	}
	if err := c.Box().Validate(); err != nil {
		return err
	}
	if c.InitialState == nil && c.Particles < 0 {
		return fmt.Errorf("particle count must be non-negative, got %d", c.Particles)
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration must be non-negative, got %f", c.Duration)
	}
	if c.MaxSpeed < 0 {
		return fmt.Errorf("max speed must be non-negative, got %f", c.MaxSpeed)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %d", c.FrameRate)
	}
	return nil
}

// InitialSet builds the starting particles: the explicit initial state when
// present, otherwise uniform positions from rng followed by uniform
// velocities bounded by MaxSpeed.
func (c *Config) InitialSet(rng *rand.Rand) (*particles.Set, error) {
	if c.InitialState != nil {
		block, err := geometry.Matrix(c.InitialState)
		if err != nil {
			return nil, err
		}
		return particles.FromArray(block)
	}

	set, err := particles.Random(c.Box(), c.Particles, rng)
	if err != nil {
		return nil, err
	}
	vx, vy := particles.RandomVelocities(c.Particles, c.MaxSpeed, rng)
	if err := set.AssignVelocities(vx, vy); err != nil {
		return nil, err
	}
	return set, nil
}
