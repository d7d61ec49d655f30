package config

import (
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/boxsim/internal/particles"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultSideLength, cfg.SideLength)
	assert.Equal(t, DefaultParticles, cfg.Particles)
	assert.Positive(t, cfg.Duration, "duration should be positive")
	assert.NoError(t, cfg.Validate())
}

func TestBox_RelativeRadius(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SideLength = 10
	cfg.RelativeRadius = 0.05

	box := cfg.Box()
	assert.InDelta(t, 0.5, box.Radius, 1e-12)

	cfg.RelativeRadius = 0
	assert.Equal(t, cfg.Radius, cfg.Box().Radius)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"degenerate box", func(c *Config) { c.SideLength = 2 }},
		{"negative count", func(c *Config) { c.Particles = -1 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"negative speed", func(c *Config) { c.MaxSpeed = -1 }},
		{"zero frame rate", func(c *Config) { c.FrameRate = 0 }},
		{"negative relative radius", func(c *Config) { c.RelativeRadius = -0.01 }},
		{"NaN relative radius", func(c *Config) { c.RelativeRadius = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.yaml")

	cfg := DefaultConfig()
	cfg.Particles = 7
	cfg.InitialState = [][]float64{{1, 2}, {3, 4}, {5, 6}, {7, 8}}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("duration: 3.5\nlog:\n  level: debug\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3.5, cfg.Duration)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DefaultSideLength, cfg.SideLength)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOverride(t *testing.T) {
	v := viper.New()
	v.Set("duration", 42.0)
	v.Set("particle_count", 3)
	v.Set("animate", true)
	v.Set("log.level", "warn")

	cfg := DefaultConfig()
	cfg.Override(v)

	assert.Equal(t, 42.0, cfg.Duration)
	assert.Equal(t, 3, cfg.Particles)
	assert.True(t, cfg.Animate)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, DefaultSideLength, cfg.SideLength, "unset keys must be left alone")
}

func TestOverride_Env(t *testing.T) {
	t.Setenv("BOXSIM_MAX_SPEED", "2.5")

	v := viper.New()
	v.SetEnvPrefix("BOXSIM")
	v.AutomaticEnv()

	cfg := DefaultConfig()
	cfg.Override(v)
	assert.Equal(t, 2.5, cfg.MaxSpeed)
}

func TestInitialSet_Random(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Particles = 12

	a, err := cfg.InitialSet(rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	b, err := cfg.InitialSet(rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	assert.Equal(t, 12, a.Len())
	assert.NoError(t, a.Validate())
	assert.Equal(t, a, b, "same seed should give the same particles")
	for i := range a.VelX {
		assert.LessOrEqual(t, a.VelX[i], cfg.MaxSpeed)
		assert.GreaterOrEqual(t, a.VelX[i], -cfg.MaxSpeed)
	}
}

func TestInitialSet_Explicit(t *testing.T) {
	cfg := GetPreset("corner")
	require.NotNil(t, cfg)

	set, err := cfg.InitialSet(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, []float64{50}, set.PosX)
	assert.Equal(t, []float64{10}, set.VelY)
}

func TestInitialSet_BadShape(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialState = [][]float64{{1, 2, 3, 4, 5}}

	_, err := cfg.InitialSet(rand.New(rand.NewSource(1)))
	assert.True(t, errors.Is(err, particles.ErrShape))
	assert.Contains(t, err.Error(), "(1, 5)")
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("corner")
	require.NotNil(t, cfg)
	assert.Equal(t, 4.0, cfg.Radius)

	cfg.InitialState[0][0] = 99
	assert.Equal(t, 50.0, GetPreset("corner").InitialState[0][0], "presets must be copied")
}

func TestGetPreset_NotFound(t *testing.T) {
	assert.Nil(t, GetPreset("nonexistent"))
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	assert.Contains(t, names, "default")
	assert.IsNonDecreasing(t, names)

	for _, name := range names {
		assert.NoError(t, GetPreset(name).Validate(), name)
	}
}
