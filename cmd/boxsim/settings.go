package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/san-kum/boxsim/internal/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"side-length":     "side_length",
	"radius":          "particle_radius",
	"relative-radius": "relative_radius",
	"particles":       "particle_count",
	"seed":            "seed",
	"duration":        "duration",
	"max-speed":       "max_speed",
	"animate":         "animate",
	"max-steps":       "max_steps",
	"record-every":    "record_every",
	"fps":             "frame_rate",
	"log-level":       "log.level",
	"log-format":      "log.format",
	"log-file":        "log.file",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("BOXSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// bindFlags binds whichever of the known flags fs defines. Only flags the
// user changed count as set.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// resolveConfig layers defaults, the preset, the config file, environment
// and changed flags, in that order. A zero seed is replaced by the clock.
func resolveConfig(v *viper.Viper, presetName, path string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if presetName != "" {
		p := config.GetPreset(presetName)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
		}
		cfg = p
	}

	if path != "" {
		loaded, err := config.LoadOver(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	cfg.Override(v)

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
