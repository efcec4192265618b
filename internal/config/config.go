package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/san-kum/bonsai/internal/bonsai"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTimeScaleMs = 100
	DefaultTheme       = "bonsai"
	DefaultMaxFrames   = 200000
	DefaultLeafJitter  = 24
	DefaultDataDir     = ".bonsai"
	MaxLeafJitter      = 255
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Seed        uint64 `yaml:"seed"`
	TrunkWidth  uint   `yaml:"trunk_width"`
	TimeScaleMs int    `yaml:"time_scale_ms"`
	Theme       string `yaml:"theme"`
	MaxFrames   int    `yaml:"max_frames"`
	LeafJitter  int    `yaml:"leaf_jitter"`
	DataDir     string `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		TimeScaleMs: DefaultTimeScaleMs,
		Theme:       DefaultTheme,
		MaxFrames:   DefaultMaxFrames,
		LeafJitter:  DefaultLeafJitter,
		DataDir:     DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base, so keys missing from the
// file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges only. Theme names are resolved by the viewer.
func (c *Config) Validate() error {
	if c.TimeScaleMs <= 0 {
		return fmt.Errorf("%w: time_scale_ms must be positive, got %d", ErrInvalid, c.TimeScaleMs)
	}
	if c.TrunkWidth > bonsai.MaxTrunkWidth {
		return fmt.Errorf("%w: trunk_width must be at most %d, got %d", ErrInvalid, bonsai.MaxTrunkWidth, c.TrunkWidth)
	}
	if c.MaxFrames <= 0 {
		return fmt.Errorf("%w: max_frames must be positive, got %d", ErrInvalid, c.MaxFrames)
	}
	if c.LeafJitter < 0 || c.LeafJitter > MaxLeafJitter {
		return fmt.Errorf("%w: leaf_jitter must be in [0, %d], got %d", ErrInvalid, MaxLeafJitter, c.LeafJitter)
	}
	return nil
}

func (c *Config) TimeScale() time.Duration {
	return time.Duration(c.TimeScaleMs) * time.Millisecond
}

// Options builds tree options for a screen of the given size.
func (c *Config) Options(width, height int) bonsai.Options {
	return bonsai.Options{
		Seed:       c.Seed,
		TrunkWidth: c.TrunkWidth,
		Screen:     bonsai.Screen{Width: width, Height: height},
		LeafJitter: c.LeafJitter,
	}
}
