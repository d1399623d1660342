package cadence

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config holds scheduler settings. It can be built in code or loaded from
// YAML with LoadConfig:
//
//	time_scale: 1
//	fixed_delta: 0.02
//	max_fixed_steps: 8
//	log_level: warn
type Config struct {
	TimeScale     float64   `yaml:"time_scale"`
	FixedDelta    float64   `yaml:"fixed_delta"`
	MaxFixedSteps int       `yaml:"max_fixed_steps"`
	Debug         bool      `yaml:"debug"`
	LogLevel      string    `yaml:"log_level"`
	Epoch         time.Time `yaml:"epoch"`
}

const (
	defaultTimeScale     = 1.0
	defaultFixedDelta    = 1.0 / 50
	defaultMaxFixedSteps = 8
)

// DefaultConfig returns the settings used by NewScheduler.
func DefaultConfig() Config {
	return Config{
		TimeScale:     defaultTimeScale,
		FixedDelta:    defaultFixedDelta,
		MaxFixedSteps: defaultMaxFixedSteps,
		LogLevel:      "warn",
	}
}

// LoadConfig parses YAML config data on top of DefaultConfig and validates it.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.TimeScale < 0 {
		return fmt.Errorf("config: time_scale must be >= 0, got %v", c.TimeScale)
	}
	if c.FixedDelta <= 0 {
		return fmt.Errorf("config: fixed_delta must be > 0, got %v", c.FixedDelta)
	}
	if c.MaxFixedSteps < 0 {
		return fmt.Errorf("config: max_fixed_steps must be >= 0, got %d", c.MaxFixedSteps)
	}
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config: log_level: %w", err)
		}
	}
	return nil
}

// withDefaults replaces out-of-range fields with DefaultConfig values. The
// zero Config becomes DefaultConfig; otherwise an explicit TimeScale of 0
// (paused) is kept.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c == (Config{}) {
		return d
	}
	if c.FixedDelta <= 0 {
		c.FixedDelta = d.FixedDelta
	}
	if c.MaxFixedSteps < 0 {
		c.MaxFixedSteps = d.MaxFixedSteps
	}
	if c.TimeScale < 0 {
		c.TimeScale = d.TimeScale
	}
	return c
}

// level returns the configured log level, falling back to warn.
func (c Config) level() zerolog.Level {
	if c.LogLevel == "" {
		return zerolog.WarnLevel
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.WarnLevel
	}
	return lvl
}
