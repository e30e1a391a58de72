package libgesturego

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g.
// GESTURE_SHAKE_THRESHOLD or GESTURE_TOUCH_SLOP.
const EnvPrefix = "GESTURE_"

// Config holds the default parameters the registry uses when a detection is
// started without explicit options.
type Config struct {
	ShakeThreshold        float64 `json:"shake_threshold" yaml:"shake_threshold" toml:"shake_threshold" env:"SHAKE_THRESHOLD"`
	LightThreshold        float64 `json:"light_threshold" yaml:"light_threshold" toml:"light_threshold" env:"LIGHT_THRESHOLD"`
	ProximityThreshold    float64 `json:"proximity_threshold" yaml:"proximity_threshold" toml:"proximity_threshold" env:"PROXIMITY_THRESHOLD"`
	WaveThresholdMs       int64   `json:"wave_threshold_ms" yaml:"wave_threshold_ms" toml:"wave_threshold_ms" env:"WAVE_THRESHOLD_MS"`
	OrientationSmoothness int     `json:"orientation_smoothness" yaml:"orientation_smoothness" toml:"orientation_smoothness" env:"ORIENTATION_SMOOTHNESS"`

	Touch TouchParams `json:"touch" yaml:"touch" toml:"touch" envPrefix:"TOUCH_"`
	Pinch PinchParams `json:"pinch" yaml:"pinch" toml:"pinch" envPrefix:"PINCH_"`
}

func DefaultConfig() *Config {
	return &Config{
		ShakeThreshold:        DefaultShakeThreshold,
		LightThreshold:        DefaultLightThreshold,
		ProximityThreshold:    DefaultProximityThreshold,
		WaveThresholdMs:       DefaultWaveThresholdMs,
		OrientationSmoothness: DefaultOrientationSmoothness,
		Touch:                 *DefaultTouchParams(),
		Pinch:                 *DefaultPinchParams(),
	}
}

func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

func (c *Config) Validate() error {
	switch {
	case c.WaveThresholdMs <= 0:
		return fmt.Errorf("%w: wave_threshold_ms must be positive, got %d", ErrInvalidConfig, c.WaveThresholdMs)
	case c.OrientationSmoothness < 1:
		return fmt.Errorf("%w: orientation_smoothness must be at least 1, got %d", ErrInvalidConfig, c.OrientationSmoothness)
	case c.Touch.TouchSlop <= 0 || c.Touch.DoubleTapSlop <= 0:
		return fmt.Errorf("%w: touch slops must be positive", ErrInvalidConfig)
	case c.Touch.TapTimeoutMs <= 0 || c.Touch.LongPressTimeoutMs <= 0 || c.Touch.DoubleTapTimeoutMs <= 0:
		return fmt.Errorf("%w: touch timeouts must be positive", ErrInvalidConfig)
	case c.Touch.DoubleTapMinTimeMs < 0 || c.Touch.DoubleTapMinTimeMs >= c.Touch.DoubleTapTimeoutMs:
		return fmt.Errorf("%w: double_tap_min_time_ms must be in [0, double_tap_timeout_ms)", ErrInvalidConfig)
	case c.Touch.VelocityHorizonMs <= 0:
		return fmt.Errorf("%w: velocity_horizon_ms must be positive", ErrInvalidConfig)
	case c.Pinch.MinSpan <= 0 || c.Pinch.SpanSlop < 0:
		return fmt.Errorf("%w: pinch spans must be positive", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads a TOML, YAML or JSON file on top of the defaults, applies
// environment overrides and validates the result. A missing file is not an
// error.
func LoadConfig(path string) (*Config, error) {
	cfg, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %v: %w", path, err)
	}
	return cfg, nil
}

func loadConfigFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config format %q", ErrInvalidConfig, ext)
	}
	return cfg, nil
}

// ApplyEnvOverrides replaces fields that have a GESTURE_ variable set.
func (c *Config) ApplyEnvOverrides() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ConfigFromKwargs overlays pipeline processor arguments on base. Keys use
// the same names as the config file; keys it does not know, such as
// "detect", are ignored.
func ConfigFromKwargs(base *Config, kwargs map[string]interface{}) (*Config, error) {
	if base == nil {
		base = DefaultConfig()
	}
	cfg := base.Clone()
	if len(kwargs) == 0 {
		return cfg, nil
	}

	data, err := yaml.Marshal(kwargs)
	if err != nil {
		return nil, fmt.Errorf("encode kwargs: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode kwargs: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
