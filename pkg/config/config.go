// Package config loads classifier CLI configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zpam/bayes-classifier/pkg/overrides"
)

// Config represents classifier configuration.
type Config struct {
	// Training settings
	Training TrainingConfig `yaml:"training"`

	// Frequency override settings
	Overrides OverridesConfig `yaml:"overrides"`

	// Reporting settings
	Output OutputConfig `yaml:"output"`
}

// TrainingConfig contains training parameters.
type TrainingConfig struct {
	// Fraction of the dataset used for training, rest is held out for
	// evaluation
	TrainFraction float64 `yaml:"train_fraction"`
}

// OverridesConfig contains frequency override settings.
type OverridesConfig struct {
	// Enable override lookups during scoring
	Enabled bool `yaml:"enabled"`

	// Backend selection: "table" or "redis"
	Backend string `yaml:"backend"`

	// Redis-based override source settings
	Redis RedisSettings `yaml:"redis"`
}

// RedisSettings contains Redis override source settings.
type RedisSettings struct {
	RedisURL    string `yaml:"redis_url"`
	KeyPrefix   string `yaml:"key_prefix"`
	DatabaseNum int    `yaml:"database_num"`
	TimeoutMs   int    `yaml:"timeout_ms"`
}

// OutputConfig contains reporting settings.
type OutputConfig struct {
	// Number of informative features to display
	TopFeatures int `yaml:"top_features"`

	// Verbose output
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Training: TrainingConfig{
			TrainFraction: 0.8,
		},
		Overrides: OverridesConfig{
			Enabled: false,
			Backend: "table",
			Redis: RedisSettings{
				RedisURL:  "redis://localhost:6379",
				KeyPrefix: "bayes:overrides",
				TimeoutMs: 500,
			},
		},
		Output: OutputConfig{
			TopFeatures: 30,
		},
	}
}

// LoadConfig loads configuration from a YAML file, starting from
// defaults. An empty path returns the defaults unchanged.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		return config, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %v", err)
	}

	return config, nil
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.Training.TrainFraction <= 0 || c.Training.TrainFraction > 1 {
		return fmt.Errorf("train_fraction must be in (0, 1], got %g", c.Training.TrainFraction)
	}
	if c.Overrides.Backend != "table" && c.Overrides.Backend != "redis" {
		return fmt.Errorf("overrides backend must be \"table\" or \"redis\", got %q", c.Overrides.Backend)
	}
	if c.Overrides.Redis.TimeoutMs < 0 {
		return fmt.Errorf("redis timeout_ms must not be negative, got %d", c.Overrides.Redis.TimeoutMs)
	}
	if c.Output.TopFeatures < 0 {
		return fmt.Errorf("top_features must not be negative, got %d", c.Output.TopFeatures)
	}
	return nil
}

// RedisConfig converts the Redis settings into an overrides.RedisConfig.
func (c *Config) RedisConfig() *overrides.RedisConfig {
	return &overrides.RedisConfig{
		RedisURL:    c.Overrides.Redis.RedisURL,
		KeyPrefix:   c.Overrides.Redis.KeyPrefix,
		DatabaseNum: c.Overrides.Redis.DatabaseNum,
		Timeout:     time.Duration(c.Overrides.Redis.TimeoutMs) * time.Millisecond,
	}
}
