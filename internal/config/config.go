// Package config loads training configuration from YAML and merges in
// command line overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	Epochs       int     `yaml:"epochs"`
	BatchSize    int     `yaml:"batch_size"`
	LearningRate float32 `yaml:"learning_rate"`
	Momentum     float32 `yaml:"momentum"`
	Optimizer    string  `yaml:"optimizer"` // "sgd" or "adam"
	Hidden       int     `yaml:"hidden"`
	Seed         int64   `yaml:"seed"`
	LogEvery     int     `yaml:"log_every"`
	LossCSV      string  `yaml:"loss_csv"`
}

// Default returns the configuration that trains XOR reliably.
func Default() *Config {
	return &Config{
		Epochs:       5000,
		BatchSize:    4,
		LearningRate: 0.5,
		Momentum:     0.9,
		Optimizer:    "sgd",
		Hidden:       4,
		Seed:         42,
		LogEvery:     500,
	}
}

// Overrides captures CLI supplied values. Zero values mean "not set".
type Overrides struct {
	Epochs       int
	BatchSize    int
	LearningRate float32
	Momentum     float32
	Optimizer    string
	Hidden       int
	Seed         int64
	LogEvery     int
	LossCSV      string
}

// Load reads a YAML config file over the defaults and validates the
// result. An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Momentum > 0 {
		c.Momentum = o.Momentum
	}
	if o.Optimizer != "" {
		c.Optimizer = o.Optimizer
	}
	if o.Hidden > 0 {
		c.Hidden = o.Hidden
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.LossCSV != "" {
		c.LossCSV = o.LossCSV
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", c.BatchSize)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.Momentum < 0 || c.Momentum >= 1 {
		return fmt.Errorf("momentum must be in [0, 1) (got %g)", c.Momentum)
	}
	if c.Optimizer != "sgd" && c.Optimizer != "adam" {
		return fmt.Errorf("optimizer must be \"sgd\" or \"adam\" (got %q)", c.Optimizer)
	}
	if c.Hidden <= 0 {
		return fmt.Errorf("hidden must be > 0 (got %d)", c.Hidden)
	}
	if c.LogEvery <= 0 {
		return fmt.Errorf("log_every must be > 0 (got %d)", c.LogEvery)
	}
	return nil
}
