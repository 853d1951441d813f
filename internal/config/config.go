// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles synth project configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/dacolabs/synth/internal/synth"
	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// FileName is the name of the synth configuration file.
const FileName = "synth.yaml"

// Config represents the synth.yaml project configuration file.
type Config struct {
	Version    int        `yaml:"version"`
	TextPrefix string     `yaml:"text_prefix"`
	MaxDepth   int        `yaml:"max_depth"`
	Format     string     `yaml:"format,omitempty"`
	Seed       uint64     `yaml:"seed,omitempty"`
	Array      ArrayRange `yaml:"array"`
	Workers    int        `yaml:"workers"`
}

// ArrayRange is the inclusive length range of generated arrays.
type ArrayRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Default returns the configuration used when no synth.yaml exists.
func Default() *Config {
	return &Config{
		Version:    CurrentConfigVersion,
		TextPrefix: synth.DefaultTextPrefix,
		MaxDepth:   synth.DefaultMaxDepth,
		Format:     "json",
		Array:      ArrayRange{Min: synth.DefaultArrayMin, Max: synth.DefaultArrayMax},
		Workers:    4,
	}
}

// Load reads a Config from a file path. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Array.Min < 0 || c.Array.Max < c.Array.Min {
		return fmt.Errorf("invalid array range [%d, %d]", c.Array.Min, c.Array.Max)
	}
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	return nil
}

// SynthOptions converts the configuration into synthesizer options. Seed
// is not included: callers decide how it combines with flags and jobs.
func (c *Config) SynthOptions() []synth.Option {
	return []synth.Option{
		synth.WithTextPrefix(c.TextPrefix),
		synth.WithMaxDepth(c.MaxDepth),
		synth.WithArrayLen(c.Array.Min, c.Array.Max),
	}
}
