// Package config provides configuration loading for the CPC ETL pipeline.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config is the complete pipeline configuration.
type Config struct {
	Data       DataConfig       `yaml:"data"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Validation ValidationConfig `yaml:"validation"`
	Output     OutputConfig     `yaml:"output"`
}

// DataConfig locates the on-disk data directories.
type DataConfig struct {
	// Dir is the base data directory; raw archives live in Dir/raw.
	Dir string `yaml:"dir"`
}

// RawDir returns the directory holding downloaded archives.
func (d DataConfig) RawDir() string {
	return filepath.Join(d.Dir, "raw")
}

// FetchConfig configures archive downloading.
type FetchConfig struct {
	// BaseURL is the CPC authority site root (default: official site).
	BaseURL string `yaml:"base_url"`
	// Version pins a release token; empty means newest published.
	Version string `yaml:"version"`
	// Force re-downloads archives that already exist locally.
	Force bool `yaml:"force"`
}

// ValidationConfig configures the validation sweep.
type ValidationConfig struct {
	// Workers is the validation parallelism (default: NumCPU).
	Workers int `yaml:"workers"`
	// ParallelLoad runs the reference loaders concurrently.
	ParallelLoad bool `yaml:"parallel_load"`
}

// OutputConfig configures dataset emission.
type OutputConfig struct {
	// Dir is the output directory for datasets and reports.
	Dir string `yaml:"dir"`
	// Format is "csv" or "jsonl".
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir: "data",
		},
		Fetch: FetchConfig{
			BaseURL: "", // Fetcher default
		},
		Validation: ValidationConfig{
			Workers:      runtime.NumCPU(),
			ParallelLoad: true,
		},
		Output: OutputConfig{
			Dir:    filepath.Join("data", "output"),
			Format: "csv",
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Validation.Workers <= 0 {
		return fmt.Errorf("validation.workers must be positive")
	}
	switch c.Output.Format {
	case "csv", "jsonl":
	default:
		return fmt.Errorf("output.format must be csv or jsonl, got %q", c.Output.Format)
	}
	return nil
}

// Merge overlays non-zero fields from other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Data.Dir != "" {
		c.Data.Dir = other.Data.Dir
	}
	if other.Fetch.BaseURL != "" {
		c.Fetch.BaseURL = other.Fetch.BaseURL
	}
	if other.Fetch.Version != "" {
		c.Fetch.Version = other.Fetch.Version
	}
	if other.Fetch.Force {
		c.Fetch.Force = true
	}
	if other.Validation.Workers > 0 {
		c.Validation.Workers = other.Validation.Workers
	}
	if other.Output.Dir != "" {
		c.Output.Dir = other.Output.Dir
	}
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
}

// LoadFromFile reads a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &config, nil
}

// SaveToFile writes the config as YAML, creating parent directories.
func (c *Config) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
