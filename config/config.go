// Package config holds the generation run configuration. Flags fill it for
// the common case; a YAML file can seed the same fields for repeatable runs.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents one complete generation run.
type Config struct {
	OutputDir    string  `yaml:"output_dir"`
	Days         int     `yaml:"days"`
	Customers    int     `yaml:"customers"`
	StartDate    string  `yaml:"start_date,omitempty"` // YYYY-MM-DD; empty = today-(days-1)
	CustomerFile string  `yaml:"customer_file,omitempty"`
	Seed         int64   `yaml:"seed"`
	TargetLCR    float64 `yaml:"target_lcr"`
	ProfileFile  string  `yaml:"profile_file,omitempty"`
}

// Default returns a configuration with the standard run parameters.
func Default() *Config {
	return &Config{
		Days:      90,
		Customers: 1000,
		Seed:      42,
		TargetLCR: 95.0,
	}
}

// LoadFromFile loads a run configuration from a YAML file. Fields absent from
// the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration before any sampling begins.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.Days <= 0 {
		return fmt.Errorf("days must be positive, got %d", c.Days)
	}
	if c.Customers <= 0 && c.CustomerFile == "" {
		return fmt.Errorf("customers must be positive when no customer_file is given")
	}
	if c.TargetLCR <= 0 {
		return fmt.Errorf("target_lcr must be positive, got %.2f", c.TargetLCR)
	}
	if c.StartDate != "" {
		if _, err := time.Parse("2006-01-02", c.StartDate); err != nil {
			return fmt.Errorf("start_date %q: want YYYY-MM-DD: %w", c.StartDate, err)
		}
	}
	return nil
}

// Start resolves the run's first reporting date. With no explicit start date
// the range ends today: start = today - (days-1).
func (c *Config) Start(now time.Time) (time.Time, error) {
	if c.StartDate != "" {
		return time.Parse("2006-01-02", c.StartDate)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -(c.Days - 1)), nil
}
