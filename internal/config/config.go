// Package config loads the YAML configuration of the anagopos command.
//
// Every field has a default; a file only needs the keys it changes.
//
//	mode: trs
//	rules: testdata/double.xml
//	steps: 200
//	max_nodes: 5000
//	seed: 42
//	workers: 4
//	cache_size: 256
//	log:
//	  level: debug
//	  format: json
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gitrdm/anagopos/internal/logging"
)

// Config holds the settings shared by all commands. Command line flags
// override the values read from a file.
type Config struct {
	Mode      string    `yaml:"mode"`
	Rules     string    `yaml:"rules,omitempty"`
	Steps     int       `yaml:"steps"`
	MaxNodes  int       `yaml:"max_nodes"`
	Seed      uint64    `yaml:"seed"`
	Workers   int       `yaml:"workers"`
	CacheSize int       `yaml:"cache_size"`
	Log       LogConfig `yaml:"log"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration. A zero seed means a fresh
// random seed per run.
func Default() Config {
	return Config{
		Mode:      "lambda",
		Steps:     100,
		MaxNodes:  0,
		Workers:   0,
		CacheSize: 256,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	switch c.Mode {
	case "lambda", "trs":
	default:
		errs = append(errs, fmt.Errorf("mode must be lambda or trs, got %q", c.Mode))
	}
	if c.Steps <= 0 {
		errs = append(errs, fmt.Errorf("steps must be positive, got %d", c.Steps))
	}
	if c.MaxNodes < 0 {
		errs = append(errs, fmt.Errorf("max_nodes must not be negative, got %d", c.MaxNodes))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
