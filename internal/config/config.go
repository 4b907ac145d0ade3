// Package config centralizes configuration for the lapse CLI and server.
// Values are layered from defaults, an optional config file, LAPSE_*
// environment variables, and command-line flags.
package config

import (
	"fmt"
	"strings"
)

// Config represents the complete configuration for the lapse application.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Demo workload configuration (for demo command)
	Demo DemoConfig `mapstructure:"demo" yaml:"demo" json:"demo"`
}

// OutputConfig contains report formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host               string `mapstructure:"host" yaml:"host" json:"host"`
	Port               int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin         string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	ShutdownTimeoutSec int    `mapstructure:"shutdown_timeout_sec" yaml:"shutdown_timeout_sec" json:"shutdown_timeout_sec"`
	SnapshotIntervalMS int    `mapstructure:"snapshot_interval_ms" yaml:"snapshot_interval_ms" json:"snapshot_interval_ms"`
}

// DemoConfig contains settings for the concurrent demo workload.
type DemoConfig struct {
	Watches    int `mapstructure:"watches" yaml:"watches" json:"watches"`
	Workers    int `mapstructure:"workers" yaml:"workers" json:"workers"`
	Laps       int `mapstructure:"laps" yaml:"laps" json:"laps"`
	IntervalMS int `mapstructure:"interval_ms" yaml:"interval_ms" json:"interval_ms"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	validFormats := []string{"text", "json", "yaml"}
	if c.Output.Format != "" && !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", c.Output.Format, strings.Join(validFormats, ", "))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.ShutdownTimeoutSec <= 0 {
		return fmt.Errorf("invalid shutdown timeout: %d (must be positive)", c.Server.ShutdownTimeoutSec)
	}
	if c.Server.SnapshotIntervalMS <= 0 {
		return fmt.Errorf("invalid snapshot interval: %d (must be positive)", c.Server.SnapshotIntervalMS)
	}

	if c.Demo.Watches <= 0 {
		return fmt.Errorf("invalid demo watch count: %d (must be positive)", c.Demo.Watches)
	}
	if c.Demo.Workers <= 0 {
		return fmt.Errorf("invalid demo worker count: %d (must be positive)", c.Demo.Workers)
	}
	if c.Demo.Laps <= 0 {
		return fmt.Errorf("invalid demo lap count: %d (must be positive)", c.Demo.Laps)
	}
	if c.Demo.IntervalMS < 0 {
		return fmt.Errorf("invalid demo interval: %d (must not be negative)", c.Demo.IntervalMS)
	}

	return nil
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
