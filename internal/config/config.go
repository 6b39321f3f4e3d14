// Package config provides runtime configuration loaded from
// environment variables. Nothing here is load-bearing for protocol
// correctness; it only tunes diagnostics.
package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds newtation-mcp runtime configuration.
type Config struct {
	// LogLevel controls stderr diagnostics ("info" or "debug").
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from NEWTATION_-prefixed environment
// variables.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("newtation", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}
