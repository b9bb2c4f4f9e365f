// Package config loads application configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Session SessionConfig `yaml:"session"`
}

// ServerConfig configures the listener and the worker pool.
type ServerConfig struct {
	// BaseURL is the ambient host routes are registered under when no
	// Host group overrides it.
	BaseURL string `yaml:"base_url"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	// Workers sizes the connection worker pool; 0 selects the
	// available parallelism.
	Workers int `yaml:"workers"`
	// MaxConnections bounds concurrently accepted connections.
	MaxConnections int `yaml:"max_connections"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	// File switches logging to a size-rotated file when set.
	File string `yaml:"file"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

type SessionConfig struct {
	// CookieKey names the session cookie.
	CookieKey string `yaml:"cookie_key"`
	// ExpiresAfter is a duration string; accepts Go durations plus a
	// "d" day suffix, e.g. "30m" or "7d".
	ExpiresAfter string `yaml:"expires_after"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:        "localhost",
			Host:           "127.0.0.1",
			Port:           8080,
			MaxConnections: 1024,
		},
		Logging: LoggingConfig{Level: "info"},
		Metrics: MetricsConfig{Port: 9090},
		Session: SessionConfig{CookieKey: "vex-session", ExpiresAfter: "7d"},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file %q: %w", path, err)
	}

	return cfg, nil
}

// ParseDuration parses a duration string, accepting everything
// time.ParseDuration does plus a "d" suffix for days.
func ParseDuration(value string) (time.Duration, error) {
	if strings.HasSuffix(value, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(value, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", value, err)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(value)
}
