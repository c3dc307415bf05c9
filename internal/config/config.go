// Package config holds the application configuration: where the quiz
// document lives, how many questions a session draws, and how documents are
// fetched. Values resolve in priority order: flags > environment > config
// file > defaults.
package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config is the full application configuration.
type Config struct {
	// Source is the quiz document to load: a file path or an http(s) URL.
	Source string `yaml:"source"`

	// Questions is the number of questions drawn per session. Clamped to
	// the pool size at session start.
	Questions int `yaml:"questions"`

	// HistoryDB overrides the attempt history database path.
	HistoryDB string `yaml:"history_db"`

	// Request tunes document fetching over HTTP.
	Request RequestConfig `yaml:"request"`
}

// RequestConfig tunes the HTTP side of document loading.
type RequestConfig struct {
	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `yaml:"timeout_secs"`

	// MaxAttempts is how often a transient fetch failure is retried.
	MaxAttempts int `yaml:"max_attempts"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Questions: 10,
		Request: RequestConfig{
			TimeoutSecs: 30,
			MaxAttempts: 3,
		},
	}
}

// ApplyEnv overlays environment variables onto the config, falling back to
// the existing values for unset ones.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("QUIZDOC_SOURCE"); v != "" {
		c.Source = v
	}
	if v := os.Getenv("QUIZDOC_QUESTIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Questions = n
		}
	}
	if v := os.Getenv("QUIZDOC_DB"); v != "" {
		c.HistoryDB = v
	}
}

// DefaultPath resolves the config file location:
// 1. $XDG_CONFIG_HOME/quizdoc/config.yaml
// 2. ~/.config/quizdoc/config.yaml
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "quizdoc", "config.yaml"), nil
}
