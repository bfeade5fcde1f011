// Package config loads client configuration from an optional YAML file and
// the environment. Environment variables win over the file, the file wins
// over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL points at a local development API.
const DefaultBaseURL = "http://localhost:3001"

// Config holds everything the client needs at startup.
type Config struct {
	// BaseURL is the root of the storefront API.
	BaseURL string `env:"SHOPFRONT_API_BASE_URL" yaml:"base_url"`
	// TokenPath overrides where the access token is persisted. Empty means
	// the default location under the user config directory.
	TokenPath string `env:"SHOPFRONT_TOKEN_PATH" yaml:"token_path"`
	// Timeout bounds each HTTP request.
	Timeout time.Duration `env:"SHOPFRONT_HTTP_TIMEOUT" yaml:"timeout"`
	// LogLevel is a zerolog level name.
	LogLevel string `env:"SHOPFRONT_LOG_LEVEL" yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		Timeout:  30 * time.Second,
		LogLevel: "info",
	}
}

// DefaultFilePath returns the conventional config file location, or "" when
// the user config directory cannot be determined.
func DefaultFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "shopfront", "config.yaml")
}

// LoadFile overlays cfg with values from a YAML file.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// Load builds the effective configuration: defaults, then the config file if
// one exists at path (or the default location when path is empty), then the
// environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultFilePath()
	}
	if path != "" {
		if err := LoadFile(&cfg, path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: decode environment: %w", err)
	}

	if cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("config: base URL is required")
	}
	return cfg, nil
}
