// Package config loads luna configuration from defaults, an optional YAML
// file and LUNA_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/balkashynov/luna/internal/logging"
)

const envPrefix = "LUNA_"

// Config is the full luna configuration.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	Log      logging.Config `koanf:"log"`
	Auth     AuthConfig     `koanf:"auth"`
}

// DatabaseConfig locates the SQLite file.
type DatabaseConfig struct {
	Path string `koanf:"path"` // empty means ~/.luna/luna.db
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Host    string `koanf:"host"`
	Port    int    `koanf:"port"`
	BaseURL string `koanf:"base_url"` // used to build magic links
}

// AuthConfig controls sign-in token and session lifetimes.
type AuthConfig struct {
	TokenTTL   time.Duration `koanf:"token_ttl"`
	SessionTTL time.Duration `koanf:"session_ttl"`
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "localhost", Port: 8080},
		Log:    logging.Config{Level: "info", Format: "console"},
		Auth:   AuthConfig{TokenTTL: 15 * time.Minute, SessionTTL: 30 * 24 * time.Hour},
	}
}

// DefaultPath returns ~/.luna/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".luna", "config.yaml"), nil
}

// Load reads configuration. An empty path means DefaultPath; a missing
// file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	k := koanf.New(".")

	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// LUNA_SERVER_BASE_URL -> server.base_url
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		parts := strings.SplitN(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", 2)
		if len(parts) == 1 {
			return parts[0]
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://" + cfg.Server.Addr()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks config for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if c.Auth.TokenTTL <= 0 || c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth token and session TTLs must be positive")
	}
	return nil
}
