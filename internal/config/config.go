package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the blog admin client.
type Config struct {
	// API endpoint - using BLOG_ prefix to avoid collisions
	BaseURL        string `env:"BLOG_API_BASE_URL" envDefault:"http://localhost:8080/api/v1"`
	TimeoutSeconds int    `env:"BLOG_HTTP_TIMEOUT" envDefault:"10"`

	LogLevel  string `env:"BLOG_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"BLOG_LOG_FORMAT" envDefault:"console"` // json or console

	// Where the CLI persists the session token between invocations.
	TokenFile string `env:"BLOG_TOKEN_FILE"`

	// Redirect delay after an auth-expiry notification, so the message is
	// visible before navigation happens.
	RedirectDelayMS int `env:"BLOG_REDIRECT_DELAY_MS" envDefault:"1500"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if strings.TrimSpace(cfg.LogLevel) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_LEVEL")); global != "" {
			cfg.LogLevel = global
		}
	}

	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("BLOG_HTTP_TIMEOUT must be positive, got %d", cfg.TimeoutSeconds)
	}

	if strings.TrimSpace(cfg.TokenFile) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.TokenFile = filepath.Join(home, ".blogctl", "token")
	}

	return cfg, nil
}

// Timeout returns the HTTP client timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RedirectDelay returns how long the client waits between an auth-expiry
// notification and the login redirect.
func (c *Config) RedirectDelay() time.Duration {
	return time.Duration(c.RedirectDelayMS) * time.Millisecond
}
