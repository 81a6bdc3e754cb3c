package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Browser   BrowserConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// BrowserConfig holds session defaults.
type BrowserConfig struct {
	UserAgent          string        `envconfig:"BROWSING_USER_AGENT" default:"Mozilla/5.0 (Windows NT 6.1) AppleWebKit/535.1 (KHTML, like Gecko) Chrome/14.0.835.163 Safari/535.1"`
	Encoding           string        `envconfig:"BROWSING_ENCODING" default:"windows-1251"`
	RedirectPolicy     string        `envconfig:"BROWSING_REDIRECT_POLICY" default:"all"`
	MaxRedirects       int           `envconfig:"BROWSING_MAX_REDIRECTS" default:"20"`
	Timeout            time.Duration `envconfig:"BROWSING_TIMEOUT" default:"30s"`
	IgnoreErrors       bool          `envconfig:"BROWSING_IGNORE_ERRORS" default:"false"`
	InsecureSkipVerify bool          `envconfig:"BROWSING_INSECURE_SKIP_VERIFY" default:"true"`
	CookieHostOverride bool          `envconfig:"BROWSING_COOKIE_HOST_OVERRIDE" default:"true"`
	Proxy              string        `envconfig:"BROWSING_PROXY"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond float64 `envconfig:"BROWSING_RATE_LIMIT_RPS" default:"0"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Browser: BrowserConfig{
			UserAgent:          "Mozilla/5.0 (Windows NT 6.1) AppleWebKit/535.1 (KHTML, like Gecko) Chrome/14.0.835.163 Safari/535.1",
			Encoding:           "windows-1251",
			RedirectPolicy:     "all",
			MaxRedirects:       20,
			Timeout:            30 * time.Second,
			IgnoreErrors:       false,
			InsecureSkipVerify: true,
			CookieHostOverride: true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 0,
		},
	}
}

// Validate rejects values the browser cannot use.
func (c *Config) Validate() error {
	switch c.Browser.RedirectPolicy {
	case "all", "host", "none":
	default:
		return fmt.Errorf("invalid redirect policy %q (must be: all, host, or none)", c.Browser.RedirectPolicy)
	}
	if c.Browser.MaxRedirects < 0 {
		return fmt.Errorf("max redirects must not be negative: %d", c.Browser.MaxRedirects)
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("rate limit must not be negative: %v", c.RateLimit.RequestsPerSecond)
	}
	return nil
}
