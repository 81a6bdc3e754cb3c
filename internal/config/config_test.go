package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Browser config
	assert.Contains(t, cfg.Browser.UserAgent, "Chrome/14.0.835.163")
	assert.Equal(t, "windows-1251", cfg.Browser.Encoding)
	assert.Equal(t, "all", cfg.Browser.RedirectPolicy)
	assert.Equal(t, 20, cfg.Browser.MaxRedirects)
	assert.Equal(t, 30*time.Second, cfg.Browser.Timeout)
	assert.False(t, cfg.Browser.IgnoreErrors)
	assert.True(t, cfg.Browser.InsecureSkipVerify)
	assert.True(t, cfg.Browser.CookieHostOverride)
	assert.Empty(t, cfg.Browser.Proxy)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, float64(0), cfg.RateLimit.RequestsPerSecond)

	assert.NoError(t, cfg.Validate())
}

func TestLoadWithoutEnvironment(t *testing.T) {
	// Should match defaults when no env vars set
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"BROWSING_USER_AGENT":           "scripted/1.0",
		"BROWSING_ENCODING":             "utf-8",
		"BROWSING_REDIRECT_POLICY":      "host",
		"BROWSING_MAX_REDIRECTS":        "5",
		"BROWSING_TIMEOUT":              "2s",
		"BROWSING_IGNORE_ERRORS":        "true",
		"BROWSING_INSECURE_SKIP_VERIFY": "false",
		"BROWSING_COOKIE_HOST_OVERRIDE": "false",
		"BROWSING_PROXY":                "http://proxy:3128",
		"BROWSING_RATE_LIMIT_RPS":       "2.5",
		"LOG_LEVEL":                     "debug",
		"LOG_DEV":                       "true",
	}

	for key, value := range envVars {
		err := os.Setenv(key, value)
		require.NoError(t, err)
		defer os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "scripted/1.0", cfg.Browser.UserAgent)
	assert.Equal(t, "utf-8", cfg.Browser.Encoding)
	assert.Equal(t, "host", cfg.Browser.RedirectPolicy)
	assert.Equal(t, 5, cfg.Browser.MaxRedirects)
	assert.Equal(t, 2*time.Second, cfg.Browser.Timeout)
	assert.True(t, cfg.Browser.IgnoreErrors)
	assert.False(t, cfg.Browser.InsecureSkipVerify)
	assert.False(t, cfg.Browser.CookieHostOverride)
	assert.Equal(t, "http://proxy:3128", cfg.Browser.Proxy)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown redirect policy", "BROWSING_REDIRECT_POLICY", "sometimes"},
		{"negative redirects", "BROWSING_MAX_REDIRECTS", "-1"},
		{"malformed timeout", "BROWSING_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, os.Setenv(tt.key, tt.value))
			defer os.Unsetenv(tt.key)

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
