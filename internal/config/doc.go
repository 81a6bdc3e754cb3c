// Package config provides 12-factor configuration for the browsing client.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Browser: User-Agent, text encoding, redirect and cookie policy, timeouts
//   - Logging: Log level and output format
//   - RateLimit: Outgoing request rate limiting
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//	b, err := browser.FromConfig(cfg)
//
// Environment Variables:
//   - BROWSING_USER_AGENT, BROWSING_ENCODING, BROWSING_PROXY
//   - BROWSING_REDIRECT_POLICY (all|host|none), BROWSING_MAX_REDIRECTS
//   - BROWSING_TIMEOUT, BROWSING_IGNORE_ERRORS, BROWSING_INSECURE_SKIP_VERIFY
//   - BROWSING_COOKIE_HOST_OVERRIDE
//   - BROWSING_RATE_LIMIT_RPS
//   - LOG_LEVEL, LOG_DEV
package config
