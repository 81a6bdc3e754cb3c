package browser

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"golang.org/x/text/encoding"

	"github.com/GriffinCanCode/browsing/internal/config"
	"github.com/GriffinCanCode/browsing/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/browsing/internal/logging"
	"github.com/GriffinCanCode/browsing/internal/providers/http/cookies"
	"github.com/GriffinCanCode/browsing/internal/providers/http/form"
)

// DefaultMaxRedirects bounds a redirect chain
const DefaultMaxRedirects = 20

// Option configures a Browser
type Option func(*Browser) error

// WithJar shares an existing cookie jar, e.g. to carry a login between browsers
func WithJar(jar *cookies.Jar) Option {
	return func(b *Browser) error {
		if jar == nil {
			return fmt.Errorf("cookie jar must not be nil")
		}
		b.jar = jar
		return nil
	}
}

// WithRedirectPolicy sets how redirects are followed
func WithRedirectPolicy(policy RedirectPolicy) Option {
	return func(b *Browser) error {
		b.policy = policy
		return nil
	}
}

// WithIgnoreErrors returns error-status responses as normal pages
func WithIgnoreErrors(ignore bool) Option {
	return func(b *Browser) error {
		b.ignoreErrors = ignore
		return nil
	}
}

// WithMaxRedirects bounds the number of redirects followed per call
func WithMaxRedirects(n int) Option {
	return func(b *Browser) error {
		if n < 0 {
			return fmt.Errorf("max redirects must not be negative: %d", n)
		}
		b.maxRedirects = n
		return nil
	}
}

// WithCookieHostOverride controls whether response cookies are re-homed to
// the request host. When false, cookies keep the domain the server sent.
func WithCookieHostOverride(override bool) Option {
	return func(b *Browser) error {
		b.cookieHostOverride = override
		return nil
	}
}

// WithEncoding sets the text codec for arguments and page decoding
func WithEncoding(enc encoding.Encoding) Option {
	return func(b *Browser) error {
		if enc == nil {
			return fmt.Errorf("encoding must not be nil")
		}
		b.enc = enc
		return nil
	}
}

// WithRandom sets the source used for multipart boundaries
func WithRandom(r *rand.Rand) Option {
	return func(b *Browser) error {
		if r == nil {
			return fmt.Errorf("random source must not be nil")
		}
		b.rnd = r
		return nil
	}
}

// WithLogger sets the logger; hops are logged at debug level
func WithLogger(logger *logging.Logger) Option {
	return func(b *Browser) error {
		if logger == nil {
			logger = logging.Nop()
		}
		b.logger = logger.Session(b.sessionID.String())
		b.client.SetLogger(logger.Sugar())
		return nil
	}
}

// WithMetrics records every hop on metrics
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(b *Browser) error {
		b.metrics = metrics
		return nil
	}
}

// WithUserAgent replaces the User-Agent header
func WithUserAgent(agent string) Option {
	return func(b *Browser) error {
		b.client.SetUserAgent(agent)
		return nil
	}
}

// WithTimeout bounds each request hop
func WithTimeout(timeout time.Duration) Option {
	return func(b *Browser) error {
		b.client.SetTimeout(timeout)
		return nil
	}
}

// WithInsecureSkipVerify controls certificate verification
func WithInsecureSkipVerify(skip bool) Option {
	return func(b *Browser) error {
		b.client.SetVerifyTLS(!skip)
		return nil
	}
}

// WithRateLimit limits outgoing hops per second; zero means unlimited
func WithRateLimit(rps float64) Option {
	return func(b *Browser) error {
		b.client.SetRateLimit(rps)
		return nil
	}
}

// WithProxy routes requests through an http(s) proxy
func WithProxy(proxyURL string) Option {
	return func(b *Browser) error {
		if proxyURL == "" {
			return nil
		}
		return b.client.SetProxy(proxyURL)
	}
}

// WithTransport replaces the round tripper, mainly for tests
func WithTransport(rt http.RoundTripper) Option {
	return func(b *Browser) error {
		b.client.SetTransport(rt)
		return nil
	}
}

// FromConfig builds a browser from loaded configuration. Extra options are
// applied after the configured ones.
func FromConfig(cfg *config.Config, opts ...Option) (*Browser, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	policy, err := ParseRedirectPolicy(cfg.Browser.RedirectPolicy)
	if err != nil {
		return nil, err
	}

	enc, err := form.LookupEncoding(cfg.Browser.Encoding)
	if err != nil {
		return nil, err
	}

	configured := []Option{
		WithUserAgent(cfg.Browser.UserAgent),
		WithEncoding(enc),
		WithRedirectPolicy(policy),
		WithMaxRedirects(cfg.Browser.MaxRedirects),
		WithTimeout(cfg.Browser.Timeout),
		WithIgnoreErrors(cfg.Browser.IgnoreErrors),
		WithInsecureSkipVerify(cfg.Browser.InsecureSkipVerify),
		WithCookieHostOverride(cfg.Browser.CookieHostOverride),
		WithProxy(cfg.Browser.Proxy),
		WithRateLimit(cfg.RateLimit.RequestsPerSecond),
	}

	return New(append(configured, opts...)...)
}
