package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// DefaultUserAgent is sent when no other User-Agent is configured
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 6.1) AppleWebKit/535.1 (KHTML, like Gecko) Chrome/14.0.835.163 Safari/535.1"

// DefaultTimeout bounds a single request
const DefaultTimeout = 30 * time.Second

// Client wraps resty with rate limiting and a single-hop redirect policy
type Client struct {
	Resty   *resty.Client
	Limiter *rate.Limiter
	Mu      sync.RWMutex
}

// Logger receives resty's internal warnings; *zap.SugaredLogger satisfies it
type Logger = resty.Logger

// NewClient creates a client that never follows redirects or retries
func NewClient() *Client {
	// Pooled transport from the retryable client; its retry loop is not used
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	restyClient := resty.New()
	restyClient.
		SetTransport(retryClient.HTTPClient.Transport).
		SetTimeout(DefaultTimeout).
		SetRetryCount(0).
		SetHeader("User-Agent", DefaultUserAgent).
		SetCookieJar(nil).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		})).
		SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}).
		SetPreRequestHook(applyHostHeader)

	return &Client{
		Resty:   restyClient,
		Limiter: rate.NewLimiter(rate.Inf, 0), // Unlimited by default
	}
}

// applyHostHeader moves a Host header onto the request, since net/http
// ignores it in the header map
func applyHostHeader(_ *resty.Client, req *http.Request) error {
	if host := req.Header.Get("Host"); host != "" {
		req.Host = host
		req.Header.Del("Host")
	}
	return nil
}

// SetUserAgent replaces the User-Agent header
func (c *Client) SetUserAgent(agent string) {
	c.SetHeader("User-Agent", agent)
}

// UserAgent returns the configured User-Agent
func (c *Client) UserAgent() string {
	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.Resty.Header.Get("User-Agent")
}

// SetHeader adds default header
func (c *Client) SetHeader(key, value string) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Resty.SetHeader(key, value)
}

// SetTimeout configures request timeout
func (c *Client) SetTimeout(duration time.Duration) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Resty.SetTimeout(duration)
}

// SetRateLimit configures rate limiting (requests per second)
func (c *Client) SetRateLimit(rps float64) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if rps <= 0 {
		c.Limiter = rate.NewLimiter(rate.Inf, 0)
	} else {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// SetVerifyTLS enables or disables certificate verification
func (c *Client) SetVerifyTLS(verify bool) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Resty.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: !verify})
}

// SetProxy routes requests through an http or https proxy
func (c *Client) SetProxy(proxyURL string) error {
	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return fmt.Errorf("invalid proxy URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("proxy URL must use http or https scheme: %s", proxyURL)
	}

	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Resty.SetProxy(proxyURL)
	return nil
}

// SetTransport replaces the round tripper, mainly for tests
func (c *Client) SetTransport(rt http.RoundTripper) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Resty.SetTransport(rt)
}

// SetLogger routes resty's internal messages to logger
func (c *Client) SetLogger(logger Logger) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.Resty.SetLogger(logger)
}

// Request creates new request with rate limiting. The response body is
// left unread; callers must close RawBody.
func (c *Client) Request(ctx context.Context) (*resty.Request, error) {
	c.Mu.RLock()
	limiter := c.Limiter
	c.Mu.RUnlock()

	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.Resty.R().SetContext(ctx).SetDoNotParseResponse(true), nil
}
