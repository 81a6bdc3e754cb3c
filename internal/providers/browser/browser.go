package browser

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"github.com/GriffinCanCode/browsing/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/browsing/internal/logging"
	"github.com/GriffinCanCode/browsing/internal/providers/http/client"
	"github.com/GriffinCanCode/browsing/internal/providers/http/cookies"
	"github.com/GriffinCanCode/browsing/internal/providers/http/form"
	"github.com/GriffinCanCode/browsing/internal/shared/id"
)

// acceptEncoding lists the codings decodeBody understands
const acceptEncoding = "gzip, deflate, zstd"

// Browser is a scripted browsing session. It is not safe for concurrent
// use; the cookie jar it holds is, and may be shared between browsers.
type Browser struct {
	client             *client.Client
	jar                *cookies.Jar
	header             http.Header
	enc                encoding.Encoding
	policy             RedirectPolicy
	ignoreErrors       bool
	cookieHostOverride bool
	maxRedirects       int
	rnd                *rand.Rand
	logger             *logging.Logger
	metrics            *monitoring.Metrics
	sessionID          id.SessionID
}

// Result is the outcome of one request hop
type Result struct {
	Status int
	Header http.Header
	Body   []byte
	// URL is the address the hop was sent to
	URL string
	// Host is the Host the hop was sent with
	Host string
	// Redirect is the resolved next hop, or "" when the chain ends here
	Redirect string
}

// New creates a browser with its own cookie jar unless WithJar is given
func New(opts ...Option) (*Browser, error) {
	sessionID := id.NewSessionID()

	b := &Browser{
		client:             client.NewClient(),
		jar:                cookies.NewJar(),
		header:             make(http.Header),
		enc:                form.DefaultEncoding,
		policy:             RedirectAllPathTrimmed,
		cookieHostOverride: true,
		maxRedirects:       DefaultMaxRedirects,
		rnd:                rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:             logging.Nop().Session(sessionID.String()),
		sessionID:          sessionID,
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Jar returns the cookie jar
func (b *Browser) Jar() *cookies.Jar { return b.jar }

// Header returns the header bag sent with every request. Content-Type is
// only sent with requests that carry a body.
func (b *Browser) Header() http.Header { return b.header }

// Encoding returns the text codec
func (b *Browser) Encoding() encoding.Encoding { return b.enc }

// SessionID identifies this browser in logs
func (b *Browser) SessionID() id.SessionID { return b.sessionID }

// RedirectPolicy returns the redirect policy
func (b *Browser) RedirectPolicy() RedirectPolicy { return b.policy }

// UserAgent returns the User-Agent sent with every request
func (b *Browser) UserAgent() string { return b.client.UserAgent() }

// Send performs exactly one request hop: it attaches the jar's cookies and
// the header bag, records response cookies and resolves the redirect
// target. Redirects are not followed. An error status yields a
// *ProtocolError unless errors are ignored.
func (b *Browser) Send(ctx context.Context, method, rawURL string, body []byte) (*Result, error) {
	u, err := parseAddress(rawURL)
	if err != nil {
		return nil, err
	}

	requestID := id.NewRequestID()
	log := b.logger.With(
		zap.String("request_id", requestID.String()),
		zap.String("method", method),
		zap.String("url", u.String()),
	)

	req, err := b.client.Request(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	for key, values := range b.header {
		if body == nil && http.CanonicalHeaderKey(key) == "Content-Type" {
			continue
		}
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if body != nil {
		if req.Header.Get("Content-Type") == "" {
			req.Header.Set("Content-Type", ContentTypeURLEncoded.String())
		}
		req.SetBody(body)
	}
	req.Header.Set("Accept-Encoding", acceptEncoding)
	if cookieHeader := b.jar.Header(u); cookieHeader != "" {
		req.Header.Set("Cookie", cookieHeader)
	}

	host := u.Host
	if override := b.header.Get("Host"); override != "" {
		host = override
	}

	timer := monitoring.NewTimer(b.metrics, method)
	start := time.Now()

	resp, err := req.Execute(method, u.String())
	if err != nil {
		if resp != nil && resp.RawBody() != nil {
			resp.RawBody().Close()
		}
		timer.Fail()
		log.Warn("request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, u, err)
	}

	raw := resp.RawBody()
	data, err := io.ReadAll(raw)
	raw.Close()
	if err != nil {
		timer.Fail()
		log.Warn("reading body failed", zap.Error(err))
		return nil, fmt.Errorf("%w: reading body of %s: %w", ErrTransport, u, err)
	}

	header := resp.Header()
	data, err = decodeBody(data, header.Get("Content-Encoding"))
	if err != nil {
		timer.Fail()
		return nil, fmt.Errorf("%w: decoding body of %s: %w", ErrTransport, u, err)
	}

	status := resp.StatusCode()
	timer.Stop(status, len(data))

	result := &Result{
		Status: status,
		Header: header,
		Body:   data,
		URL:    u.String(),
		Host:   host,
	}
	if IsRedirect(status) {
		result.Redirect = ResolveRedirect(b.policy, host, u.EscapedPath(), header.Get("Location"))
	}

	b.syncCookies(u, host, resp.Cookies())

	log.Debug("request hop",
		zap.Int("status", status),
		zap.Int("size", len(data)),
		zap.String("redirect", result.Redirect),
		zap.Duration("elapsed", time.Since(start)),
	)

	if status >= http.StatusBadRequest && !b.ignoreErrors {
		return nil, &ProtocolError{Status: status, Result: result}
	}

	return result, nil
}

// follow sends one request and then chases redirects with GET until the
// chain ends or the hop bound is exceeded.
func (b *Browser) follow(ctx context.Context, method, rawURL string, body []byte) (*Page, error) {
	result, err := b.Send(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}

	hops := 0
	for result.Redirect != "" {
		if hops >= b.maxRedirects {
			return nil, fmt.Errorf("%w: gave up after %d hops at %s", ErrTooManyRedirects, hops, result.Redirect)
		}
		hops++
		if b.metrics != nil {
			b.metrics.RecordRedirect()
		}

		result, err = b.Send(ctx, http.MethodGet, result.Redirect, nil)
		if err != nil {
			return nil, err
		}
	}

	return newPage(result, hops, b.enc), nil
}

// syncCookies stores response cookies. With the host override they are
// re-homed to the request host, whatever domain the server named.
func (b *Browser) syncCookies(u *url.URL, host string, received []*http.Cookie) {
	if len(received) == 0 {
		return
	}

	if !b.cookieHostOverride {
		b.jar.SetCookies(u, received)
		return
	}

	rehomed := make([]*http.Cookie, 0, len(received))
	for _, c := range received {
		copied := *c
		copied.Domain = ""
		if copied.Path == "" {
			copied.Path = "/"
		}
		rehomed = append(rehomed, &copied)
	}
	b.jar.SetCookies(&url.URL{Scheme: u.Scheme, Host: host, Path: "/"}, rehomed)
}

// parseAddress accepts absolute http and https URLs only
func parseAddress(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidAddress, rawURL, err)
	}

	scheme := strings.ToLower(u.Scheme)
	if (scheme != "http" && scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute http(s) URL", ErrInvalidAddress, rawURL)
	}
	return u, nil
}

// CurrentTimestamp returns milliseconds since the Unix epoch, the format
// scripts use for cache-busting query parameters
func CurrentTimestamp() int64 {
	return time.Now().UnixMilli()
}
