// Package client provides the HTTP transport used by the scripted browser.
//
// Client wraps go-resty/resty with the settings a browsing session needs:
//   - Automatic redirects disabled: every hop is returned to the caller
//   - No retries: each request is sent exactly once
//   - Fixed User-Agent header
//   - Optional certificate verification (skipped by default)
//   - Optional rate limiting per client instance
//   - Raw response bodies, so callers decode and decompress themselves
//
// The resty cookie jar is disabled; cookie state lives in the browser's
// cookies.Jar, which attaches and records cookies per hop.
//
// Example Usage:
//
//	c := client.NewClient()
//	c.SetUserAgent("my-agent/1.0")
//	req, err := c.Request(ctx)
//	if err != nil {
//		return err
//	}
//	resp, err := req.Execute(http.MethodGet, "http://example.com/")
package client
