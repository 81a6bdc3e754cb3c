package browser

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/encoding"

	"github.com/GriffinCanCode/browsing/internal/providers/http/form"
	"github.com/GriffinCanCode/browsing/internal/providers/scraper"
)

// Page is the final response of a navigation, after redirects
type Page struct {
	URL    string
	Status int
	Header http.Header
	Body   []byte
	// Hops counts the redirects followed to reach this page
	Hops int

	enc encoding.Encoding
}

func newPage(result *Result, hops int, enc encoding.Encoding) *Page {
	return &Page{
		URL:    result.URL,
		Status: result.Status,
		Header: result.Header,
		Body:   result.Body,
		Hops:   hops,
		enc:    enc,
	}
}

// Encoding returns the charset named by Content-Type or by a <meta> tag,
// or the browser codec
func (p *Page) Encoding() encoding.Encoding {
	if _, params, err := mime.ParseMediaType(p.Header.Get("Content-Type")); err == nil {
		if enc, err := form.LookupEncoding(params["charset"]); err == nil {
			return enc
		}
	}
	if enc, err := form.LookupEncoding(scraper.MetaCharset(p.Body)); err == nil {
		return enc
	}
	return p.codec()
}

func (p *Page) codec() encoding.Encoding {
	if p.enc == nil {
		return form.DefaultEncoding
	}
	return p.enc
}

// String decodes the body to text
func (p *Page) String() string {
	return form.Decode(p.Encoding(), p.Body)
}

// Document parses the body as HTML for XPath queries
func (p *Page) Document() (*scraper.XPathDocument, error) {
	return scraper.Parse(p.Body, p.Header.Get("Content-Type"), scraper.WithFallbackEncoding(p.codec()))
}

// CSSDocument parses the body as HTML for selector queries
func (p *Page) CSSDocument() (*scraper.CSSDocument, error) {
	return scraper.ParseCSS(p.Body, p.Header.Get("Content-Type"), scraper.WithFallbackEncoding(p.codec()))
}

var textPolicy = bluemonday.StrictPolicy()

// Text returns the visible text of the page with markup stripped and
// whitespace collapsed
func (p *Page) Text() string {
	stripped := textPolicy.Sanitize(p.String())
	return scraper.NormalizeWhitespace(html.UnescapeString(stripped))
}

// DecodeJSON unmarshals a JSON body into v
func (p *Page) DecodeJSON(v any) error {
	if err := sonic.Unmarshal(p.Body, v); err != nil {
		return fmt.Errorf("decode json from %s: %w", p.URL, err)
	}
	return nil
}

// decodeBody undoes a Content-Encoding. Unknown codings are passed through.
func decodeBody(data []byte, contentEncoding string) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	switch strings.ToLower(strings.TrimSpace(contentEncoding)) {
	case "gzip", "x-gzip":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)

	case "deflate":
		// servers disagree on zlib framing; fall back to raw deflate
		if r, err := zlib.NewReader(bytes.NewReader(data)); err == nil {
			defer r.Close()
			if out, err := io.ReadAll(r); err == nil {
				return out, nil
			}
		}
		r := flate.NewReader(bytes.NewReader(data))
		defer r.Close()
		return io.ReadAll(r)

	case "zstd":
		d, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer d.Close()
		return d.DecodeAll(data, nil)

	default:
		return data, nil
	}
}
