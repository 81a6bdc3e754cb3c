package scraper

import (
	"bytes"
	"fmt"
	"mime"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/GriffinCanCode/browsing/internal/providers/http/form"
)

const (
	// prescanSize is how far into a body <meta> declarations are looked for
	prescanSize = 1024

	// minDetectConfidence is the chardet confidence (0-100) below which a
	// guess is discarded in favour of the fallback codec
	minDetectConfidence = 50
)

// ParseOption configures how a body is decoded before parsing
type ParseOption func(*parseOptions)

type parseOptions struct {
	fallback encoding.Encoding
}

// WithFallbackEncoding sets the codec used when neither the Content-Type
// header, a <meta> declaration nor detection identify the charset
func WithFallbackEncoding(enc encoding.Encoding) ParseOption {
	return func(o *parseOptions) {
		o.fallback = enc
	}
}

// DetectCharset sniffs the charset of data with chardet and returns its
// lower-case name with a confidence from 0 to 100
func DetectCharset(data []byte) (string, int) {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "", 0
	}
	return strings.ToLower(result.Charset), result.Confidence
}

// MetaCharset returns the charset declared by a <meta charset> or
// <meta http-equiv="Content-Type"> tag near the start of data, or ""
func MetaCharset(data []byte) string {
	if len(data) > prescanSize {
		data = data[:prescanSize]
	}

	z := html.NewTokenizer(bytes.NewReader(data))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "meta" || !hasAttr {
				continue
			}

			var declared, content string
			var contentType bool
			for more := true; more; {
				var key, val []byte
				key, val, more = z.TagAttr()
				switch string(key) {
				case "charset":
					declared = strings.TrimSpace(string(val))
				case "content":
					content = string(val)
				case "http-equiv":
					contentType = strings.EqualFold(strings.TrimSpace(string(val)), "content-type")
				}
			}

			if declared != "" {
				return declared
			}
			if contentType {
				if _, params, err := mime.ParseMediaType(content); err == nil && params["charset"] != "" {
					return params["charset"]
				}
			}
		}
	}
}

// DetermineEncoding picks the codec of an HTML body, in order: a BOM or the
// Content-Type charset, a <meta> declaration, a confident chardet guess, and
// finally fallback (UTF-8 when nil).
func DetermineEncoding(data []byte, contentType string, fallback encoding.Encoding) (encoding.Encoding, string) {
	if enc, name, certain := charset.DetermineEncoding(data, contentType); certain {
		return enc, name
	}

	if label := MetaCharset(data); label != "" {
		if enc, name := charset.Lookup(label); enc != nil {
			return enc, name
		}
	}

	if label, confidence := DetectCharset(data); confidence >= minDetectConfidence {
		if enc, name := charset.Lookup(label); enc != nil {
			return enc, name
		}
	}

	if fallback == nil {
		return unicode.UTF8, "utf-8"
	}
	return fallback, form.EncodingName(fallback)
}

// ToUTF8 converts an HTML body to UTF-8 using DetermineEncoding
func ToUTF8(data []byte, contentType string, fallback encoding.Encoding) []byte {
	enc, name := DetermineEncoding(data, contentType, fallback)
	if name == "utf-8" || enc == nil {
		return data
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return data
	}
	return decoded
}

func parseTree(data []byte, contentType string, opts []ParseOption) (*html.Node, error) {
	if err := ValidateHTML(data); err != nil {
		return nil, err
	}

	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}

	root, err := htmlquery.Parse(bytes.NewReader(ToUTF8(data, contentType, o.fallback)))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return root, nil
}
