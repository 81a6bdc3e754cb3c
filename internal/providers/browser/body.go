package browser

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/GriffinCanCode/browsing/internal/providers/http/form"
)

const (
	boundaryPrefix = "----WebKitFormBoundary"
	boundaryLength = 16
	boundaryChars  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultSeparator joins url-encoded pairs when Framing leaves it empty
	DefaultSeparator = ";"
)

// ContentType is a preset request Content-Type
type ContentType int

const (
	ContentTypeURLEncoded ContentType = iota
	ContentTypeURLEncodedUTF8
	ContentTypeTextHTMLUTF8
)

func (c ContentType) String() string {
	switch c {
	case ContentTypeURLEncodedUTF8:
		return "application/x-www-form-urlencoded; charset=UTF-8"
	case ContentTypeTextHTMLUTF8:
		return "text/html; charset=UTF-8"
	default:
		return "application/x-www-form-urlencoded"
	}
}

// Framing selects how an argument set becomes a request body
type Framing struct {
	// Multipart selects multipart/form-data; the other fields are ignored
	Multipart bool
	// Separator joins url-encoded pairs, DefaultSeparator when empty
	Separator string
	// Escape percent-escapes url-encoded values
	Escape bool
}

// Multipart is multipart/form-data framing
var Multipart = Framing{Multipart: true}

// URLEncoded is url-encoded framing joined by sep, optionally escaped
func URLEncoded(sep string, escape bool) Framing {
	return Framing{Separator: sep, Escape: escape}
}

// SetContentType sets the Content-Type sent with request bodies
func (b *Browser) SetContentType(contentType string) {
	b.header.Set("Content-Type", contentType)
}

// SetContentTypePreset sets one of the preset Content-Types
func (b *Browser) SetContentTypePreset(preset ContentType) {
	b.SetContentType(preset.String())
}

// GetData serializes args into a request body and returns it with its
// Content-Type, which is also stored in the header bag.
func (b *Browser) GetData(args *form.Args, framing Framing) ([]byte, string) {
	if framing.Multipart {
		boundary := b.boundary()
		contentType := "multipart/form-data; boundary=" + boundary
		b.SetContentType(contentType)
		return multipartBody(args, boundary), contentType
	}

	contentType := b.header.Get("Content-Type")
	if contentType == "" || strings.HasPrefix(strings.ToLower(contentType), "multipart/") {
		contentType = ContentTypeURLEncoded.String()
		b.SetContentType(contentType)
	}
	return urlEncodedBody(args, framing), contentType
}

func (b *Browser) boundary() string {
	var sb strings.Builder
	sb.WriteString(boundaryPrefix)
	for i := 0; i < boundaryLength; i++ {
		sb.WriteByte(boundaryChars[b.rnd.IntN(len(boundaryChars))])
	}
	return sb.String()
}

// multipartBody frames each argument as
//
//	\r\n--boundary\r\nContent-Disposition: form-data; name="n"; k="v"\r\nContent-Type: t\r\n\r\nvalue
//
// and closes with \r\n--boundary--\r\n. Headers are written as UTF-8; values
// are written as stored.
func multipartBody(args *form.Args, boundary string) []byte {
	var buf bytes.Buffer

	for _, arg := range args.All() {
		buf.WriteString("\r\n--")
		buf.WriteString(boundary)
		buf.WriteString("\r\nContent-Disposition: form-data; name=\"")
		buf.WriteString(arg.Name())
		buf.WriteString("\"")
		arg.Attributes().Each(func(key, value string) {
			buf.WriteString("; ")
			buf.WriteString(key)
			buf.WriteString("=\"")
			buf.WriteString(value)
			buf.WriteString("\"")
		})
		if ct := arg.ContentType(); ct != "" {
			buf.WriteString("\r\nContent-Type: ")
			buf.WriteString(ct)
		}
		buf.WriteString("\r\n\r\n")
		buf.Write(arg.Value())
	}

	buf.WriteString("\r\n--")
	buf.WriteString(boundary)
	buf.WriteString("--\r\n")

	return buf.Bytes()
}

// urlEncodedBody joins name=value pairs with the separator. Escaped bodies
// are ASCII; unescaped bodies are encoded with the argument set's codec.
func urlEncodedBody(args *form.Args, framing Framing) []byte {
	sep := framing.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	pairs := make([]string, 0, args.Len())
	for _, arg := range args.All() {
		value := args.Text(arg)
		if framing.Escape {
			value = URLEncode(value)
		}
		pairs = append(pairs, arg.Name()+"="+value)
	}
	data := strings.Join(pairs, sep)

	if framing.Escape {
		return []byte(data)
	}
	return form.Encode(args.Encoding(), data)
}

// URLEncode escapes s for a query component (UTF-8, space as "+") with
// upper-case hex digits in every escape.
func URLEncode(s string) string {
	return upperEscapes(url.QueryEscape(s))
}

// upperEscapes rewrites %2f as %2F
func upperEscapes(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	b := []byte(s)
	for i := 0; i+2 < len(b); i++ {
		if b[i] != '%' {
			continue
		}
		b[i+1] = upperHex(b[i+1])
		b[i+2] = upperHex(b[i+2])
		i += 2
	}
	return string(b)
}

func upperHex(c byte) byte {
	if c >= 'a' && c <= 'f' {
		return c - 'a' + 'A'
	}
	return c
}
