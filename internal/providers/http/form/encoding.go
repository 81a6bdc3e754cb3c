package form

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultEncoding is the codec used when none is given
var DefaultEncoding encoding.Encoding = charmap.Windows1251

// LookupEncoding resolves a WHATWG encoding label such as "utf-8" or "cp1251"
func LookupEncoding(label string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", label, err)
	}
	return enc, nil
}

// EncodingName returns the canonical name of enc, or "unknown"
func EncodingName(enc encoding.Encoding) string {
	if enc == nil {
		enc = DefaultEncoding
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return "unknown"
	}
	return name
}

// Encode converts text to bytes in enc.
// Runes enc cannot represent become HTML numeric character references.
func Encode(enc encoding.Encoding, text string) []byte {
	if enc == nil {
		enc = DefaultEncoding
	}
	out, err := encoding.HTMLEscapeUnsupported(enc.NewEncoder()).Bytes([]byte(text))
	if err != nil {
		return []byte(text)
	}
	return out
}

// Decode converts bytes in enc back to text
func Decode(enc encoding.Encoding, data []byte) string {
	if enc == nil {
		enc = DefaultEncoding
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(out)
}
