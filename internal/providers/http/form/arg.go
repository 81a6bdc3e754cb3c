package form

import (
	"strings"

	"golang.org/x/text/encoding"
)

// Arg is one named request value plus the metadata needed to frame it
type Arg struct {
	name        string
	value       []byte
	contentType string
	attributes  *OrderedMap
	options     *OrderedMap
	enc         encoding.Encoding
}

// ArgOption customises an Arg at construction
type ArgOption func(*Arg)

// WithAttribute adds one Content-Disposition attribute, e.g. filename
func WithAttribute(key, value string) ArgOption {
	return func(a *Arg) {
		a.attributes.Set(key, value)
	}
}

// WithAttributes copies every pair of attrs into the Arg's attributes
func WithAttributes(attrs *OrderedMap) ArgOption {
	return func(a *Arg) {
		attrs.Each(a.attributes.Set)
	}
}

// WithContentType sets the multipart part content type
func WithContentType(contentType string) ArgOption {
	return func(a *Arg) {
		a.contentType = contentType
	}
}

// WithOptions sets the selectable alternatives (display text -> value)
func WithOptions(options *OrderedMap) ArgOption {
	return func(a *Arg) {
		if options != nil {
			a.options = options.Clone()
		}
	}
}

// WithEncoding overrides the Arg's text codec
func WithEncoding(enc encoding.Encoding) ArgOption {
	return func(a *Arg) {
		if enc != nil {
			a.enc = enc
		}
	}
}

func newArg(name string, opts []ArgOption) *Arg {
	a := &Arg{
		name:       name,
		attributes: NewOrderedMap(),
		options:    NewOrderedMap(),
		enc:        DefaultEncoding,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewArg creates an Arg whose text value is encoded with the Arg's codec
func NewArg(name, value string, opts ...ArgOption) *Arg {
	a := newArg(name, opts)
	a.value = Encode(a.enc, value)
	return a
}

// NewRawArg creates an Arg from already encoded bytes
func NewRawArg(name string, value []byte, opts ...ArgOption) *Arg {
	a := newArg(name, opts)
	a.value = value
	if a.value == nil {
		a.value = []byte{}
	}
	return a
}

// Name returns the argument name
func (a *Arg) Name() string { return a.name }

// Value returns the encoded value bytes
func (a *Arg) Value() []byte { return a.value }

// Text decodes the value with the Arg's codec
func (a *Arg) Text() string { return Decode(a.enc, a.value) }

// Encoding returns the Arg's text codec
func (a *Arg) Encoding() encoding.Encoding { return a.enc }

// ContentType returns the part content type, empty if unset
func (a *Arg) ContentType() string { return a.contentType }

// SetContentType sets the part content type
func (a *Arg) SetContentType(contentType string) { a.contentType = contentType }

// Attributes returns the extra Content-Disposition attributes
func (a *Arg) Attributes() *OrderedMap { return a.attributes }

// Options returns the selectable alternatives of a <select> control
func (a *Arg) Options() *OrderedMap { return a.options }

// SetValue re-encodes text with the Arg's codec
func (a *Arg) SetValue(text string) {
	a.value = Encode(a.enc, text)
}

// SetRawValue replaces the value bytes as given
func (a *Arg) SetRawValue(value []byte) {
	a.value = value
}

// SelectOption sets the value to the option labelled key.
// Unknown keys leave the value untouched and return false.
func (a *Arg) SelectOption(key string) bool {
	v, ok := a.options.Get(key)
	if !ok {
		return false
	}
	a.value = Encode(a.enc, v)
	return true
}

// Lines renders the Arg for diagnostics, one field per line
func (a *Arg) Lines() []string {
	lines := []string{
		"Name: " + a.name,
		`Value: "` + a.Text() + `"`,
		"Encoding: " + EncodingName(a.enc),
	}
	if a.contentType != "" {
		lines = append(lines, "Content type: "+a.contentType)
	}

	if a.attributes.Len() != 0 {
		lines = append(lines, "Additional:")
		a.attributes.Each(func(k, v string) {
			lines = append(lines, "\t"+k+` = "`+v+`"`)
		})
	}

	if a.options.Len() != 0 {
		lines = append(lines, "Options:")
		a.options.Each(func(k, v string) {
			lines = append(lines, "\t"+k+` = "`+v+`"`)
		})
	}

	return lines
}

// String joins Lines with CRLF
func (a *Arg) String() string {
	return joinLines(a.Lines())
}

func joinLines(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\r\n")
	}
	return b.String()
}
