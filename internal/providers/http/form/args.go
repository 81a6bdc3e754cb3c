package form

import (
	"net/url"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding"
)

// Args is an ordered collection of Arg values sharing a default codec
type Args struct {
	enc   encoding.Encoding
	items []*Arg
}

// NewArgs creates an empty collection; a nil enc selects DefaultEncoding
func NewArgs(enc encoding.Encoding) *Args {
	if enc == nil {
		enc = DefaultEncoding
	}
	return &Args{enc: enc}
}

// Encoding returns the collection's codec
func (a *Args) Encoding() encoding.Encoding { return a.enc }

// Add appends a text argument encoded with the collection's codec
func (a *Args) Add(name, value string, opts ...ArgOption) *Arg {
	arg := NewArg(name, value, append([]ArgOption{WithEncoding(a.enc)}, opts...)...)
	a.items = append(a.items, arg)
	return arg
}

// AddRaw appends an argument whose value is already encoded
func (a *Args) AddRaw(name string, value []byte, opts ...ArgOption) *Arg {
	arg := NewRawArg(name, value, append([]ArgOption{WithEncoding(a.enc)}, opts...)...)
	a.items = append(a.items, arg)
	return arg
}

// Append adds an existing Arg at the end
func (a *Args) Append(arg *Arg) {
	if arg != nil {
		a.items = append(a.items, arg)
	}
}

// Lookup returns the first argument called name
func (a *Args) Lookup(name string) (*Arg, bool) {
	for _, arg := range a.items {
		if arg.name == name {
			return arg, true
		}
	}
	return nil, false
}

// RemoveFirst removes the first argument called name; no-op if absent
func (a *Args) RemoveFirst(name string) {
	for i, arg := range a.items {
		if arg.name == name {
			a.items = append(a.items[:i], a.items[i+1:]...)
			return
		}
	}
}

// RemoveAll removes every argument called name
func (a *Args) RemoveAll(name string) {
	kept := a.items[:0]
	for _, arg := range a.items {
		if arg.name != name {
			kept = append(kept, arg)
		}
	}
	for i := len(kept); i < len(a.items); i++ {
		a.items[i] = nil
	}
	a.items = kept
}

// ReplaceSingleValue drops every argument called name and appends a fresh one.
// Used for radio groups where exactly one value may be sent.
func (a *Args) ReplaceSingleValue(name, value string) *Arg {
	a.RemoveAll(name)
	return a.Add(name, value)
}

// SelectOption selects key on arg, see Arg.SelectOption
func (a *Args) SelectOption(arg *Arg, key string) bool {
	if arg == nil {
		return false
	}
	return arg.SelectOption(key)
}

// Len returns the number of arguments
func (a *Args) Len() int { return len(a.items) }

// All returns the arguments in insertion order
func (a *Args) All() []*Arg {
	out := make([]*Arg, len(a.items))
	copy(out, a.items)
	return out
}

// Text decodes arg's value with the collection's codec
func (a *Args) Text(arg *Arg) string {
	return Decode(a.enc, arg.value)
}

// ToRequestMapping returns name -> text pairs for a simple query string.
// Values are HTML-unescaped, since scraped defaults often carry entities.
func (a *Args) ToRequestMapping() url.Values {
	values := url.Values{}
	for _, arg := range a.items {
		values.Add(arg.name, html.UnescapeString(a.Text(arg)))
	}
	return values
}

// Lines renders the collection for diagnostics
func (a *Args) Lines() []string {
	lines := []string{
		"Encoding: " + EncodingName(a.enc),
		"Arguments:",
	}

	const prefix = "\t"
	for _, arg := range a.items {
		lines = append(lines, prefix+"======ARG======")
		for _, l := range arg.Lines() {
			lines = append(lines, prefix+l)
		}
		lines = append(lines, "")
	}
	lines = append(lines, "===============")

	return lines
}

// String joins Lines with CRLF
func (a *Args) String() string {
	return joinLines(a.Lines())
}
