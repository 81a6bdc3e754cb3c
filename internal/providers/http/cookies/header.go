package cookies

import (
	"strings"

	"github.com/GriffinCanCode/browsing/internal/providers/http/form"
)

// HeaderToCookies parses a "Cookie:" header value into name -> value pairs.
// Pieces without "=" or with an empty name are skipped; the first
// occurrence of a name wins.
func HeaderToCookies(header string) *form.OrderedMap {
	result := form.NewOrderedMap()

	for _, piece := range strings.Split(header, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(piece), "=")
		if !ok {
			continue
		}

		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		result.Add(name, strings.TrimSpace(value))
	}

	return result
}

// CookiesToHeader renders pairs as a "Cookie:" header value, "a=1; b=2"
func CookiesToHeader(values *form.OrderedMap) string {
	parts := make([]string, 0, values.Len())
	values.Each(func(name, value string) {
		parts = append(parts, name+"="+value)
	})
	return strings.Join(parts, "; ")
}
