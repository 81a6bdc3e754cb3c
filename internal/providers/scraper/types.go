package scraper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

const (
	// MaxHTMLSize limits HTML input to 10MB to prevent memory exhaustion
	MaxHTMLSize = 10 * 1024 * 1024
)

// ErrEmptyHTML is returned when there is nothing to parse
var ErrEmptyHTML = errors.New("html content required")

// Node is one element of a parsed document
type Node interface {
	// Tag returns the lower-case element name
	Tag() string
	// Attr returns an attribute value and whether it is present
	Attr(name string) (string, bool)
	// Text returns the concatenated text of the node and its descendants
	Text() string
	// Descendants returns descendant elements with one of the given tag
	// names, in document order
	Descendants(tags ...string) []Node
}

// Document is a parsed page that can be queried in some path language
type Document interface {
	Root() Node
	// QueryOne returns the first match; a query without matches is not an error
	QueryOne(query string) (Node, bool, error)
	QueryAll(query string) ([]Node, error)
}

// ValidateHTML checks HTML size and returns error if too large
func ValidateHTML(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyHTML
	}
	if len(data) > MaxHTMLSize {
		return fmt.Errorf("html exceeds maximum size of %d bytes", MaxHTMLSize)
	}
	return nil
}

// htmlNode adapts *html.Node to Node
type htmlNode struct {
	n *html.Node
}

// Wrap exposes an x/net/html element as a Node
func Wrap(n *html.Node) Node {
	return htmlNode{n: n}
}

func (h htmlNode) Tag() string {
	if h.n.Type == html.DocumentNode {
		return ""
	}
	return strings.ToLower(h.n.Data)
}

func (h htmlNode) Attr(name string) (string, bool) {
	for _, a := range h.n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

func (h htmlNode) Text() string {
	return htmlquery.InnerText(h.n)
}

func (h htmlNode) Descendants(tags ...string) []Node {
	wanted := make(map[string]bool, len(tags))
	for _, t := range tags {
		wanted[strings.ToLower(t)] = true
	}

	var out []Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && wanted[strings.ToLower(c.Data)] {
				out = append(out, htmlNode{n: c})
			}
			walk(c)
		}
	}
	walk(h.n)
	return out
}

// ExtractText safely extracts text from node
func ExtractText(n Node) string {
	return NormalizeWhitespace(n.Text())
}

// NormalizeWhitespace collapses multiple spaces into one
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
