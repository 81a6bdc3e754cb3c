package scraper

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// XPathDocument is a parsed page queried with XPath expressions
type XPathDocument struct {
	root *html.Node
}

// Parse parses an HTML body; contentType is the raw Content-Type header
// and may be empty
func Parse(data []byte, contentType string, opts ...ParseOption) (*XPathDocument, error) {
	root, err := parseTree(data, contentType, opts)
	if err != nil {
		return nil, err
	}
	return &XPathDocument{root: root}, nil
}

// ParseString parses UTF-8 HTML text
func ParseString(s string) (*XPathDocument, error) {
	return Parse([]byte(s), "text/html; charset=utf-8")
}

// Root returns the document node
func (d *XPathDocument) Root() Node {
	return Wrap(d.root)
}

// HTML returns the underlying tree
func (d *XPathDocument) HTML() *html.Node {
	return d.root
}

// QueryOne executes an XPath query and returns the first match
func (d *XPathDocument) QueryOne(expr string) (Node, bool, error) {
	node, err := htmlquery.Query(d.root, expr)
	if err != nil {
		return nil, false, fmt.Errorf("xpath query failed: %w", err)
	}
	if node == nil {
		return nil, false, nil
	}
	return Wrap(node), true, nil
}

// QueryAll executes an XPath query and returns every match
func (d *XPathDocument) QueryAll(expr string) ([]Node, error) {
	nodes, err := htmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}

	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Wrap(n))
	}
	return out, nil
}

// QueryText returns the non-empty normalized text of every match
func QueryText(doc Document, query string) ([]string, error) {
	nodes, err := doc.QueryAll(query)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(nodes))
	for _, node := range nodes {
		if text := strings.TrimSpace(ExtractText(node)); text != "" {
			texts = append(texts, text)
		}
	}
	return texts, nil
}

// QueryAttribute returns the non-empty values of attribute on every match
func QueryAttribute(doc Document, query, attribute string) ([]string, error) {
	nodes, err := doc.QueryAll(query)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(nodes))
	for _, node := range nodes {
		if v, ok := node.Attr(attribute); ok && v != "" {
			values = append(values, v)
		}
	}
	return values, nil
}
