package scraper

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// CSSDocument is a parsed page queried with CSS selectors
type CSSDocument struct {
	doc *goquery.Document
}

// ParseCSS parses an HTML body for selector queries
func ParseCSS(data []byte, contentType string, opts ...ParseOption) (*CSSDocument, error) {
	root, err := parseTree(data, contentType, opts)
	if err != nil {
		return nil, err
	}
	return &CSSDocument{doc: goquery.NewDocumentFromNode(root)}, nil
}

// Root returns the document node
func (d *CSSDocument) Root() Node {
	return Wrap(d.doc.Get(0))
}

// Selection returns the goquery view of the document
func (d *CSSDocument) Selection() *goquery.Selection {
	return d.doc.Selection
}

// QueryOne returns the first element matching selector
func (d *CSSDocument) QueryOne(selector string) (Node, bool, error) {
	nodes, err := d.QueryAll(selector)
	if err != nil {
		return nil, false, err
	}
	if len(nodes) == 0 {
		return nil, false, nil
	}
	return nodes[0], true, nil
}

// QueryAll returns every element matching selector in document order
func (d *CSSDocument) QueryAll(selector string) ([]Node, error) {
	compiled, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}

	selection := d.doc.FindMatcher(compiled)
	out := make([]Node, 0, selection.Length())
	for _, n := range selection.Nodes {
		out = append(out, Wrap(n))
	}
	return out, nil
}
