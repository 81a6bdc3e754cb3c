package browser

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/GriffinCanCode/browsing/internal/providers/http/files"
	"github.com/GriffinCanCode/browsing/internal/providers/http/form"
	"github.com/GriffinCanCode/browsing/internal/providers/scraper"
)

// Navigate GETs rawURL with query merged into its query string, following
// redirects
func (b *Browser) Navigate(ctx context.Context, rawURL string, query url.Values) (*Page, error) {
	target, err := withQuery(rawURL, query)
	if err != nil {
		return nil, err
	}
	return b.follow(ctx, http.MethodGet, target, nil)
}

// NavigateDocument is Navigate followed by HTML parsing
func (b *Browser) NavigateDocument(ctx context.Context, rawURL string, query url.Values) (*scraper.XPathDocument, error) {
	return document(b.Navigate(ctx, rawURL, query))
}

// PostRaw POSTs data as is, with the Content-Type from the header bag
func (b *Browser) PostRaw(ctx context.Context, rawURL string, data []byte) (*Page, error) {
	if data == nil {
		data = []byte{}
	}
	return b.follow(ctx, http.MethodPost, rawURL, data)
}

// PostString POSTs s encoded with the browser codec
func (b *Browser) PostString(ctx context.Context, rawURL, s string) (*Page, error) {
	return b.PostRaw(ctx, rawURL, form.Encode(b.enc, s))
}

// PostArgs serializes args with framing and POSTs them
func (b *Browser) PostArgs(ctx context.Context, rawURL string, args *form.Args, framing Framing) (*Page, error) {
	data, _ := b.GetData(args, framing)
	return b.PostRaw(ctx, rawURL, data)
}

// PostFiles appends one file part per source location to args and POSTs
// them. Remote sources are fetched through this browser. A non-empty
// contentType overrides detection for every file part. Url-encoded
// framing is never escaped here.
func (b *Browser) PostFiles(ctx context.Context, rawURL string, args *form.Args, framing Framing, sources *files.Sources, contentType string) (*Page, error) {
	if err := files.NewLoader(b).Attach(ctx, args, sources, contentType); err != nil {
		return nil, err
	}
	framing.Escape = false
	return b.PostArgs(ctx, rawURL, args, framing)
}

// PostRawDocument is PostRaw followed by HTML parsing
func (b *Browser) PostRawDocument(ctx context.Context, rawURL string, data []byte) (*scraper.XPathDocument, error) {
	return document(b.PostRaw(ctx, rawURL, data))
}

// PostStringDocument is PostString followed by HTML parsing
func (b *Browser) PostStringDocument(ctx context.Context, rawURL, s string) (*scraper.XPathDocument, error) {
	return document(b.PostString(ctx, rawURL, s))
}

// PostArgsDocument is PostArgs followed by HTML parsing
func (b *Browser) PostArgsDocument(ctx context.Context, rawURL string, args *form.Args, framing Framing) (*scraper.XPathDocument, error) {
	return document(b.PostArgs(ctx, rawURL, args, framing))
}

// PostFilesDocument is PostFiles followed by HTML parsing
func (b *Browser) PostFilesDocument(ctx context.Context, rawURL string, args *form.Args, framing Framing, sources *files.Sources, contentType string) (*scraper.XPathDocument, error) {
	return document(b.PostFiles(ctx, rawURL, args, framing, sources, contentType))
}

// Fetch GETs location and returns the body, following redirects. It makes
// Browser a files.Fetcher.
func (b *Browser) Fetch(ctx context.Context, location string) ([]byte, error) {
	page, err := b.follow(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	return page.Body, nil
}

// Download saves the body at location to dest and returns its size
func (b *Browser) Download(ctx context.Context, location, dest string) (int, error) {
	return files.NewLoader(b).Download(ctx, location, dest)
}

// ResolveAction returns the absolute address a scraped form submits to,
// resolved against the page it came from
func ResolveAction(from *Page, f scraper.Form) (string, error) {
	base, err := parseAddress(from.URL)
	if err != nil {
		return "", err
	}
	action, err := url.Parse(strings.TrimSpace(f.Action))
	if err != nil {
		return "", fmt.Errorf("%w: form action %q: %w", ErrInvalidAddress, f.Action, err)
	}
	return base.ResolveReference(action).String(), nil
}

// Submit sends a scraped form to its action. GET forms are sent as a query
// string; multipart forms ignore the requested framing.
func (b *Browser) Submit(ctx context.Context, from *Page, f scraper.Form, framing Framing) (*Page, error) {
	target, err := ResolveAction(from, f)
	if err != nil {
		return nil, err
	}

	if f.Method == http.MethodGet {
		return b.Navigate(ctx, target, f.Fields.ToRequestMapping())
	}
	if f.Multipart() {
		framing = Multipart
	}
	return b.PostArgs(ctx, target, f.Fields, framing)
}

// ExtractFields reads the controls under node using the browser codec
func (b *Browser) ExtractFields(node scraper.Node) scraper.Form {
	return scraper.ExtractFields(node, b.enc)
}

// ExtractFieldsByQuery locates a form with query and reads its controls.
// A query without matches reports false.
func (b *Browser) ExtractFieldsByQuery(doc scraper.Document, query string) (scraper.Form, bool, error) {
	return scraper.Find(doc, query, b.enc)
}

func document(page *Page, err error) (*scraper.XPathDocument, error) {
	if err != nil {
		return nil, err
	}
	return page.Document()
}

// withQuery merges query into the query string of rawURL, replacing
// existing values of the same names
func withQuery(rawURL string, query url.Values) (string, error) {
	if len(query) == 0 {
		return rawURL, nil
	}

	u, err := parseAddress(rawURL)
	if err != nil {
		return "", err
	}

	merged := u.Query()
	for name, values := range query {
		merged[name] = append([]string(nil), values...)
	}
	u.RawQuery = merged.Encode()
	return u.String(), nil
}
