package files

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/browsing/internal/providers/http/form"
)

// ErrNoFetcher is returned when a remote location is loaded without a Fetcher
var ErrNoFetcher = errors.New("no fetcher configured for remote file")

// Fetcher retrieves the body of a remote location
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// Loader reads file part payloads
type Loader struct {
	Fetcher Fetcher
}

// NewLoader creates a loader; fetcher may be nil when only local files are used
func NewLoader(fetcher Fetcher) *Loader {
	return &Loader{Fetcher: fetcher}
}

// Load returns the payload of one location
func (l *Loader) Load(ctx context.Context, location string) ([]byte, error) {
	if location == "" {
		return []byte{}, nil
	}

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load cancelled: %w", ctx.Err())
	default:
	}

	if isRemote(location) {
		if l.Fetcher == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoFetcher, location)
		}
		data, err := l.Fetcher.Fetch(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", location, err)
		}
		return data, nil
	}

	local := location
	if strings.HasPrefix(location, "file://") {
		u, err := url.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("invalid file URL %q: %w", location, err)
		}
		local = filepath.FromSlash(u.Path)
	}

	data, err := os.ReadFile(local)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", local, err)
	}
	return data, nil
}

// Attach appends one raw argument per source location to args, carrying a
// filename attribute and a content type. A non-empty contentType overrides
// detection for every part.
func (l *Loader) Attach(ctx context.Context, args *form.Args, sources *Sources, contentType string) error {
	var firstErr error

	sources.Each(func(name, locations string) {
		if firstErr != nil {
			return
		}

		expanded, err := Expand(locations)
		if err != nil {
			firstErr = fmt.Errorf("file argument %s: %w", name, err)
			return
		}

		for _, location := range expanded {
			data, err := l.Load(ctx, location)
			if err != nil {
				firstErr = fmt.Errorf("file argument %s: %w", name, err)
				return
			}

			ct := contentType
			if ct == "" {
				ct = ContentType(location, data)
			}

			args.AddRaw(name, data,
				form.WithAttribute("filename", FileName(location)),
				form.WithContentType(ct),
			)
		}
	})

	return firstErr
}

// Download fetches a remote location and writes it to dest, creating
// parent directories. Partial files are removed on failure.
func (l *Loader) Download(ctx context.Context, location, dest string) (int, error) {
	data, err := l.Load(ctx, location)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(dest, data, 0644); err != nil {
		os.Remove(dest)
		return 0, fmt.Errorf("write %s: %w", dest, err)
	}

	return len(data), nil
}
