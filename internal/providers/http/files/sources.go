package files

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gabriel-vasile/mimetype"

	"github.com/GriffinCanCode/browsing/internal/providers/http/form"
)

// DefaultContentType is used when neither the extension nor the payload
// identify the file
const DefaultContentType = "image/jpeg"

var imageTypes = map[string]string{
	".bmp":  "image/bmp",
	".gif":  "image/gif",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

// Sources maps an argument name to a comma-separated list of locations
type Sources struct {
	names *form.OrderedMap
}

// NewSources creates an empty set
func NewSources() *Sources {
	return &Sources{names: form.NewOrderedMap()}
}

// Set assigns locations to name, replacing earlier ones
func (s *Sources) Set(name, locations string) *Sources {
	s.names.Set(name, locations)
	return s
}

// Len returns the number of argument names
func (s *Sources) Len() int {
	if s == nil {
		return 0
	}
	return s.names.Len()
}

// Each calls fn for every name in insertion order
func (s *Sources) Each(fn func(name, locations string)) {
	if s == nil {
		return
	}
	s.names.Each(fn)
}

// Expand splits a comma-separated location list. Each piece is trimmed;
// empty pieces stay as empty sources, and local glob patterns are replaced
// by their matches in lexical order. An existing file whose name contains
// pattern characters is taken literally.
func Expand(locations string) ([]string, error) {
	var out []string

	for _, piece := range strings.Split(locations, ",") {
		piece = strings.TrimSpace(piece)

		if piece == "" || isRemote(piece) || !hasMeta(piece) || exists(piece) {
			out = append(out, piece)
			continue
		}

		matches, err := doublestar.FilepathGlob(piece)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", piece, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", piece)
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}

	return out, nil
}

func hasMeta(location string) bool {
	return strings.ContainsAny(location, "*?[{")
}

func exists(location string) bool {
	_, err := os.Stat(location)
	return err == nil
}

func isRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// FileName returns the final path segment of location, without any query
func FileName(location string) string {
	if location == "" {
		return ""
	}

	if isRemote(location) || strings.HasPrefix(location, "file://") {
		if i := strings.IndexAny(location, "?#"); i >= 0 {
			location = location[:i]
		}
		if strings.HasSuffix(location, "/") {
			return ""
		}
		return path.Base(location)
	}

	if strings.HasSuffix(location, "/") || strings.HasSuffix(location, `\`) {
		return ""
	}
	if i := strings.LastIndex(location, `\`); i >= 0 {
		location = location[i+1:]
	}
	return filepath.Base(location)
}

// ContentType picks the MIME type of a file part: known image extensions
// first, then a sniff of data, then DefaultContentType.
func ContentType(location string, data []byte) string {
	ext := strings.ToLower(path.Ext(FileName(location)))
	if ct, ok := imageTypes[ext]; ok {
		return ct
	}

	if len(data) > 0 {
		if detected := mimetype.Detect(data); !detected.Is("application/octet-stream") {
			return detected.String()
		}
	}

	return DefaultContentType
}
