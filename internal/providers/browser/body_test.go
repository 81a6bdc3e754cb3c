package browser

import (
	"math/rand/v2"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/GriffinCanCode/browsing/internal/providers/http/form"
)

func newTestBrowser(t *testing.T, opts ...Option) *Browser {
	t.Helper()
	opts = append([]Option{WithRandom(rand.New(rand.NewPCG(1, 2)))}, opts...)
	b, err := New(opts...)
	require.NoError(t, err)
	return b
}

func sampleArgs() *form.Args {
	args := form.NewArgs(form.DefaultEncoding)
	args.Add("login", "guest")
	args.Add("comment", "Привет, мир & co")
	args.Add("empty", "")
	args.Add("login", "second")
	return args
}

var dispositionName = regexp.MustCompile(`Content-Disposition: form-data; name="([^"]*)"`)

func TestMultipartSegments(t *testing.T) {
	b := newTestBrowser(t)
	args := sampleArgs()

	data, contentType := b.GetData(args, Multipart)
	require.True(t, strings.HasPrefix(contentType, "multipart/form-data; boundary="+boundaryPrefix))
	assert.Equal(t, contentType, b.Header().Get("Content-Type"))

	boundary := strings.TrimPrefix(contentType, "multipart/form-data; boundary=")
	assert.Len(t, boundary, len(boundaryPrefix)+boundaryLength)

	segments := strings.Split(string(data), "--"+boundary)
	// drop the preamble before the first delimiter
	segments = segments[1:]
	require.Len(t, segments, args.Len()+1)
	assert.Equal(t, "--\r\n", segments[len(segments)-1])

	for i, arg := range args.All() {
		m := dispositionName.FindStringSubmatch(segments[i])
		require.NotNil(t, m, "segment %d", i)
		assert.Equal(t, arg.Name(), m[1])
	}
}

func TestMultipartPartLayout(t *testing.T) {
	b := newTestBrowser(t)
	args := form.NewArgs(form.DefaultEncoding)
	args.AddRaw("photo", []byte{0xff, 0xd8, 0xff},
		form.WithAttribute("filename", "cat.jpg"),
		form.WithContentType("image/jpeg"),
	)

	data, contentType := b.GetData(args, Multipart)
	boundary := strings.TrimPrefix(contentType, "multipart/form-data; boundary=")

	want := "\r\n--" + boundary +
		"\r\nContent-Disposition: form-data; name=\"photo\"; filename=\"cat.jpg\"" +
		"\r\nContent-Type: image/jpeg\r\n\r\n\xff\xd8\xff" +
		"\r\n--" + boundary + "--\r\n"
	assert.Equal(t, want, string(data))
}

func TestBoundaryIsDeterministicPerSource(t *testing.T) {
	first := newTestBrowser(t)
	second := newTestBrowser(t)

	assert.Equal(t, first.boundary(), second.boundary())
	assert.NotEqual(t, first.boundary(), first.boundary())
}

func TestURLEncodedRoundTrip(t *testing.T) {
	b := newTestBrowser(t)
	args := sampleArgs()

	data, contentType := b.GetData(args, URLEncoded("&", true))
	assert.Equal(t, ContentTypeURLEncoded.String(), contentType)

	pairs := strings.Split(string(data), "&")
	require.Len(t, pairs, args.Len())

	for i, arg := range args.All() {
		name, escaped, ok := strings.Cut(pairs[i], "=")
		require.True(t, ok)
		assert.Equal(t, arg.Name(), name)

		value, err := url.QueryUnescape(escaped)
		require.NoError(t, err)
		assert.Equal(t, args.Text(arg), value)
	}
}

func TestURLEncodedUnescaped(t *testing.T) {
	b := newTestBrowser(t)
	args := form.NewArgs(form.DefaultEncoding)
	args.Add("q", "тест")
	args.Add("page", "2")

	data, _ := b.GetData(args, URLEncoded("", false))

	assert.Equal(t, "q=тест;page=2", form.Decode(form.DefaultEncoding, data))
	assert.Equal(t, []byte{'q', '=', 0xf2, 0xe5, 0xf1, 0xf2, ';', 'p', 'a', 'g', 'e', '=', '2'}, data)
}

func TestURLEncodedUsesArgsEncoding(t *testing.T) {
	b := newTestBrowser(t)
	args := form.NewArgs(unicode.UTF8)
	args.Add("q", "тест")

	data, _ := b.GetData(args, URLEncoded("&", false))
	assert.Equal(t, "q=тест", string(data))
}

func TestURLEncodedReplacesMultipartContentType(t *testing.T) {
	b := newTestBrowser(t)
	args := sampleArgs()

	b.GetData(args, Multipart)
	_, contentType := b.GetData(args, URLEncoded("&", true))
	assert.Equal(t, ContentTypeURLEncoded.String(), contentType)

	b.SetContentTypePreset(ContentTypeURLEncodedUTF8)
	_, contentType = b.GetData(args, URLEncoded("&", true))
	assert.Equal(t, "application/x-www-form-urlencoded; charset=UTF-8", contentType)
}

func TestURLEncode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"a b", "a+b"},
		{"a/b?c=d&e", "a%2Fb%3Fc%3Dd%26e"},
		{"ё", "%D1%91"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, URLEncode(tt.input), tt.input)
	}
}

func TestContentTypePresets(t *testing.T) {
	assert.Equal(t, "application/x-www-form-urlencoded", ContentTypeURLEncoded.String())
	assert.Equal(t, "application/x-www-form-urlencoded; charset=UTF-8", ContentTypeURLEncodedUTF8.String())
	assert.Equal(t, "text/html; charset=UTF-8", ContentTypeTextHTMLUTF8.String())
}
