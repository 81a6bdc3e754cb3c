package files

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/browsing/internal/providers/http/form"
)

type stubFetcher struct {
	bodies map[string][]byte
}

func (s stubFetcher) Fetch(_ context.Context, location string) ([]byte, error) {
	if body, ok := s.bodies[location]; ok {
		return body, nil
	}
	return nil, errors.New("not found")
}

func TestFileName(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"", ""},
		{"photo.png", "photo.png"},
		{"/tmp/dir/photo.png", "photo.png"},
		{`C:\pics\photo.jpg`, "photo.jpg"},
		{"http://example.com/img/a.gif?size=2", "a.gif"},
		{"https://example.com/", ""},
		{"file:///tmp/b.bmp", "b.bmp"},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.location))
		})
	}
}

func TestContentType(t *testing.T) {
	tests := []struct {
		name     string
		location string
		data     []byte
		want     string
	}{
		{"png extension", "a.PNG", nil, "image/png"},
		{"tiff extension", "scan.tif", nil, "image/tiff"},
		{"sniffed pdf", "doc.bin", []byte("%PDF-1.4\n"), "application/pdf"},
		{"unknown binary", "blob", []byte{0x00, 0x01, 0x02}, DefaultContentType},
		{"empty payload", "", nil, DefaultContentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentType(tt.location, tt.data))
		})
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.png", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}

	t.Run("comma list keeps empties", func(t *testing.T) {
		got, err := Expand(" one.png, ,http://x/y.png")
		require.NoError(t, err)
		assert.Equal(t, []string{"one.png", "", "http://x/y.png"}, got)
	})

	t.Run("empty string is one empty source", func(t *testing.T) {
		got, err := Expand("")
		require.NoError(t, err)
		assert.Equal(t, []string{""}, got)
	})

	t.Run("glob sorted", func(t *testing.T) {
		got, err := Expand(filepath.Join(dir, "*.png"))
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")}, got)
	})

	t.Run("glob without matches", func(t *testing.T) {
		_, err := Expand(filepath.Join(dir, "*.gif"))
		assert.Error(t, err)
	})

	t.Run("literal name with brackets", func(t *testing.T) {
		literal := filepath.Join(dir, "photo[1].jpg")
		require.NoError(t, os.WriteFile(literal, []byte("jpeg"), 0644))
		// the same string as a pattern would match photo1.jpg instead
		require.NoError(t, os.WriteFile(filepath.Join(dir, "photo1.jpg"), []byte("other"), 0644))

		got, err := Expand(literal)
		require.NoError(t, err)
		assert.Equal(t, []string{literal}, got)
	})
}

func TestLoaderAttach(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "avatar.png")
	require.NoError(t, os.WriteFile(local, []byte("local-bytes"), 0644))

	loader := NewLoader(stubFetcher{bodies: map[string][]byte{
		"http://example.com/remote.gif": []byte("remote-bytes"),
	}})

	sources := NewSources().
		Set("avatar", local+",http://example.com/remote.gif").
		Set("empty", "")

	args := form.NewArgs(nil)
	require.NoError(t, loader.Attach(context.Background(), args, sources, ""))
	require.Equal(t, 3, args.Len())

	all := args.All()
	assert.Equal(t, "avatar", all[0].Name())
	assert.Equal(t, []byte("local-bytes"), all[0].Value())
	assert.Equal(t, "image/png", all[0].ContentType())
	filename, _ := all[0].Attributes().Get("filename")
	assert.Equal(t, "avatar.png", filename)

	assert.Equal(t, []byte("remote-bytes"), all[1].Value())
	assert.Equal(t, "image/gif", all[1].ContentType())

	assert.Equal(t, "empty", all[2].Name())
	assert.Empty(t, all[2].Value())
	filename, _ = all[2].Attributes().Get("filename")
	assert.Equal(t, "", filename)
}

func TestLoaderOverrideContentType(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "x.png")
	require.NoError(t, os.WriteFile(local, []byte("x"), 0644))

	args := form.NewArgs(nil)
	err := NewLoader(nil).Attach(context.Background(), args, NewSources().Set("f", local), "application/x-custom")
	require.NoError(t, err)
	assert.Equal(t, "application/x-custom", args.All()[0].ContentType())
}

func TestLoaderErrors(t *testing.T) {
	loader := NewLoader(nil)

	_, err := loader.Load(context.Background(), "http://example.com/a.png")
	assert.ErrorIs(t, err, ErrNoFetcher)

	_, err = loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	args := form.NewArgs(nil)
	err = loader.Attach(context.Background(), args, NewSources().Set("f", "/definitely/missing.png"), "")
	assert.Error(t, err)
	assert.Equal(t, 0, args.Len())
}

func TestLoaderDownload(t *testing.T) {
	loader := NewLoader(stubFetcher{bodies: map[string][]byte{
		"http://example.com/file.txt": []byte("hello"),
	}})

	dest := filepath.Join(t.TempDir(), "nested", "file.txt")
	n, err := loader.Download(context.Background(), "http://example.com/file.txt", dest)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}
