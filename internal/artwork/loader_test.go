package artwork

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 40, 30), 0o644))

	img, err := NewLoader(DefaultMaxSize).Load(t.Context(), path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 30), img.Bounds())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(0).Load(t.Context(), filepath.Join(t.TempDir(), "nope.png"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadURLDownscales(t *testing.T) {
	body := encodePNG(t, 200, 100)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	img, err := NewLoader(50).Load(t.Context(), srv.URL+"/cover.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 50, 25), img.Bounds())
}

func TestLoadURLStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewLoader(0).Load(t.Context(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestLoadUnsupported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("definitely not an image"))
	}))
	defer srv.Close()

	_, err := NewLoader(0).Load(t.Context(), srv.URL)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestLoadCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err := NewLoader(0).Load(ctx, srv.URL)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDownscale(t *testing.T) {
	tall := image.NewRGBA(image.Rect(0, 0, 10, 40))
	assert.Equal(t, image.Rect(0, 0, 5, 20), Downscale(tall, 20).Bounds())

	small := image.NewRGBA(image.Rect(0, 0, 10, 10))
	assert.Same(t, small, Downscale(small, 20))
	assert.Same(t, small, Downscale(small, 0))
}

func TestFetcherDropsStaleResults(t *testing.T) {
	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
			return
		}
		_, _ = w.Write(encodePNG(t, 8, 8))
	}))
	defer slow.Close()
	defer close(release)

	fast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(encodePNG(t, 16, 16))
	}))
	defer fast.Close()

	f := NewFetcher(NewLoader(0))
	defer f.Close()

	first := f.Request(slow.URL)
	second := f.Request(fast.URL)
	assert.Greater(t, second, first)

	var got Result
	require.Eventually(t, func() bool {
		r, ok := f.Poll()
		if ok {
			got = r
		}
		return ok
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, got.Err)
	assert.Equal(t, second, got.Generation)
	assert.Equal(t, fast.URL, got.Source)
	assert.Equal(t, image.Rect(0, 0, 16, 16), got.Image.Bounds())

	_, ok := f.Poll()
	assert.False(t, ok)
}
