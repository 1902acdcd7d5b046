// Package artwork fetches and decodes the album artwork the backdrop is built from.
package artwork

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/iburimskiy/lyrics-backdrop/internal/logging"
)

// DefaultMaxSize bounds the longest edge of decoded artwork. The panels are blurred
// and scaled up anyway, so bigger uploads only cost memory.
const DefaultMaxSize = 512

var ErrUnsupported = errors.New("artwork: unsupported image format")

type Loader struct {
	Client  *http.Client
	MaxSize int
}

func NewLoader(maxSize int) *Loader {
	return &Loader{Client: http.DefaultClient, MaxSize: maxSize}
}

// Load reads src, an http(s) URL or a file path, and decodes it.
func (l *Loader) Load(ctx context.Context, src string) (image.Image, error) {
	rc, err := l.open(ctx, src)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, format, err := image.Decode(rc)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupported, src)
		}
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	b := img.Bounds()
	logging.Logger().Debug("artwork decoded", "src", src, "format", format, "width", b.Dx(), "height", b.Dy())
	return Downscale(img, l.MaxSize), nil
}

func (l *Loader) open(ctx context.Context, src string) (io.ReadCloser, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("open artwork: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: %s", src, resp.Status)
	}
	return resp.Body, nil
}

// Downscale fits img into maxSize x maxSize keeping its aspect ratio.
// Images that already fit, or a non-positive maxSize, are returned as is.
func Downscale(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
