package artwork

import (
	"context"
	"image"

	"github.com/iburimskiy/lyrics-backdrop/internal/logging"
)

// Result is one finished load, tagged with the generation of its request.
type Result struct {
	Generation uint64
	Source     string
	Image      image.Image
	Err        error
}

// Fetcher runs loads in the background for a frame loop. Request and Poll must be
// called from the same goroutine. A new Request cancels the one in flight, and
// Poll never returns results of superseded requests.
type Fetcher struct {
	loader     *Loader
	results    chan Result
	generation uint64
	cancel     context.CancelFunc
}

func NewFetcher(l *Loader) *Fetcher {
	return &Fetcher{
		loader:  l,
		results: make(chan Result, 4),
	}
}

// Request starts loading src and returns its generation.
func (f *Fetcher) Request(src string) uint64 {
	if f.cancel != nil {
		f.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	f.generation++
	gen := f.generation

	go func() {
		img, err := f.loader.Load(ctx, src)
		r := Result{Generation: gen, Source: src, Image: img, Err: err}
		select {
		case f.results <- r:
		case <-ctx.Done():
		}
	}()
	return gen
}

// Poll returns the result of the latest request if it has arrived. It never blocks.
func (f *Fetcher) Poll() (Result, bool) {
	for {
		select {
		case r := <-f.results:
			if r.Generation != f.generation {
				logging.Logger().Debug("stale artwork dropped", "src", r.Source, "generation", r.Generation)
				continue
			}
			return r, true
		default:
			return Result{}, false
		}
	}
}

// Close cancels the load in flight.
func (f *Fetcher) Close() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}
