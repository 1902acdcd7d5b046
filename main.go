package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	_ "github.com/silbinarywolf/preferdiscretegpu"

	"github.com/iburimskiy/lyrics-backdrop/internal/artwork"
	"github.com/iburimskiy/lyrics-backdrop/internal/config"
	"github.com/iburimskiy/lyrics-backdrop/internal/frame"
	"github.com/iburimskiy/lyrics-backdrop/internal/logging"
	"github.com/iburimskiy/lyrics-backdrop/internal/player"
	"github.com/iburimskiy/lyrics-backdrop/internal/render"
	"github.com/iburimskiy/lyrics-backdrop/internal/scene"
)

type game struct {
	cfg config.Config

	// backdrop
	scene    *scene.Scene
	renderer *render.Renderer
	fetcher  *artwork.Fetcher
	// texture is the host's reference on the current artwork, kept for cycling.
	texture *scene.Texture
	probe   frame.EnvProbe

	// audio
	player *player.Player

	// viewport, from Layout
	width, height int

	// input edge detection
	prevKey map[ebiten.Key]bool

	loading bool
	lastErr error
}

func newGame(cfg config.Config, bg color.Color) *game {
	return &game{
		cfg:      cfg,
		scene:    scene.New(cfg.Effects),
		renderer: render.New(bg),
		fetcher:  artwork.NewFetcher(artwork.NewLoader(cfg.MaxArtwork)),
		probe:    frame.EnvProbe{Forced: cfg.ReducedMotion},
		player:   player.New(),
		width:    cfg.WindowWidth,
		height:   cfg.WindowHeight,
		prevKey:  map[ebiten.Key]bool{},
	}
}

func (g *game) requestArtwork(src string) {
	g.loading = true
	gen := g.fetcher.Request(src)
	logging.Logger().Debug("artwork requested", "src", src, "request", gen)
}

func (g *game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeySpace) {
		g.player.TogglePause()
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.advance(frame.New(g.width, g.height, g.probe))
	return nil
}

// advance runs the backdrop for one frame: pick up finished loads, then step the scene.
func (g *game) advance(f frame.Context) {
	g.pollArtwork()
	if g.scene.Update(f) {
		g.renderer.Settle()
		if g.cfg.Cycle && g.texture != nil {
			g.scene.Mount(g.texture)
		}
	}
}

func (g *game) pollArtwork() {
	r, ok := g.fetcher.Poll()
	if !ok {
		return
	}
	g.loading = false
	if r.Err != nil {
		g.lastErr = r.Err
		logging.Logger().Warn("artwork load failed", "src", r.Source, "err", r.Err)
		return
	}

	tex := scene.NewTexture(r.Image)
	if g.texture != nil {
		g.texture.Release()
	}
	g.texture = tex
	g.lastErr = nil

	if g.scene.Active() {
		g.renderer.Settle()
	}
	g.scene.Mount(tex)
}

func (g *game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.scene.Panels())

	status := ""
	switch {
	case g.loading:
		status = "Loading artwork..."
	case g.player.Finished():
		status = "Track finished"
	case g.player.Paused():
		status = "Paused - Space to resume"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	if status != "" {
		ebitenutil.DebugPrintAt(screen, status, 12, 12)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *game) close() {
	g.fetcher.Close()
	g.scene.Close()
	if g.texture != nil {
		g.texture.Release()
		g.texture = nil
	}
	g.player.Close()
}

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if cfg.Artwork == "" {
		path, err := artwork.Pick()
		if err != nil {
			logging.Logger().Error("artwork dialog failed", "err", err)
			os.Exit(1)
		}
		if path == "" {
			return
		}
		cfg.Artwork = path
	}

	bg, err := cfg.Background()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	g := newGame(cfg, bg)
	if cfg.Audio != "" {
		if err := g.player.Play(cfg.Audio); err != nil {
			g.lastErr = err
			logging.Logger().Warn("audio not played", "path", cfg.Audio, "err", err)
		}
	}
	g.requestArtwork(cfg.Artwork)

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(g)
	g.close()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		logging.Logger().Error("game loop stopped", "err", err)
		os.Exit(1)
	}
}
