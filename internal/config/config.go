package config

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"math"

	css "github.com/mazznoer/csscolorparser"

	"github.com/iburimskiy/lyrics-backdrop/internal/artwork"
	"github.com/iburimskiy/lyrics-backdrop/internal/effect"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	WindowTitle = "Lyrics Backdrop - Space: Play/Pause, Esc/Q: Quit"

	DefaultClearColor = "#0b0b12"
)

type Config struct {
	WindowWidth  int
	WindowHeight int

	// Artwork is an http(s) URL or a file path. Empty opens a file dialog.
	Artwork    string
	MaxArtwork int
	// Audio is an optional track played while the backdrop runs.
	Audio string

	ClearColor    string
	Cycle         bool
	ReducedMotion bool
	Debug         bool

	Effects effect.Params
}

func Default() Config {
	return Config{
		WindowWidth:  WindowWidth,
		WindowHeight: WindowHeight,
		MaxArtwork:   artwork.DefaultMaxSize,
		ClearColor:   DefaultClearColor,
		Cycle:        true,
		Effects:      effect.DefaultParams(),
	}
}

// RegisterFlags binds every option to fs, using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.WindowWidth, "width", c.WindowWidth, "window width")
	fs.IntVar(&c.WindowHeight, "height", c.WindowHeight, "window height")
	fs.StringVar(&c.Artwork, "artwork", c.Artwork, "artwork URL or file (opens a dialog when empty)")
	fs.IntVar(&c.MaxArtwork, "max-artwork", c.MaxArtwork, "downscale artwork so its longest edge fits this many pixels (0 keeps it)")
	fs.StringVar(&c.Audio, "audio", c.Audio, "optional wav/mp3/flac track to play")
	fs.StringVar(&c.ClearColor, "clear", c.ClearColor, "CSS color behind the panels")
	fs.BoolVar(&c.Cycle, "cycle", c.Cycle, "mount the artwork again whenever a panel set finishes")
	fs.BoolVar(&c.ReducedMotion, "reduced-motion", c.ReducedMotion, "force the reduced motion preference")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "debug logging")

	e := &c.Effects
	fs.Float64Var(&e.Blur.Blur, "blur", e.Blur.Blur, "blur extent in pixels")
	fs.IntVar(&e.Blur.Quality, "blur-quality", e.Blur.Quality, "blur kernel taps")
	fs.BoolVar(&e.Blur.Clamp, "blur-clamp", e.Blur.Clamp, "keep blur taps inside the panel")
	fs.Float64Var(&e.Twist.Angle, "twist-angle", e.Twist.Angle, "twist angle at the center, radians")
	fs.Float64Var(&e.Twist.Radius, "twist-radius", e.Twist.Radius, "twist radius in pixels")
	fs.Float64Var(&e.ColorAdjust.Gamma, "gamma", e.ColorAdjust.Gamma, "gamma")
	fs.Float64Var(&e.ColorAdjust.Saturation, "saturation", e.ColorAdjust.Saturation, "saturation")
	fs.Float64Var(&e.ColorAdjust.Contrast, "contrast", e.ColorAdjust.Contrast, "contrast")
	fs.Float64Var(&e.ColorAdjust.Brightness, "brightness", e.ColorAdjust.Brightness, "brightness")
	fs.Float64Var(&e.ColorAdjust.Alpha, "alpha", e.ColorAdjust.Alpha, "panel alpha")
}

func (c Config) Validate() error {
	var errs []error
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.WindowWidth, c.WindowHeight))
	}
	if c.MaxArtwork < 0 {
		errs = append(errs, fmt.Errorf("max-artwork %d must not be negative", c.MaxArtwork))
	}
	if c.Effects.ColorAdjust.Gamma <= 0 {
		errs = append(errs, fmt.Errorf("gamma %v must be positive", c.Effects.ColorAdjust.Gamma))
	}
	if _, err := css.Parse(c.ClearColor); err != nil {
		errs = append(errs, fmt.Errorf("clear color: %w", err))
	}
	return errors.Join(errs...)
}

// Background parses ClearColor.
func (c Config) Background() (color.Color, error) {
	parsed, err := css.Parse(c.ClearColor)
	if err != nil {
		return nil, fmt.Errorf("clear color: %w", err)
	}
	return color.NRGBA{
		R: uint8(math.Round(255 * parsed.R)),
		G: uint8(math.Round(255 * parsed.G)),
		B: uint8(math.Round(255 * parsed.B)),
		A: uint8(math.Round(255 * parsed.A)),
	}, nil
}
