package config

import (
	"flag"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.True(t, c.Cycle)
	assert.Equal(t, WindowWidth, c.WindowWidth)

	bg, err := c.Background()
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x0b, G: 0x0b, B: 0x12, A: 0xff}, bg)
}

func TestFlags(t *testing.T) {
	c := Default()
	fs := flag.NewFlagSet("backdrop", flag.ContinueOnError)
	c.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"-artwork", "https://example.com/cover.jpg",
		"-blur", "9",
		"-blur-quality", "3",
		"-twist-angle", "1.5",
		"-cycle=false",
		"-reduced-motion",
		"-clear", "rebeccapurple",
	}))

	assert.Equal(t, "https://example.com/cover.jpg", c.Artwork)
	assert.Equal(t, 9.0, c.Effects.Blur.Blur)
	assert.Equal(t, 3, c.Effects.Blur.Quality)
	assert.Equal(t, 1.5, c.Effects.Twist.Angle)
	assert.False(t, c.Cycle)
	assert.True(t, c.ReducedMotion)
	require.NoError(t, c.Validate())

	bg, err := c.Background()
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 102, G: 51, B: 153, A: 255}, bg)
}

func TestValidate(t *testing.T) {
	c := Default()
	c.WindowWidth = 0
	c.ClearColor = "not-a-color"
	c.Effects.ColorAdjust.Gamma = 0
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window size")
	assert.Contains(t, err.Error(), "clear color")
	assert.Contains(t, err.Error(), "gamma")

	_, err = c.Background()
	assert.Error(t, err)
}
