package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/iburimskiy/lyrics-backdrop/internal/animation"
	"github.com/iburimskiy/lyrics-backdrop/internal/effect"
	"github.com/iburimskiy/lyrics-backdrop/internal/frame"
)

// Panel is one animated copy of the artwork.
type Panel struct {
	Index    int
	Texture  *Texture
	Geometry *Geometry
	Chain    effect.Chain
	// Size is the quad edge length in pixels, refreshed from the viewport every frame.
	Size float64

	transform *animation.Transform
}

// Transform returns the position, rotation and opacity last written by the driver.
func (p *Panel) Transform() animation.Transform {
	return *p.transform
}

// Corners returns the panel quad in screen space.
func (p *Panel) Corners() [4]mgl64.Vec2 {
	return p.Geometry.Place(*p.transform, p.Size)
}

type placement struct {
	// scale of max(width, height)
	scale float64
	// anchor in viewport fractions; only used by panels that do not orbit
	anchor mgl64.Vec2
}

var layout = [animation.PanelCount]placement{
	{scale: 1.25, anchor: mgl64.Vec2{0.5, 0.5}},
	{scale: 0.8, anchor: mgl64.Vec2{0.4, 0.4}},
	{scale: 0.5},
	{scale: 0.25},
}

// applyLayout sizes every panel and pins the non-orbiting ones.
func applyLayout(f frame.Context, panels []*Panel) {
	side := max(f.Width, f.Height)
	for _, p := range panels {
		l := layout[p.Index]
		p.Size = side * l.scale
		if p.Index < 2 {
			p.transform.Position = mgl64.Vec2{l.anchor[0] * f.Width, l.anchor[1] * f.Height}
		}
	}
}
