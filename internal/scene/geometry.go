package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/iburimskiy/lyrics-backdrop/internal/animation"
)

// Geometry is the unit quad every panel is drawn with, centered on the origin.
type Geometry struct {
	Corners [4]mgl64.Vec2
	UV      [4]mgl64.Vec2
	Indices []uint16
}

var quad = &Geometry{
	Corners: [4]mgl64.Vec2{{-0.5, -0.5}, {0.5, -0.5}, {-0.5, 0.5}, {0.5, 0.5}},
	UV:      [4]mgl64.Vec2{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	Indices: []uint16{0, 1, 2, 1, 2, 3},
}

// Place scales the quad to size, rotates it and moves it to the transform position.
func (g *Geometry) Place(t animation.Transform, size float64) [4]mgl64.Vec2 {
	rot := mgl64.Rotate2D(t.Rotation)
	var out [4]mgl64.Vec2
	for i, c := range g.Corners {
		out[i] = rot.Mul2x1(c.Mul(size)).Add(t.Position)
	}
	return out
}
