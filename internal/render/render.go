// Package render draws the backdrop panels with ebiten. Each panel is rasterized
// into a canvas sized scratch image, run through its effect chain one shader
// pass per effect, and composited with its opacity.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/lyrics-backdrop/internal/effect"
	"github.com/iburimskiy/lyrics-backdrop/internal/logging"
	"github.com/iburimskiy/lyrics-backdrop/internal/scene"
)

// Renderer keeps the last composited frame so the screen holds still between
// panel sets, and lays it under the next set while it fades in.
type Renderer struct {
	clear color.Color

	w, h   int
	canvas *ebiten.Image
	base   *ebiten.Image
	ping   *ebiten.Image
	pong   *ebiten.Image

	hasBase bool
}

func New(clear color.Color) *Renderer {
	return &Renderer{clear: clear}
}

func (r *Renderer) resize(w, h int) {
	if w == r.w && h == r.h && r.canvas != nil {
		return
	}
	oldBase, ow, oh := r.base, r.w, r.h
	for _, img := range []*ebiten.Image{r.canvas, r.ping, r.pong} {
		if img != nil {
			img.Deallocate()
		}
	}
	r.w, r.h = w, h
	r.canvas = ebiten.NewImage(w, h)
	r.base = ebiten.NewImage(w, h)
	r.ping = ebiten.NewImage(w, h)
	r.pong = ebiten.NewImage(w, h)
	r.canvas.Fill(r.clear)
	if oldBase != nil {
		// the settled frame survives a resize, stretched to the new size
		if r.hasBase {
			op := &ebiten.DrawImageOptions{GeoM: stretch(ow, oh, w, h), Filter: ebiten.FilterLinear}
			r.base.DrawImage(oldBase, op)
			r.canvas.DrawImage(r.base, nil)
		}
		oldBase.Deallocate()
	}
	logging.Logger().Debug("render targets resized", "width", w, "height", h, "kept_base", r.hasBase)
}

// stretch maps an ow x oh image onto w x h.
func stretch(ow, oh, w, h int) ebiten.GeoM {
	var g ebiten.GeoM
	if ow <= 0 || oh <= 0 {
		return g
	}
	g.Scale(float64(w)/float64(ow), float64(h)/float64(oh))
	return g
}

// Draw composites panels back to front onto screen. With no panels the
// previous frame is shown again.
func (r *Renderer) Draw(screen *ebiten.Image, panels []*scene.Panel) {
	b := screen.Bounds()
	r.resize(b.Dx(), b.Dy())

	if len(panels) > 0 {
		r.canvas.Fill(r.clear)
		if r.hasBase {
			r.canvas.DrawImage(r.base, nil)
		}
		for _, p := range panels {
			r.drawPanel(p)
		}
	}
	screen.DrawImage(r.canvas, nil)
}

// Settle keeps the current frame as the base layer for the next panel set.
func (r *Renderer) Settle() {
	if r.canvas == nil {
		return
	}
	r.base.Clear()
	r.base.DrawImage(r.canvas, nil)
	r.hasBase = true
}

func (r *Renderer) drawPanel(p *scene.Panel) {
	src := p.Texture.Image()
	if src == nil {
		return
	}
	r.ping.Clear()
	r.ping.DrawTriangles(panelVertices(p), p.Geometry.Indices, src, &ebiten.DrawTrianglesOptions{
		Filter: ebiten.FilterLinear,
	})

	out := r.applyChain(p.Chain)

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(p.Transform().Opacity))
	r.canvas.DrawImage(out, op)
}

// applyChain runs the effects in order starting from ping and returns the
// image holding the result. If any stage fails to compile the panel is drawn
// without effects.
func (r *Renderer) applyChain(chain effect.Chain) *ebiten.Image {
	src, dst := r.ping, r.pong
	for i, shader := range chainShaders(chain, (*effect.Program).Shader) {
		dst.Clear()
		op := &ebiten.DrawRectShaderOptions{}
		op.Images[0] = src
		op.Uniforms = chain[i].Uniforms().Map()
		dst.DrawRectShader(r.w, r.h, shader, op)
		src, dst = dst, src
	}
	return src
}

// chainShaders compiles every stage of chain, in order. It returns nil as soon
// as one stage fails.
func chainShaders(chain effect.Chain, compile func(*effect.Program) (*ebiten.Shader, error)) []*ebiten.Shader {
	shaders := make([]*ebiten.Shader, 0, len(chain))
	for _, e := range chain {
		s, err := compile(e.Program())
		if err != nil {
			return nil
		}
		shaders = append(shaders, s)
	}
	return shaders
}

func panelVertices(p *scene.Panel) []ebiten.Vertex {
	tw, th := p.Texture.Size()
	corners := p.Corners()
	vs := make([]ebiten.Vertex, len(corners))
	for i, c := range corners {
		uv := p.Geometry.UV[i]
		vs[i] = ebiten.Vertex{
			DstX:   float32(c[0]),
			DstY:   float32(c[1]),
			SrcX:   float32(uv[0] * float64(tw)),
			SrcY:   float32(uv[1] * float64(th)),
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
	}
	return vs
}
