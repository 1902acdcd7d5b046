package effect

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/iburimskiy/lyrics-backdrop/internal/frame"
)

// BlurParams configures the single pass blur. Blur is the total extent in pixels,
// Quality the number of kernel taps generated. Clamp keeps taps inside the source.
type BlurParams struct {
	Blur    float64
	Quality int
	Clamp   bool
}

// Blur is a 4-tap box blur. Only the first kernel entry drives the tap distance;
// the remaining entries are kept for inspection but never sampled.
type Blur struct {
	params   BlurParams
	kernel   []float64
	program  *Program
	uniforms *UniformSet
}

func NewBlur(p BlurParams) *Blur {
	b := &Blur{
		params:  p,
		kernel:  blurKernel(p.Blur, p.Quality),
		program: blurProgram,
	}
	if p.Clamp {
		b.program = blurClampedProgram
	}
	b.uniforms = newUniformSet(b.program.Uniforms())
	if p.Clamp {
		setVec4(b.uniforms, "ClampRect", mgl32.Vec4{0, 0, 1, 1})
	}
	return b
}

// blurKernel returns k[i] = blur - (i+1)*(blur/quality). A quality below one
// yields the single entry {0}.
func blurKernel(blur float64, quality int) []float64 {
	if quality < 1 {
		return []float64{0}
	}
	step := blur / float64(quality)
	k := make([]float64, quality)
	for i := range k {
		k[i] = blur - float64(i+1)*step
	}
	return k
}

func (b *Blur) Kind() Kind            { return KindBlur }
func (b *Blur) Program() *Program     { return b.program }
func (b *Blur) Uniforms() *UniformSet { return b.uniforms }
func (b *Blur) Params() BlurParams    { return b.params }

func (b *Blur) Kernel() []float64 {
	return append([]float64(nil), b.kernel...)
}

// TapOffset is the tap distance in pixels, k[0] + 0.5.
func (b *Blur) TapOffset() float64 {
	return b.kernel[0] + 0.5
}

// Update sets Offset = (k[0]+0.5) / canvas size. A zero sized canvas keeps the last value.
func (b *Blur) Update(f frame.Context) {
	if f.Width <= 0 || f.Height <= 0 {
		return
	}
	k := b.TapOffset()
	setVec2(b.uniforms, "Offset", mgl32.Vec2{float32(k * (1 / f.Width)), float32(k * (1 / f.Height))})
	if b.params.Clamp {
		setVec4(b.uniforms, "ClampRect", mgl32.Vec4{0, 0, 1, 1})
	}
}
