package effect

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/iburimskiy/lyrics-backdrop/internal/frame"
)

// ColorAdjustParams are the static grading uniforms. Neutral values are all 1.
type ColorAdjustParams struct {
	Gamma      float64
	Saturation float64
	Contrast   float64
	Brightness float64
	Red        float64
	Green      float64
	Blue       float64
	Alpha      float64
}

var lumaWeights = mgl64.Vec3{0.2125, 0.7154, 0.0721}

type ColorAdjust struct {
	params   ColorAdjustParams
	uniforms *UniformSet
}

func NewColorAdjust(p ColorAdjustParams) *ColorAdjust {
	c := &ColorAdjust{
		params:   p,
		uniforms: newUniformSet(colorAdjustProgram.Uniforms()),
	}
	setFloat(c.uniforms, "Gamma", p.Gamma)
	setFloat(c.uniforms, "Saturation", p.Saturation)
	setFloat(c.uniforms, "Contrast", p.Contrast)
	setFloat(c.uniforms, "Brightness", p.Brightness)
	setFloat(c.uniforms, "Red", p.Red)
	setFloat(c.uniforms, "Green", p.Green)
	setFloat(c.uniforms, "Blue", p.Blue)
	setFloat(c.uniforms, "Alpha", p.Alpha)
	return c
}

func (c *ColorAdjust) Kind() Kind                { return KindColorAdjust }
func (c *ColorAdjust) Program() *Program         { return colorAdjustProgram }
func (c *ColorAdjust) Uniforms() *UniformSet     { return c.uniforms }
func (c *ColorAdjust) Params() ColorAdjustParams { return c.params }

// Update is a no-op: grading uniforms are fixed at construction.
func (c *ColorAdjust) Update(frame.Context) {}

// Apply grades one premultiplied RGBA pixel exactly like coloradjust.kage.
// Results are not clamped.
func (c *ColorAdjust) Apply(px mgl64.Vec4) mgl64.Vec4 {
	p := c.params
	if a := px[3]; a > 0 {
		rgb := px.Vec3().Mul(1 / a)
		inv := 1 / p.Gamma
		rgb = mgl64.Vec3{math.Pow(rgb[0], inv), math.Pow(rgb[1], inv), math.Pow(rgb[2], inv)}
		luma := lumaWeights.Dot(rgb)
		gray := mgl64.Vec3{luma, luma, luma}
		rgb = mix(mgl64.Vec3{0.5, 0.5, 0.5}, mix(gray, rgb, p.Saturation), p.Contrast)
		rgb = mgl64.Vec3{rgb[0] * p.Red, rgb[1] * p.Green, rgb[2] * p.Blue}
		rgb = rgb.Mul(p.Brightness * a)
		px = rgb.Vec4(a)
	}
	return px.Mul(p.Alpha)
}

func mix(x, y mgl64.Vec3, t float64) mgl64.Vec3 {
	return x.Mul(1 - t).Add(y.Mul(t))
}
