package effect

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/iburimskiy/lyrics-backdrop/internal/frame"
)

// TwistParams configures the radial swirl. Radius is in pixels, Angle in radians
// at the center. Offset is the swirl center in canvas pixels.
type TwistParams struct {
	Angle  float64
	Radius float64
	Offset mgl32.Vec2
}

type Twist struct {
	params   TwistParams
	uniforms *UniformSet
}

func NewTwist(p TwistParams) *Twist {
	t := &Twist{
		params:   p,
		uniforms: newUniformSet(twistProgram.Uniforms()),
	}
	setFloat(t.uniforms, "Radius", p.Radius)
	setFloat(t.uniforms, "Angle", p.Angle)
	setVec2(t.uniforms, "Offset", p.Offset)
	return t
}

func (t *Twist) Kind() Kind            { return KindTwist }
func (t *Twist) Program() *Program     { return twistProgram }
func (t *Twist) Uniforms() *UniformSet { return t.uniforms }
func (t *Twist) Params() TwistParams   { return t.params }

// Update sets FilterArea = (width, height, 0, 0). A zero sized canvas keeps the last value.
func (t *Twist) Update(f frame.Context) {
	if f.Width <= 0 || f.Height <= 0 {
		return
	}
	setVec4(t.uniforms, "FilterArea", mgl32.Vec4{float32(f.Width), float32(f.Height), 0, 0})
}

// RotationAt is the swirl angle applied at distance d from the center:
// angle * ((radius-d)/radius)^2 inside the radius, zero outside.
func (t *Twist) RotationAt(d float64) float64 {
	r := t.params.Radius
	if d >= r {
		return 0
	}
	ratio := (r - d) / r
	return t.params.Angle * ratio * ratio
}

// TwistCoord rotates coord about center by the swirl angle for its distance.
// It mirrors twist() in twist.kage.
func (t *Twist) TwistCoord(coord mgl64.Vec2) mgl64.Vec2 {
	center := mgl64.Vec2{float64(t.params.Offset[0]), float64(t.params.Offset[1])}
	rel := coord.Sub(center)
	if d := rel.Len(); d < t.params.Radius {
		rel = mgl64.Rotate2D(t.RotationAt(d)).Mul2x1(rel)
	}
	return rel.Add(center)
}

// Map takes a normalized source coordinate through the filter area, twists it
// and maps it back, as the fragment shader does with the current uniforms.
func (t *Twist) Map(uv mgl64.Vec2) mgl64.Vec2 {
	area := t.uniforms.Vec4("FilterArea")
	scale := mgl64.Vec2{float64(area[0]), float64(area[1])}
	shift := mgl64.Vec2{float64(area[2]), float64(area[3])}
	if scale[0] == 0 || scale[1] == 0 {
		return uv
	}
	local := mgl64.Vec2{uv[0]*scale[0] + shift[0], uv[1]*scale[1] + shift[1]}
	local = t.TwistCoord(local)
	return mgl64.Vec2{(local[0] - shift[0]) / scale[0], (local[1] - shift[1]) / scale[1]}
}
