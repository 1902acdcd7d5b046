// Package effect defines the shader effects applied to every backdrop panel.
//
// An effect is built once from immutable parameters. It owns a UniformSet that
// Update refreshes each frame from the viewport; the Kage program behind it is
// shared by all instances of the same kind.
package effect

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/iburimskiy/lyrics-backdrop/internal/frame"
	"github.com/iburimskiy/lyrics-backdrop/internal/logging"
)

type Kind int

const (
	KindBlur Kind = iota
	KindTwist
	KindColorAdjust
)

func (k Kind) String() string {
	switch k {
	case KindBlur:
		return "blur"
	case KindTwist:
		return "twist"
	case KindColorAdjust:
		return "color-adjust"
	}
	return "unknown"
}

// Effect is one stage of a panel's effect chain.
type Effect interface {
	Kind() Kind
	Program() *Program
	Uniforms() *UniformSet
	// Update recomputes viewport dependent uniforms. Effects with static
	// uniforms leave them untouched.
	Update(f frame.Context)
}

// Params configures every effect of a chain.
type Params struct {
	Blur        BlurParams
	Twist       TwistParams
	ColorAdjust ColorAdjustParams
}

// DefaultParams returns the look used by the backdrop out of the box.
func DefaultParams() Params {
	return Params{
		Blur: BlurParams{Blur: 5, Quality: 1},
		Twist: TwistParams{
			Angle:  -3.25,
			Radius: 900,
		},
		ColorAdjust: ColorAdjustParams{
			Gamma:      1,
			Saturation: 1.4,
			Contrast:   1.1,
			Brightness: 0.9,
			Red:        1,
			Green:      1,
			Blue:       1,
			Alpha:      1,
		},
	}
}

// Chain is applied first to last: blur, then twist, then color grading.
type Chain []Effect

// NewChain builds a fresh chain. Every call returns new uniform instances.
func NewChain(p Params) Chain {
	return Chain{
		NewBlur(p.Blur),
		NewTwist(p.Twist),
		NewColorAdjust(p.ColorAdjust),
	}
}

func (c Chain) Update(f frame.Context) {
	for _, e := range c {
		e.Update(f)
	}
}

func setVec2(u *UniformSet, name string, v mgl32.Vec2) {
	if err := u.SetVec2(name, v); err != nil {
		logging.Logger().Warn("uniform not updated", "err", err)
	}
}

func setVec4(u *UniformSet, name string, v mgl32.Vec4) {
	if err := u.SetVec4(name, v); err != nil {
		logging.Logger().Warn("uniform not updated", "err", err)
	}
}

func setFloat(u *UniformSet, name string, v float64) {
	if err := u.SetFloat(name, float32(v)); err != nil {
		logging.Logger().Warn("uniform not updated", "err", err)
	}
}
