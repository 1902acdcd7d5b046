package effect

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrNonFinite      = errors.New("effect: non-finite uniform value")
	ErrUnknownUniform = errors.New("effect: unknown uniform")
)

// UniformDecl names a uniform a program reads and its component count (1, 2 or 4).
type UniformDecl struct {
	Name string
	Size int
}

// UniformSet holds the current value of every uniform one program instance reads.
// Values start at zero and are always finite.
type UniformSet struct {
	decls  []UniformDecl
	values map[string][]float32
}

func newUniformSet(decls []UniformDecl) *UniformSet {
	u := &UniformSet{
		decls:  decls,
		values: make(map[string][]float32, len(decls)),
	}
	for _, d := range decls {
		u.values[d.Name] = make([]float32, d.Size)
	}
	return u
}

func (u *UniformSet) set(name string, v ...float32) error {
	dst, ok := u.values[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownUniform, name)
	}
	if len(dst) != len(v) {
		return fmt.Errorf("effect: uniform %q has %d components, got %d", name, len(dst), len(v))
	}
	for _, x := range v {
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return fmt.Errorf("%w: %s = %v", ErrNonFinite, name, v)
		}
	}
	copy(dst, v)
	return nil
}

func (u *UniformSet) SetFloat(name string, v float32) error { return u.set(name, v) }

func (u *UniformSet) SetVec2(name string, v mgl32.Vec2) error { return u.set(name, v[:]...) }

func (u *UniformSet) SetVec4(name string, v mgl32.Vec4) error { return u.set(name, v[:]...) }

// Float returns the scalar value of name, or 0 when it is not a declared scalar.
func (u *UniformSet) Float(name string) float32 {
	if v := u.values[name]; len(v) == 1 {
		return v[0]
	}
	return 0
}

func (u *UniformSet) Vec2(name string) mgl32.Vec2 {
	var out mgl32.Vec2
	if v := u.values[name]; len(v) == 2 {
		copy(out[:], v)
	}
	return out
}

func (u *UniformSet) Vec4(name string) mgl32.Vec4 {
	var out mgl32.Vec4
	if v := u.values[name]; len(v) == 4 {
		copy(out[:], v)
	}
	return out
}

// Has reports whether name is declared.
func (u *UniformSet) Has(name string) bool {
	_, ok := u.values[name]
	return ok
}

// Validate checks that every declared uniform is present with the right size and finite.
func (u *UniformSet) Validate() error {
	for _, d := range u.decls {
		v, ok := u.values[d.Name]
		if !ok {
			return fmt.Errorf("%w: %q missing", ErrUnknownUniform, d.Name)
		}
		if len(v) != d.Size {
			return fmt.Errorf("effect: uniform %q has %d components, want %d", d.Name, len(v), d.Size)
		}
		for _, x := range v {
			if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
				return fmt.Errorf("%w: %s", ErrNonFinite, d.Name)
			}
		}
	}
	return nil
}

// Map builds the uniform map handed to ebiten draw options.
// Scalars are passed as float32, vectors as []float32 copies.
func (u *UniformSet) Map() map[string]any {
	m := make(map[string]any, len(u.values))
	for name, v := range u.values {
		if len(v) == 1 {
			m[name] = v[0]
			continue
		}
		m[name] = append([]float32(nil), v...)
	}
	return m
}
