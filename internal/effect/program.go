package effect

import (
	"embed"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/lyrics-backdrop/internal/logging"
)

//go:embed shaders/*.kage
var shaderFS embed.FS

// Program is a Kage shader shared by every effect instance of one kind.
// It compiles on first use; the result (or the error) is kept for the process lifetime.
type Program struct {
	name     string
	uniforms []UniformDecl

	once   sync.Once
	shader *ebiten.Shader
	err    error
}

var (
	blurProgram = &Program{
		name:     "blur",
		uniforms: []UniformDecl{{"Offset", 2}},
	}
	blurClampedProgram = &Program{
		name:     "blur_clamped",
		uniforms: []UniformDecl{{"Offset", 2}, {"ClampRect", 4}},
	}
	twistProgram = &Program{
		name:     "twist",
		uniforms: []UniformDecl{{"Radius", 1}, {"Angle", 1}, {"Offset", 2}, {"FilterArea", 4}},
	}
	colorAdjustProgram = &Program{
		name: "coloradjust",
		uniforms: []UniformDecl{
			{"Gamma", 1}, {"Saturation", 1}, {"Contrast", 1}, {"Brightness", 1},
			{"Red", 1}, {"Green", 1}, {"Blue", 1}, {"Alpha", 1},
		},
	}
)

func (p *Program) Name() string { return p.name }

// Uniforms lists the uniforms the shader source declares.
func (p *Program) Uniforms() []UniformDecl { return p.uniforms }

// Source returns the Kage source text.
func (p *Program) Source() ([]byte, error) {
	return shaderFS.ReadFile("shaders/" + p.name + ".kage")
}

// Shader compiles the program once and returns the cached result.
func (p *Program) Shader() (*ebiten.Shader, error) {
	p.once.Do(func() {
		src, err := p.Source()
		if err != nil {
			p.err = fmt.Errorf("read %s shader: %w", p.name, err)
			return
		}
		p.shader, p.err = ebiten.NewShader(src)
		if p.err != nil {
			p.err = fmt.Errorf("compile %s shader: %w", p.name, p.err)
			logging.Logger().Warn("shader compile failed", "program", p.name, "err", p.err)
			return
		}
		logging.Logger().Debug("shader compiled", "program", p.name)
	})
	return p.shader, p.err
}
