package render

import (
	"errors"
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/lyrics-backdrop/internal/effect"
	"github.com/iburimskiy/lyrics-backdrop/internal/frame"
	"github.com/iburimskiy/lyrics-backdrop/internal/scene"
)

func TestPanelVertices(t *testing.T) {
	s := scene.New(effect.DefaultParams())
	s.Mount(scene.NewTexture(image.NewRGBA(image.Rect(0, 0, 300, 200))))
	s.Update(frame.Context{Width: 1000, Height: 800})

	p := s.Panels()[0]
	vs := panelVertices(p)
	require.Len(t, vs, 4)

	corners := p.Corners()
	for i, v := range vs {
		assert.InDelta(t, corners[i][0], float64(v.DstX), 1e-3)
		assert.InDelta(t, corners[i][1], float64(v.DstY), 1e-3)
		assert.Equal(t, float32(1), v.ColorA)
	}
	assert.Equal(t, float32(0), vs[0].SrcX)
	assert.Equal(t, float32(300), vs[3].SrcX)
	assert.Equal(t, float32(200), vs[3].SrcY)

	// panel 0 is centered and rotated by its first step
	cx := (vs[0].DstX + vs[3].DstX) / 2
	cy := (vs[0].DstY + vs[3].DstY) / 2
	assert.InDelta(t, 500, float64(cx), 1e-3)
	assert.InDelta(t, 400, float64(cy), 1e-3)
}

func TestChainShadersAllOrNothing(t *testing.T) {
	chain := effect.NewChain(effect.DefaultParams())
	var compiled []string
	ok := func(p *effect.Program) (*ebiten.Shader, error) {
		compiled = append(compiled, p.Name())
		return nil, nil
	}
	assert.Len(t, chainShaders(chain, ok), len(chain))
	assert.Equal(t, []string{chain[0].Program().Name(), chain[1].Program().Name(), chain[2].Program().Name()}, compiled)

	broken := chain[1].Program()
	failTwist := func(p *effect.Program) (*ebiten.Shader, error) {
		if p == broken {
			return nil, errors.New("compile twist shader: boom")
		}
		return nil, nil
	}
	assert.Nil(t, chainShaders(chain, failTwist), "a panel with a broken stage gets no effects")

	assert.Empty(t, chainShaders(nil, ok))
}

func TestStretch(t *testing.T) {
	g := stretch(1024, 640, 512, 960)
	x, y := g.Apply(1024, 640)
	assert.InDelta(t, 512, x, 1e-9)
	assert.InDelta(t, 960, y, 1e-9)
	x, y = g.Apply(512, 320)
	assert.InDelta(t, 256, x, 1e-9)
	assert.InDelta(t, 480, y, 1e-9)

	id := stretch(0, 0, 800, 600)
	x, y = id.Apply(3, 4)
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 4.0, y)
}
