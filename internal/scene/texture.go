package scene

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Texture is the artwork shared by every panel of a set. The GPU copy is made
// on first use and freed when the last reference is released.
type Texture struct {
	src  image.Image
	img  *ebiten.Image
	refs int
}

// NewTexture wraps src with one reference held by the caller.
func NewTexture(src image.Image) *Texture {
	return &Texture{src: src, refs: 1}
}

func (t *Texture) Acquire() *Texture {
	t.refs++
	return t
}

// Release drops one reference. The last release frees the GPU image.
func (t *Texture) Release() {
	if t.refs == 0 {
		return
	}
	t.refs--
	if t.refs == 0 && t.img != nil {
		t.img.Deallocate()
		t.img = nil
	}
}

func (t *Texture) Refs() int { return t.refs }

func (t *Texture) Size() (int, int) {
	b := t.src.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the uploaded texture, or nil once every reference is gone.
func (t *Texture) Image() *ebiten.Image {
	if t.refs == 0 {
		return nil
	}
	if t.img == nil {
		t.img = ebiten.NewImageFromImage(t.src)
	}
	return t.img
}
