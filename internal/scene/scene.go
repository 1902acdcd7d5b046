// Package scene assembles the backdrop: it turns one artwork texture into a set
// of panels with their own effect chains, steps them every frame and tears the
// set down when its animation finishes or a newer artwork replaces it.
package scene

import (
	"github.com/iburimskiy/lyrics-backdrop/internal/animation"
	"github.com/iburimskiy/lyrics-backdrop/internal/effect"
	"github.com/iburimskiy/lyrics-backdrop/internal/frame"
	"github.com/iburimskiy/lyrics-backdrop/internal/logging"
)

// set is the panels created for one mount.
type set struct {
	generation uint64
	texture    *Texture
	panels     []*Panel
	driver     *animation.Driver
	transforms [animation.PanelCount]animation.Transform
	frames     int
}

// Scene owns at most one live panel set. Each Mount starts a new generation;
// only the set of the current generation is ever stepped.
type Scene struct {
	params     effect.Params
	generation uint64
	current    *set
}

func New(params effect.Params) *Scene {
	return &Scene{params: params}
}

// Generation is the generation of the last Mount, zero before the first.
func (s *Scene) Generation() uint64 { return s.generation }

// Active reports whether a panel set is live.
func (s *Scene) Active() bool { return s.current != nil }

// Mount replaces the live set with fresh panels showing tex and returns the new
// generation. Each panel takes its own reference on tex.
func (s *Scene) Mount(tex *Texture) uint64 {
	if s.current != nil {
		logging.Logger().Debug("panel set superseded",
			"generation", s.current.generation, "frames", s.current.frames)
		s.teardown()
	}
	s.generation++

	st := &set{
		generation: s.generation,
		texture:    tex,
		driver:     animation.NewDriver(),
	}
	for i := range animation.PanelCount {
		st.panels = append(st.panels, &Panel{
			Index:     i,
			Texture:   tex.Acquire(),
			Geometry:  quad,
			Chain:     effect.NewChain(s.params),
			transform: &st.transforms[i],
		})
	}
	s.current = st

	w, h := tex.Size()
	logging.Logger().Info("panel set mounted", "generation", st.generation, "artwork", [2]int{w, h})
	return st.generation
}

// Update runs one frame: uniforms first, then the animation driver. It returns
// true on the frame the live set finishes and is torn down.
func (s *Scene) Update(f frame.Context) bool {
	st := s.current
	if st == nil {
		return false
	}
	applyLayout(f, st.panels)
	for _, p := range st.panels {
		p.Chain.Update(f)
	}
	if !st.driver.Step(f, &st.transforms) {
		logging.Logger().Info("panel set finished", "generation", st.generation, "frames", st.frames+1)
		s.teardown()
		return true
	}
	st.frames++
	return false
}

// Panels returns the live panels back to front, or nil when idle.
func (s *Scene) Panels() []*Panel {
	if s.current == nil {
		return nil
	}
	return s.current.panels
}

// Close drops the live set, if any.
func (s *Scene) Close() {
	s.teardown()
}

func (s *Scene) teardown() {
	st := s.current
	if st == nil {
		return
	}
	for _, p := range st.panels {
		p.Texture.Release()
		p.Texture = nil
	}
	st.panels = nil
	s.current = nil
}
