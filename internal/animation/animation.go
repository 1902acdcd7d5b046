// Package animation drives the backdrop panels: one shared progress timer, one
// rotation per panel, and the orbits of panels 2 and 3.
//
// Every call to Step is exactly one frame. The step size never depends on
// elapsed wall time.
package animation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/iburimskiy/lyrics-backdrop/internal/frame"
)

const (
	PanelCount = 4

	// ProgressStep is subtracted from the progress timer every frame.
	ProgressStep = 0.02
	// ReducedMotionVelocity replaces every panel velocity under reduced motion.
	ReducedMotionVelocity = 0.001

	orbitPhase = 0.75
	// orbitShift moves panel 3's orbit center by this fraction of the viewport.
	orbitShift = 0.1

	// progressEpsilon absorbs float drift so the timer ends on frame 1/ProgressStep.
	progressEpsilon = 1e-9
)

// Velocities are the per-panel angular velocities in rad/frame.
var Velocities = [PanelCount]float64{0.003, -0.008, -0.006, 0.004}

// Transform is the part of a panel the driver owns.
type Transform struct {
	Position mgl64.Vec2
	Rotation float64
	Opacity  float64
}

// State is the per-set animation state: progress runs from 1 down to 0.
type State struct {
	Progress  float64
	Rotations [PanelCount]float64
}

func NewState() State {
	return State{Progress: 1}
}

// Done reports whether the timer has run out.
func (s *State) Done() bool {
	return s.Progress <= 0
}

// Velocity returns the angular velocity of panel i for this frame.
func Velocity(i int, reducedMotion bool) float64 {
	if reducedMotion {
		return ReducedMotionVelocity
	}
	return Velocities[i]
}

// Step advances the state by one frame. It returns false on the frame the
// timer reaches zero, and on every call after that; rotations are left as they were.
func (s *State) Step(f frame.Context) bool {
	if s.Done() {
		return false
	}
	s.Progress -= ProgressStep
	if s.Progress <= progressEpsilon {
		s.Progress = 0
		return false
	}
	for i := range s.Rotations {
		s.Rotations[i] += Velocity(i, f.ReducedMotion)
	}
	return true
}

// Apply writes the state into the panel transforms. Panels 0 and 1 keep the
// position they already have.
func (s *State) Apply(f frame.Context, ts *[PanelCount]Transform) {
	opacity := clamp01(1 - s.Progress)
	for i := range ts {
		ts[i].Rotation = s.Rotations[i]
		ts[i].Opacity = opacity
	}
	ts[2].Position = Orbit(f, s.Rotations[2], 0)
	ts[3].Position = Orbit(f, s.Rotations[3], orbitShift)
}

// Orbit places a panel on a circle of radius width/4 around the viewport
// center shifted by shift*(width, height). The radius uses the width on both axes.
func Orbit(f frame.Context, rotation, shift float64) mgl64.Vec2 {
	r := f.Width / 4
	a := rotation * orbitPhase
	return mgl64.Vec2{
		f.Width/2 + shift*f.Width + r*math.Cos(a),
		f.Height/2 + shift*f.Height + r*math.Sin(a),
	}
}

// Driver steps a State and writes it back into transforms it owns.
type Driver struct {
	state State
}

func NewDriver() *Driver {
	return &Driver{state: NewState()}
}

func (d *Driver) State() State { return d.state }

// Step runs one frame. When it returns false the set is finished and ts is untouched.
func (d *Driver) Step(f frame.Context, ts *[PanelCount]Transform) bool {
	if !d.state.Step(f) {
		return false
	}
	d.state.Apply(f, ts)
	return true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
