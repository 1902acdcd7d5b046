// Package frame carries the per-frame view of the environment: viewport size and
// the reduced-motion accessibility preference.
package frame

import (
	"os"
	"strconv"
)

// ReducedMotionEnv is the environment variable consulted by EnvProbe.
const ReducedMotionEnv = "REDUCED_MOTION"

// Context is handed to every per-frame driver. It is built fresh each frame.
type Context struct {
	Width         float64
	Height        float64
	ReducedMotion bool
}

// Probe reports the reduced-motion preference. It is asked once per frame.
type Probe interface {
	ReducedMotion() bool
}

// EnvProbe reads the preference from REDUCED_MOTION on every call, so toggling
// the variable (or the Forced flag) takes effect on the next frame.
type EnvProbe struct {
	Forced bool
}

func (p EnvProbe) ReducedMotion() bool {
	if p.Forced {
		return true
	}
	v, ok := os.LookupEnv(ReducedMotionEnv)
	if !ok {
		return false
	}
	on, err := strconv.ParseBool(v)
	return err == nil && on
}

// New builds a Context for the given viewport, querying probe when non-nil.
func New(width, height int, probe Probe) Context {
	c := Context{Width: float64(width), Height: float64(height)}
	if probe != nil {
		c.ReducedMotion = probe.ReducedMotion()
	}
	return c
}
