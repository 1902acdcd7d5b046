package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvProbe(t *testing.T) {
	t.Setenv(ReducedMotionEnv, "")
	assert.False(t, EnvProbe{}.ReducedMotion())

	t.Setenv(ReducedMotionEnv, "1")
	assert.True(t, EnvProbe{}.ReducedMotion())

	// re-read on every call
	t.Setenv(ReducedMotionEnv, "false")
	assert.False(t, EnvProbe{}.ReducedMotion())

	assert.True(t, EnvProbe{Forced: true}.ReducedMotion())
}

type fixedProbe bool

func (p fixedProbe) ReducedMotion() bool { return bool(p) }

func TestNew(t *testing.T) {
	c := New(1000, 800, fixedProbe(true))
	assert.Equal(t, Context{Width: 1000, Height: 800, ReducedMotion: true}, c)

	assert.False(t, New(10, 10, nil).ReducedMotion)
}
