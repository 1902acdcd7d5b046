package player

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSilence(t *testing.T, samples int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "silence.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Take(samples, beep.Silence(-1)), format))
	return path
}

func TestDecodeWav(t *testing.T) {
	path := writeSilence(t, 8000)
	s, format, err := Decode(path)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, beep.SampleRate(8000), format.SampleRate)
	assert.Equal(t, 8000, s.Len())
	assert.Equal(t, time.Second, format.SampleRate.D(s.Len()))
}

func TestDecodeUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("la la la"), 0o644))

	_, _, err := Decode(path)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestDecodeMissing(t *testing.T) {
	_, _, err := Decode(filepath.Join(t.TempDir(), "gone.mp3"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestIdlePlayer(t *testing.T) {
	p := New()
	assert.Zero(t, p.Duration())
	assert.False(t, p.TogglePause())
	assert.False(t, p.Paused())
	p.Close()
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00", FormatDuration(0))
	assert.Equal(t, "03:07", FormatDuration(3*time.Minute+7*time.Second))
	assert.Equal(t, "61:01", FormatDuration(time.Hour+time.Minute+time.Second))
}
