// Package player plays the track the backdrop is shown for.
package player

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/lyrics-backdrop/internal/logging"
)

var ErrUnsupported = errors.New("player: unsupported file type")

// Decode opens path and picks a decoder from its extension.
// The returned streamer owns the file; closing it closes the file.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return streamer, format, nil
}

// Player wraps the beep speaker for a single track at a time.
type Player struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	initDone bool
	finished atomic.Bool
}

func New() *Player {
	return &Player{}
}

// Play stops whatever is playing and starts path.
func (p *Player) Play(path string) error {
	streamer, format, err := Decode(path)
	if err != nil {
		return err
	}

	bufferSize := format.SampleRate.N(time.Second / 20)
	if !p.initDone || p.format.SampleRate != format.SampleRate {
		if p.initDone {
			speaker.Clear()
		}
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		p.initDone = true
	} else {
		speaker.Clear()
	}
	p.closeStreamer()

	p.streamer = streamer
	p.format = format
	p.ctrl = &beep.Ctrl{Streamer: streamer}
	p.finished.Store(false)

	logging.Logger().Info("playing", "path", path, "duration", FormatDuration(p.Duration()))
	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		p.finished.Store(true)
	})))
	return nil
}

// Duration is the length of the current track, zero when idle.
func (p *Player) Duration() time.Duration {
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

func (p *Player) Finished() bool { return p.finished.Load() }

// TogglePause flips the pause state and returns it. Without a track it does nothing.
func (p *Player) TogglePause() bool {
	if p.ctrl == nil {
		return false
	}
	speaker.Lock()
	p.ctrl.Paused = !p.ctrl.Paused
	paused := p.ctrl.Paused
	speaker.Unlock()
	return paused
}

func (p *Player) Paused() bool {
	if p.ctrl == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.ctrl.Paused
}

// Close stops playback and releases the track.
func (p *Player) Close() {
	if p.initDone {
		speaker.Clear()
	}
	p.closeStreamer()
	p.ctrl = nil
}

func (p *Player) closeStreamer() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
}

// FormatDuration formats a duration as MM:SS.
func FormatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
