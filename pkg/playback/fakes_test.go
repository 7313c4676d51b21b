// ABOUTME: Test doubles for platform sounds
// ABOUTME: Records play/stop calls and lets tests set the playback clock
package playback

import (
	"errors"
	"fmt"

	"github.com/Resonate-Protocol/swfsound-go/pkg/audio"
	"github.com/Resonate-Protocol/swfsound-go/pkg/audio/output"
)

type fakeSound struct {
	id       string
	packaged audio.Packaged
	time     float64
	playing  bool
	plays    []float64
	stops    int
	closed   bool
}

func (s *fakeSound) ID() string { return s.id }

func (s *fakeSound) Play(from float64) error {
	s.plays = append(s.plays, from)
	s.time = from
	s.playing = true
	return nil
}

func (s *fakeSound) Stop() error {
	s.stops++
	s.playing = false
	return nil
}

func (s *fakeSound) CurrentTime() float64 { return s.time }
func (s *fakeSound) IsPlaying() bool      { return s.playing }

func (s *fakeSound) Close() error {
	s.closed = true
	s.playing = false
	return nil
}

type fakeFactory struct {
	failures int // NewSound calls to fail before succeeding
	calls    int
	sounds   []*fakeSound
}

func (f *fakeFactory) NewSound(p audio.Packaged) (output.Sound, error) {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("device unavailable")
	}
	snd := &fakeSound{id: fmt.Sprintf("sound-%d", f.calls), packaged: p}
	f.sounds = append(f.sounds, snd)
	return snd, nil
}

func (f *fakeFactory) last() *fakeSound {
	if len(f.sounds) == 0 {
		return nil
	}
	return f.sounds[len(f.sounds)-1]
}
