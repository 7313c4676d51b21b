// ABOUTME: Tests for timeline-facing stream playback
// ABOUTME: Tests lazy finalize, single handle, drift skips and stop semantics
package playback

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/Resonate-Protocol/swfsound-go/pkg/audio"
	"github.com/Resonate-Protocol/swfsound-go/pkg/sound"
	avsync "github.com/Resonate-Protocol/swfsound-go/pkg/sync"
)

// 44100 Hz mono 16-bit: one block of 1764 samples per frame at 25 fps
const (
	testSamplesPerFrame = 1764
	testBlockSize       = testSamplesPerFrame * 2
)

func pcmHead() sound.StreamHead {
	return sound.StreamHead{
		Compression:  audio.PCMLittleEndian,
		Rate:         3,
		Size:         sound.SoundSize16Bit,
		SamplesCount: testSamplesPerFrame,
	}
}

func newPCMStream(t *testing.T, frames int) (*Stream, *fakeFactory, *Manager) {
	t.Helper()
	f := &fakeFactory{}
	m := NewManager()
	s := NewStream(pcmHead(), Config{Factory: f, Manager: m})
	for i := 0; i < frames; i++ {
		s.AppendBlock(i, bytes.Repeat([]byte{byte(i)}, testBlockSize))
	}
	return s, f, m
}

func TestPlayFrameFinalizesLazilyOnce(t *testing.T) {
	s, f, _ := newPCMStream(t, 3)

	if f.calls != 0 {
		t.Fatalf("expected no sound before first PlayFrame, got %d", f.calls)
	}

	for frame := 0; frame < 3; frame++ {
		s.PlayFrame(frame)
	}

	if f.calls != 1 {
		t.Errorf("expected exactly one sound handle, got %d", f.calls)
	}

	first, ok := s.Finalize()
	if !ok {
		t.Fatal("expected supported stream to finalize")
	}
	second, _ := s.Finalize()
	if &first.Data[0] != &second.Data[0] {
		t.Error("expected repeated Finalize to return the same buffer")
	}
	if f.calls != 1 {
		t.Errorf("expected Finalize to keep the handle, got %d creations", f.calls)
	}
}

func TestFinalizeConcatenatesBlocksIntoWave(t *testing.T) {
	s, f, _ := newPCMStream(t, 3)
	s.PlayFrame(0)

	p := f.last().packaged
	if p.MimeType != audio.MimeWAV {
		t.Errorf("expected %s, got %s", audio.MimeWAV, p.MimeType)
	}
	if len(p.Data) != 44+3*testBlockSize {
		t.Fatalf("expected %d bytes, got %d", 44+3*testBlockSize, len(p.Data))
	}
	if got := binary.LittleEndian.Uint32(p.Data[24:]); got != 44100 {
		t.Errorf("expected rate 44100, got %d", got)
	}
	for frame := 0; frame < 3; frame++ {
		off := 44 + frame*testBlockSize
		if p.Data[off] != byte(frame) || p.Data[off+testBlockSize-1] != byte(frame) {
			t.Errorf("block %d not at offset %d", frame, off)
		}
	}
}

func TestPlayFrameStartsOnlyWhenIdle(t *testing.T) {
	s, f, _ := newPCMStream(t, 3)

	s.PlayFrame(0)
	snd := f.last()
	s.PlayFrame(1)

	if len(snd.plays) != 1 {
		t.Fatalf("expected one Play call while playing, got %d", len(snd.plays))
	}

	snd.playing = false
	s.PlayFrame(2)

	if len(snd.plays) != 2 {
		t.Fatalf("expected restart when idle, got %d Play calls", len(snd.plays))
	}
	target, _ := s.Sound().TimeForFrame(2)
	if snd.plays[1] != target {
		t.Errorf("expected restart at %f, got %f", target, snd.plays[1])
	}
}

func TestPlayFrameSkips(t *testing.T) {
	tests := []struct {
		name     string
		offset   float64
		expected int
	}{
		{"in sync", 0, 0},
		{"audio ahead", 0.1, 2},
		{"audio behind", -0.1, -2},
		{"audio slightly behind", -0.01, 0},
		{"audio slightly ahead", 0.01, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, f, _ := newPCMStream(t, 10)
			s.PlayFrame(0)

			target, _ := s.Sound().TimeForFrame(5)
			f.last().time = target + tt.offset

			if got := s.PlayFrame(5); got != tt.expected {
				t.Errorf("expected skip %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestPlayFrameSkipMatchesDriftSign(t *testing.T) {
	s, f, _ := newPCMStream(t, 50)
	s.PlayFrame(0)
	snd := f.last()

	for frame := 1; frame < 50; frame++ {
		target, _ := s.Sound().TimeForFrame(frame)
		drift := math.Sin(float64(frame)) * 0.3
		snd.time = target + drift

		skip := s.PlayFrame(frame)
		if drift < 0 && skip > 0 || drift > 0 && skip < 0 {
			t.Errorf("frame %d: drift %f returned skip %d", frame, drift, skip)
		}
	}
}

func TestPlayFrameWithoutSeekEntry(t *testing.T) {
	s, f, _ := newPCMStream(t, 2)

	if got := s.PlayFrame(7); got != 0 {
		t.Errorf("expected 0 for unindexed frame, got %d", got)
	}
	if f.calls != 0 {
		t.Errorf("expected no finalize for unindexed frame, got %d sounds", f.calls)
	}
}

func TestStoppedStreamIsSilent(t *testing.T) {
	s, f, m := newPCMStream(t, 3)
	s.PlayFrame(0)
	snd := f.last()

	if m.Len() != 1 {
		t.Fatalf("expected 1 active sound, got %d", m.Len())
	}

	s.SetStopped(true)

	if !snd.closed {
		t.Error("expected SetStopped(true) to release the handle")
	}
	if m.Len() != 0 {
		t.Errorf("expected released handle to leave the manager, got %d", m.Len())
	}
	if !s.Stopped() {
		t.Error("expected Stopped to report true")
	}

	snd.time = 100
	if got := s.PlayFrame(1); got != 0 {
		t.Errorf("expected 0 from stopped stream, got %d", got)
	}
	if len(f.sounds) != 1 {
		t.Errorf("expected no new handle while stopped, got %d", len(f.sounds))
	}
}

func TestResumeAfterStopCreatesNewHandle(t *testing.T) {
	s, f, _ := newPCMStream(t, 3)
	s.PlayFrame(0)
	s.SetStopped(true)
	s.SetStopped(false)

	s.PlayFrame(1)

	if len(f.sounds) != 2 {
		t.Fatalf("expected a second handle after resume, got %d", len(f.sounds))
	}
	if !f.sounds[0].closed {
		t.Error("expected the first handle to stay closed")
	}
	if !f.last().playing {
		t.Error("expected the new handle to be playing")
	}
}

func TestStopPausesHandle(t *testing.T) {
	s, f, _ := newPCMStream(t, 3)
	s.PlayFrame(0)
	s.Stop()

	snd := f.last()
	if snd.stops != 1 || snd.playing {
		t.Errorf("expected one stop and idle sound, got stops=%d playing=%v", snd.stops, snd.playing)
	}
	if snd.closed {
		t.Error("expected Stop to keep the handle")
	}
}

func TestFailedSoundCreationRetries(t *testing.T) {
	f := &fakeFactory{failures: 2}
	s := NewStream(pcmHead(), Config{Factory: f})
	s.AppendBlock(0, make([]byte, testBlockSize))
	s.AppendBlock(1, make([]byte, testBlockSize))

	if got := s.PlayFrame(0); got != 0 {
		t.Errorf("expected 0 without a handle, got %d", got)
	}
	if len(f.sounds) != 0 {
		t.Fatalf("expected no handle after failure, got %d", len(f.sounds))
	}

	s.PlayFrame(1)
	if len(f.sounds) != 1 {
		t.Fatalf("expected retry to create a handle, got %d", len(f.sounds))
	}
	if !f.last().playing {
		t.Error("expected the retried handle to be playing")
	}
}

func TestPlayFrameWithoutSoundSkipsNothing(t *testing.T) {
	tests := []struct {
		name    string
		factory *fakeFactory
	}{
		{"no factory", nil},
		{"failing factory", &fakeFactory{failures: 1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Config{}
			if tt.factory != nil {
				config.Factory = tt.factory
			}
			s := NewStream(pcmHead(), config)
			for frame := 0; frame < 20; frame++ {
				s.AppendBlock(frame, make([]byte, testBlockSize))
			}

			// frame 10 starts 0.4s in; element time 0 must not read as lag
			for _, frame := range []int{10, 19} {
				if got := s.PlayFrame(frame); got != 0 {
					t.Errorf("frame %d: expected 0, got %d", frame, got)
				}
			}
			if ticks := s.Stats().Ticks; ticks != 0 {
				t.Errorf("expected no drift samples, got %d", ticks)
			}
			if tt.factory != nil && len(tt.factory.sounds) != 0 {
				t.Errorf("expected no handles, got %d", len(tt.factory.sounds))
			}
		})
	}
}

func TestBigEndianStreamIsSwapped(t *testing.T) {
	f := &fakeFactory{}
	head := pcmHead()
	head.Compression = audio.PCMBigEndian
	s := NewStream(head, Config{Factory: f})
	s.AppendBlock(0, []byte{0x12, 0x34, 0x56, 0x78})
	s.PlayFrame(0)

	data := f.last().packaged.Data[44:]
	expected := []byte{0x34, 0x12, 0x78, 0x56}
	if !bytes.Equal(data, expected) {
		t.Errorf("expected %x, got %x", expected, data)
	}
}

func TestMP3StreamPassesPayloadThrough(t *testing.T) {
	f := &fakeFactory{}
	s := NewStream(sound.StreamHead{
		Compression:  audio.MP3,
		Rate:         3,
		Size:         sound.SoundSize16Bit,
		Stereo:       true,
		SamplesCount: 1152,
	}, Config{Factory: f})

	s.AppendBlock(0, []byte{0x80, 0x04, 0x00, 0x00, 0xFF, 0xFB})
	s.AppendBlock(1, []byte{0x80, 0x04, 0x10, 0x00, 0xAA})
	s.PlayFrame(0)

	p := f.last().packaged
	if p.MimeType != audio.MimeMPEG {
		t.Errorf("expected %s, got %s", audio.MimeMPEG, p.MimeType)
	}
	if !bytes.Equal(p.Data, []byte{0xFF, 0xFB, 0xAA}) {
		t.Errorf("expected raw payloads, got %x", p.Data)
	}

	// MP3 seek offsets are not divided by the channel count
	target, ok := s.Sound().TimeForFrame(1)
	if !ok {
		t.Fatal("expected frame 1 to be indexed")
	}
	if expected := float64(1152+16) / 44100; math.Abs(target-expected) > 1e-12 {
		t.Errorf("expected %f, got %f", expected, target)
	}
}

func TestUnsupportedStreamIsInert(t *testing.T) {
	f := &fakeFactory{}
	head := pcmHead()
	head.Compression = audio.Speex
	s := NewStream(head, Config{Factory: f})

	s.AppendBlock(0, make([]byte, 32))
	if got := s.PlayFrame(0); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if _, ok := s.Finalize(); ok {
		t.Error("expected unsupported stream not to finalize")
	}
	s.Stop()
	s.SetStopped(true)
	if f.calls != 0 {
		t.Errorf("expected no sounds, got %d", f.calls)
	}
}

func TestStreamStats(t *testing.T) {
	s, f, _ := newPCMStream(t, 10)
	s.PlayFrame(0)

	target, _ := s.Sound().TimeForFrame(3)
	f.last().time = target + 0.1
	s.PlayFrame(3)

	stats := s.Stats()
	if stats.Ticks != 2 {
		t.Errorf("expected 2 ticks, got %d", stats.Ticks)
	}
	if stats.LastSkip != 2 {
		t.Errorf("expected last skip 2, got %d", stats.LastSkip)
	}
	if stats.Quality != avsync.QualityDegraded {
		t.Errorf("expected degraded quality, got %v", stats.Quality)
	}
}

func TestDefaultFrameRate(t *testing.T) {
	f := &fakeFactory{}
	s := NewStream(pcmHead(), Config{Factory: f})
	if s.frameRate != avsync.DefaultFrameRate {
		t.Errorf("expected %f, got %f", avsync.DefaultFrameRate, s.frameRate)
	}
}
