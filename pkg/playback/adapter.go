// ABOUTME: Playback adapters buffering decoded blocks into one platform sound
// ABOUTME: Wave variant packages PCM into WAVE, mp3 variant passes bytes through
package playback

import (
	"log"

	"github.com/Resonate-Protocol/swfsound-go/pkg/audio"
	"github.com/Resonate-Protocol/swfsound-go/pkg/audio/encode"
	"github.com/Resonate-Protocol/swfsound-go/pkg/audio/output"
	"github.com/Resonate-Protocol/swfsound-go/pkg/sound"
)

// Adapter buffers the blocks of one stream and drives its platform sound
type Adapter interface {
	// QueueData buffers one decoded block; ignored once finalized
	QueueData(frame audio.DecodedFrame)

	// Finalize packages the buffered blocks and creates the sound handle.
	// Later calls return the same packaged buffer.
	Finalize() audio.Packaged

	Play(from float64)
	Stop()
	CurrentTime() float64
	IsPlaying() bool

	// Release stops and closes the sound handle
	Release()
}

type packager func(data []byte) audio.Packaged

// decoderAdapter is the adapter for streams with a bound block decoder
type decoderAdapter struct {
	streamID int64
	accept   func(frame audio.DecodedFrame) bool
	pack     packager

	factory output.Factory
	manager *Manager

	queued    [][]byte
	finalized bool
	packaged  audio.Packaged
	handle    output.Sound
}

// NewAdapter returns the adapter variant for the stream's format
func NewAdapter(s *sound.Stream, factory output.Factory, manager *Manager) Adapter {
	a := &decoderAdapter{
		streamID: s.ID,
		factory:  factory,
		manager:  manager,
	}

	if s.IsMP3() {
		a.accept = func(frame audio.DecodedFrame) bool { return frame.Data != nil }
		a.pack = func(data []byte) audio.Packaged {
			return audio.Packaged{Data: data, MimeType: audio.MimeMPEG}
		}
		return a
	}

	rate, channels, bits := s.SampleRate, s.Channels, s.ContainerBits()
	swap := s.Format == audio.PCMBigEndian && bits == 16
	a.accept = func(frame audio.DecodedFrame) bool { return frame.PCM != nil }
	a.pack = func(data []byte) audio.Packaged {
		return encode.PackageWave(data, rate, channels, bits, swap)
	}
	return a
}

func (a *decoderAdapter) QueueData(frame audio.DecodedFrame) {
	if a.finalized {
		log.Printf("Warning: stream %d already finalized, dropping block", a.streamID)
		return
	}
	if !a.accept(frame) {
		log.Printf("Warning: stream %d received a block without playable data", a.streamID)
		return
	}
	a.queued = append(a.queued, frame.Data)
}

func (a *decoderAdapter) Finalize() audio.Packaged {
	if a.finalized {
		return a.packaged
	}

	total := 0
	for _, b := range a.queued {
		total += len(b)
	}
	data := make([]byte, total)
	offset := 0
	for _, b := range a.queued {
		offset += copy(data[offset:], b)
	}

	a.packaged = a.pack(data)
	a.queued = nil
	a.finalized = true

	a.ensureHandle()
	return a.packaged
}

// ensureHandle creates the sound handle if there is none yet.
// A failed creation is retried on the next call.
func (a *decoderAdapter) ensureHandle() bool {
	if a.handle != nil {
		return true
	}
	if !a.finalized || a.factory == nil {
		return false
	}

	snd, err := a.factory.NewSound(a.packaged)
	if err != nil {
		log.Printf("Warning: stream %d: failed to create sound: %v", a.streamID, err)
		return false
	}
	a.setHandle(snd)
	return true
}

// setHandle replaces the current handle, stopping the old one first
func (a *decoderAdapter) setHandle(snd output.Sound) {
	a.closeHandle()
	a.handle = snd
}

func (a *decoderAdapter) closeHandle() {
	if a.handle == nil {
		return
	}
	if err := a.handle.Stop(); err != nil {
		log.Printf("Warning: stream %d: failed to stop sound: %v", a.streamID, err)
	}
	if a.manager != nil {
		a.manager.Remove(a.handle)
	}
	if err := a.handle.Close(); err != nil {
		log.Printf("Warning: stream %d: failed to close sound: %v", a.streamID, err)
	}
	a.handle = nil
}

func (a *decoderAdapter) Play(from float64) {
	if !a.ensureHandle() {
		return
	}
	if err := a.handle.Play(from); err != nil {
		log.Printf("Warning: stream %d: play failed: %v", a.streamID, err)
		return
	}
	if a.manager != nil {
		a.manager.AddActive(a.handle)
	}
}

func (a *decoderAdapter) Stop() {
	if a.handle == nil {
		return
	}
	if err := a.handle.Stop(); err != nil {
		log.Printf("Warning: stream %d: failed to stop sound: %v", a.streamID, err)
	}
}

func (a *decoderAdapter) CurrentTime() float64 {
	if a.handle == nil {
		return 0
	}
	return a.handle.CurrentTime()
}

func (a *decoderAdapter) IsPlaying() bool {
	return a.handle != nil && a.handle.IsPlaying()
}

func (a *decoderAdapter) Release() {
	a.closeHandle()
}
