// ABOUTME: Timeline-facing streaming sound
// ABOUTME: Appends blocks per frame and returns frame-skip corrections on playback
package playback

import (
	"github.com/Resonate-Protocol/swfsound-go/pkg/audio"
	"github.com/Resonate-Protocol/swfsound-go/pkg/audio/output"
	"github.com/Resonate-Protocol/swfsound-go/pkg/sound"
	avsync "github.com/Resonate-Protocol/swfsound-go/pkg/sync"
)

// Config holds stream playback options
type Config struct {
	FrameRate float64        // animation frames per second, default 25
	Factory   output.Factory // creates the platform sound on finalize
	Manager   *Manager       // optional active-sound registry
}

// Stream is one streaming sound attached to a timeline.
// It is driven from the timeline goroutine and is not safe for concurrent use.
type Stream struct {
	sound     *sound.Stream
	adapter   Adapter
	frameRate float64
	stopped   bool
	monitor   *avsync.DriftMonitor
}

// NewStream creates the stream for a head tag. Unsupported heads produce a
// stream whose operations are no-ops.
func NewStream(head sound.StreamHead, config Config) *Stream {
	if config.FrameRate <= 0 {
		config.FrameRate = avsync.DefaultFrameRate
	}

	snd := sound.FromTag(head)
	s := &Stream{
		sound:     snd,
		frameRate: config.FrameRate,
		monitor:   avsync.NewDriftMonitor(config.FrameRate),
	}
	if snd.Supported() {
		s.adapter = NewAdapter(snd, config.Factory, config.Manager)
	}
	return s
}

// Sound returns the underlying decode state
func (s *Stream) Sound() *sound.Stream {
	return s.sound
}

// AppendBlock decodes the block belonging to frame and buffers it
func (s *Stream) AppendBlock(frame int, block []byte) {
	decoded, ok := s.sound.AppendBlock(frame, block)
	if !ok || s.adapter == nil {
		return
	}
	s.adapter.QueueData(decoded)
}

// PlayFrame keeps audio running for frame and returns how many frames the
// timeline should skip: positive when audio is ahead, negative when it
// lags, 0 when stopped, when no block starts at frame or when the sound
// could not be started.
func (s *Stream) PlayFrame(frame int) int {
	if s.stopped || s.adapter == nil {
		return 0
	}
	if _, ok := s.sound.SeekIndex().Lookup(frame); !ok {
		return 0
	}

	s.adapter.Finalize()

	target, ok := s.sound.TimeForFrame(frame)
	if !ok {
		return 0
	}

	if !s.adapter.IsPlaying() {
		s.adapter.Play(target)
		// no device sound to follow
		if !s.adapter.IsPlaying() {
			return 0
		}
	}

	element := s.adapter.CurrentTime()
	skip := avsync.FramesToSkip(element, target, s.frameRate)
	s.monitor.Record(element-target, skip)
	return skip
}

// Finalize packages the buffered blocks; repeated calls return the same buffer
func (s *Stream) Finalize() (audio.Packaged, bool) {
	if s.adapter == nil {
		return audio.Packaged{}, false
	}
	return s.adapter.Finalize(), true
}

// Stop halts playback; the next PlayFrame restarts it
func (s *Stream) Stop() {
	if s.adapter != nil {
		s.adapter.Stop()
	}
}

// SetStopped marks the stream stopped. Stopping releases the sound handle.
func (s *Stream) SetStopped(stopped bool) {
	s.stopped = stopped
	if stopped && s.adapter != nil {
		s.adapter.Release()
	}
}

// Stopped reports whether the stream was stopped by the timeline
func (s *Stream) Stopped() bool {
	return s.stopped
}

// Stats returns the drift statistics gathered by PlayFrame
func (s *Stream) Stats() avsync.Stats {
	return s.monitor.Stats()
}
