// ABOUTME: Oto-based platform sound implementation
// ABOUTME: Plays packaged buffers on the audio device through a shared oto context
package output

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/Resonate-Protocol/swfsound-go/pkg/audio"
	"github.com/Resonate-Protocol/swfsound-go/pkg/audio/resample"
	"github.com/ebitengine/oto/v3"
	"github.com/google/uuid"
)

const (
	deviceSampleRate = 44100
	deviceChannels   = 2
	deviceFrameSize  = deviceChannels * 2
)

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

// oto only allows one context per process
func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   deviceSampleRate,
			ChannelCount: deviceChannels,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
			log.Printf("Audio output initialized: %dHz, %d channels", deviceSampleRate, deviceChannels)
		}
	})
	return globalOtoCtx, otoInitErr
}

// OtoFactory creates device-backed sounds
type OtoFactory struct {
	ctx *oto.Context
}

// NewOtoFactory opens the audio device
func NewOtoFactory() (*OtoFactory, error) {
	ctx, err := initOto()
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	return &OtoFactory{ctx: ctx}, nil
}

// NewSound decodes the packaged buffer and converts it to the device format
func (f *OtoFactory) NewSound(p audio.Packaged) (Sound, error) {
	pcm, err := Decode(p)
	if err != nil {
		return nil, err
	}

	return &otoSound{
		id:   uuid.NewString(),
		ctx:  f.ctx,
		data: toDevice(pcm),
	}, nil
}

// toDevice converts decoded samples to 16-bit LE stereo at the device rate
func toDevice(pcm *PCM) []byte {
	stereo := pcm.Samples
	switch pcm.Channels {
	case 1:
		stereo = make([]int16, len(pcm.Samples)*2)
		for i, s := range pcm.Samples {
			stereo[i*2] = s
			stereo[i*2+1] = s
		}
	case deviceChannels:
	default:
		// keep the first two channels
		frames := len(pcm.Samples) / pcm.Channels
		stereo = make([]int16, frames*2)
		for i := 0; i < frames; i++ {
			stereo[i*2] = pcm.Samples[i*pcm.Channels]
			stereo[i*2+1] = pcm.Samples[i*pcm.Channels+1]
		}
	}

	if pcm.SampleRate != deviceSampleRate && pcm.SampleRate > 0 {
		stereo = resample.New(pcm.SampleRate, deviceSampleRate, deviceChannels).Convert(stereo)
	}

	out := make([]byte, len(stereo)*2)
	for i, s := range stereo {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

// countingReader wraps an io.Reader and tracks bytes read.
type countingReader struct {
	reader io.Reader
	pos    int64
	mu     sync.Mutex
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.reader.Read(p)
	cr.mu.Lock()
	cr.pos += int64(n)
	cr.mu.Unlock()
	return n, err
}

func (cr *countingReader) Pos() int64 {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.pos
}

type otoSound struct {
	id      string
	ctx     *oto.Context
	data    []byte
	player  *oto.Player
	counter *countingReader
	mu      sync.Mutex
	closed  bool
}

func (s *otoSound) ID() string { return s.id }

func (s *otoSound) Play(from float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("sound %s is closed", s.id)
	}

	offset := int64(from*deviceSampleRate) * deviceFrameSize
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(s.data)) {
		offset = int64(len(s.data))
	}

	s.closePlayer()
	s.counter = &countingReader{reader: bytes.NewReader(s.data[offset:]), pos: offset}
	s.player = s.ctx.NewPlayer(s.counter)
	s.player.Play()
	return nil
}

func (s *otoSound) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player != nil {
		s.player.Pause()
	}
	return nil
}

func (s *otoSound) CurrentTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player == nil {
		return 0
	}
	// bytes handed to the device but not yet heard
	played := s.counter.Pos() - int64(s.player.BufferedSize())
	if played < 0 {
		played = 0
	}
	return float64(played/deviceFrameSize) / deviceSampleRate
}

func (s *otoSound) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.player != nil && s.player.IsPlaying()
}

func (s *otoSound) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closePlayer()
	s.closed = true
	return nil
}

func (s *otoSound) closePlayer() {
	if s.player == nil {
		return
	}
	s.player.Pause()
	if err := s.player.Close(); err != nil {
		log.Printf("Warning: failed to close player for sound %s: %v", s.id, err)
	}
	s.player = nil
}
