// ABOUTME: Wall-clock platform sound implementation
// ABOUTME: Tracks playback time without a device, for headless runs and tests
package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/Resonate-Protocol/swfsound-go/pkg/audio"
	"github.com/google/uuid"
)

// ClockFactory creates sounds whose time advances with a clock.
// Speed scales elapsed wall time; 1.01 simulates a device running 1% fast.
type ClockFactory struct {
	Now   func() time.Time
	Speed float64
}

// NewClockFactory creates a factory on the real clock at normal speed
func NewClockFactory() *ClockFactory {
	return &ClockFactory{Now: time.Now, Speed: 1.0}
}

// NewSound reads the buffer duration; the samples are never decoded
func (f *ClockFactory) NewSound(p audio.Packaged) (Sound, error) {
	info, err := Probe(p)
	if err != nil {
		return nil, err
	}

	now := f.Now
	if now == nil {
		now = time.Now
	}
	speed := f.Speed
	if speed <= 0 {
		speed = 1.0
	}

	return &clockSound{
		id:       uuid.NewString(),
		duration: info.Duration(),
		now:      now,
		speed:    speed,
	}, nil
}

type clockSound struct {
	id       string
	duration float64
	now      func() time.Time
	speed    float64

	mu      sync.Mutex
	playing bool
	started time.Time
	from    float64
	closed  bool
}

func (s *clockSound) ID() string { return s.id }

func (s *clockSound) Play(from float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("sound %s is closed", s.id)
	}
	if from < 0 {
		from = 0
	}
	s.from = from
	s.started = s.now()
	s.playing = true
	return nil
}

func (s *clockSound) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.from = s.position()
	s.playing = false
	return nil
}

func (s *clockSound) CurrentTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.position()
}

func (s *clockSound) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.playing && s.position() < s.duration
}

func (s *clockSound) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.playing = false
	s.closed = true
	return nil
}

func (s *clockSound) position() float64 {
	t := s.from
	if s.playing {
		t += s.now().Sub(s.started).Seconds() * s.speed
	}
	if t > s.duration {
		t = s.duration
	}
	return t
}
