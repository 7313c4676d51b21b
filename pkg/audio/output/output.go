// ABOUTME: Platform sound interface definition
// ABOUTME: Common handle interface for audio playback backends
package output

import (
	"errors"

	"github.com/Resonate-Protocol/swfsound-go/pkg/audio"
)

// ErrNotPlayable is returned when a packaged buffer cannot be decoded
var ErrNotPlayable = errors.New("packaged audio is not playable")

// Sound is a playable handle over one packaged buffer
type Sound interface {
	// ID identifies the handle for active-sound tracking
	ID() string

	// Play starts (or restarts) playback at the given time in seconds
	Play(from float64) error

	// Stop halts playback, keeping the current position
	Stop() error

	// CurrentTime returns the playback position in seconds
	CurrentTime() float64

	// IsPlaying reports whether audio is currently being produced
	IsPlaying() bool

	// Close releases the handle
	Close() error
}

// Factory creates sound handles from packaged buffers
type Factory interface {
	NewSound(p audio.Packaged) (Sound, error)
}
