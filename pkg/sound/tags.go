// ABOUTME: Sound tag inputs supplied by the container parser
// ABOUTME: Mirrors the header fields of static and streaming sound tags
package sound

import "github.com/Resonate-Protocol/swfsound-go/pkg/audio"

// Sample size field values
const (
	SoundSize8Bit  = 8
	SoundSize16Bit = 16
)

// SoundTag is a fully resident sound resource
type SoundTag struct {
	ID           int
	Format       audio.SoundFormat
	Rate         int // index into the sample-rate table, 0..3
	Size         int // 8 or 16
	Stereo       bool
	SamplesCount int // sample frames
	Data         []byte
}

// StreamHead describes a streaming sound; blocks arrive separately
type StreamHead struct {
	Compression  audio.SoundFormat
	Rate         int
	Size         int
	Stereo       bool
	SamplesCount int // sample frames per block
}

func channelCount(stereo bool) int {
	if stereo {
		return 2
	}
	return 1
}
