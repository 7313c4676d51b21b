// ABOUTME: Incremental decode state for streaming sounds
// ABOUTME: Dispatches per-frame blocks to the bound decoder and builds the seek index
package sound

import (
	"log"

	"github.com/Resonate-Protocol/swfsound-go/pkg/audio"
	"github.com/Resonate-Protocol/swfsound-go/pkg/audio/decode"
)

// Stream accumulates the blocks of one streaming sound.
// It is mutated only by AppendBlock and is not safe for concurrent use.
type Stream struct {
	ID           int64
	SampleRate   int
	Channels     int
	StreamSize   int // bits per sample
	SamplesCount int // sample frames per block, from the head tag
	Format       audio.SoundFormat

	decoder  decode.BlockDecoder
	position int64 // sample frames consumed so far
	seek     *SeekIndex
}

// FromTag creates a stream for a head tag and binds its block decoder.
// An unsupported compression leaves the stream without a decoder: it logs a
// warning once and every AppendBlock becomes a no-op.
func FromTag(head StreamHead) *Stream {
	s := &Stream{
		ID:           streamIDs.Next(),
		Channels:     channelCount(head.Stereo),
		StreamSize:   head.Size,
		SamplesCount: head.SamplesCount,
		Format:       head.Compression,
		seek:         NewSeekIndex(),
	}

	rate, ok := audio.SampleRateForIndex(head.Rate)
	if !ok {
		log.Printf("Warning: stream %d has invalid rate index %d", s.ID, head.Rate)
		return s
	}
	s.SampleRate = rate

	dec, err := decode.ForStream(head.Compression, head.Size, s.Channels, head.SamplesCount)
	if err != nil {
		log.Printf("Warning: stream %d: %v", s.ID, err)
		return s
	}
	s.decoder = dec

	return s
}

// Supported reports whether blocks of this stream can be decoded
func (s *Stream) Supported() bool {
	return s.decoder != nil
}

// IsMP3 reports whether blocks carry MP3 payloads
func (s *Stream) IsMP3() bool {
	return s.Format == audio.MP3
}

// ContainerBits returns the bits per sample of the packaged PCM
func (s *Stream) ContainerBits() int {
	if s.Format == audio.ADPCM || s.StreamSize == SoundSize16Bit {
		return 16
	}
	// any other size is decoded as 8-bit
	return 8
}

// AppendBlock decodes the block for frame and records where its audio
// starts: the position before the block plus the codec's intra-block seek.
// It returns false, indexing nothing, when the stream is unsupported.
func (s *Stream) AppendBlock(frame int, block []byte) (audio.DecodedFrame, bool) {
	if s.decoder == nil {
		return audio.DecodedFrame{}, false
	}

	decoded := s.decoder.Decode(block)
	decoded.StreamID = s.ID

	s.seek.Set(frame, s.position+int64(decoded.Seek))
	s.position += int64(decoded.SamplesCount)

	return decoded, true
}

// Position returns the cumulative sample count of all appended blocks
func (s *Stream) Position() int64 {
	return s.position
}

// SeekIndex returns the frame→sample index built so far
func (s *Stream) SeekIndex() *SeekIndex {
	return s.seek
}

// TimeForFrame converts the indexed offset of frame to seconds.
// MP3 offsets count channel pairs rather than samples, so the result is
// scaled back up by the channel count for that format.
// TODO: confirm the MP3 scaling against real streaming-MP3 fixtures.
func (s *Stream) TimeForFrame(frame int) (float64, bool) {
	offset, ok := s.seek.Lookup(frame)
	if !ok || s.SampleRate == 0 {
		return 0, false
	}

	t := float64(offset) / float64(s.Channels) / float64(s.SampleRate)
	if s.IsMP3() {
		t *= float64(s.Channels)
	}
	return t, true
}
