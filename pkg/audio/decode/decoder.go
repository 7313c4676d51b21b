// ABOUTME: Decoder interface definition and factory
// ABOUTME: Binds a block decoder to a stream's compression and sample size
package decode

import (
	"errors"
	"fmt"

	"github.com/Resonate-Protocol/swfsound-go/pkg/audio"
)

// ErrUnsupportedFormat is returned for compression ids without a decoder
var ErrUnsupportedFormat = errors.New("unsupported sound format")

// BlockDecoder decodes one streaming block.
// Decode is a pure function of the decoder's configuration and the block.
type BlockDecoder interface {
	Decode(block []byte) audio.DecodedFrame
}

// ForStream selects the block decoder for a stream.
// streamSize is the bits per sample (8 or 16) and only matters for PCM;
// samplesPerBlock only matters for ADPCM.
func ForStream(format audio.SoundFormat, streamSize, channels, samplesPerBlock int) (BlockDecoder, error) {
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}

	switch format {
	case audio.PCMBigEndian, audio.PCMLittleEndian:
		if streamSize != 16 {
			return &PCM8Decoder{channels: channels}, nil
		}
		order := audio.LittleEndian
		if format == audio.PCMBigEndian {
			order = audio.BigEndian
		}
		return &PCM16Decoder{channels: channels, order: order}, nil
	case audio.ADPCM:
		return &ADPCMDecoder{channels: channels, samplesPerBlock: samplesPerBlock}, nil
	case audio.MP3:
		return &MP3Decoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
