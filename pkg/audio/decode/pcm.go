// ABOUTME: PCM audio decoder
// ABOUTME: Decodes unsigned 8-bit and 16-bit big/little-endian PCM to float samples
package decode

import (
	"github.com/Resonate-Protocol/swfsound-go/pkg/audio"
)

// DecodePCM8 converts count unsigned 8-bit samples to floats.
// Samples beyond the end of data decode as silence.
func DecodePCM8(data []byte, count int) []float32 {
	pcm := make([]float32, max(count, 0))
	for i := 0; i < count && i < len(data); i++ {
		pcm[i] = audio.SampleFromUint8(data[i])
	}
	return pcm
}

// DecodePCM16 converts count 16-bit samples in the given byte order to floats.
// Samples beyond the end of data decode as silence.
func DecodePCM16(data []byte, count int, order audio.ByteOrder) []float32 {
	pcm := make([]float32, max(count, 0))
	for i, j := 0, 0; i < count && j+1 < len(data); i, j = i+1, j+2 {
		pcm[i] = audio.SampleFromPCM16(data[j], data[j+1], order)
	}
	return pcm
}

// PCM8Decoder decodes streaming blocks of unsigned 8-bit PCM
type PCM8Decoder struct {
	channels int
}

// Decode converts one block; every byte is one sample
func (d *PCM8Decoder) Decode(block []byte) audio.DecodedFrame {
	pcm := DecodePCM8(block, len(block))
	return audio.DecodedFrame{
		SamplesCount: len(pcm) / d.channels,
		PCM:          pcm,
		Data:         copyBytes(block),
	}
}

// PCM16Decoder decodes streaming blocks of 16-bit PCM
type PCM16Decoder struct {
	channels int
	order    audio.ByteOrder
}

// Decode converts one block; a trailing odd byte is ignored
func (d *PCM16Decoder) Decode(block []byte) audio.DecodedFrame {
	pcm := DecodePCM16(block, len(block)/2, d.order)
	return audio.DecodedFrame{
		SamplesCount: len(pcm) / d.channels,
		PCM:          pcm,
		Data:         copyBytes(block),
	}
}

func copyBytes(b []byte) []byte {
	return append([]byte(nil), b...)
}
