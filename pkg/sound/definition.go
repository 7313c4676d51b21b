// ABOUTME: One-shot decoding of static sound tags
// ABOUTME: Produces normalized PCM and a packaged buffer per supported format
package sound

import (
	"log"

	"github.com/Resonate-Protocol/swfsound-go/pkg/audio"
	"github.com/Resonate-Protocol/swfsound-go/pkg/audio/decode"
	"github.com/Resonate-Protocol/swfsound-go/pkg/audio/encode"
)

// Definition is a decoded static sound. PCM and Packaged are nil when the
// format is not supported.
type Definition struct {
	ID         int
	SampleRate int
	Channels   int
	PCM        []float32
	Packaged   *audio.Packaged
}

// Define decodes a static sound tag. Unsupported formats yield a definition
// without PCM or packaged data; the only side effect is a warning.
func Define(tag SoundTag) *Definition {
	channels := channelCount(tag.Stereo)
	sampleRate, ok := audio.SampleRateForIndex(tag.Rate)
	if !ok {
		log.Printf("Warning: sound %d has invalid rate index %d", tag.ID, tag.Rate)
	}

	def := &Definition{
		ID:         tag.ID,
		SampleRate: sampleRate,
		Channels:   channels,
	}

	count := tag.SamplesCount * channels
	data := tag.Data

	var packaged audio.Packaged
	switch tag.Format {
	case audio.PCMBigEndian, audio.PCMLittleEndian:
		if tag.Size == SoundSize16Bit {
			order := audio.LittleEndian
			if tag.Format == audio.PCMBigEndian {
				order = audio.BigEndian
			}
			def.PCM = decode.DecodePCM16(data, count, order)
			packaged = encode.PackageWave(data, sampleRate, channels, 16, order == audio.BigEndian)
		} else {
			def.PCM = decode.DecodePCM8(data, count)
			packaged = encode.PackageWave(data, sampleRate, channels, 8, false)
		}
	case audio.MP3:
		packaged = audio.Packaged{
			Data:     decode.StripMP3Header(data),
			MimeType: audio.MimeMPEG,
		}
	case audio.ADPCM:
		pcm16 := decode.DecodeADPCM(data, tag.SamplesCount, channels)
		def.PCM = make([]float32, len(pcm16))
		for i, s := range pcm16 {
			def.PCM[i] = audio.SampleFromInt16(s)
		}
		packaged = encode.PackageWave(encode.PCM16LE(pcm16), sampleRate, channels, 16, false)
	default:
		log.Printf("Warning: unsupported audio format: %s", tag.Format)
		return def
	}

	def.Packaged = &packaged
	return def
}
