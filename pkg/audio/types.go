// ABOUTME: Audio type definitions
// ABOUTME: Defines sound formats, decoded frames and packaged buffers
package audio

import "fmt"

// SoundFormat is the compression id of a sound tag
type SoundFormat uint8

const (
	PCMBigEndian    SoundFormat = 0
	ADPCM           SoundFormat = 1
	MP3             SoundFormat = 2
	PCMLittleEndian SoundFormat = 3
	Nellymoser16kHz SoundFormat = 4
	Nellymoser8kHz  SoundFormat = 5
	Nellymoser      SoundFormat = 6
	Speex           SoundFormat = 11
)

// Supported reports whether a decoder exists for the format
func (f SoundFormat) Supported() bool {
	switch f {
	case PCMBigEndian, PCMLittleEndian, ADPCM, MP3:
		return true
	}
	return false
}

func (f SoundFormat) String() string {
	switch f {
	case PCMBigEndian:
		return "pcm-be"
	case ADPCM:
		return "adpcm"
	case MP3:
		return "mp3"
	case PCMLittleEndian:
		return "pcm-le"
	case Nellymoser16kHz:
		return "nellymoser-16khz"
	case Nellymoser8kHz:
		return "nellymoser-8khz"
	case Nellymoser:
		return "nellymoser"
	case Speex:
		return "speex"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// ParseSoundFormat maps a format name (as printed by String) to its id
func ParseSoundFormat(name string) (SoundFormat, error) {
	for _, f := range []SoundFormat{PCMBigEndian, ADPCM, MP3, PCMLittleEndian,
		Nellymoser16kHz, Nellymoser8kHz, Nellymoser, Speex} {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown sound format: %s", name)
}

const (
	MimeWAV  = "audio/wav"
	MimeMPEG = "audio/mpeg"
)

// sampleRates maps the 2-bit rate field of a sound tag to Hz.
// 11250 and 22500 are what the container players actually use.
var sampleRates = [4]int{5512, 11250, 22500, 44100}

// SampleRateForIndex returns the rate in Hz for a tag rate index (0..3)
func SampleRateForIndex(index int) (int, bool) {
	if index < 0 || index >= len(sampleRates) {
		return 0, false
	}
	return sampleRates[index], true
}

// Format describes a sound's sample layout
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// Packaged is a buffer the platform audio primitive can play directly
type Packaged struct {
	Data     []byte
	MimeType string
}

// DecodedFrame is the result of decoding one appended block
type DecodedFrame struct {
	StreamID     int64
	SamplesCount int       // sample frames in this block
	PCM          []float32 // nil when the codec produces no PCM (MP3)
	Data         []byte    // raw or container bytes for this block
	Seek         int       // intra-block sample offset
}

// ByteOrder selects how a 16-bit sample is laid out in a byte pair
type ByteOrder int

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

// SampleFromUint8 converts an unsigned 8-bit sample to [-1, 1)
func SampleFromUint8(b byte) float32 {
	return float32(int(b)-128) / 128
}

// SampleFromPCM16 converts a 16-bit byte pair to [-1, 1).
// The pair is placed in bits 16..31 and divided by 2^31, which keeps a
// single code path for both byte orders.
func SampleFromPCM16(b0, b1 byte, order ByteOrder) float32 {
	hi, lo := b0, b1
	if order == LittleEndian {
		hi, lo = b1, b0
	}
	v := int32(uint32(hi)<<24 | uint32(lo)<<16)
	return float32(float64(v) / 2147483648)
}

// SampleFromInt16 converts a signed 16-bit sample to [-1, 1)
func SampleFromInt16(sample int16) float32 {
	return float32(sample) / 32768
}

// ClampInt16 clamps a predictor value to the signed 16-bit range
func ClampInt16(x int) int {
	if x < -32768 {
		return -32768
	}
	if x > 32767 {
		return 32767
	}
	return x
}
