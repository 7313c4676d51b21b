// ABOUTME: Decodes packaged WAV and MP3 buffers for the backends
// ABOUTME: Uses go-audio/wav for WAVE and go-mp3 for MPEG audio
package output

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Resonate-Protocol/swfsound-go/pkg/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// go-mp3 always produces 16-bit stereo
const mp3Channels = 2

// Info describes a packaged buffer without its samples
type Info struct {
	SampleRate int
	Channels   int
	Frames     int64
}

// Duration returns the buffer length in seconds
func (i Info) Duration() float64 {
	if i.SampleRate == 0 {
		return 0
	}
	return float64(i.Frames) / float64(i.SampleRate)
}

// PCM is a decoded packaged buffer as interleaved 16-bit samples
type PCM struct {
	Info
	Samples []int16
}

// Probe reads the format and length of a packaged buffer
func Probe(p audio.Packaged) (Info, error) {
	switch p.MimeType {
	case audio.MimeWAV:
		dec, r, err := openWAV(p.Data)
		if err != nil {
			return Info{}, err
		}
		frameSize := int64(dec.NumChans) * int64(dec.BitDepth) / 8
		available := int64(r.Len())
		pcmLen := dec.PCMLen()
		if pcmLen > available {
			pcmLen = available
		}
		return Info{
			SampleRate: int(dec.SampleRate),
			Channels:   int(dec.NumChans),
			Frames:     pcmLen / frameSize,
		}, nil
	case audio.MimeMPEG:
		dec, err := mp3.NewDecoder(bytes.NewReader(p.Data))
		if err != nil {
			return Info{}, fmt.Errorf("%w: %v", ErrNotPlayable, err)
		}
		frames := dec.Length() / (2 * mp3Channels)
		if frames < 0 {
			frames = 0
		}
		return Info{SampleRate: dec.SampleRate(), Channels: mp3Channels, Frames: frames}, nil
	default:
		return Info{}, fmt.Errorf("%w: mime type %q", ErrNotPlayable, p.MimeType)
	}
}

// Decode converts a packaged buffer to interleaved 16-bit samples
func Decode(p audio.Packaged) (*PCM, error) {
	switch p.MimeType {
	case audio.MimeWAV:
		return decodeWAV(p.Data)
	case audio.MimeMPEG:
		return decodeMP3(p.Data)
	default:
		return nil, fmt.Errorf("%w: mime type %q", ErrNotPlayable, p.MimeType)
	}
}

func openWAV(data []byte) (*wav.Decoder, *bytes.Reader, error) {
	r := bytes.NewReader(data)
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, nil, fmt.Errorf("%w: invalid WAV data", ErrNotPlayable)
	}

	// FwdToPCM positions the reader at the start of PCM data
	if err := dec.FwdToPCM(); err != nil {
		return nil, nil, fmt.Errorf("%w: reading WAV PCM data: %v", ErrNotPlayable, err)
	}

	switch dec.BitDepth {
	case 8, 16:
	default:
		return nil, nil, fmt.Errorf("%w: unsupported WAV bit depth %d", ErrNotPlayable, dec.BitDepth)
	}
	if dec.NumChans == 0 {
		return nil, nil, fmt.Errorf("%w: WAV has no channels", ErrNotPlayable)
	}
	return dec, r, nil
}

func decodeWAV(data []byte) (*PCM, error) {
	dec, r, err := openWAV(data)
	if err != nil {
		return nil, err
	}

	raw := make([]byte, dec.PCMLen())
	n, err := io.ReadFull(r, raw)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("%w: reading WAV samples: %v", ErrNotPlayable, err)
	}
	raw = raw[:n]

	var samples []int16
	switch dec.BitDepth {
	case 8:
		// 8-bit WAV is unsigned
		samples = make([]int16, len(raw))
		for i, b := range raw {
			samples[i] = int16((int(b) - 128) << 8)
		}
	case 16:
		samples = make([]int16, len(raw)/2)
		for i := range samples {
			samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
		}
	}

	channels := int(dec.NumChans)
	samples = samples[:len(samples)-len(samples)%channels]

	return &PCM{
		Info: Info{
			SampleRate: int(dec.SampleRate),
			Channels:   channels,
			Frames:     int64(len(samples) / channels),
		},
		Samples: samples,
	}, nil
}

func decodeMP3(data []byte) (*PCM, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPlayable, err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding MP3: %v", ErrNotPlayable, err)
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}
	samples = samples[:len(samples)-len(samples)%mp3Channels]

	return &PCM{
		Info: Info{
			SampleRate: dec.SampleRate(),
			Channels:   mp3Channels,
			Frames:     int64(len(samples) / mp3Channels),
		},
		Samples: samples,
	}, nil
}
