// ABOUTME: RIFF/WAVE container builder
// ABOUTME: Patches a fixed 44-byte header template around a PCM payload
package encode

import (
	"encoding/binary"

	"github.com/Resonate-Protocol/swfsound-go/pkg/audio"
)

// WaveHeaderSize is the length of the RIFF/WAVE/fmt/data header
const WaveHeaderSize = 44

var waveHeader = [WaveHeaderSize]byte{
	'R', 'I', 'F', 'F', 0x00, 0x00, 0x00, 0x00,
	'W', 'A', 'V', 'E', 'f', 'm', 't', ' ', 0x10, 0x00, 0x00, 0x00,
	0x01, 0x00, 0x02, 0x00, 0x44, 0xAC, 0x00, 0x00, 0x10, 0xB1, 0x02, 0x00,
	0x04, 0x00, 0x10, 0x00, 'd', 'a', 't', 'a', 0x00, 0x00, 0x00, 0x00,
}

// PackageWave wraps PCM bytes in a WAVE container.
// With swapBytes set every byte pair is swapped first, turning big-endian
// 16-bit samples into the little-endian layout WAVE requires. The data
// chunk is padded to an even length.
func PackageWave(data []byte, sampleRate, channels, bitsPerSample int, swapBytes bool) audio.Packaged {
	sizeInBytes := bitsPerSample >> 3
	bytesPerSecond := channels * sampleRate * sizeInBytes
	blockAlign := channels * sizeInBytes
	dataLength := len(data) + len(data)&1

	out := make([]byte, WaveHeaderSize+dataLength)
	copy(out, waveHeader[:])

	payload := out[WaveHeaderSize:]
	if swapBytes {
		for i := 0; i+1 < len(data); i += 2 {
			payload[i] = data[i+1]
			payload[i+1] = data[i]
		}
		if len(data)&1 == 1 {
			// lone trailing byte swaps with an implicit zero into the pad slot
			payload[len(data)] = data[len(data)-1]
			payload[len(data)-1] = 0
		}
	} else {
		copy(payload, data)
	}

	le := binary.LittleEndian
	le.PutUint32(out[4:], uint32(dataLength+36))
	le.PutUint16(out[22:], uint16(channels))
	le.PutUint32(out[24:], uint32(sampleRate))
	le.PutUint32(out[28:], uint32(bytesPerSecond))
	le.PutUint16(out[32:], uint16(blockAlign))
	le.PutUint16(out[34:], uint16(bitsPerSample))
	le.PutUint32(out[40:], uint32(dataLength))

	return audio.Packaged{
		Data:     out,
		MimeType: audio.MimeWAV,
	}
}
