// ABOUTME: PCM payload encoder
// ABOUTME: Packs signed 16-bit samples as little-endian bytes
package encode

import "encoding/binary"

// PCM16LE packs samples as little-endian 16-bit PCM.
// The byte order is fixed regardless of host endianness, so the result can
// go straight into a WAVE data chunk.
func PCM16LE(samples []int16) []byte {
	output := make([]byte, len(samples)*2)
	for i, sample := range samples {
		binary.LittleEndian.PutUint16(output[i*2:], uint16(sample))
	}
	return output
}
