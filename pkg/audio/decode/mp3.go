// ABOUTME: MP3 passthrough decoder
// ABOUTME: Strips container headers and forwards the MP3 elementary stream
package decode

import (
	"encoding/binary"

	"github.com/Resonate-Protocol/swfsound-go/pkg/audio"
)

const (
	mp3SoundHeaderSize = 2 // seek samples in front of a static MP3 sound
	mp3BlockHeaderSize = 4 // sample count + seek in front of each stream block
)

// StripMP3Header returns the MP3 frames of a static sound payload
func StripMP3Header(data []byte) []byte {
	if len(data) <= mp3SoundHeaderSize {
		return []byte{}
	}
	return copyBytes(data[mp3SoundHeaderSize:])
}

// MP3Decoder splits streaming MP3 blocks; no PCM is produced
type MP3Decoder struct{}

// Decode reads the little-endian sample count and seek delta and returns
// the remaining payload untouched. Short blocks read missing bytes as zero.
func (d *MP3Decoder) Decode(block []byte) audio.DecodedFrame {
	var header [mp3BlockHeaderSize]byte
	copy(header[:], block)

	payload := []byte{}
	if len(block) > mp3BlockHeaderSize {
		payload = copyBytes(block[mp3BlockHeaderSize:])
	}

	return audio.DecodedFrame{
		SamplesCount: int(binary.LittleEndian.Uint16(header[0:])),
		Seek:         int(binary.LittleEndian.Uint16(header[2:])),
		Data:         payload,
	}
}
