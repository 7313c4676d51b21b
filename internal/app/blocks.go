// ABOUTME: Splits raw input audio into per-frame stream blocks
// ABOUTME: Stands in for the container parser when playing plain files
package app

import (
	"encoding/binary"
	"math"
)

// mp3BlockHeaderSize matches the sample count + seek prefix of stream blocks
const mp3BlockHeaderSize = 4

// SamplesPerFrame returns the sample frames one animation frame spans
func SamplesPerFrame(sampleRate int, frameRate float64) int {
	return int(math.Ceil(float64(sampleRate) / frameRate))
}

// PCMBlocks cuts interleaved PCM into blocks of samplesPerFrame sample
// frames. The last block may be short.
func PCMBlocks(data []byte, samplesPerFrame, frameSize int) [][]byte {
	blockSize := samplesPerFrame * frameSize
	if blockSize <= 0 {
		return nil
	}

	blocks := make([][]byte, 0, (len(data)+blockSize-1)/blockSize)
	for off := 0; off < len(data); off += blockSize {
		end := min(off+blockSize, len(data))
		blocks = append(blocks, data[off:end])
	}
	return blocks
}

// MP3Blocks cuts an MP3 elementary stream into count equal byte slices,
// each prefixed with a block header carrying samplesPerFrame and a zero seek.
func MP3Blocks(data []byte, count, samplesPerFrame int) [][]byte {
	if count <= 0 || len(data) == 0 {
		return nil
	}
	count = min(count, len(data))

	blocks := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		start := len(data) * i / count
		end := len(data) * (i + 1) / count

		block := make([]byte, mp3BlockHeaderSize+end-start)
		binary.LittleEndian.PutUint16(block[0:], uint16(samplesPerFrame))
		copy(block[mp3BlockHeaderSize:], data[start:end])
		blocks = append(blocks, block)
	}
	return blocks
}

// NextFrame advances the timeline by one frame plus the returned skip.
// A lagging sound holds the current frame rather than rewinding it.
func NextFrame(frame, skip int) int {
	return frame + max(1+skip, 0)
}
