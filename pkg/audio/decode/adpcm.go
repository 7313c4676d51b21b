// ABOUTME: ADPCM audio decoder
// ABOUTME: Decodes 2..5 bit adaptive delta codes to signed 16-bit samples
package decode

import (
	"github.com/Resonate-Protocol/swfsound-go/pkg/audio"
	"github.com/Resonate-Protocol/swfsound-go/pkg/audio/encode"
)

// adpcmIndexTables holds the step-index adjustments keyed by code size
var adpcmIndexTables = [4][]int{
	{-1, 2},
	{-1, -1, 2, 4},
	{-1, -1, -1, -1, 2, 4, 6, 8},
	{-1, -1, -1, -1, -1, -1, -1, -1, 1, 2, 4, 6, 8, 10, 13, 16},
}

var adpcmStepSizes = [89]int{
	7, 8, 9, 10, 11, 12, 13, 14, 16, 17, 19, 21, 23, 25, 28, 31, 34, 37, 41, 45,
	50, 55, 60, 66, 73, 80, 88, 97, 107, 118, 130, 143, 157, 173, 190, 209, 230,
	253, 279, 307, 337, 371, 408, 449, 494, 544, 598, 658, 724, 796, 876, 963,
	1060, 1166, 1282, 1411, 1552, 1707, 1878, 2066, 2272, 2499, 2749, 3024, 3327,
	3660, 4026, 4428, 4871, 5358, 5894, 6484, 7132, 7845, 8630, 9493, 10442, 11487,
	12635, 13899, 15289, 16818, 18500, 20350, 22385, 24623, 27086, 29794, 32767,
}

const (
	adpcmSamplesPerPacket = 4095 // coded samples following each packet header
	adpcmHeaderBits       = 22   // 16-bit predictor + 6-bit step index
	maxStepIndex          = len(adpcmStepSizes) - 1
)

// adpcmChannel is the predictor state of one channel
type adpcmChannel struct {
	predictor int
	stepIndex int
}

// next applies one code and returns the new sample
func (c *adpcmChannel) next(code, codeSize int) int16 {
	signMask := 1 << (codeSize + 1)
	step := adpcmStepSizes[c.stepIndex]
	sum := 0
	for bit := signMask >> 1; bit != 0; bit >>= 1 {
		if code&bit != 0 {
			sum += step
		}
		step >>= 1
	}

	if code&signMask != 0 {
		c.predictor -= sum + step
	} else {
		c.predictor += sum + step
	}
	c.predictor = audio.ClampInt16(c.predictor)

	c.stepIndex += adpcmIndexTables[codeSize][code&^signMask]
	if c.stepIndex < 0 {
		c.stepIndex = 0
	} else if c.stepIndex > maxStepIndex {
		c.stepIndex = maxStepIndex
	}

	return int16(c.predictor)
}

// DecodeADPCM decodes samplesCount sample frames into interleaved int16 PCM.
// The payload is a 2-bit code size followed by packets of one header per
// channel and up to 4095 coded sample frames.
func DecodeADPCM(data []byte, samplesCount, channels int) []int16 {
	if samplesCount <= 0 || channels < 1 || channels > 2 {
		return []int16{}
	}
	pcm := make([]int16, samplesCount*channels)

	r := NewBitReader(data)
	codeSize := int(r.ReadBits(2))
	codeBits := codeSize + 2

	var state [2]adpcmChannel
	pos := 0
	for pos < len(pcm) {
		for ch := 0; ch < channels; ch++ {
			state[ch].predictor = int(int16(r.ReadBits(16)))
			state[ch].stepIndex = int(r.ReadBits(6))
			pcm[pos] = int16(state[ch].predictor)
			pos++
		}

		for i := 0; i < adpcmSamplesPerPacket && pos < len(pcm); i++ {
			for ch := 0; ch < channels; ch++ {
				pcm[pos] = state[ch].next(int(r.ReadBits(codeBits)), codeSize)
				pos++
			}
		}
	}

	return pcm
}

// ADPCMSampleCount returns how many sample frames a payload of the given
// length carries, counting a trailing partial packet.
func ADPCMSampleCount(data []byte, channels int) int {
	if len(data) == 0 || channels <= 0 {
		return 0
	}
	codeBits := int(data[0]>>6) + 2
	totalBits := len(data)*8 - 2

	headerBits := adpcmHeaderBits * channels
	frameBits := codeBits * channels
	packetBits := headerBits + adpcmSamplesPerPacket*frameBits

	frames := (totalBits / packetBits) * (adpcmSamplesPerPacket + 1)
	if rem := totalBits % packetBits; rem >= headerBits {
		frames += 1 + (rem-headerBits)/frameBits
	}
	return frames
}

// ADPCMDecoder decodes streaming ADPCM blocks; each block is a complete payload
type ADPCMDecoder struct {
	channels        int
	samplesPerBlock int // 0 derives the count from the block length
}

// Decode converts one block, emitting float PCM and little-endian PCM16 bytes
func (d *ADPCMDecoder) Decode(block []byte) audio.DecodedFrame {
	count := d.samplesPerBlock
	if count <= 0 {
		count = ADPCMSampleCount(block, d.channels)
	}

	pcm16 := DecodeADPCM(block, count, d.channels)
	pcm := make([]float32, len(pcm16))
	for i, s := range pcm16 {
		pcm[i] = audio.SampleFromInt16(s)
	}

	return audio.DecodedFrame{
		SamplesCount: count,
		PCM:          pcm,
		Data:         encode.PCM16LE(pcm16),
	}
}
