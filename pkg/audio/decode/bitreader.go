// ABOUTME: MSB-first bit reader over a byte buffer
// ABOUTME: Reads past the end return zero bits instead of failing
package decode

import (
	"github.com/icza/bitio"
)

// zeroPadReader yields the wrapped bytes followed by an endless run of zeros
type zeroPadReader struct {
	data []byte
	pos  int
}

func (z *zeroPadReader) Read(p []byte) (int, error) {
	n := copy(p, z.data[z.pos:])
	z.pos += n
	for i := n; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}

// BitReader extracts big-endian bit fields from a byte buffer.
// A truncated buffer degrades to silence: bits beyond the end read as zero.
type BitReader struct {
	r        *bitio.Reader
	size     int // in bits
	consumed int
}

// NewBitReader creates a reader positioned at the first bit of data
func NewBitReader(data []byte) *BitReader {
	return &BitReader{
		r:    bitio.NewReader(&zeroPadReader{data: data}),
		size: len(data) * 8,
	}
}

// ReadBits returns the next n bits (0..32) as an unsigned value
func (b *BitReader) ReadBits(n int) uint32 {
	if n <= 0 {
		return 0
	}
	v, err := b.r.ReadBits(uint8(n))
	if err != nil {
		// the source never ends, so this is unreachable in practice
		return 0
	}
	b.consumed += n
	return uint32(v)
}

// Underrun reports whether reads went past the end of the buffer
func (b *BitReader) Underrun() bool {
	return b.consumed > b.size
}

// Remaining returns the number of real (non-padding) bits left
func (b *BitReader) Remaining() int {
	if b.consumed >= b.size {
		return 0
	}
	return b.size - b.consumed
}
