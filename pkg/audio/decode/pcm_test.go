// ABOUTME: Tests for PCM decoder
// ABOUTME: Tests 8-bit and 16-bit PCM decoding for static and streaming use
package decode

import (
	"bytes"
	"testing"

	"github.com/Resonate-Protocol/swfsound-go/pkg/audio"
)

func TestDecodePCM8(t *testing.T) {
	pcm := DecodePCM8([]byte{0, 128, 192}, 4)

	expected := []float32{-1, 0, 0.5, 0}
	if len(pcm) != len(expected) {
		t.Fatalf("expected %d samples, got %d", len(expected), len(pcm))
	}
	for i := range expected {
		if pcm[i] != expected[i] {
			t.Errorf("sample %d: expected %v, got %v", i, expected[i], pcm[i])
		}
	}
}

func TestDecodePCM16ByteOrder(t *testing.T) {
	data := []byte{0x00, 0x40, 0x00, 0xC0}

	le := DecodePCM16(data, 2, audio.LittleEndian)
	if le[0] != 0.5 || le[1] != -0.5 {
		t.Errorf("expected [0.5 -0.5], got %v", le)
	}

	be := DecodePCM16(data, 2, audio.BigEndian)
	if be[0] != float32(0x0040)/32768 || be[1] != float32(0x00C0)/32768 {
		t.Errorf("unexpected big-endian decode %v", be)
	}
}

func TestDecodePCM16Truncated(t *testing.T) {
	// 3 samples requested, 1.5 available
	pcm := DecodePCM16([]byte{0x00, 0x40, 0x7F}, 3, audio.LittleEndian)
	if len(pcm) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(pcm))
	}
	if pcm[0] != 0.5 || pcm[1] != 0 || pcm[2] != 0 {
		t.Errorf("expected [0.5 0 0], got %v", pcm)
	}
}

func TestPCM16DecoderBlock(t *testing.T) {
	dec, err := ForStream(audio.PCMLittleEndian, 16, 2, 0)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	block := []byte{0x00, 0x40, 0x00, 0xC0, 0x00, 0x00, 0x00, 0x00}
	frame := dec.Decode(block)

	if frame.SamplesCount != 2 {
		t.Errorf("expected 2 sample frames, got %d", frame.SamplesCount)
	}
	if len(frame.PCM) != 4 {
		t.Errorf("expected 4 samples, got %d", len(frame.PCM))
	}
	if frame.Seek != 0 {
		t.Errorf("expected seek 0, got %d", frame.Seek)
	}
	if !bytes.Equal(frame.Data, block) {
		t.Errorf("expected data %v, got %v", block, frame.Data)
	}

	block[0] = 0xFF
	if frame.Data[0] == 0xFF {
		t.Error("expected frame data to be independent of the caller's block")
	}
}

func TestPCM8DecoderBlock(t *testing.T) {
	dec, err := ForStream(audio.PCMBigEndian, 8, 1, 0)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	frame := dec.Decode([]byte{128, 255, 0})
	if frame.SamplesCount != 3 {
		t.Errorf("expected 3 sample frames, got %d", frame.SamplesCount)
	}
	if frame.PCM[2] != -1 {
		t.Errorf("expected -1, got %v", frame.PCM[2])
	}
}

func TestPCMDecode_EmptyInput(t *testing.T) {
	dec, err := ForStream(audio.PCMLittleEndian, 16, 1, 0)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	frame := dec.Decode([]byte{})
	if frame.SamplesCount != 0 {
		t.Errorf("expected 0 samples from empty input, got %d", frame.SamplesCount)
	}
}

func TestPCMDecode_NegativeCount(t *testing.T) {
	data := []byte{0x80, 0x40, 0xC0, 0x00}

	if pcm := DecodePCM8(data, -3); len(pcm) != 0 {
		t.Errorf("expected no samples, got %v", pcm)
	}
	if pcm := DecodePCM16(data, -1, audio.LittleEndian); len(pcm) != 0 {
		t.Errorf("expected no samples, got %v", pcm)
	}
	if pcm := DecodePCM16(data, -1, audio.BigEndian); len(pcm) != 0 {
		t.Errorf("expected no samples, got %v", pcm)
	}
}
