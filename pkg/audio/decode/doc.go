// ABOUTME: Audio decoder package for container sound codecs
// ABOUTME: Provides BlockDecoder and implementations for PCM, ADPCM and MP3
// Package decode turns raw sound-tag bytes into normalized PCM and/or
// playable payloads.
//
// Supports: PCM 8-bit, PCM 16-bit (big and little endian), ADPCM (2..5 bit
// codes, mono and stereo) and MP3 (passed through undecoded).
//
// Static sounds use the one-shot helpers (DecodePCM8, DecodePCM16,
// DecodeADPCM, StripMP3Header). Streaming sounds get a BlockDecoder from
// ForStream and call Decode once per appended block.
//
// Nothing in this package panics or returns an error on short input:
// missing bytes decode as silence.
//
// Example:
//
//	dec, err := decode.ForStream(audio.MP3, 16, 2, 0)
//	frame := dec.Decode(block)
package decode
