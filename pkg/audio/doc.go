// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines sound formats, decoded frames and sample conversion functions
// Package audio provides the fundamental types shared by the container sound
// decoders, the stream accumulator and the playback layer.
//
// This package defines:
//   - SoundFormat: the compression id carried by sound tags
//   - Format: sample rate, channel count and bit depth of a sound
//   - DecodedFrame: the result of decoding one streaming block
//   - Packaged: a platform-playable buffer (WAV or MP3)
//
// It also provides the sample normalizations used by every decoder:
//   - unsigned 8-bit → float
//   - 16-bit big/little-endian → float (one code path, two byte orders)
//
// Example:
//
//	rate, ok := audio.SampleRateForIndex(tag.Rate)
//	f := audio.SampleFromPCM16(data[0], data[1], audio.LittleEndian)
package audio
