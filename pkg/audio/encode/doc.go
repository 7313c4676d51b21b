// ABOUTME: Audio container encoding package
// ABOUTME: Builds RIFF/WAVE buffers and little-endian PCM payloads
// Package encode packages PCM payloads into containers the platform audio
// primitive can play.
//
// The WAVE header is a fixed 44-byte template with the size, channel,
// rate and bit-depth fields patched in little-endian.
//
// Example:
//
//	packaged := encode.PackageWave(data, 22500, 2, 16, false)
//	// packaged.MimeType == "audio/wav"
package encode
