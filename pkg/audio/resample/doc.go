// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts decoded sounds to the output device rate
// Package resample provides audio sample rate conversion.
//
// Uses linear interpolation for converting between sample rates.
// Handles both upsampling and downsampling.
//
// Example:
//
//	r := resample.New(11025, 44100, 2)
//	out := r.Convert(samples)
package resample
