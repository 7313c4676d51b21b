// ABOUTME: Sound resource package for static and streaming container sounds
// ABOUTME: Provides Define for one-shot sounds and Stream for per-frame blocks
// Package sound turns container sound tags into decoded sounds.
//
// A static sound tag is decoded once with Define. A streaming sound is
// created with FromTag when its head tag is seen and then fed one block per
// animation frame with AppendBlock, which maintains the frame→sample seek
// index used to synchronize playback.
//
// Example:
//
//	stream := sound.FromTag(head)
//	frame, ok := stream.AppendBlock(frameNum, block)
//	t, ok := stream.TimeForFrame(frameNum)
package sound
