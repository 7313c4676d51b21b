// ABOUTME: Playback package binding decoded streams to platform sounds
// ABOUTME: Buffers blocks, finalizes them into one sound and corrects drift
// Package playback connects a streaming sound to the animation timeline.
//
// Blocks are appended frame by frame while the adapter buffers them. The
// first PlayFrame finalizes the buffer into a packaged sound, starts it at
// the frame's indexed time and from then on reports how many animation
// frames the timeline should skip to follow the audio clock.
//
// Example:
//
//	s := playback.NewStream(head, playback.Config{Factory: factory})
//	s.AppendBlock(frame, block)
//	skip := s.PlayFrame(frame)
package playback
