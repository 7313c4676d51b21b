// ABOUTME: Audio/animation synchronization package
// ABOUTME: Converts audio clock drift into animation frame-skip corrections
// Package sync keeps an animation timeline locked to an already-playing
// audio clock. Audio is the master: each tick compares where the audio
// actually is with where the current frame expects it to be and tells the
// timeline how many frames to skip (positive) or hold (negative).
//
// Example:
//
//	skip := sync.FramesToSkip(elementTime, targetTime, 25)
//	monitor.Record(elementTime-targetTime, skip)
package sync
