// ABOUTME: Frame to sample-offset seek index
// ABOUTME: Sparse mapping where a missing frame means no audio starts there
package sound

import "slices"

// SeekIndex maps animation frame numbers to cumulative sample offsets.
// Frames without an audio block have no entry; Lookup reports ok=false
// for them rather than a zero offset.
type SeekIndex struct {
	offsets map[int]int64
}

// NewSeekIndex creates an empty index
func NewSeekIndex() *SeekIndex {
	return &SeekIndex{offsets: make(map[int]int64)}
}

// Set records the offset at which audio for frame starts
func (x *SeekIndex) Set(frame int, offset int64) {
	x.offsets[frame] = offset
}

// Lookup returns the offset recorded for frame
func (x *SeekIndex) Lookup(frame int) (int64, bool) {
	offset, ok := x.offsets[frame]
	return offset, ok
}

// Len returns the number of indexed frames
func (x *SeekIndex) Len() int {
	return len(x.offsets)
}

// Frames returns the indexed frame numbers in ascending order
func (x *SeekIndex) Frames() []int {
	frames := make([]int, 0, len(x.offsets))
	for f := range x.offsets {
		frames = append(frames, f)
	}
	slices.Sort(frames)
	return frames
}
