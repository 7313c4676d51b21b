// ABOUTME: Process-wide stream id sequence
// ABOUTME: Hands out monotonically increasing ids that are never reset
package sound

import "sync/atomic"

// Sequence hands out process-unique, monotonically increasing ids
type Sequence struct {
	next atomic.Int64
}

// NewSequence creates a sequence whose first id is start
func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.next.Store(start)
	return s
}

// Next returns the next id
func (s *Sequence) Next() int64 {
	return s.next.Add(1) - 1
}

// streamIDs is shared by every stream created in this process
var streamIDs = NewSequence(0)
