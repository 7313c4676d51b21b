// ABOUTME: Frame-skip drift correction with quality tracking
// ABOUTME: Rounds audio drift toward zero in animation-frame units and records statistics
package sync

import (
	"log"
	"math"
	"sync"
)

// DefaultFrameRate is the animation rate assumed when none is configured
const DefaultFrameRate = 25.0

// FramesToSkip converts the distance between the audio position
// (elementTime) and the frame's expected position (targetTime), both in
// seconds, into whole animation frames of 1000/frameRate ms. Audio behind
// the target rounds up (ceil), audio ahead rounds down (floor), so partial
// frames never trigger a correction.
func FramesToSkip(elementTime, targetTime, frameRate float64) int {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	frameMs := 1000 / frameRate
	d := (elementTime - targetTime) * 1000 / frameMs
	if elementTime-targetTime < 0 {
		return int(math.Ceil(d))
	}
	return int(math.Floor(d))
}

// Quality represents how closely audio and animation agree
type Quality int

const (
	QualityGood Quality = iota
	QualityDegraded
	QualityLost
)

func (q Quality) String() string {
	switch q {
	case QualityGood:
		return "good"
	case QualityDegraded:
		return "degraded"
	default:
		return "lost"
	}
}

// Stats is a snapshot of a DriftMonitor
type Stats struct {
	Ticks       int64
	Corrections int64   // ticks that returned a non-zero skip
	LastDrift   float64 // seconds, audio minus target
	MaxDrift    float64 // largest absolute drift seen
	LastSkip    int
	Quality     Quality
}

// DriftMonitor accumulates per-tick drift measurements
type DriftMonitor struct {
	mu            sync.RWMutex
	stats         Stats
	degradedAfter float64 // seconds of drift before quality degrades
	lostAfter     float64
}

// NewDriftMonitor creates a monitor for a timeline running at frameRate
func NewDriftMonitor(frameRate float64) *DriftMonitor {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	return &DriftMonitor{
		degradedAfter: 1 / frameRate, // one frame
		lostAfter:     0.5,
		stats:         Stats{Quality: QualityLost},
	}
}

// Record stores one tick's drift (seconds) and the skip that was returned
func (m *DriftMonitor) Record(drift float64, skip int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.Ticks++
	m.stats.LastDrift = drift
	m.stats.LastSkip = skip
	if skip != 0 {
		m.stats.Corrections++
	}

	abs := math.Abs(drift)
	if abs > m.stats.MaxDrift {
		m.stats.MaxDrift = abs
	}

	prev := m.stats.Quality
	switch {
	case abs < m.degradedAfter:
		m.stats.Quality = QualityGood
	case abs < m.lostAfter:
		m.stats.Quality = QualityDegraded
	default:
		m.stats.Quality = QualityLost
	}

	if m.stats.Quality != prev && m.stats.Ticks > 1 {
		log.Printf("Sync quality %s -> %s (drift=%.1fms, skip=%d)",
			prev, m.stats.Quality, drift*1000, skip)
	}
}

// Stats returns a snapshot of the accumulated statistics
func (m *DriftMonitor) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}
