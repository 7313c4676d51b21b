// ABOUTME: Registry of active platform sounds
// ABOUTME: Lets a stage silence every playing sound at once
package playback

import (
	"log"
	"sync"

	"github.com/Resonate-Protocol/swfsound-go/pkg/audio/output"
)

// Manager tracks the sound handles currently owned by streams
type Manager struct {
	mu     sync.Mutex
	active map[string]output.Sound
}

// NewManager creates an empty manager
func NewManager() *Manager {
	return &Manager{active: make(map[string]output.Sound)}
}

// AddActive registers a handle
func (m *Manager) AddActive(snd output.Sound) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[snd.ID()] = snd
}

// Remove forgets a handle without stopping it
func (m *Manager) Remove(snd output.Sound) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, snd.ID())
}

// StopAll stops every registered handle and clears the registry
func (m *Manager) StopAll() {
	m.mu.Lock()
	sounds := make([]output.Sound, 0, len(m.active))
	for id, snd := range m.active {
		sounds = append(sounds, snd)
		delete(m.active, id)
	}
	m.mu.Unlock()

	for _, snd := range sounds {
		if err := snd.Stop(); err != nil {
			log.Printf("Warning: failed to stop sound %s: %v", snd.ID(), err)
		}
	}
}

// Len returns the number of registered handles
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}
