// ABOUTME: Bubbletea model for player TUI
// ABOUTME: Defines application state and update logic
package ui

import (
	"fmt"

	avsync "github.com/Resonate-Protocol/swfsound-go/pkg/sync"
	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the TUI state
type Model struct {
	// Sound
	mode       string
	format     string
	sampleRate int
	channels   int
	bitDepth   int

	// Metadata
	title  string
	artist string

	// Timeline
	frame       int
	totalFrames int
	targetTime  float64
	elementTime float64
	skip        int
	done        bool

	// Sync
	syncQuality avsync.Quality
	corrections int64
	maxDrift    float64
	lastDrift   float64

	// Debug
	showDebug bool

	// Dimensions
	width  int
	height int
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderSoundInfo()
	s += m.renderTimeline()

	if m.showDebug {
		s += m.renderDebug()
	}

	s += m.renderHelp()

	return s
}

// renderHeader renders playback and sync status
func (m Model) renderHeader() string {
	status := "Waiting"
	switch {
	case m.done:
		status = "Finished"
	case m.format != "":
		status = fmt.Sprintf("Playing (%s)", m.mode)
	}

	syncIcon := "✗"
	syncText := "Lost"
	switch m.syncQuality {
	case avsync.QualityGood:
		syncIcon = "✓"
		syncText = fmt.Sprintf("In sync (drift: %+.1fms)", m.lastDrift*1000)
	case avsync.QualityDegraded:
		syncIcon = "⚠"
		syncText = fmt.Sprintf("Drifting (%+.1fms)", m.lastDrift*1000)
	}

	return fmt.Sprintf(`┌─ SWF Sound Player ───────────────────────────────────┐
│ Status: %-45s │
│ Sync:   %s %-42s │
├──────────────────────────────────────────────────────┤
`, status, syncIcon, syncText)
}

// renderSoundInfo renders the sound format and metadata
func (m Model) renderSoundInfo() string {
	if m.format == "" {
		return "│ No sound                                             │\n"
	}

	s := ""
	if m.title != "" {
		s += fmt.Sprintf("│   Title:  %-42s │\n", truncate(m.title, 42))
		s += fmt.Sprintf("│   Artist: %-42s │\n", truncate(m.artist, 42))
	} else {
		s += "│   (No metadata)                                      │\n"
	}

	s += "│                                                      │\n"
	s += fmt.Sprintf("│ Format: %s %dHz %s %d-bit%-17s │\n",
		m.format, m.sampleRate, channelName(m.channels), m.bitDepth, "")

	return s
}

// renderTimeline renders frame position and the last correction
func (m Model) renderTimeline() string {
	progress := renderBar(m.frame, m.totalFrames, 20)

	return fmt.Sprintf(`├──────────────────────────────────────────────────────┤
│ Frame:  [%s] %d/%d%-14s │
│ Time:   target %.3fs  audio %.3fs%-14s │
│ Skip:   %+d  corrections: %d%-20s │
`, progress, m.frame, m.totalFrames, "",
		m.targetTime, m.elementTime, "",
		m.skip, m.corrections, "")
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return `│ d:Debug  q:Quit                                      │
└──────────────────────────────────────────────────────┘
`
}

// renderDebug renders debug information
func (m Model) renderDebug() string {
	return fmt.Sprintf(`│ DEBUG:                                               │
│   Max drift: %.1fms                                  │
│   Last drift: %+.1fms                                │
`, m.maxDrift*1000, m.lastDrift*1000)
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "d":
		m.showDebug = !m.showDebug
	}

	return m, nil
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Format != "" {
		m.mode = msg.Mode
		m.format = msg.Format
		m.sampleRate = msg.SampleRate
		m.channels = msg.Channels
		m.bitDepth = msg.BitDepth
	}
	if msg.Title != "" {
		m.title = msg.Title
		m.artist = msg.Artist
	}

	m.frame = msg.Frame
	m.totalFrames = msg.TotalFrames
	m.targetTime = msg.TargetTime
	m.elementTime = msg.ElementTime
	m.skip = msg.Skip
	m.syncQuality = msg.SyncQuality
	m.corrections = msg.Corrections
	m.maxDrift = msg.MaxDrift
	m.lastDrift = msg.LastDrift
	if msg.Done {
		m.done = true
	}
}

// StatusMsg updates TUI state
type StatusMsg struct {
	Mode        string
	Format      string
	SampleRate  int
	Channels    int
	BitDepth    int
	Title       string
	Artist      string
	Frame       int
	TotalFrames int
	TargetTime  float64
	ElementTime float64
	Skip        int
	SyncQuality avsync.Quality
	Corrections int64
	MaxDrift    float64
	LastDrift   float64
	Done        bool
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := 0
	if max > 0 {
		filled = (value * width) / max
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func channelName(channels int) string {
	if channels == 1 {
		return "Mono"
	}
	return "Stereo"
}
