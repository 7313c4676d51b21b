// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for player UI
package ui

import (
	avsync "github.com/Resonate-Protocol/swfsound-go/pkg/sync"
	tea "github.com/charmbracelet/bubbletea"
)

// NewModel creates a new TUI model
func NewModel() Model {
	return Model{
		syncQuality: avsync.QualityLost,
	}
}

// Run creates the TUI program; the caller starts it
func Run() *tea.Program {
	return tea.NewProgram(NewModel(), tea.WithAltScreen())
}
