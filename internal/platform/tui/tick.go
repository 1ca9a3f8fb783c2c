// Package tui provides the Bubble Tea front end for a live game session,
// locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the session to the current wall-clock time.
type TickMsg time.Time

// saveMsg requests an autosave.
type saveMsg struct{}

// savedMsg reports the outcome of a save.
type savedMsg struct{ err error }

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 10
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// autosaveCmd fires a saveMsg after every.
func autosaveCmd(every time.Duration) tea.Cmd {
	if every <= 0 {
		return nil
	}
	return tea.Tick(every, func(time.Time) tea.Msg {
		return saveMsg{}
	})
}

// saveCmd persists the session off the update loop.
func saveCmd(save func() error) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{err: save()}
	}
}
