// Package tui provides the Bubble Tea step viewer: it advances an A* session
// one expansion per frame and draws the open and closed sets as they grow.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Frame rate bounds accepted by the viewer.
const (
	MinFPS = 1
	MaxFPS = 240
)

// TickMsg is sent once per frame to advance the search.
type TickMsg time.Time

// tickCmd returns a command that sends the next TickMsg after one frame at fps.
func tickCmd(fps int) tea.Cmd {
	interval := time.Second / time.Duration(clampFPS(fps))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func clampFPS(fps int) int {
	switch {
	case fps < MinFPS:
		return MinFPS
	case fps > MaxFPS:
		return MaxFPS
	}
	return fps
}
