// Package tui runs the game on Bubble Tea: the "tea" runner, the menu,
// settings and high-score screens, and the SSH server behind snake serve.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Gen identifies the
// game model that scheduled it; stale ticks from a finished game are
// dropped.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd schedules the next tick. The interval changes with score,
// heading and effects, so each tick asks for the next one.
func tickCmd(gen int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
