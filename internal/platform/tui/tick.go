// Package tui hosts the platformer games in a Bubble Tea program. It owns
// the frame loop, keyboard tracking, colour rendering and the menus.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation frame. Gen identifies the loop that
// scheduled it; ticks from a stopped loop are dropped.
type TickMsg struct {
	Gen uint64
	At  time.Time
}

// tickCmd schedules the next tick at the given rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, At: t}
	})
}
