package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg is the per-frame callback of the rig.
type frameMsg time.Time

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
