package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

func isStart(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "enter", " ":
		return true
	}
	return false
}

func helpText(cameraControls bool) string {
	s := "hover or click a string to pluck  c "
	if cameraControls {
		s += "lock guitar  ←↑↓→/drag move  0 recenter"
	} else {
		s += "adjust guitar"
	}
	s += "  q quit"
	return s
}
