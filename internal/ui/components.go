package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/strumspace/internal/responsive"
)

const (
	startTitle  = "Welcome To Strum Space!"
	startButton = "Start Playing"
	adjustLabel = "Adjust Guitar Position"
	lockLabel   = "Lock Guitar Position"
)

func lockButtonLabel(cameraControls bool) string {
	if cameraControls {
		return lockLabel
	}
	return adjustLabel
}

func renderVolumePercent(vol float64) string {
	return fmt.Sprintf("vol %d%%", int(vol*100+0.5))
}

func renderProfile(c responsive.Class, p responsive.Profile) string {
	return fmt.Sprintf("%s  λ %.1f  k %.1f", c, p.WaveLength, p.IntensityScalar)
}

func renderOverlay(width, height int) string {
	body := overlayTitleStyle.Render(startTitle) + "\n\n" + buttonStyle.Render(startButton)
	box := overlayBoxStyle.Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// joinEnds places left and right on one line of the given width.
func joinEnds(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}
