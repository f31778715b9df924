package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// colorRGB is a cell foreground color.
type colorRGB struct {
	R, G, B uint8
}

func (c colorRGB) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// terminalProfile is the color profile lipgloss detected for the output.
func terminalProfile() termenv.Profile {
	return lipgloss.ColorProfile()
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// rgbFromUnit converts shader-style [0,1] components.
func rgbFromUnit(r, g, b float64) colorRGB {
	return colorRGB{R: uint8(clamp01(r) * 255), G: uint8(clamp01(g) * 255), B: uint8(clamp01(b) * 255)}
}

func lerpColor(a, b colorRGB, t float64) colorRGB {
	t = clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return colorRGB{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}

// scale multiplies every component by k, as a light intensity would.
func (c colorRGB) scale(k float64) colorRGB {
	return rgbFromUnit(float64(c.R)/255*k, float64(c.G)/255*k, float64(c.B)/255*k)
}

// parseColor understands #RRGGBB and the few named colors the scene uses.
func parseColor(s string) (colorRGB, bool) {
	switch strings.ToLower(s) {
	case "orange":
		return colorRGB{R: 255, G: 165, B: 0}, true
	case "black":
		return colorRGB{}, true
	case "white":
		return colorRGB{R: 255, G: 255, B: 255}, true
	}
	var c colorRGB
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return colorRGB{}, false
	}
	return c, true
}

// pen writes foreground escapes for a row of cells, emitting a sequence only
// when the color changes. termenv degrades truecolor to the profile.
type pen struct {
	profile termenv.Profile
	current colorRGB
	inked   bool
}

func newPen(p termenv.Profile) pen {
	return pen{profile: p}
}

func (p *pen) set(sb *strings.Builder, c colorRGB) {
	if p.profile == termenv.Ascii || (p.inked && c == p.current) {
		return
	}
	seq := p.profile.Color(c.hex()).Sequence(false)
	if seq == "" {
		return
	}
	sb.WriteString(termenv.CSI + seq + "m")
	p.current, p.inked = c, true
}

func (p *pen) reset(sb *strings.Builder) {
	if !p.inked {
		return
	}
	sb.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	p.inked = false
}
