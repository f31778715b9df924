package ui

import (
	"math"
	"strings"

	"github.com/muesli/termenv"
	"github.com/olivier-w/strumspace/internal/instrument"
	"github.com/olivier-w/strumspace/internal/scene"
)

// String gradient endpoints, from the far end to the near end.
var (
	stringFar  = rgbFromUnit(0.2, 0.1, 0.6)
	stringNear = rgbFromUnit(0.2, 0.2, 1)
	stringLit  = colorRGB{R: 255, G: 248, B: 190}
)

type cell struct {
	r       rune
	color   colorRGB
	colored bool
}

// canvas is a fixed grid of styled cells whose first row sits at screen
// row top.
type canvas struct {
	w, h  int
	top   int
	cells []cell
}

func newCanvas(w, h, top int) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0), top: top}
	c.cells = make([]cell, c.w*c.h)
	for i := range c.cells {
		c.cells[i].r = ' '
	}
	return c
}

func (c *canvas) set(x, y int, r rune, col colorRGB) {
	y -= c.top
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, color: col, colored: true}
}

func (c *canvas) text(x, y int, s string, col colorRGB) {
	for _, r := range s {
		c.set(x, y, r, col)
		x++
	}
}

func (c *canvas) render(p termenv.Profile) string {
	var out strings.Builder
	color := newPen(p)
	for y := range c.h {
		if y > 0 {
			out.WriteByte('\n')
		}
		for x := range c.w {
			cl := c.cells[y*c.w+x]
			if cl.colored {
				color.set(&out, cl.color)
			}
			out.WriteRune(cl.r)
		}
		color.reset(&out)
	}
	return out.String()
}

// subRowGlyph picks a scan-line glyph for a vertex that sits frac rows below
// the centre of its cell, frac in [-0.5, 0.5].
func subRowGlyph(frac float64) rune {
	switch {
	case frac < -1.0/6:
		return '⎺'
	case frac > 1.0/6:
		return '⎽'
	default:
		return '─'
	}
}

// drawBody paints the decorated guitar body behind the strings: a toon-shaded
// ellipse with an outline and a sound hole.
func drawBody(c *canvas, l layout, d scene.Description) {
	if len(l.bands) == 0 {
		return
	}
	fill, ok := parseColor(string(d.Body.Material.Color))
	if !ok {
		return
	}
	fill = fill.scale(math.Min(0.55+0.45*d.Ambient(), 1))
	outline, _ := parseColor(string(d.Body.Outline.Color))
	if outline == (colorRGB{}) {
		// Black vanishes on dark terminals; darken the fill instead.
		outline = fill.scale(0.45)
	}

	top, bottom := l.bands[0].row, l.bands[0].row
	for _, b := range l.bands {
		top = min(top, b.row)
		bottom = max(bottom, b.row)
	}
	cy := float64(top+bottom)/2 + float64(l.panY)
	cx := float64(labelCols) + (d.Body.Position.Z-l.zMin)*l.colsPerUnit + float64(l.panX)
	ry := float64(bottom-top)/2 + 3 + d.Body.Outline.Thickness
	rx := math.Max(ry*2.2, float64(l.width)/6)
	hole := ry * 0.45

	for y := l.stageTop; y < l.stageTop+l.stageRows; y++ {
		for x := 0; x < l.width; x++ {
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			r := dx*dx + dy*dy
			switch {
			case r > 1:
				continue
			case r > 0.82:
				c.set(x, y, '▓', outline)
			default:
				hx := (float64(x) - cx) / (hole * 2.2)
				hy := (float64(y) - cy) / hole
				if h := hx*hx + hy*hy; h <= 1 {
					if h > 0.7 {
						c.set(x, y, '○', outline)
					}
					continue
				}
				c.set(x, y, '░', fill)
			}
		}
	}
}

// drawString samples the string once per column it spans and draws the
// displaced vertices, joining vertical jumps.
func drawString(c *canvas, l layout, i int, s *instrument.String) {
	b := l.bands[i]
	rest := s.Rest(b.cols)
	live := s.Sample(b.cols)
	row := float64(b.row + l.panY)

	labelColor := stringFar
	if s.Active() {
		labelColor = stringLit
	}
	c.text(max(b.col0+l.panX-labelCols, 0), b.row+l.panY, truncate(b.label, labelCols-1), labelColor)

	prev := math.MinInt
	den := float64(max(b.cols-1, 1))
	for k := range b.cols {
		x := b.col0 + l.panX + k
		// Screen rows grow downward.
		pos := row - (live[k].Y-rest[k].Y)*l.rowsPerUnit
		y := int(math.Round(pos))
		col := lerpColor(stringFar, stringNear, float64(k)/den)
		if s.Active() {
			col = lerpColor(col, stringLit, 0.6)
		}
		if prev != math.MinInt && absInt(y-prev) > 1 {
			step := 1
			if y < prev {
				step = -1
			}
			for yy := prev + step; yy != y; yy += step {
				c.set(x, yy, '│', col)
			}
		}
		c.set(x, y, subRowGlyph(pos-float64(y)), col)
		prev = y
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// renderStage draws the body and all strings for the current frame.
func renderStage(l layout, rig *instrument.Rig, p termenv.Profile) string {
	c := newCanvas(l.width, l.stageRows, l.stageTop)
	drawBody(c, l, rig.Scene())
	for i, s := range rig.Strings() {
		if i < len(l.bands) {
			drawString(c, l, i, s)
		}
	}
	return c.render(p)
}
