package ui

import (
	"math"

	"github.com/olivier-w/strumspace/internal/instrument"
)

const (
	headerRows = 2
	footerRows = 4
	labelCols  = 8
	minStage   = 8
)

// band is the on-screen placement of one string.
type band struct {
	row   int // rest row
	col0  int // first column
	cols  int // column span
	label string
}

// layout maps the instrument frame onto the terminal. Strings are drawn
// face-on: a string's Y position picks the row, its Z and length pick the columns.
type layout struct {
	width, height int
	stageTop      int
	stageRows     int
	rowsPerUnit   float64
	colsPerUnit   float64
	zMin          float64
	bands         []band
	panX, panY    int
}

func newLayout(strings []*instrument.String, width, height int) layout {
	l := layout{width: width, height: height, stageTop: headerRows}
	l.stageRows = max(height-headerRows-footerRows, minStage)
	if len(strings) == 0 || width <= labelCols+2 {
		return l
	}

	yMin, yMax := math.Inf(1), math.Inf(-1)
	zMin, zMax := math.Inf(1), math.Inf(-1)
	for _, s := range strings {
		sp := s.Spec()
		yMin = min(yMin, sp.Position.Y)
		yMax = max(yMax, sp.Position.Y)
		zMin = min(zMin, sp.Position.Z-sp.Length/2)
		zMax = max(zMax, sp.Position.Z+sp.Length/2)
	}

	l.zMin = zMin
	l.colsPerUnit = float64(width-labelCols-2) / math.Max(zMax-zMin, 1)
	l.rowsPerUnit = 2
	if span := yMax - yMin; span > 0 {
		l.rowsPerUnit = math.Min(math.Max(float64(l.stageRows-2)/span, 1), 2.5)
	}

	mid := l.stageTop + l.stageRows/2
	yMid := (yMin + yMax) / 2
	for _, s := range strings {
		sp := s.Spec()
		col0 := labelCols + int(math.Round((sp.Position.Z-sp.Length/2-zMin)*l.colsPerUnit))
		cols := max(int(math.Round(sp.Length*l.colsPerUnit)), 2)
		l.bands = append(l.bands, band{
			row:   mid + int(math.Round((yMid-sp.Position.Y)*l.rowsPerUnit)),
			col0:  col0,
			cols:  cols,
			label: s.Label(),
		})
	}

	return l
}

// withPan shifts the stage by a camera offset in cells.
func (l layout) withPan(x, y int) layout {
	l.panX, l.panY = x, y
	return l
}

// hit returns the index of the string nearest to the cell, or -1 when no
// string lies within one row of it.
func (l layout) hit(x, y int) int {
	best, bestDist := -1, 2
	for i, b := range l.bands {
		col0 := b.col0 + l.panX
		if x < col0 || x >= col0+b.cols {
			continue
		}
		d := y - (b.row + l.panY)
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
