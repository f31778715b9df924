package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olivier-w/strumspace/internal/instrument"
)

func testLabel(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func testStrings(t *testing.T) []*instrument.String {
	t.Helper()
	rig := instrument.New(instrument.DefaultStrings("assets"), func(instrument.StringSpec) instrument.Cue {
		return &stubCue{ready: true}
	}, instrument.WithLabeler(testLabel))
	rig.Mount(context.Background())
	return rig.Strings()
}

func TestLayoutOrdersStringsByHeight(t *testing.T) {
	l := newLayout(testStrings(t), 120, 30)
	if len(l.bands) != 6 {
		t.Fatalf("expected six bands, got %d", len(l.bands))
	}
	for i := 1; i < len(l.bands); i++ {
		if l.bands[i].row >= l.bands[i-1].row {
			t.Fatalf("expected string %d above string %d, rows %d and %d", i, i-1, l.bands[i].row, l.bands[i-1].row)
		}
	}
	for i, b := range l.bands {
		if b.row < l.stageTop || b.row >= l.stageTop+l.stageRows {
			t.Fatalf("band %d row %d outside stage", i, b.row)
		}
		if b.col0 < labelCols || b.col0+b.cols > l.width {
			t.Fatalf("band %d columns [%d,%d) outside window", i, b.col0, b.col0+b.cols)
		}
	}
}

func TestLayoutHit(t *testing.T) {
	l := newLayout(testStrings(t), 120, 30)
	b := l.bands[3]
	x := b.col0 + 1

	if got := l.hit(x, b.row); got != 3 {
		t.Fatalf("expected hit on string 3, got %d", got)
	}
	if got := l.hit(0, b.row); got != -1 {
		t.Fatalf("expected miss in label gutter, got %d", got)
	}
	if got := l.hit(x, 0); got != -1 {
		t.Fatalf("expected miss in header, got %d", got)
	}
}

func TestLayoutHitFollowsPan(t *testing.T) {
	l := newLayout(testStrings(t), 120, 30)
	b := l.bands[0]
	panned := l.withPan(3, 1)
	if got := panned.hit(b.col0+3+1, b.row+1); got != 0 {
		t.Fatalf("expected panned hit on string 0, got %d", got)
	}
}

func TestLayoutTooNarrow(t *testing.T) {
	l := newLayout(testStrings(t), 4, 30)
	if len(l.bands) != 0 {
		t.Fatalf("expected no bands in a tiny window, got %d", len(l.bands))
	}
	if l.hit(1, 5) != -1 {
		t.Fatal("expected no hit without bands")
	}
}
