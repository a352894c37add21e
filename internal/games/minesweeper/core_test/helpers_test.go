package core_test

import (
	"testing"

	"github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
)

// rect builds a fully active rows x cols shape on the default field.
func rect(t *testing.T, rows, cols int) *core.Shape {
	t.Helper()
	s, err := core.Rect(core.DefaultBounds(), rows, cols)
	if err != nil {
		t.Fatalf("Rect(%d, %d) failed: %v", rows, cols, err)
	}
	return s
}

// ring builds the border of an n x n square.
func ring(t *testing.T, n int) *core.Shape {
	t.Helper()
	var coords []core.Coord
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if r == 0 || c == 0 || r == n-1 || c == n-1 {
				coords = append(coords, core.C(r, c))
			}
		}
	}
	s, err := core.NewShape(core.DefaultBounds(), coords)
	if err != nil {
		t.Fatalf("NewShape(ring %d) failed: %v", n, err)
	}
	return s
}

// boardWith returns a board over shape with mines attached.
func boardWith(t *testing.T, shape *core.Shape, mode core.Mode, mines map[core.Coord]int) *core.Board {
	t.Helper()
	layout, err := core.NewLayout(shape, mode, mines)
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}
	b := core.NewBoard(shape, mode)
	if err := b.SetLayout(layout); err != nil {
		t.Fatalf("SetLayout failed: %v", err)
	}
	return b
}
