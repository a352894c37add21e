package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
)

func TestNewShapeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		bounds core.Bounds
		coords []core.Coord
	}{
		{"empty", core.DefaultBounds(), nil},
		{"row outside field", core.DefaultBounds(), []core.Coord{core.C(28, 0)}},
		{"negative column", core.DefaultBounds(), []core.Coord{core.C(0, -1)}},
		{"too few columns", core.Bounds{Rows: 10, Cols: 10}, []core.Coord{core.C(0, 0)}},
		{"too many rows", core.Bounds{Rows: 61, Cols: 30}, []core.Coord{core.C(0, 0)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := core.NewShape(tc.bounds, tc.coords)
			if !errors.Is(err, core.ErrInvalidShape) {
				t.Errorf("expected ErrInvalidShape, got %v", err)
			}
		})
	}
}

func TestShapeDuplicatesCollapse(t *testing.T) {
	s, err := core.NewShape(core.DefaultBounds(), []core.Coord{
		core.C(1, 1), core.C(1, 1), core.C(0, 2),
	})
	if err != nil {
		t.Fatalf("NewShape failed: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 cells, got %d", s.Len())
	}

	// Row-major ordering
	coords := s.Coords()
	if coords[0] != core.C(0, 2) || coords[1] != core.C(1, 1) {
		t.Errorf("unexpected order: %v", coords)
	}
}

func TestShapeNeighbors(t *testing.T) {
	s := rect(t, 3, 3)

	tests := []struct {
		coord    core.Coord
		expected int
	}{
		{core.C(0, 0), 3},
		{core.C(0, 1), 5},
		{core.C(1, 1), 8},
		{core.C(2, 2), 3},
		{core.C(5, 5), 0},
	}

	for _, tc := range tests {
		got := s.Neighbors(tc.coord)
		if len(got) != tc.expected {
			t.Errorf("Neighbors(%s) = %d cells, expected %d", tc.coord, len(got), tc.expected)
		}
		for _, n := range got {
			if !s.Contains(n) {
				t.Errorf("Neighbors(%s) returned inactive %s", tc.coord, n)
			}
			if !n.Touches(tc.coord) {
				t.Errorf("Neighbors(%s) returned non-adjacent %s", tc.coord, n)
			}
		}
	}
}

func TestShapeNeighborsOrder(t *testing.T) {
	s := rect(t, 3, 3)
	expected := []core.Coord{
		core.C(0, 0), core.C(0, 1), core.C(0, 2),
		core.C(1, 0), core.C(1, 2),
		core.C(2, 0), core.C(2, 1), core.C(2, 2),
	}
	got := s.Neighbors(core.C(1, 1))
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("neighbour %d = %s, expected %s", i, got[i], expected[i])
		}
	}
}

func TestShapeNeighborsSkipHoles(t *testing.T) {
	// Ring: the centre of a 3x3 border is a hole
	s := ring(t, 3)
	if s.Contains(core.C(1, 1)) {
		t.Fatal("ring should not contain its centre")
	}
	if n := len(s.Neighbors(core.C(0, 1))); n != 4 {
		t.Errorf("expected 4 neighbours for (0,1) on ring, got %d", n)
	}
}

func TestShapeEqual(t *testing.T) {
	a := rect(t, 2, 2)
	b, err := core.NewShape(core.DefaultBounds(), []core.Coord{
		core.C(1, 1), core.C(0, 0), core.C(1, 0), core.C(0, 1),
	})
	if err != nil {
		t.Fatalf("NewShape failed: %v", err)
	}
	if !a.Equal(b) {
		t.Error("shapes with the same cells should be equal")
	}

	c := rect(t, 2, 3)
	if a.Equal(c) {
		t.Error("shapes with different cells should not be equal")
	}
}

func TestShapeExtent(t *testing.T) {
	s, err := core.NewShape(core.DefaultBounds(), []core.Coord{
		core.C(4, 7), core.C(2, 9), core.C(6, 3),
	})
	if err != nil {
		t.Fatalf("NewShape failed: %v", err)
	}
	lo, hi := s.Extent()
	if lo != core.C(2, 3) || hi != core.C(6, 9) {
		t.Errorf("Extent() = %s, %s", lo, hi)
	}
}
