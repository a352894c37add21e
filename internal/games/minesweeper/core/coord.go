package core

import "fmt"

// Coord identifies a cell on the field by zero-based row and column.
// Coords are comparable and can be used as map keys.
type Coord struct {
	Row int
	Col int
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns a new Coord offset by (dr, dc).
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// kingOffsets are the 8 neighbour offsets in reading order:
// NW, N, NE, W, E, SW, S, SE.
var kingOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Around returns the 8 coordinates surrounding c, whether or not they are active.
func (c Coord) Around() [8]Coord {
	var out [8]Coord
	for i, off := range kingOffsets {
		out[i] = c.Add(off[0], off[1])
	}
	return out
}

// Touches reports whether other is one of the 8 cells around c.
func (c Coord) Touches(other Coord) bool {
	dr := c.Row - other.Row
	dc := c.Col - other.Col
	if dr == 0 && dc == 0 {
		return false
	}
	return dr >= -1 && dr <= 1 && dc >= -1 && dc <= 1
}
