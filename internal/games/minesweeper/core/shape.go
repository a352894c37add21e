package core

import (
	"fmt"
	"sort"
)

// Field limits for the rectangle that board shapes are drawn on.
const (
	MinRows = 1
	MaxRows = 60
	MinCols = 25
	MaxCols = 60
)

// Bounds is the size of the drawing field a shape lives in.
type Bounds struct {
	Rows int
	Cols int
}

// DefaultBounds returns the default 28x30 field.
func DefaultBounds() Bounds {
	return Bounds{Rows: 28, Cols: 30}
}

// Validate checks the field size against MinRows..MaxRows and MinCols..MaxCols.
func (b Bounds) Validate() error {
	if b.Rows < MinRows || b.Rows > MaxRows {
		return fmt.Errorf("%w: rows %d outside [%d,%d]", ErrInvalidShape, b.Rows, MinRows, MaxRows)
	}
	if b.Cols < MinCols || b.Cols > MaxCols {
		return fmt.Errorf("%w: cols %d outside [%d,%d]", ErrInvalidShape, b.Cols, MinCols, MaxCols)
	}
	return nil
}

// InBounds reports whether c lies inside the field.
func (b Bounds) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < b.Rows && c.Col >= 0 && c.Col < b.Cols
}

// Shape is an immutable set of active cells.
//
// Each active cell gets a dense index in row-major order; neighbour lists
// are precomputed as index slices so the reveal and layout code can work on
// flat arrays instead of map lookups.
type Shape struct {
	bounds    Bounds
	coords    []Coord       // index -> coord, row-major
	index     map[Coord]int // coord -> index
	neighbors [][]int       // index -> neighbour indices, NW..SE order
}

// NewShape builds a shape from the given coordinates. Duplicates collapse.
// Returns ErrInvalidShape if the set is empty, the bounds are out of range
// or any coordinate falls outside the bounds.
func NewShape(bounds Bounds, coords []Coord) (*Shape, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}

	index := make(map[Coord]int, len(coords))
	unique := make([]Coord, 0, len(coords))
	for _, c := range coords {
		if !bounds.InBounds(c) {
			return nil, fmt.Errorf("%w: cell %s outside %dx%d field", ErrInvalidShape, c, bounds.Rows, bounds.Cols)
		}
		if _, dup := index[c]; dup {
			continue
		}
		index[c] = 0
		unique = append(unique, c)
	}
	if len(unique) == 0 {
		return nil, fmt.Errorf("%w: no active cells", ErrInvalidShape)
	}

	sort.Slice(unique, func(i, j int) bool {
		if unique[i].Row != unique[j].Row {
			return unique[i].Row < unique[j].Row
		}
		return unique[i].Col < unique[j].Col
	})
	for i, c := range unique {
		index[c] = i
	}

	s := &Shape{
		bounds:    bounds,
		coords:    unique,
		index:     index,
		neighbors: make([][]int, len(unique)),
	}
	for i, c := range unique {
		for _, n := range c.Around() {
			if j, ok := index[n]; ok {
				s.neighbors[i] = append(s.neighbors[i], j)
			}
		}
	}
	return s, nil
}

// Rect builds a fully active rows x cols shape anchored at the origin.
func Rect(bounds Bounds, rows, cols int) (*Shape, error) {
	coords := make([]Coord, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			coords = append(coords, C(r, c))
		}
	}
	return NewShape(bounds, coords)
}

// Bounds returns the field the shape was drawn on.
func (s *Shape) Bounds() Bounds {
	return s.bounds
}

// Len returns the number of active cells.
func (s *Shape) Len() int {
	return len(s.coords)
}

// Contains reports whether c is an active cell.
func (s *Shape) Contains(c Coord) bool {
	_, ok := s.index[c]
	return ok
}

// Index returns the dense index of c.
func (s *Shape) Index(c Coord) (int, bool) {
	i, ok := s.index[c]
	return i, ok
}

// At returns the coordinate for a dense index.
func (s *Shape) At(i int) Coord {
	return s.coords[i]
}

// Coords returns a copy of all active cells in row-major order.
func (s *Shape) Coords() []Coord {
	out := make([]Coord, len(s.coords))
	copy(out, s.coords)
	return out
}

// Neighbors returns the active cells among the 8 around c, NW..SE order.
// Returns nil if c is not active.
func (s *Shape) Neighbors(c Coord) []Coord {
	i, ok := s.index[c]
	if !ok {
		return nil
	}
	out := make([]Coord, len(s.neighbors[i]))
	for k, j := range s.neighbors[i] {
		out[k] = s.coords[j]
	}
	return out
}

// neighborIdx returns the neighbour indices of cell i. Callers must not modify it.
func (s *Shape) neighborIdx(i int) []int {
	return s.neighbors[i]
}

// Extent returns the top-left and bottom-right active corners.
func (s *Shape) Extent() (min, max Coord) {
	min = s.coords[0]
	max = s.coords[0]
	for _, c := range s.coords {
		if c.Row < min.Row {
			min.Row = c.Row
		}
		if c.Col < min.Col {
			min.Col = c.Col
		}
		if c.Row > max.Row {
			max.Row = c.Row
		}
		if c.Col > max.Col {
			max.Col = c.Col
		}
	}
	return min, max
}

// Equal reports whether two shapes have the same set of active cells.
func (s *Shape) Equal(other *Shape) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.coords) != len(other.coords) {
		return false
	}
	for i, c := range s.coords {
		if other.coords[i] != c {
			return false
		}
	}
	return true
}
