package core

import (
	"fmt"
	"math/rand"
)

// LayoutParams controls mine placement.
type LayoutParams struct {
	Mines int  // total mines to place
	Mode  Mode // ModeMultiMine allows stacks of up to 5

	// StackProbability is the chance, in [0,1], that a mine drawn onto a
	// cell that already holds one stacks there instead of opening a new cell.
	// Only used in ModeMultiMine.
	StackProbability float64

	// Safe, when set, never receives a mine. With SafeNeighbors its active
	// neighbours are excluded as well.
	Safe          *Coord
	SafeNeighbors bool
}

// Layout maps every active cell of a shape to the mines it holds.
// It is immutable once generated.
type Layout struct {
	shape     *Shape
	mines     []int // index -> mines on the cell
	adjacency []int // index -> sum of mines on active neighbours
	total     int
	mined     int // cells with at least one mine
}

// GenerateLayout places p.Mines mines on the shape using rng.
//
// Every mine is drawn onto a uniformly random eligible cell. In MultiMine
// mode a cell that already holds between 1 and 4 mines stays eligible; when it
// is drawn, a StackProbability roll decides between stacking on it and opening
// a fresh cell. Returns ErrDegenerateLayout if the eligible cells cannot hold
// p.Mines mines.
func GenerateLayout(shape *Shape, p LayoutParams, rng *rand.Rand) (*Layout, error) {
	if shape == nil || shape.Len() == 0 {
		return nil, fmt.Errorf("%w: no active cells", ErrInvalidShape)
	}
	if p.Mines < 0 {
		return nil, fmt.Errorf("%w: negative mine count %d", ErrDegenerateLayout, p.Mines)
	}

	excluded := make([]bool, shape.Len())
	if p.Safe != nil {
		if i, ok := shape.Index(*p.Safe); ok {
			excluded[i] = true
			if p.SafeNeighbors {
				for _, j := range shape.neighborIdx(i) {
					excluded[j] = true
				}
			}
		}
	}

	// fresh holds unmined candidates; drawing swaps the pick with the last
	// element and shrinks the slice.
	fresh := make([]int, 0, shape.Len())
	for i := range excluded {
		if !excluded[i] {
			fresh = append(fresh, i)
		}
	}

	stack := p.Mode.MaxStack()
	if capacity := len(fresh) * stack; p.Mines > capacity {
		return nil, fmt.Errorf("%w: %d mines requested, room for %d in %d eligible cells",
			ErrDegenerateLayout, p.Mines, capacity, len(fresh))
	}

	mines := make([]int, shape.Len())
	takeFresh := func(k int) int {
		cell := fresh[k]
		last := len(fresh) - 1
		fresh[k] = fresh[last]
		fresh = fresh[:last]
		return cell
	}

	if p.Mode != ModeMultiMine {
		for n := 0; n < p.Mines; n++ {
			mines[takeFresh(rng.Intn(len(fresh)))] = 1
		}
		return newLayout(shape, mines), nil
	}

	// stackable holds mined cells below the stack limit, with pos tracking
	// each cell's position for O(1) removal.
	stackable := make([]int, 0, p.Mines)
	pos := make(map[int]int)
	addStackable := func(cell int) {
		pos[cell] = len(stackable)
		stackable = append(stackable, cell)
	}
	dropStackable := func(cell int) {
		k := pos[cell]
		last := len(stackable) - 1
		moved := stackable[last]
		stackable[k] = moved
		pos[moved] = k
		stackable = stackable[:last]
		delete(pos, cell)
	}
	open := func(cell int) {
		mines[cell] = 1
		if stack > 1 {
			addStackable(cell)
		}
	}

	for n := 0; n < p.Mines; n++ {
		k := rng.Intn(len(fresh) + len(stackable))
		if k < len(fresh) {
			open(takeFresh(k))
			continue
		}

		cell := stackable[k-len(fresh)]
		if len(fresh) > 0 && rng.Float64() >= p.StackProbability {
			open(takeFresh(rng.Intn(len(fresh))))
			continue
		}
		mines[cell]++
		if mines[cell] >= stack {
			dropStackable(cell)
		}
	}

	return newLayout(shape, mines), nil
}

// NewLayout builds a layout from explicit mine counts. Cells not in the map
// hold no mines. Returns ErrDegenerateLayout for a coordinate outside the
// shape or a count outside 0..mode.MaxStack().
func NewLayout(shape *Shape, mode Mode, counts map[Coord]int) (*Layout, error) {
	if shape == nil || shape.Len() == 0 {
		return nil, fmt.Errorf("%w: no active cells", ErrInvalidShape)
	}
	mines := make([]int, shape.Len())
	for c, n := range counts {
		i, ok := shape.Index(c)
		if !ok {
			return nil, fmt.Errorf("%w: mine at inactive cell %s", ErrDegenerateLayout, c)
		}
		if n < 0 || n > mode.MaxStack() {
			return nil, fmt.Errorf("%w: %d mines at %s, limit %d", ErrDegenerateLayout, n, c, mode.MaxStack())
		}
		mines[i] = n
	}
	return newLayout(shape, mines), nil
}

func newLayout(shape *Shape, mines []int) *Layout {
	l := &Layout{
		shape:     shape,
		mines:     mines,
		adjacency: make([]int, len(mines)),
	}
	for i, n := range mines {
		if n == 0 {
			continue
		}
		l.total += n
		l.mined++
		for _, j := range shape.neighborIdx(i) {
			l.adjacency[j] += n
		}
	}
	return l
}

// Shape returns the shape the layout was generated for.
func (l *Layout) Shape() *Shape {
	return l.shape
}

// Mines returns the number of mines on c, 0 for inactive cells.
func (l *Layout) Mines(c Coord) int {
	if i, ok := l.shape.Index(c); ok {
		return l.mines[i]
	}
	return 0
}

// Adjacency returns the sum of mines on the active neighbours of c.
func (l *Layout) Adjacency(c Coord) int {
	if i, ok := l.shape.Index(c); ok {
		return l.adjacency[i]
	}
	return 0
}

// TotalMines returns the number of mines placed.
func (l *Layout) TotalMines() int {
	return l.total
}

// MinedCells returns the number of cells holding at least one mine.
func (l *Layout) MinedCells() int {
	return l.mined
}

// SafeCells returns the number of cells without mines.
func (l *Layout) SafeCells() int {
	return l.shape.Len() - l.mined
}

// MaxStack returns the largest number of mines on any one cell.
func (l *Layout) MaxStack() int {
	best := 0
	for _, n := range l.mines {
		if n > best {
			best = n
		}
	}
	return best
}
