package core

import "fmt"

// Outcome describes the cells uncovered by one reveal or chord.
type Outcome struct {
	Revealed []Coord // newly revealed cells in uncover order, mine last
	MineHit  bool
	Mine     Coord // the mined cell that was uncovered, valid if MineHit
}

// Board holds the per-cell state of a shape and applies the cell
// transitions. It runs reveals, flood fill and chords against a layout which
// may be attached after construction.
type Board struct {
	shape        *Shape
	mode         Mode
	layout       *Layout
	cells        []CellState
	revealedSafe int
	flags        int
}

// NewBoard creates a board with every cell Hidden and no layout yet.
func NewBoard(shape *Shape, mode Mode) *Board {
	cells := make([]CellState, shape.Len())
	for i := range cells {
		cells[i] = Hidden()
	}
	return &Board{
		shape: shape,
		mode:  mode,
		cells: cells,
	}
}

// SetLayout attaches the mine layout. It can only be done once and the
// layout must belong to the board's shape.
func (b *Board) SetLayout(l *Layout) error {
	if b.layout != nil {
		return fmt.Errorf("%w: layout already set", ErrIllegalAction)
	}
	if l == nil || !l.Shape().Equal(b.shape) {
		return fmt.Errorf("%w: layout does not match shape", ErrIllegalAction)
	}
	b.layout = l
	return nil
}

// Shape returns the board's shape.
func (b *Board) Shape() *Shape { return b.shape }

// Mode returns the rules the board was created with.
func (b *Board) Mode() Mode { return b.mode }

// Layout returns the attached layout, or nil.
func (b *Board) Layout() *Layout { return b.layout }

// HasLayout reports whether mines have been placed.
func (b *Board) HasLayout() bool { return b.layout != nil }

// Cell returns the state of c.
func (b *Board) Cell(c Coord) (CellState, bool) {
	i, ok := b.shape.Index(c)
	if !ok {
		return CellState{}, false
	}
	return b.cells[i], true
}

// FlagsPlaced returns the total number of flags on the board.
func (b *Board) FlagsPlaced() int { return b.flags }

// RevealedSafe returns how many mine-free cells are uncovered.
func (b *Board) RevealedSafe() int { return b.revealedSafe }

// Cleared reports whether every mine-free cell is revealed.
func (b *Board) Cleared() bool {
	return b.layout != nil && b.revealedSafe == b.layout.SafeCells()
}

// FlagsAround returns the number of flags on the active neighbours of c.
func (b *Board) FlagsAround(c Coord) int {
	i, ok := b.shape.Index(c)
	if !ok {
		return 0
	}
	total := 0
	for _, j := range b.shape.neighborIdx(i) {
		total += b.cells[j].Flags()
	}
	return total
}

func (b *Board) lookup(c Coord) (int, error) {
	i, ok := b.shape.Index(c)
	if !ok {
		return 0, fmt.Errorf("%w: %s is not on the board", ErrIllegalAction, c)
	}
	return i, nil
}

// Reveal uncovers a Hidden cell. A mine ends the action with MineHit set;
// a zero cell floods outward through its Hidden neighbours.
func (b *Board) Reveal(c Coord) (Outcome, error) {
	var out Outcome
	i, err := b.lookup(c)
	if err != nil {
		return out, err
	}
	if b.layout == nil {
		return out, fmt.Errorf("%w: mines not placed yet", ErrIllegalAction)
	}
	if _, err := b.cells[i].Reveal(); err != nil {
		return out, fmt.Errorf("reveal %s: %w", c, err)
	}

	if b.layout.mines[i] > 0 {
		b.uncoverMine(i, &out)
		return out, nil
	}
	b.flood(i, &out)
	return out, nil
}

// Chord uncovers every Hidden neighbour of a revealed numbered cell,
// cascading through zero cells. Flagged neighbours are left alone. A mine
// stops the chord at once; neighbours not yet reached stay Hidden.
//
// With strict set the chord only runs when the flags around the cell add up
// to its number; otherwise it is a no-op.
func (b *Board) Chord(c Coord, strict bool) (Outcome, error) {
	var out Outcome
	i, err := b.lookup(c)
	if err != nil {
		return out, err
	}
	if b.layout == nil || !b.cells[i].IsRevealed() {
		return out, fmt.Errorf("%w: chord on %s needs a revealed cell", ErrIllegalAction, c)
	}
	if b.layout.mines[i] > 0 || b.layout.adjacency[i] == 0 {
		return out, fmt.Errorf("%w: chord on %s needs a numbered cell", ErrIllegalAction, c)
	}
	if strict && b.FlagsAround(c) != b.layout.adjacency[i] {
		return out, nil
	}

	for _, j := range b.shape.neighborIdx(i) {
		if !b.cells[j].IsHidden() {
			continue
		}
		if b.layout.mines[j] > 0 {
			b.uncoverMine(j, &out)
			return out, nil
		}
		b.flood(j, &out)
	}
	return out, nil
}

func (b *Board) uncoverMine(i int, out *Outcome) {
	b.cells[i] = Revealed()
	out.MineHit = true
	out.Mine = b.shape.At(i)
	out.Revealed = append(out.Revealed, out.Mine)
}

// flood reveals the mine-free cell start and, breadth first, every Hidden
// cell reachable through zero cells. Flagged cells are skipped. Revealed
// cells are never queued twice, so cycles in the neighbour graph terminate.
func (b *Board) flood(start int, out *Outcome) {
	b.cells[start] = Revealed()
	b.revealedSafe++
	out.Revealed = append(out.Revealed, b.shape.At(start))

	queue := []int{start}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		if b.layout.adjacency[i] != 0 {
			continue
		}
		for _, j := range b.shape.neighborIdx(i) {
			if !b.cells[j].IsHidden() || b.layout.mines[j] > 0 {
				continue
			}
			b.cells[j] = Revealed()
			b.revealedSafe++
			out.Revealed = append(out.Revealed, b.shape.At(j))
			queue = append(queue, j)
		}
	}
}

// AddFlag places one flag on c following the board's mode.
func (b *Board) AddFlag(c Coord) (CellState, error) {
	i, err := b.lookup(c)
	if err != nil {
		return CellState{}, err
	}
	next, err := b.cells[i].AddFlag(b.mode)
	if err != nil {
		return b.cells[i], fmt.Errorf("flag %s: %w", c, err)
	}
	b.cells[i] = next
	b.flags++
	return next, nil
}

// RemoveFlag takes one flag off c.
func (b *Board) RemoveFlag(c Coord) (CellState, error) {
	i, err := b.lookup(c)
	if err != nil {
		return CellState{}, err
	}
	next, err := b.cells[i].RemoveFlag()
	if err != nil {
		return b.cells[i], fmt.Errorf("unflag %s: %w", c, err)
	}
	b.cells[i] = next
	b.flags--
	return next, nil
}

// ClearFlags removes every flag from c, returning it to Hidden.
func (b *Board) ClearFlags(c Coord) (CellState, error) {
	i, err := b.lookup(c)
	if err != nil {
		return CellState{}, err
	}
	if !b.cells[i].IsFlagged() {
		return b.cells[i], fmt.Errorf("unflag %s: %w: cell has no flags", c, ErrIllegalAction)
	}
	b.flags -= b.cells[i].Flags()
	b.cells[i] = Hidden()
	return b.cells[i], nil
}
