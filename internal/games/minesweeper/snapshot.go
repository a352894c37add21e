package minesweeper

import (
	"time"

	"github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
)

// CellKind is how a cell should be drawn.
type CellKind int

const (
	KindHidden CellKind = iota
	KindFlagged
	KindRevealed
	KindMine       // uncovered mine; Exploded marks the one that ended the game
	KindMissedMine // unflagged mine shown after a loss
	KindWrongFlag  // flags not matching the cell's mines, shown after a loss
)

func (k CellKind) String() string {
	switch k {
	case KindHidden:
		return "hidden"
	case KindFlagged:
		return "flagged"
	case KindRevealed:
		return "revealed"
	case KindMine:
		return "mine"
	case KindMissedMine:
		return "missed-mine"
	case KindWrongFlag:
		return "wrong-flag"
	default:
		return "unknown"
	}
}

// CellView is the render state of one cell. Mines is only filled in once
// the game is over.
type CellView struct {
	Coord     core.Coord
	Kind      CellKind
	Flags     int
	Adjacency int // valid for KindRevealed
	Mines     int
	Exploded  bool
}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	Status         Status
	Phase          Phase
	Mode           core.Mode
	Bounds         core.Bounds
	Cells          []CellView // shape order
	MineTarget     int
	FlagsPlaced    int
	MinesRemaining int
	Elapsed        time.Duration
	StartedAt      time.Time

	index map[core.Coord]int
}

// At returns the view of c, false if c is not on the board.
func (s Snapshot) At(c core.Coord) (CellView, bool) {
	i, ok := s.index[c]
	if !ok {
		return CellView{}, false
	}
	return s.Cells[i], true
}

// Snapshot copies the current cell states. After a loss missed mines and
// wrong flags are marked; after a win every mined cell shows as flagged with
// its mine count.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Status:         s.status,
		Phase:          s.phase,
		Mode:           s.mode,
		Bounds:         s.shape.Bounds(),
		Cells:          make([]CellView, s.shape.Len()),
		MineTarget:     s.target,
		FlagsPlaced:    s.board.FlagsPlaced(),
		MinesRemaining: s.MinesRemaining(),
		Elapsed:        s.Elapsed(),
		StartedAt:      s.started,
		index:          make(map[core.Coord]int, s.shape.Len()),
	}
	if s.status == StatusWon {
		snap.FlagsPlaced = s.target
		snap.MinesRemaining = 0
	}

	layout := s.board.Layout()
	for i, c := range s.shape.Coords() {
		cell, _ := s.board.Cell(c)
		v := CellView{Coord: c, Flags: cell.Flags()}
		mines := 0
		if layout != nil {
			mines = layout.Mines(c)
		}
		if s.status.Terminal() {
			v.Mines = mines
		}

		switch {
		case cell.IsRevealed() && mines > 0:
			v.Kind = KindMine
			v.Exploded = true
		case cell.IsRevealed():
			v.Kind = KindRevealed
			v.Adjacency = layout.Adjacency(c)
		case s.status == StatusWon:
			// only mined cells are left covered
			v.Kind = KindFlagged
			v.Flags = mines
		case s.status == StatusLost && cell.IsFlagged() && cell.Flags() != mines:
			v.Kind = KindWrongFlag
		case s.status == StatusLost && !cell.IsFlagged() && mines > 0:
			v.Kind = KindMissedMine
		case cell.IsFlagged():
			v.Kind = KindFlagged
		default:
			v.Kind = KindHidden
		}

		snap.Cells[i] = v
		snap.index[c] = i
	}
	return snap
}
