package core

import "fmt"

// RevealState is the tag of a CellState.
type RevealState uint8

const (
	StateHidden RevealState = iota
	StateFlagged
	StateRevealed
)

// String returns a human-readable name for the state.
func (s RevealState) String() string {
	switch s {
	case StateHidden:
		return "Hidden"
	case StateFlagged:
		return "Flagged"
	case StateRevealed:
		return "Revealed"
	default:
		return "Unknown"
	}
}

// CellState is the player-visible state of one cell: Hidden, Flagged(n) or
// Revealed. The flag count is only meaningful when the state is Flagged and
// is always at least 1 there, so every value is one of the three variants.
type CellState struct {
	state RevealState
	flags uint8
}

// Hidden returns the initial state.
func Hidden() CellState {
	return CellState{state: StateHidden}
}

// Flagged returns the Flagged(n) state. n below 1 yields Hidden.
func Flagged(n int) CellState {
	if n < 1 {
		return Hidden()
	}
	return CellState{state: StateFlagged, flags: uint8(n)}
}

// Revealed returns the Revealed state.
func Revealed() CellState {
	return CellState{state: StateRevealed}
}

// State returns the tag.
func (c CellState) State() RevealState {
	return c.state
}

// Flags returns the number of flags, 0 unless Flagged.
func (c CellState) Flags() int {
	if c.state != StateFlagged {
		return 0
	}
	return int(c.flags)
}

// IsHidden reports whether the cell is Hidden (covered and unflagged).
func (c CellState) IsHidden() bool { return c.state == StateHidden }

// IsFlagged reports whether the cell carries at least one flag.
func (c CellState) IsFlagged() bool { return c.state == StateFlagged }

// IsRevealed reports whether the cell has been uncovered.
func (c CellState) IsRevealed() bool { return c.state == StateRevealed }

// String returns e.g. "Hidden", "Flagged(3)" or "Revealed".
func (c CellState) String() string {
	if c.state == StateFlagged {
		return fmt.Sprintf("Flagged(%d)", c.flags)
	}
	return c.state.String()
}

// Reveal uncovers a Hidden cell. Flagged and Revealed cells reject it.
func (c CellState) Reveal() (CellState, error) {
	switch c.state {
	case StateHidden:
		return Revealed(), nil
	case StateFlagged:
		return c, fmt.Errorf("%w: cell is flagged", ErrIllegalAction)
	default:
		return c, fmt.Errorf("%w: cell already revealed", ErrIllegalAction)
	}
}

// AddFlag places one more flag. Normal mode allows a single flag;
// MultiMine allows up to 5.
func (c CellState) AddFlag(mode Mode) (CellState, error) {
	switch c.state {
	case StateRevealed:
		return c, fmt.Errorf("%w: cannot flag a revealed cell", ErrIllegalAction)
	case StateFlagged:
		if int(c.flags) >= mode.MaxStack() {
			return c, fmt.Errorf("%w: cell already holds %d flags", ErrIllegalAction, c.flags)
		}
		return Flagged(int(c.flags) + 1), nil
	default:
		return Flagged(1), nil
	}
}

// RemoveFlag takes one flag away; the last one returns the cell to Hidden.
func (c CellState) RemoveFlag() (CellState, error) {
	if c.state != StateFlagged {
		return c, fmt.Errorf("%w: cell has no flags", ErrIllegalAction)
	}
	return Flagged(int(c.flags) - 1), nil
}
