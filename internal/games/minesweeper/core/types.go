// Package core implements the minefield engine for free-form boards: shapes,
// mine layouts (including MultiMine stacks), per-cell state transitions and
// the flood-fill reveal. It has no UI or IO dependencies.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Mode selects Normal or MultiMine rules.
type Mode int

const (
	ModeNormal Mode = iota
	ModeMultiMine
)

// String returns the leaderboard name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeMultiMine:
		return "MULTI"
	default:
		return "UNKNOWN"
	}
}

// MaxStack returns the most mines (and flags) a single cell may hold.
func (m Mode) MaxStack() int {
	if m == ModeMultiMine {
		return 5
	}
	return 1
}

// Difficulty is a mine density level from 1 (easy) to 4 (expert).
type Difficulty int

const (
	DifficultyEasy   Difficulty = 1
	DifficultyMedium Difficulty = 2
	DifficultyHard   Difficulty = 3
	DifficultyExpert Difficulty = 4
)

// Density returns the fraction of active cells that hold mines.
func (d Difficulty) Density() float64 {
	switch d {
	case DifficultyEasy:
		return 0.13
	case DifficultyMedium:
		return 0.16
	case DifficultyHard:
		return 0.207
	case DifficultyExpert:
		return 0.25
	default:
		return 0
	}
}

// Valid reports whether d is one of the four levels.
func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyExpert
}

// String returns the lowercase name of the level.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	case DifficultyExpert:
		return "expert"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// ParseDifficulty accepts a level name or its number ("hard" or "3").
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	case "expert":
		return DifficultyExpert, nil
	}
	if n, err := strconv.Atoi(s); err == nil && Difficulty(n).Valid() {
		return Difficulty(n), nil
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

// MaxMines caps the mine target so it fits a three digit counter.
const MaxMines = 999

// MultiMine configures stacked mines. Percentages are whole numbers.
type MultiMine struct {
	Enabled         bool
	IncreasePercent int // extra mines on top of the base count, 0..60
	Probability     int // chance a re-drawn mined cell takes another mine, 10..90
}

// MineTarget returns the number of mines for a shape of cells active cells:
// round(density*cells), inflated by IncreasePercent of itself when MultiMine
// is enabled, capped at MaxMines.
func MineTarget(cells int, d Difficulty, mm MultiMine) int {
	base := int(math.Round(d.Density() * float64(cells)))
	total := base
	if mm.Enabled {
		total += int(math.Round(float64(base) * float64(mm.IncreasePercent) / 100))
	}
	if total > MaxMines {
		total = MaxMines
	}
	return total
}
