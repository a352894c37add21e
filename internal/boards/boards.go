// Package boards reads and writes board shapes: the .ffmnswpr bit-row
// format, YAML boards and the run-length board id used by the leaderboard.
// It also carries the embedded presets. This package depends on the engine
// core; the core does not depend on boards.
package boards

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
)

// ErrBadFormat is returned for a board file or id that cannot be decoded.
var ErrBadFormat = errors.New("boards: bad format")

// Board is a named shape with a suggested difficulty.
type Board struct {
	id         string
	name       string
	difficulty core.Difficulty
	shape      *core.Shape
	path       string
}

// New creates a board. A zero difficulty defaults to easy.
func New(id, name string, shape *core.Shape, d core.Difficulty) Board {
	if !d.Valid() {
		d = core.DifficultyEasy
	}
	if name == "" {
		name = id
	}
	return Board{id: id, name: name, difficulty: d, shape: shape}
}

// ID returns the short key of the board, such as "easy" or a file name.
func (b Board) ID() string { return b.id }

// Title returns the display name.
func (b Board) Title() string { return b.name }

// Shape returns the active cells.
func (b Board) Shape() *core.Shape { return b.shape }

// Difficulty returns the suggested difficulty.
func (b Board) Difficulty() core.Difficulty { return b.difficulty }

// FilePath returns the file the board was loaded from, empty for presets.
func (b Board) FilePath() string { return b.path }

// Signature returns the leaderboard id of the board's shape.
func (b Board) Signature() string { return EncodeID(b.shape) }

// Size describes the trimmed board, e.g. "9x9, 81 cells".
func (b Board) Size() string {
	rows := Rows(b.shape)
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	return fmt.Sprintf("%dx%d, %d cells", len(rows), width, b.shape.Len())
}
