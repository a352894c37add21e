package boards

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
)

// Extension is the file extension of bit-row board files.
const Extension = ".ffmnswpr"

// Rows returns the bit rows of a shape trimmed to its bounding box. Each
// row is cut after its last active cell; an empty row between content rows
// is written as "0".
func Rows(shape *core.Shape) []string {
	min, max := shape.Extent()
	rows := make([]string, 0, max.Row-min.Row+1)
	for r := min.Row; r <= max.Row; r++ {
		last := -1
		for c := max.Col; c >= min.Col; c-- {
			if shape.Contains(core.C(r, c)) {
				last = c
				break
			}
		}
		if last < 0 {
			rows = append(rows, "0")
			continue
		}
		var sb strings.Builder
		for c := min.Col; c <= last; c++ {
			if shape.Contains(core.C(r, c)) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// FromRows builds a shape from bit rows placed at the top-left of the field.
// Rows longer or more numerous than the bounds give ErrInvalidShape.
func FromRows(rows []string, bounds core.Bounds) (*core.Shape, error) {
	if len(rows) > bounds.Rows {
		return nil, fmt.Errorf("%w: board too large, %d rows in a %d row field", core.ErrInvalidShape, len(rows), bounds.Rows)
	}
	var coords []core.Coord
	for r, row := range rows {
		if len(row) > bounds.Cols {
			return nil, fmt.Errorf("%w: board too large, %d columns in a %d column field", core.ErrInvalidShape, len(row), bounds.Cols)
		}
		for c, bit := range row {
			switch bit {
			case '1':
				coords = append(coords, core.C(r, c))
			case '0':
			default:
				return nil, fmt.Errorf("%w: row %d: unexpected %q", ErrBadFormat, r+1, bit)
			}
		}
	}
	return core.NewShape(bounds, coords)
}

// Parse reads a .ffmnswpr board. Surrounding whitespace on each line is
// ignored; a blank line is an empty row.
func Parse(r io.Reader, bounds core.Bounds) (*core.Shape, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		rows = append(rows, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("boards: reading: %w", err)
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return FromRows(rows, bounds)
}

// Format writes shape in the .ffmnswpr format, one row per line.
func Format(w io.Writer, shape *core.Shape) error {
	for _, row := range Rows(shape) {
		if _, err := io.WriteString(w, row+"\n"); err != nil {
			return fmt.Errorf("boards: writing: %w", err)
		}
	}
	return nil
}
