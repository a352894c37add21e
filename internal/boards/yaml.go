package boards

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
)

// YAMLBoard is the YAML structure of a board file. Cells are given either
// as bit rows or as a coordinate list.
type YAMLBoard struct {
	ID         string     `yaml:"id"`
	Name       string     `yaml:"name,omitempty"`
	Difficulty string     `yaml:"difficulty,omitempty"`
	Rows       []string   `yaml:"rows,omitempty"`
	Cells      []YAMLCell `yaml:"cells,omitempty"`
}

// YAMLCell is one active cell of a coordinate list.
type YAMLCell struct {
	R int `yaml:"r"`
	C int `yaml:"c"`
}

// ParseYAML parses a YAML board.
func ParseYAML(data []byte, bounds core.Bounds) (Board, error) {
	var yb YAMLBoard
	if err := yaml.Unmarshal(data, &yb); err != nil {
		return Board{}, fmt.Errorf("%w: yaml unmarshal: %v", ErrBadFormat, err)
	}
	if len(yb.Rows) > 0 && len(yb.Cells) > 0 {
		return Board{}, fmt.Errorf("%w: board %q has both rows and cells", ErrBadFormat, yb.ID)
	}

	var d core.Difficulty
	if yb.Difficulty != "" {
		parsed, err := core.ParseDifficulty(yb.Difficulty)
		if err != nil {
			return Board{}, fmt.Errorf("%w: board %q: %v", ErrBadFormat, yb.ID, err)
		}
		d = parsed
	}

	var (
		shape *core.Shape
		err   error
	)
	if len(yb.Cells) > 0 {
		coords := make([]core.Coord, len(yb.Cells))
		for i, c := range yb.Cells {
			coords[i] = core.C(c.R, c.C)
		}
		shape, err = core.NewShape(bounds, coords)
	} else {
		shape, err = FromRows(yb.Rows, bounds)
	}
	if err != nil {
		return Board{}, fmt.Errorf("board %q: %w", yb.ID, err)
	}
	return New(yb.ID, yb.Name, shape, d), nil
}

// MarshalYAML encodes a board with its cells as bit rows.
func MarshalYAML(b Board) ([]byte, error) {
	yb := YAMLBoard{
		ID:         b.ID(),
		Name:       b.Title(),
		Difficulty: b.Difficulty().String(),
		Rows:       Rows(b.Shape()),
	}
	data, err := yaml.Marshal(yb)
	if err != nil {
		return nil, fmt.Errorf("boards: yaml marshal: %w", err)
	}
	return data, nil
}

// FormatExtensions returns the supported board file extensions.
func FormatExtensions() []string {
	return []string{Extension, ".yaml", ".yml"}
}
