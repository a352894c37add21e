package boards

import (
	"bytes"
	"embed"
	"fmt"

	"github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
	"github.com/vovakirdan/ffmines/internal/registry"
)

//go:embed presets/*.ffmnswpr
var presetFS embed.FS

type preset struct {
	id         string
	title      string
	difficulty core.Difficulty
}

var presets = []preset{
	{"easy", "Easy", core.DifficultyEasy},
	{"medium", "Medium", core.DifficultyMedium},
	{"hard", "Hard", core.DifficultyHard},
	{"expert", "Expert", core.DifficultyExpert},
}

func init() {
	for _, p := range presets {
		p := p
		registry.Register(p.id, func() registry.Board {
			b, err := loadPreset(p)
			if err != nil {
				panic(err)
			}
			return b
		})
	}
}

func loadPreset(p preset) (Board, error) {
	data, err := presetFS.ReadFile("presets/" + p.id + Extension)
	if err != nil {
		return Board{}, fmt.Errorf("boards: preset %s: %w", p.id, err)
	}
	shape, err := Parse(bytes.NewReader(data), core.DefaultBounds())
	if err != nil {
		return Board{}, fmt.Errorf("boards: preset %s: %w", p.id, err)
	}
	return New(p.id, p.title, shape, p.difficulty), nil
}

// Preset returns the embedded preset with the given id.
func Preset(id string) (Board, error) {
	for _, p := range presets {
		if p.id == id {
			return loadPreset(p)
		}
	}
	return Board{}, fmt.Errorf("boards: unknown preset %q", id)
}
