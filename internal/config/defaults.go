package config

import (
	_ "embed"

	"github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
)

//go:embed defaults/minesweeper.yaml
var defaultYAML []byte

// DefaultSettings returns the hardcoded settings used when no YAML parses.
func DefaultSettings() Settings {
	return Settings{
		Difficulty: "easy",
		GraceRule:  true,
		MultiMine: MultiMineSettings{
			MineIncrease:     5,
			StackProbability: 10,
		},
		Bounds: BoundsSettings{
			Rows: core.DefaultBounds().Rows,
			Cols: core.DefaultBounds().Cols,
		},
		Player:   "PLAYER",
		Database: "~/.ffmines/scores.db",
	}
}

// DefaultYAML returns the embedded default settings file.
func DefaultYAML() []byte {
	return defaultYAML
}
