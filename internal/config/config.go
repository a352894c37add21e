// Package config provides YAML settings loading for ffmines: difficulty,
// rule toggles, MultiMine tuning and the board field size.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/ffmines/internal/games/minesweeper"
	"github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
)

// ErrInvalidSettings is returned by Validate for out-of-range values.
var ErrInvalidSettings = errors.New("config: invalid settings")

// Limits for the MultiMine options a player may choose.
const (
	MinMineIncrease     = 0
	MaxMineIncrease     = 60
	MinStackProbability = 10
	MaxStackProbability = 90
)

// Settings contains all player-facing options.
type Settings struct {
	Difficulty  string            `yaml:"difficulty"` // easy|medium|hard|expert or 1..4
	GraceRule   bool              `yaml:"grace_rule"`
	Flagless    bool              `yaml:"flagless"`
	StrictChord bool              `yaml:"strict_chord"`
	MultiMine   MultiMineSettings `yaml:"multimine"`
	Bounds      BoundsSettings    `yaml:"bounds"`
	Player      string            `yaml:"player"`
	BoardsDir   string            `yaml:"boards_dir"`
	Database    string            `yaml:"database"`
}

// MultiMineSettings tunes stacked mines. Values are percentages.
type MultiMineSettings struct {
	Enabled          bool `yaml:"enabled"`
	MineIncrease     int  `yaml:"mine_increase"`
	StackProbability int  `yaml:"stack_probability"`
}

// BoundsSettings is the size of the field boards are drawn on.
type BoundsSettings struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// Validate checks every range.
func (s Settings) Validate() error {
	if _, err := core.ParseDifficulty(s.Difficulty); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	mm := s.MultiMine
	if mm.MineIncrease < MinMineIncrease || mm.MineIncrease > MaxMineIncrease {
		return fmt.Errorf("%w: mine_increase %d not in %d..%d",
			ErrInvalidSettings, mm.MineIncrease, MinMineIncrease, MaxMineIncrease)
	}
	if mm.StackProbability < MinStackProbability || mm.StackProbability > MaxStackProbability {
		return fmt.Errorf("%w: stack_probability %d not in %d..%d",
			ErrInvalidSettings, mm.StackProbability, MinStackProbability, MaxStackProbability)
	}
	if err := s.FieldBounds().Validate(); err != nil {
		return fmt.Errorf("%w: bounds: %v", ErrInvalidSettings, err)
	}
	return nil
}

// FieldBounds returns the configured field size.
func (s Settings) FieldBounds() core.Bounds {
	return core.Bounds{Rows: s.Bounds.Rows, Cols: s.Bounds.Cols}
}

// DifficultyLevel returns the parsed difficulty, easy if it does not parse.
func (s Settings) DifficultyLevel() core.Difficulty {
	d, err := core.ParseDifficulty(s.Difficulty)
	if err != nil {
		return core.DifficultyEasy
	}
	return d
}

// SessionConfig converts the settings into session options.
func (s Settings) SessionConfig(seed int64) minesweeper.Config {
	return minesweeper.Config{
		Difficulty: s.DifficultyLevel(),
		MultiMine: core.MultiMine{
			Enabled:         s.MultiMine.Enabled,
			IncreasePercent: s.MultiMine.MineIncrease,
			Probability:     s.MultiMine.StackProbability,
		},
		GraceRule:   s.GraceRule,
		Flagless:    s.Flagless,
		StrictChord: s.StrictChord,
		Seed:        seed,
		Player:      s.Player,
	}
}
