package minesweeper

import (
	"time"

	"github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
)

// Result is what a won game hands to the leaderboard.
type Result struct {
	Player    string
	BoardID   string
	BoardName string
	Mode      core.Mode
	Seconds   int
	Date      time.Time
}
