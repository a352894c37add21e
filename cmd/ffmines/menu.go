package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ffmines/internal/config"
	"github.com/vovakirdan/ffmines/internal/core"
	"github.com/vovakirdan/ffmines/internal/platform/tui"
	"github.com/vovakirdan/ffmines/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive board picker",
	Long: `Start the board menu. Pick a preset or a board from boards_dir,
or press Tab for the best times.

Controls:
  Up/Down or K/J  - Navigate
  Enter/Space     - Select board
  Tab             - Best times
  Q/Esc           - Quit`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: core.DefaultConfig().TickRate,
		Seed:     flagSeed,
	}

	store, err := storage.Open(dbPath(settings))
	if err != nil {
		logger.Warn("could not open leaderboard, times will not be saved", "error", err)
		store = nil
	} else {
		defer store.Close()
	}
	return runMenuLoop(settings, store, rc, false)
}

// runMenuLoop shows the board menu until the player quits.
func runMenuLoop(settings config.Settings, store *storage.Store, rc core.RuntimeConfig, forceDifficulty bool) error {
	extra := extraBoards(settings)
	for {
		menuResult, err := tui.RunMenu(rc, extra...)
		if err != nil {
			return err
		}
		rc = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			var lb tui.Leaderboard
			if store != nil {
				lb = store
			}
			goBack, sbErr := tui.RunScoreboard(lb, rc.ScreenW, rc.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		if flagSeed == 0 {
			rc.Seed = time.Now().UnixNano()
		}
		back, err := playBoard(menuResult.Board, settings, store, rc, forceDifficulty)
		if err != nil {
			logger.Error("board failed", "board", menuResult.Board.ID(), "error", err)
			continue
		}
		if !back {
			return nil
		}
	}
}
