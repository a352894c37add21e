package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ffmines/internal/boards"
	mcore "github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
	"github.com/vovakirdan/ffmines/internal/platform/tui"
	"github.com/vovakirdan/ffmines/internal/storage"
)

var (
	flagScoresMulti bool
	flagScoresTUI   bool
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [board]",
	Short: "Show best times",
	Long: `Display the best times for a board, or every board with a
recorded time when no board is given.

Subcommands:
  players                         - List players
  player <name>                   - List a player's boards
  rename-player <old> <new>       - Rename a player
  rename-board <player> <old> <new> - Rename a player's board
  delete-board <player> <name>    - Delete a player's times on a board
  delete <id>                     - Delete one time

Examples:
  ffmines scores
  ffmines scores easy
  ffmines scores expert --multimine
  ffmines scores --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresMulti, "multimine", false, "Show multi-mine times")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse times in the interactive scoreboard")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of times to show")

	scoresCmd.AddCommand(scoresPlayersCmd)
	scoresCmd.AddCommand(scoresPlayerCmd)
	scoresCmd.AddCommand(scoresRenamePlayerCmd)
	scoresCmd.AddCommand(scoresRenameBoardCmd)
	scoresCmd.AddCommand(scoresDeleteBoardCmd)
	scoresCmd.AddCommand(scoresDeleteCmd)
}

// withStore opens the leaderboard for the duration of fn.
func withStore(fn func(*storage.Store) error) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	store, err := storage.Open(dbPath(settings))
	if err != nil {
		return fmt.Errorf("opening leaderboard: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func runScores(_ *cobra.Command, args []string) error {
	if flagScoresTUI {
		return withStore(func(store *storage.Store) error {
			width, height := 80, 24
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width, height = w, h
			}
			_, err := tui.RunScoreboard(store, width, height)
			return err
		})
	}
	if len(args) == 0 {
		return withStore(printBoards)
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	board, err := lookupBoard(args[0], settings)
	if err != nil {
		return err
	}
	mode := mcore.ModeNormal
	if flagScoresMulti {
		mode = mcore.ModeMultiMine
	}
	boardID := boards.EncodeID(board.Shape())

	return withStore(func(store *storage.Store) error {
		times, err := store.TopTimes(boardID, mode.String(), flagScoresLimit)
		if err != nil {
			return fmt.Errorf("retrieving times: %w", err)
		}

		fmt.Printf("Best Times - %s (%s)\n", board.Title(), mode)
		fmt.Println()

		if len(times) == 0 {
			fmt.Println("No times recorded yet.")
			fmt.Println()
			fmt.Printf("Play 'ffmines play %s' to set the first time!\n", args[0])
			return nil
		}

		fmt.Printf("  %-4s  %-16s  %-8s  %-16s  %s\n", "Rank", "Player", "Time", "Date", "ID")
		fmt.Printf("  %-4s  %-16s  %-8s  %-16s  %s\n", "----", "------", "----", "----", "--")
		for i, e := range times {
			fmt.Printf("  %-4d  %-16s  %-8s  %-16s  %d\n",
				i+1, e.Player, formatSeconds(e.Seconds), e.PlayedAt.Local().Format("2006-01-02 15:04"), e.ID)
		}
		return nil
	})
}

func printBoards(store *storage.Store) error {
	summaries, err := store.Boards()
	if err != nil {
		return fmt.Errorf("retrieving boards: %w", err)
	}
	if len(summaries) == 0 {
		fmt.Println("No times recorded yet.")
		return nil
	}
	printSummaries(summaries)
	return nil
}

func printSummaries(summaries []storage.BoardSummary) {
	fmt.Printf("  %-16s  %-6s  %-8s  %-5s  %s\n", "Board", "Mode", "Best", "Plays", "Board ID")
	fmt.Printf("  %-16s  %-6s  %-8s  %-5s  %s\n", "-----", "----", "----", "-----", "--------")
	for _, s := range summaries {
		fmt.Printf("  %-16s  %-6s  %-8s  %-5d  %s\n", s.Name, s.Mode, formatSeconds(s.Best), s.Plays, s.BoardID)
	}
}

func formatSeconds(sec int) string {
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}

var scoresPlayersCmd = &cobra.Command{
	Use:   "players",
	Short: "List players with recorded times",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStore(func(store *storage.Store) error {
			players, err := store.Players()
			if err != nil {
				return err
			}
			if len(players) == 0 {
				fmt.Println("No players yet.")
			}
			for _, p := range players {
				fmt.Println(p)
			}
			return nil
		})
	},
}

var scoresPlayerCmd = &cobra.Command{
	Use:   "player <name>",
	Short: "List a player's boards",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			summaries, err := store.BoardsForPlayer(args[0])
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Printf("No times recorded for %s.\n", args[0])
				return nil
			}
			printSummaries(summaries)
			return nil
		})
	},
}

var scoresRenamePlayerCmd = &cobra.Command{
	Use:   "rename-player <old> <new>",
	Short: "Rename a player",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			if err := store.RenamePlayer(args[0], args[1]); err != nil {
				return err
			}
			logger.Info("player renamed", "from", args[0], "to", args[1])
			return nil
		})
	},
}

var scoresRenameBoardCmd = &cobra.Command{
	Use:   "rename-board <player> <old> <new>",
	Short: "Rename a player's board",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			if err := store.RenameBoard(args[0], args[1], args[2]); err != nil {
				return err
			}
			logger.Info("board renamed", "player", args[0], "from", args[1], "to", args[2])
			return nil
		})
	},
}

var scoresDeleteBoardCmd = &cobra.Command{
	Use:   "delete-board <player> <name>",
	Short: "Delete a player's times on a board",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			return store.DeleteBoard(args[0], args[1])
		})
	},
}

var scoresDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one time by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[0], err)
		}
		return withStore(func(store *storage.Store) error {
			return store.DeleteTime(id)
		})
	},
}
