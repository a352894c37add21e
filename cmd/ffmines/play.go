package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ffmines/internal/boards"
	"github.com/vovakirdan/ffmines/internal/config"
	"github.com/vovakirdan/ffmines/internal/core"
	mcore "github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
	"github.com/vovakirdan/ffmines/internal/platform/tui"
	"github.com/vovakirdan/ffmines/internal/registry"
	"github.com/vovakirdan/ffmines/internal/storage"
)

var (
	flagBoard       string
	flagDifficulty  string
	flagMultiMine   bool
	flagGrace       bool
	flagFlagless    bool
	flagStrictChord bool
	flagRules       string
	flagPlayer      string
)

var playCmd = &cobra.Command{
	Use:   "play [board]",
	Short: "Play a board",
	Long: `Start playing a board. The board is a preset id, a board id, or a
file given with --board. Without a board a menu lists the presets and the
boards in the settings' boards_dir.

Controls:
  Arrows/hjkl  - Move
  Space/Enter  - Reveal (or flag in flag mode)
  F            - Flag
  U            - Remove one flag
  C            - Chord
  Tab/M        - Switch reveal/flag mode
  R            - New game
  B/Esc        - Back to boards
  Q/Ctrl+C     - Quit

Examples:
  ffmines play easy
  ffmines play expert --multimine
  ffmines play 3E1N1E1D1E1N3E --difficulty hard
  ffmines play --board ./donut.ffmnswpr --flagless
  ffmines play --rules nograce`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBoard, "board", "", "Path to a .ffmnswpr or .yaml board file")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "easy, medium, hard, expert or 1-4 (default: the board's)")
	playCmd.Flags().BoolVar(&flagMultiMine, "multimine", false, "Allow up to 5 mines per cell")
	playCmd.Flags().BoolVar(&flagGrace, "grace", true, "First reveal is always safe")
	playCmd.Flags().BoolVar(&flagFlagless, "flagless", false, "Play without flags")
	playCmd.Flags().BoolVar(&flagStrictChord, "strict-chord", false, "Chord only when the flags match the number")
	playCmd.Flags().StringVar(&flagRules, "rules", "", "Rule preset: classic, multimine, flagless, nograce")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name for the leaderboard (letters only)")
}

// applyPlayFlags overrides settings with the flags the user set.
func applyPlayFlags(cmd *cobra.Command, s *config.Settings) error {
	if flagRules != "" {
		if err := config.ApplyRulePreset(s, config.RulePreset(flagRules)); err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("multimine") {
		s.MultiMine.Enabled = flagMultiMine
	}
	if flags.Changed("grace") {
		s.GraceRule = flagGrace
	}
	if flags.Changed("flagless") {
		s.Flagless = flagFlagless
	}
	if flags.Changed("strict-chord") {
		s.StrictChord = flagStrictChord
	}
	if flagDifficulty != "" {
		s.Difficulty = flagDifficulty
	}
	if flagPlayer != "" {
		name, err := storage.NormalizeName(flagPlayer)
		if err != nil {
			return err
		}
		s.Player = name
	}
	return s.Validate()
}

func runPlay(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if err := applyPlayFlags(cmd, &settings); err != nil {
		return err
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: core.DefaultConfig().TickRate,
		Seed:     flagSeed,
	}

	var store *storage.Store
	if s, openErr := storage.Open(dbPath(settings)); openErr != nil {
		logger.Warn("could not open leaderboard, times will not be saved", "error", openErr)
	} else {
		store = s
		defer store.Close()
	}

	board, err := resolveBoard(args, settings)
	if err != nil {
		return err
	}
	if board != nil {
		_, err := playBoard(board, settings, store, rc, cmd.Flags().Changed("difficulty"))
		return err
	}
	return runMenuLoop(settings, store, rc, cmd.Flags().Changed("difficulty"))
}

// resolveBoard finds the board named on the command line, or nil for the menu.
func resolveBoard(args []string, settings config.Settings) (registry.Board, error) {
	bounds := settings.FieldBounds()
	if flagBoard != "" {
		b, err := boards.LoadFile(flagBoard, bounds)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	if len(args) == 0 {
		return nil, nil
	}
	return lookupBoard(args[0], settings)
}

// lookupBoard resolves a preset id, a file path or a board id.
func lookupBoard(name string, settings config.Settings) (registry.Board, error) {
	bounds := settings.FieldBounds()
	if registry.Exists(name) {
		return registry.Create(name)
	}
	if _, err := os.Stat(name); err == nil {
		return boards.LoadFile(name, bounds)
	}
	if settings.BoardsDir != "" {
		b, err := boards.NewLoader(config.ExpandHome(settings.BoardsDir), bounds).LoadByID(name)
		if err == nil {
			return b, nil
		}
	}
	shape, err := boards.DecodeID(name, bounds)
	if err != nil {
		return nil, fmt.Errorf("unknown board %q: not a preset, file or board id (run 'ffmines boards')", name)
	}
	return boards.New(name, "Custom", shape, settings.DifficultyLevel()), nil
}

// extraBoards loads the boards in settings.BoardsDir for the menu.
func extraBoards(settings config.Settings) []registry.Board {
	if settings.BoardsDir == "" {
		return nil
	}
	loaded, err := boards.NewLoader(config.ExpandHome(settings.BoardsDir), settings.FieldBounds()).LoadAll()
	if err != nil {
		logger.Warn("could not read boards directory", "dir", settings.BoardsDir, "error", err)
		return nil
	}
	out := make([]registry.Board, len(loaded))
	for i, b := range loaded {
		out[i] = b
	}
	return out
}

// playBoard runs one board until the player quits or goes back.
func playBoard(board registry.Board, settings config.Settings, store *storage.Store, rc core.RuntimeConfig, forceDifficulty bool) (back bool, err error) {
	cfg := settings.SessionConfig(rc.Seed)
	if !forceDifficulty {
		cfg.Difficulty = board.Difficulty()
	}
	cfg.BoardName = board.Title()

	var saver tui.ResultSaver
	if store != nil {
		saver = store
	}
	logger.Info("starting board", "board", board.ID(), "difficulty", cfg.Difficulty, "mode", cfg.Mode())

	back, err = tui.Run(board, cfg, saver, logger, rc)
	if errors.Is(err, mcore.ErrDegenerateLayout) {
		return false, fmt.Errorf("board %s cannot hold the mines for %s: %w", board.ID(), cfg.Difficulty, err)
	}
	return back, err
}
