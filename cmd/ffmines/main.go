// ffmines is a terminal minesweeper for free-form boards.
//
// Usage:
//
//	ffmines play [board]      - Play a preset, a board file or a board id
//	ffmines menu              - Start menu to pick boards interactively
//	ffmines boards            - List available boards
//	ffmines scores [board]    - Show best times
//	ffmines serve             - Start SSH server for remote play
//	ffmines config init       - Write the default settings file
//
// Global flags:
//
//	--config <path>     - Settings file (default: search path)
//	--db <path>         - Leaderboard database (default: from settings)
//	--seed <value>      - RNG seed for reproducible layouts
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ffmines/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ffmines",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ffmines",
	Short: "FreeForm Minesweeper in your terminal",
	Long: `ffmines is minesweeper on boards of any shape.

Available commands:
  play     - Play a board
  menu     - Interactive board picker
  boards   - List boards and print board ids
  scores   - View best times
  serve    - Start SSH server for remote play
  config   - Show or write settings

Examples:
  ffmines play easy
  ffmines play --board ./donut.ffmnswpr --multimine
  ffmines boards id ./donut.ffmnswpr
  ffmines scores easy
  ffmines serve --ssh :23235`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to leaderboard database (default from settings)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(boardsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings loads the settings from the search path or --config.
func loadSettings() (config.Settings, error) {
	settings, err := config.Load(flagConfig)
	if err != nil {
		return settings, err
	}
	logger.Debug("settings loaded", "difficulty", settings.Difficulty, "grace", settings.GraceRule,
		"multimine", settings.MultiMine.Enabled, "flagless", settings.Flagless)
	return settings, nil
}

// dbPath returns --db or the settings database path.
func dbPath(settings config.Settings) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return settings.Database
}
