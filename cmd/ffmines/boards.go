package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ffmines/internal/boards"
	"github.com/vovakirdan/ffmines/internal/config"
	"github.com/vovakirdan/ffmines/internal/registry"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List available boards",
	Long: `List the preset boards and the boards found in the settings' boards_dir.

Subcommands:
  id <file>            - Print the board id of a board file
  show <board>         - Print a board as .ffmnswpr rows
  convert <board> <f>  - Write a board to a .ffmnswpr or .yaml file

Examples:
  ffmines boards
  ffmines boards id ./donut.ffmnswpr
  ffmines boards show 3E1N1E1D1E1N3E
  ffmines boards convert expert ./expert.yaml`,
	Args: cobra.NoArgs,
	RunE: runBoards,
}

var boardsIDCmd = &cobra.Command{
	Use:   "id <file>",
	Short: "Print the board id of a board file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		b, err := boards.LoadFile(args[0], settings.FieldBounds())
		if err != nil {
			return err
		}
		fmt.Println(b.Signature())
		return nil
	},
}

var boardsShowCmd = &cobra.Command{
	Use:   "show <board>",
	Short: "Print a board as .ffmnswpr rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		b, err := lookupBoard(args[0], settings)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%d cells, %s)\n", b.Title(), b.Shape().Len(), b.Difficulty())
		return boards.Format(os.Stdout, b.Shape())
	},
}

var boardsConvertCmd = &cobra.Command{
	Use:   "convert <board> <file>",
	Short: "Write a board to a .ffmnswpr or .yaml file",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		b, err := lookupBoard(args[0], settings)
		if err != nil {
			return err
		}
		out := boards.New(b.ID(), b.Title(), b.Shape(), b.Difficulty())
		if err := boards.SaveFile(args[1], out); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", args[1])
		return nil
	},
}

func init() {
	boardsCmd.AddCommand(boardsIDCmd)
	boardsCmd.AddCommand(boardsShowCmd)
	boardsCmd.AddCommand(boardsConvertCmd)
}

func runBoards(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	fmt.Println("Preset boards:")
	fmt.Println()
	for _, info := range registry.List() {
		fmt.Printf("  %-12s %-10s %4d cells  %s\n", info.ID, info.Title, info.Cells, info.Difficulty)
	}

	if settings.BoardsDir != "" {
		dir := config.ExpandHome(settings.BoardsDir)
		loaded, err := boards.NewLoader(dir, settings.FieldBounds()).LoadAll()
		switch {
		case err != nil:
			logger.Warn("could not read boards directory", "dir", dir, "error", err)
		case len(loaded) > 0:
			fmt.Println()
			fmt.Printf("Boards in %s:\n", dir)
			fmt.Println()
			for _, b := range loaded {
				fmt.Printf("  %-12s %-10s %s\n", b.ID(), b.Title(), b.Size())
			}
		}
	}

	fmt.Println()
	fmt.Printf("Board files: %s\n", strings.Join(boards.FormatExtensions(), ", "))
	fmt.Println("Use 'ffmines play <board>' to start playing.")
	return nil
}
