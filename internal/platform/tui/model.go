package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ffmines/internal/core"
	"github.com/vovakirdan/ffmines/internal/games/minesweeper"
	"github.com/vovakirdan/ffmines/internal/registry"
)

// ResultSaver records winning results. *storage.Store implements it.
type ResultSaver interface {
	SaveResult(r minesweeper.Result) (int64, error)
}

// helpHeight is the number of lines kept below the board for key help.
const helpHeight = 1

// Model is the Bubble Tea model for playing one board.
type Model struct {
	game       *minesweeper.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
}

// NewModel creates a game on board and a model that plays it. Wins are
// passed to saver when it is not nil; a failed save is logged and play
// continues.
func NewModel(board registry.Board, cfg minesweeper.Config, saver ResultSaver, logger *log.Logger, rc core.RuntimeConfig) (Model, error) {
	// Use time-based seed if not specified
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}
	cfg.Seed = rc.Seed
	if saver != nil {
		cfg.OnWin = func(r minesweeper.Result) {
			if _, err := saver.SaveResult(r); err != nil {
				logger.Warn("could not save time", "board", r.BoardID, "player", r.Player, "error", err)
				return
			}
			logger.Debug("time saved", "board", r.BoardID, "player", r.Player, "seconds", r.Seconds)
		}
	}

	game, err := minesweeper.NewGame(board, cfg)
	if err != nil {
		return Model{}, err
	}
	game.Reset(rc)

	h := help.New()
	h.Width = rc.ScreenW
	return Model{
		game:       game,
		screen:     core.NewScreen(rc.ScreenW, max(rc.ScreenH-helpHeight, 1)),
		config:     rc,
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}, nil
}

// Init starts the tick loop that refreshes the clock.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		m.gameState = m.game.State()
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey applies one key press. Moves are turn based, so the game is
// stepped right away instead of on the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case m.inputFrame.Has(core.ActionBack):
		m.backToMenu = true
	case m.inputFrame.Has(core.ActionRestart):
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
	default:
		m.game.Step(m.inputFrame)
	}
	m.gameState = m.game.State()
	m.inputFrame.Clear()
	return m, nil
}

// handleResize processes window resize events. The game keeps its state.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpHeight, 1))
	m.game.Resize(msg.Width, msg.Height-helpHeight)
	m.help.Width = msg.Width
	return m, nil
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".ffmines", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keyMapper.Keys())
}

// Game returns the running game.
func (m Model) Game() *minesweeper.Game { return m.game }

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to the board list.
func (m Model) BackToMenu() bool { return m.backToMenu }

// Run plays board in a Bubble Tea program until the player quits or goes
// back. It reports whether the player asked for the board list.
func Run(board registry.Board, cfg minesweeper.Config, saver ResultSaver, logger *log.Logger, rc core.RuntimeConfig) (back bool, err error) {
	model, err := NewModel(board, cfg, saver, logger, rc)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(
		standalone{model},
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if s, ok := final.(standalone); ok {
		return s.BackToMenu(), nil
	}
	return false, nil
}

// standalone quits the program when the player goes back, since there is
// no enclosing menu model to return to.
type standalone struct{ Model }

func (s standalone) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := s.Model.Update(msg)
	s.Model = next.(Model)
	if s.BackToMenu() {
		return s, tea.Quit
	}
	return s, cmd
}
