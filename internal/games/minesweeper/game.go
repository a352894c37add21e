package minesweeper

import (
	"errors"
	"fmt"
	"strings"

	platformcore "github.com/vovakirdan/ffmines/internal/core"
	"github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
	"github.com/vovakirdan/ffmines/internal/registry"
)

// InputMode selects what the primary action does.
type InputMode int

const (
	InputReveal InputMode = iota
	InputFlag
)

func (m InputMode) String() string {
	if m == InputFlag {
		return "FLAG"
	}
	return "REVEAL"
}

// Game drives a Session from platform input frames and draws it into a
// screen buffer. It holds no terminal state of its own.
type Game struct {
	board   registry.Board
	session *Session

	cursor  core.Coord
	minPos  core.Coord // extent of the shape, for cursor movement and drawing
	maxPos  core.Coord
	input   InputMode
	message string

	screenW  int
	screenH  int
	tooSmall bool
}

// NewGame creates a game on board with the given session options.
func NewGame(board registry.Board, cfg Config) (*Game, error) {
	if cfg.BoardName == "" {
		cfg.BoardName = board.Title()
	}
	s, err := NewSession(board.Shape(), cfg)
	if err != nil {
		return nil, fmt.Errorf("board %s: %w", board.ID(), err)
	}

	g := &Game{board: board, session: s}
	g.minPos, g.maxPos = board.Shape().Extent()
	g.centerCursor()
	return g, nil
}

func (g *Game) centerCursor() {
	shape := g.session.Shape()
	g.cursor = shape.At(shape.Len() / 2)
}

// ID returns the board id.
func (g *Game) ID() string { return g.board.ID() }

// Title returns the board title.
func (g *Game) Title() string { return g.board.Title() }

// Session returns the running session.
func (g *Game) Session() *Session { return g.session }

// Cursor returns the selected cell.
func (g *Game) Cursor() core.Coord { return g.cursor }

// InputMode returns the current primary action mode.
func (g *Game) InputMode() InputMode { return g.input }

// Message returns the last feedback line.
func (g *Game) Message() string { return g.message }

// Reset starts a new game with the seed and screen size in cfg.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW, g.screenH = cfg.ScreenW, cfg.ScreenH
	g.input = InputReveal
	g.message = ""
	if err := g.session.Reset(cfg.Seed); err != nil {
		g.message = err.Error()
	}
	g.centerCursor()
}

// Resize updates the screen size without touching the game.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
}

// Step applies the actions of one input frame in order.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	for _, a := range in.Actions {
		g.apply(a)
	}
	return platformcore.StepResult{State: g.State(), Message: g.message}
}

func (g *Game) apply(a platformcore.Action) {
	switch a {
	case platformcore.ActionUp:
		g.move(-1, 0)
	case platformcore.ActionDown:
		g.move(1, 0)
	case platformcore.ActionLeft:
		g.move(0, -1)
	case platformcore.ActionRight:
		g.move(0, 1)
	case platformcore.ActionPrimary:
		if g.input == InputFlag {
			g.report(g.session.ToggleFlag(g.cursor))
			return
		}
		if cell, ok := g.session.board.Cell(g.cursor); ok && cell.IsRevealed() {
			g.reportOutcome(g.session.Chord(g.cursor))
			return
		}
		g.reportOutcome(g.session.RevealCell(g.cursor))
	case platformcore.ActionFlag:
		g.report(g.session.ToggleFlag(g.cursor))
	case platformcore.ActionUnflag:
		g.report(g.session.RemoveFlag(g.cursor))
	case platformcore.ActionChord:
		g.reportOutcome(g.session.Chord(g.cursor))
	case platformcore.ActionSwitchMode:
		if g.session.Config().Flagless {
			g.message = "flagless mode: flags are off"
			return
		}
		g.input = 1 - g.input
		g.message = ""
	}
}

func (g *Game) move(dr, dc int) {
	g.cursor = core.C(
		platformcore.Clamp(g.cursor.Row+dr, g.minPos.Row, g.maxPos.Row),
		platformcore.Clamp(g.cursor.Col+dc, g.minPos.Col, g.maxPos.Col),
	)
}

func (g *Game) reportOutcome(_ core.Outcome, err error) {
	g.setError(err)
}

func (g *Game) report(_ core.CellState, err error) {
	g.setError(err)
}

func (g *Game) setError(err error) {
	switch {
	case err == nil:
		g.message = ""
	case errors.Is(err, ErrNoFlagsLeft):
		g.message = "no flags left"
	case errors.Is(err, core.ErrFlagless):
		g.message = "flagless mode: flags are off"
	case errors.Is(err, core.ErrDegenerateLayout):
		g.message = "too many mines for this board, lower the difficulty"
	default:
		// illegal moves like revealing a flag are ignored quietly
		g.message = ""
	}
}

// State reports the game status to the platform.
func (g *Game) State() platformcore.GameState {
	st := g.session.Status()
	return platformcore.GameState{
		Seconds:  g.session.ElapsedSeconds(),
		GameOver: st.Terminal(),
		Won:      st == StatusWon,
	}
}

// Layout constants
const (
	cellWidth = 2 // glyph plus separator
	hudHeight = 1
	msgHeight = 1
)

// MinScreen returns the smallest screen the board fits on.
func (g *Game) MinScreen() (w, h int) {
	rows := g.maxPos.Row - g.minPos.Row + 1
	cols := g.maxPos.Col - g.minPos.Col + 1
	return cols*cellWidth + 3, rows + 2 + hudHeight + msgHeight
}

// Render draws the HUD, the board and the feedback line.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	needW, needH := g.MinScreen()
	g.tooSmall = dst.Width() < needW || dst.Height() < needH
	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Terminal too small: need %dx%d", needW, needH))
		return
	}

	snap := g.session.Snapshot()
	g.renderHUD(dst, snap)

	area := platformcore.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-msgHeight)
	box := area.Centered(needW, needH-hudHeight-msgHeight)
	dst.DrawBox(box, statusColor(snap.Status))

	for _, v := range snap.Cells {
		x, y := g.cellPos(box, v.Coord)
		dst.SetCell(x, y, glyph(v))
	}
	if !snap.Status.Terminal() {
		x, y := g.cellPos(box, g.cursor)
		dst.SetCell(x-1, y, platformcore.Cell{Rune: '[', Color: platformcore.ColorBrightYellow})
		dst.SetCell(x+1, y, platformcore.Cell{Rune: ']', Color: platformcore.ColorBrightYellow})
	}

	dst.DrawTextColor(0, dst.Height()-1, g.footer(snap), statusColor(snap.Status))
}

func (g *Game) cellPos(box platformcore.Rect, c core.Coord) (x, y int) {
	return box.X + 2 + (c.Col-g.minPos.Col)*cellWidth, box.Y + 1 + c.Row - g.minPos.Row
}

func (g *Game) renderHUD(dst *platformcore.Screen, snap Snapshot) {
	hud := fmt.Sprintf(" %s  Mines: %03d  Time: %03d  [%s]",
		g.board.Title(), snap.MinesRemaining, g.session.ElapsedSeconds(), g.input)
	if snap.Mode == core.ModeMultiMine {
		hud += "  MULTI"
	}
	if g.session.Config().Flagless {
		hud += "  FLAGLESS"
	}
	dst.DrawTextColor(0, 0, hud, platformcore.ColorBrightWhite)
}

func (g *Game) footer(snap Snapshot) string {
	switch snap.Status {
	case StatusWon:
		return fmt.Sprintf(" Cleared in %ds! R: new game  B: boards  Q: quit", g.session.ElapsedSeconds())
	case StatusLost:
		return " Boom! R: try again  B: boards  Q: quit"
	}
	if g.message != "" {
		return " " + g.message
	}
	if snap.Phase == PhaseAwaitingFirstReveal && g.session.Config().GraceRule {
		return " First reveal is always safe"
	}
	return ""
}

func statusColor(s Status) platformcore.Color {
	switch s {
	case StatusWon:
		return platformcore.ColorBrightGreen
	case StatusLost:
		return platformcore.ColorBrightRed
	default:
		return platformcore.ColorGray
	}
}

// glyph maps a cell view to its screen character.
func glyph(v CellView) platformcore.Cell {
	switch v.Kind {
	case KindFlagged:
		return platformcore.Cell{Rune: stackRune('F', v.Flags), Color: platformcore.ColorBrightRed}
	case KindRevealed:
		if v.Adjacency == 0 {
			return platformcore.Cell{Rune: '·', Color: platformcore.ColorGray}
		}
		return platformcore.Cell{Rune: AdjacencyRune(v.Adjacency), Color: platformcore.NumberColor(v.Adjacency)}
	case KindMine:
		return platformcore.Cell{Rune: stackRune('*', v.Mines), Color: platformcore.ColorBrightRed}
	case KindMissedMine:
		return platformcore.Cell{Rune: stackRune('*', v.Mines), Color: platformcore.ColorYellow}
	case KindWrongFlag:
		return platformcore.Cell{Rune: 'x', Color: platformcore.ColorMagenta}
	default:
		return platformcore.Cell{Rune: '■', Color: platformcore.ColorWhite}
	}
}

// stackRune shows single flags and mines with their symbol and stacks of
// two or more with the count.
func stackRune(symbol rune, n int) rune {
	if n <= 1 {
		return symbol
	}
	return rune('0' + n)
}

const bigNumbers = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// AdjacencyRune returns the single character for an adjacency value.
// MultiMine values above 9 continue with letters: 10 is A, 35 is Z.
func AdjacencyRune(n int) rune {
	switch {
	case n <= 0:
		return ' '
	case n <= 9:
		return rune('0' + n)
	case n-10 < len(bigNumbers):
		return rune(bigNumbers[n-10])
	default:
		return '+'
	}
}

// Legend returns a one-line description of the glyphs.
func Legend() string {
	return strings.Join([]string{"■ hidden", "F flag", "* mine", "x wrong flag", "A-Z 10+"}, "  ")
}
