// Package minesweeper runs a FreeForm Minesweeper game on top of the engine
// in the core subpackage. Session is the engine-facing controller; Game wraps
// it with a cursor and input mode for terminal frontends.
package minesweeper

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/ffmines/internal/boards"
	"github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
)

// MaxSeconds is the largest time a result can hold.
const MaxSeconds = 999

var (
	// ErrInvalidConfig is returned for session options outside their range.
	ErrInvalidConfig = errors.New("invalid session config")

	// ErrNoFlagsLeft is returned when every flag of the budget is placed.
	ErrNoFlagsLeft = fmt.Errorf("%w: no flags left", core.ErrIllegalAction)
)

// Phase tells whether the mine layout exists yet.
type Phase int

const (
	PhaseAwaitingFirstReveal Phase = iota
	PhaseLayoutReady
)

// Status is the session outcome.
type Status int

const (
	StatusInProgress Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in progress"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether no more actions are accepted.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// Config holds the options of one session.
type Config struct {
	Difficulty  core.Difficulty
	MultiMine   core.MultiMine
	GraceRule   bool
	Flagless    bool
	StrictChord bool // chord only when the flags around a cell total its number
	Seed        int64

	// Leaderboard identity passed through to the Result
	Player    string
	BoardName string

	OnWin func(Result)
	Now   func() time.Time
}

// Validate checks option ranges.
func (c Config) Validate() error {
	if !c.Difficulty.Valid() {
		return fmt.Errorf("%w: difficulty %d", ErrInvalidConfig, c.Difficulty)
	}
	if c.MultiMine.Enabled {
		if c.MultiMine.IncreasePercent < 0 || c.MultiMine.IncreasePercent > 60 {
			return fmt.Errorf("%w: mine increase %d%% not in 0..60", ErrInvalidConfig, c.MultiMine.IncreasePercent)
		}
		if c.MultiMine.Probability < 0 || c.MultiMine.Probability > 100 {
			return fmt.Errorf("%w: stack probability %d%% not in 0..100", ErrInvalidConfig, c.MultiMine.Probability)
		}
	}
	return nil
}

// Mode returns the rules selected by the MultiMine option.
func (c Config) Mode() core.Mode {
	if c.MultiMine.Enabled {
		return core.ModeMultiMine
	}
	return core.ModeNormal
}

// Session is one game on one board shape. It is not safe for concurrent
// use; each action runs to completion before the next.
type Session struct {
	shape  *core.Shape
	cfg    Config
	mode   core.Mode
	target int
	rng    *rand.Rand
	board  *core.Board

	phase  Phase
	status Status

	started time.Time
	ended   time.Time
	result  *Result
}

// NewSession validates the shape and options and prepares a session. Without
// the grace rule the layout is generated at once, so DegenerateLayout can be
// returned here; with it generation waits for the first reveal.
func NewSession(shape *core.Shape, cfg Config) (*Session, error) {
	if shape == nil || shape.Len() == 0 {
		return nil, fmt.Errorf("%w: no active cells", core.ErrInvalidShape)
	}
	if err := shape.Bounds().Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	s := &Session{
		shape:  shape,
		cfg:    cfg,
		mode:   cfg.Mode(),
		target: core.MineTarget(shape.Len(), cfg.Difficulty, cfg.MultiMine),
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		board:  core.NewBoard(shape, cfg.Mode()),
	}
	if capacity := shape.Len() * s.mode.MaxStack(); s.target > capacity {
		return nil, fmt.Errorf("%w: %d mines requested, room for %d", core.ErrDegenerateLayout, s.target, capacity)
	}

	if !cfg.GraceRule {
		if err := s.placeMines(nil); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Reset starts over on the same shape and options with a new seed.
func (s *Session) Reset(seed int64) error {
	cfg := s.cfg
	cfg.Seed = seed
	fresh, err := NewSession(s.shape, cfg)
	if err != nil {
		return err
	}
	*s = *fresh
	return nil
}

func (s *Session) placeMines(safe *core.Coord) error {
	layout, err := core.GenerateLayout(s.shape, core.LayoutParams{
		Mines:            s.target,
		Mode:             s.mode,
		StackProbability: float64(s.cfg.MultiMine.Probability) / 100,
		Safe:             safe,
		SafeNeighbors:    safe != nil,
	}, s.rng)
	if err != nil {
		return err
	}
	if err := s.board.SetLayout(layout); err != nil {
		return err
	}
	s.phase = PhaseLayoutReady
	return nil
}

func (s *Session) checkPlayable(c core.Coord) error {
	if s.status.Terminal() {
		return fmt.Errorf("%w: game is %s", core.ErrIllegalAction, s.status)
	}
	if !s.shape.Contains(c) {
		return fmt.Errorf("%w: %s is not on the board", core.ErrIllegalAction, c)
	}
	return nil
}

// RevealCell uncovers c. The first reveal under the grace rule generates the
// layout with c and its neighbours kept clear; if that is impossible the
// session stays in PhaseAwaitingFirstReveal and ErrDegenerateLayout is
// returned.
func (s *Session) RevealCell(c core.Coord) (core.Outcome, error) {
	if err := s.checkPlayable(c); err != nil {
		return core.Outcome{}, err
	}
	if s.phase == PhaseAwaitingFirstReveal {
		cell, _ := s.board.Cell(c)
		if !cell.IsHidden() {
			return core.Outcome{}, fmt.Errorf("reveal %s: %w: cell is %s", c, core.ErrIllegalAction, cell)
		}
		if err := s.placeMines(&c); err != nil {
			return core.Outcome{}, err
		}
	}

	out, err := s.board.Reveal(c)
	if err != nil {
		return out, err
	}
	s.startClock()
	s.settle(out)
	return out, nil
}

// Chord uncovers the hidden neighbours of the revealed number at c.
func (s *Session) Chord(c core.Coord) (core.Outcome, error) {
	if err := s.checkPlayable(c); err != nil {
		return core.Outcome{}, err
	}
	out, err := s.board.Chord(c, s.cfg.StrictChord)
	if err != nil {
		return out, err
	}
	s.settle(out)
	return out, nil
}

// ToggleFlag flips the flag on c in Normal mode. In MultiMine mode it adds
// one flag, wrapping back to Hidden after five or once no flags are left.
func (s *Session) ToggleFlag(c core.Coord) (core.CellState, error) {
	if err := s.checkFlaggable(c); err != nil {
		return core.CellState{}, err
	}
	cell, _ := s.board.Cell(c)
	switch {
	case s.mode == core.ModeNormal && cell.IsFlagged():
		return s.board.RemoveFlag(c)
	case cell.Flags() >= s.mode.MaxStack(),
		cell.IsFlagged() && s.board.FlagsPlaced() >= s.target:
		return s.board.ClearFlags(c)
	default:
		return s.addFlag(c)
	}
}

// AddFlag places one more flag on c.
func (s *Session) AddFlag(c core.Coord) (core.CellState, error) {
	if err := s.checkFlaggable(c); err != nil {
		return core.CellState{}, err
	}
	return s.addFlag(c)
}

// RemoveFlag takes one flag off c.
func (s *Session) RemoveFlag(c core.Coord) (core.CellState, error) {
	if err := s.checkFlaggable(c); err != nil {
		return core.CellState{}, err
	}
	return s.board.RemoveFlag(c)
}

func (s *Session) checkFlaggable(c core.Coord) error {
	if err := s.checkPlayable(c); err != nil {
		return err
	}
	if s.cfg.Flagless {
		return core.ErrFlagless
	}
	return nil
}

func (s *Session) addFlag(c core.Coord) (core.CellState, error) {
	if cell, _ := s.board.Cell(c); !cell.IsRevealed() && s.board.FlagsPlaced() >= s.target {
		return cell, ErrNoFlagsLeft
	}
	next, err := s.board.AddFlag(c)
	if err != nil {
		return next, err
	}
	s.startClock()
	return next, nil
}

func (s *Session) startClock() {
	if s.started.IsZero() {
		s.started = s.cfg.Now()
	}
}

// settle applies the terminal transition after a reveal or chord.
func (s *Session) settle(out core.Outcome) {
	switch {
	case out.MineHit:
		s.status = StatusLost
		s.ended = s.cfg.Now()
	case s.board.Cleared():
		s.status = StatusWon
		s.ended = s.cfg.Now()
		r := s.newResult()
		s.result = &r
		if s.cfg.OnWin != nil {
			s.cfg.OnWin(r)
		}
	}
}

func (s *Session) newResult() Result {
	return Result{
		Player:    s.cfg.Player,
		BoardID:   boards.EncodeID(s.shape),
		BoardName: s.cfg.BoardName,
		Mode:      s.mode,
		Seconds:   s.ElapsedSeconds(),
		Date:      s.ended,
	}
}

// Status returns the session outcome so far.
func (s *Session) Status() Status { return s.status }

// Phase reports whether the layout has been generated.
func (s *Session) Phase() Phase { return s.phase }

// Shape returns the board shape.
func (s *Session) Shape() *core.Shape { return s.shape }

// Mode returns the rules in play.
func (s *Session) Mode() core.Mode { return s.mode }

// Config returns the options the session was created with.
func (s *Session) Config() Config { return s.cfg }

// MineTarget returns the number of mines on the board.
func (s *Session) MineTarget() int { return s.target }

// FlagsPlaced returns the total number of flags on the board.
func (s *Session) FlagsPlaced() int { return s.board.FlagsPlaced() }

// MinesRemaining is the mine counter: target minus flags placed.
func (s *Session) MinesRemaining() int { return s.target - s.board.FlagsPlaced() }

// StartedAt returns the elapsed-time anchor, zero until the first reveal or
// flag.
func (s *Session) StartedAt() time.Time { return s.started }

// Elapsed returns the play time. The clock stops when the game ends.
func (s *Session) Elapsed() time.Duration {
	switch {
	case s.started.IsZero():
		return 0
	case s.status.Terminal():
		return s.ended.Sub(s.started)
	default:
		return s.cfg.Now().Sub(s.started)
	}
}

// ElapsedSeconds returns whole seconds played, capped at MaxSeconds.
func (s *Session) ElapsedSeconds() int {
	secs := int(s.Elapsed() / time.Second)
	if secs > MaxSeconds {
		return MaxSeconds
	}
	return secs
}

// Result returns the win record, or nil unless the game was won.
func (s *Session) Result() *Result { return s.result }
