package minesweeper

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/ffmines/internal/boards"
	"github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
)

// fakeClock is a manually advanced time source.
type fakeClock struct{ now time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func rect(t *testing.T, rows, cols int) *core.Shape {
	t.Helper()
	s, err := core.Rect(core.DefaultBounds(), rows, cols)
	if err != nil {
		t.Fatalf("Rect(%d, %d) failed: %v", rows, cols, err)
	}
	return s
}

func newSession(t *testing.T, shape *core.Shape, cfg Config) *Session {
	t.Helper()
	if cfg.Difficulty == 0 {
		cfg.Difficulty = core.DifficultyEasy
	}
	s, err := NewSession(shape, cfg)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

// cellsBy splits the active cells by whether they hold mines.
func cellsBy(s *Session) (safe, mined []core.Coord) {
	l := s.board.Layout()
	for _, c := range s.shape.Coords() {
		if l.Mines(c) > 0 {
			mined = append(mined, c)
		} else {
			safe = append(safe, c)
		}
	}
	return safe, mined
}

func TestNewSessionRejects(t *testing.T) {
	shape := rect(t, 5, 5)
	tests := []struct {
		name  string
		shape *core.Shape
		cfg   Config
		want  error
	}{
		{"nil shape", nil, Config{Difficulty: core.DifficultyEasy}, core.ErrInvalidShape},
		{"bad difficulty", shape, Config{Difficulty: 7}, ErrInvalidConfig},
		{"increase too high", shape, Config{
			Difficulty: core.DifficultyEasy,
			MultiMine:  core.MultiMine{Enabled: true, IncreasePercent: 61, Probability: 50},
		}, ErrInvalidConfig},
		{"negative probability", shape, Config{
			Difficulty: core.DifficultyEasy,
			MultiMine:  core.MultiMine{Enabled: true, IncreasePercent: 10, Probability: -1},
		}, ErrInvalidConfig},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSession(tc.shape, tc.cfg); !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestGraceRuleDegenerateOnSmallBoard(t *testing.T) {
	// 3x3 easy wants one mine, but the first reveal at the centre
	// excludes all nine cells.
	s := newSession(t, rect(t, 3, 3), Config{GraceRule: true})
	if s.MineTarget() != 1 {
		t.Fatalf("Expected 1 mine, got %d", s.MineTarget())
	}

	_, err := s.RevealCell(core.C(1, 1))
	if !errors.Is(err, core.ErrDegenerateLayout) {
		t.Fatalf("Expected ErrDegenerateLayout, got %v", err)
	}
	if s.Phase() != PhaseAwaitingFirstReveal || s.Status() != StatusInProgress {
		t.Errorf("Session should be unchanged, phase %v status %v", s.Phase(), s.Status())
	}
	if !s.StartedAt().IsZero() {
		t.Error("Clock should not start on a failed reveal")
	}
}

func TestGraceRuleClearsFirstNeighbourhood(t *testing.T) {
	shape := rect(t, 9, 9)
	first := core.C(0, 4)
	for seed := int64(1); seed <= 30; seed++ {
		s := newSession(t, shape, Config{Difficulty: core.DifficultyExpert, GraceRule: true, Seed: seed})
		if s.Phase() != PhaseAwaitingFirstReveal {
			t.Fatal("Layout should wait for the first reveal")
		}
		out, err := s.RevealCell(first)
		if err != nil {
			t.Fatalf("seed %d: RevealCell failed: %v", seed, err)
		}
		if out.MineHit {
			t.Fatalf("seed %d: first reveal hit a mine", seed)
		}

		l := s.board.Layout()
		if l.Mines(first) != 0 {
			t.Errorf("seed %d: mine on the first cell", seed)
		}
		for _, n := range shape.Neighbors(first) {
			if l.Mines(n) != 0 {
				t.Errorf("seed %d: mine next to the first cell at %s", seed, n)
			}
		}
		if l.TotalMines() != s.MineTarget() {
			t.Errorf("seed %d: placed %d mines, expected %d", seed, l.TotalMines(), s.MineTarget())
		}
	}
}

func TestLayoutAtStartWithoutGrace(t *testing.T) {
	s := newSession(t, rect(t, 9, 9), Config{Seed: 3})
	if s.Phase() != PhaseLayoutReady {
		t.Fatal("Layout should exist without the grace rule")
	}
	if s.MineTarget() != 11 || s.board.Layout().TotalMines() != 11 {
		t.Errorf("Easy 9x9 should hold 11 mines, got target %d placed %d",
			s.MineTarget(), s.board.Layout().TotalMines())
	}
}

func TestSameSeedSameLayout(t *testing.T) {
	shape := rect(t, 12, 12)
	a := newSession(t, shape, Config{Difficulty: core.DifficultyHard, Seed: 99})
	b := newSession(t, shape, Config{Difficulty: core.DifficultyHard, Seed: 99})
	_, minesA := cellsBy(a)
	_, minesB := cellsBy(b)
	if len(minesA) != len(minesB) {
		t.Fatalf("Mine counts differ: %d vs %d", len(minesA), len(minesB))
	}
	for i := range minesA {
		if minesA[i] != minesB[i] {
			t.Fatalf("Layouts differ at %d: %s vs %s", i, minesA[i], minesB[i])
		}
	}
}

func TestMultiMineStacking(t *testing.T) {
	// 7x11 easy gives 10 base mines, 12 with a 20% increase
	shape := rect(t, 7, 11)
	mm := core.MultiMine{Enabled: true, IncreasePercent: 20, Probability: 100}

	stacked := false
	for seed := int64(1); seed <= 30 && !stacked; seed++ {
		s := newSession(t, shape, Config{MultiMine: mm, Seed: seed})
		if s.MineTarget() != 12 {
			t.Fatalf("Expected 12 mines, got %d", s.MineTarget())
		}
		l := s.board.Layout()
		if l.TotalMines() != 12 {
			t.Fatalf("seed %d: placed %d mines", seed, l.TotalMines())
		}
		stacked = l.MaxStack() > 1
	}
	if !stacked {
		t.Error("No cell ever received a second mine")
	}
}

func TestRevealAllSafeCellsWins(t *testing.T) {
	clock := newFakeClock()
	shape := rect(t, 9, 9)
	var results []Result
	s := newSession(t, shape, Config{
		Seed:      11,
		Player:    "ALICE",
		BoardName: "SQUARE",
		Now:       clock.Now,
		OnWin:     func(r Result) { results = append(results, r) },
	})

	safe, _ := cellsBy(s)
	for i, c := range safe {
		if cell, _ := s.board.Cell(c); cell.IsRevealed() {
			continue
		}
		if i == len(safe)-1 {
			clock.Advance(42 * time.Second)
		}
		if _, err := s.RevealCell(c); err != nil {
			t.Fatalf("RevealCell(%s) failed: %v", c, err)
		}
		if s.Status() == StatusWon {
			break
		}
		clock.Advance(time.Second / 2)
	}

	if s.Status() != StatusWon {
		t.Fatalf("Expected win, got %v", s.Status())
	}
	if len(results) != 1 {
		t.Fatalf("OnWin should fire once, fired %d times", len(results))
	}
	r := results[0]
	if r.Player != "ALICE" || r.BoardName != "SQUARE" || r.Mode != core.ModeNormal {
		t.Errorf("Unexpected result %+v", r)
	}
	if r.BoardID != boards.EncodeID(shape) {
		t.Errorf("BoardID = %q, expected %q", r.BoardID, boards.EncodeID(shape))
	}
	if r.Seconds != s.ElapsedSeconds() || !r.Date.Equal(clock.Now()) {
		t.Errorf("Result time %ds at %v, session %ds at %v", r.Seconds, r.Date, s.ElapsedSeconds(), clock.Now())
	}

	// the clock is stopped and the session frozen
	frozen := s.Elapsed()
	clock.Advance(time.Hour)
	if s.Elapsed() != frozen {
		t.Error("Elapsed should stop after the win")
	}
	if _, err := s.RevealCell(core.C(0, 0)); !errors.Is(err, core.ErrIllegalAction) {
		t.Errorf("Actions after a win should be illegal, got %v", err)
	}
	if _, err := s.ToggleFlag(core.C(0, 0)); !errors.Is(err, core.ErrIllegalAction) {
		t.Errorf("Flags after a win should be illegal, got %v", err)
	}
	if s.Result() == nil || *s.Result() != r {
		t.Error("Result() should return the win record")
	}
}

func TestWinIgnoresFlags(t *testing.T) {
	s := newSession(t, rect(t, 5, 5), Config{Seed: 5})
	safe, _ := cellsBy(s)
	for _, c := range safe {
		if cell, _ := s.board.Cell(c); cell.IsHidden() {
			s.RevealCell(c)
		}
	}
	if s.Status() != StatusWon {
		t.Fatalf("Revealing every safe cell without flags should win, got %v", s.Status())
	}

	snap := s.Snapshot()
	if snap.MinesRemaining != 0 {
		t.Errorf("Counter should read 0 after a win, got %d", snap.MinesRemaining)
	}
	_, mined := cellsBy(s)
	for _, c := range mined {
		v, _ := snap.At(c)
		if v.Kind != KindFlagged || v.Flags != v.Mines {
			t.Errorf("Mine at %s should show flagged after a win, got %+v", c, v)
		}
	}
}

func TestRevealMineLoses(t *testing.T) {
	s := newSession(t, rect(t, 9, 9), Config{Seed: 21})
	safe, mined := cellsBy(s)

	if _, err := s.ToggleFlag(safe[0]); err != nil {
		t.Fatalf("ToggleFlag failed: %v", err)
	}
	if _, err := s.ToggleFlag(mined[1]); err != nil {
		t.Fatalf("ToggleFlag failed: %v", err)
	}

	out, err := s.RevealCell(mined[0])
	if err != nil {
		t.Fatalf("RevealCell failed: %v", err)
	}
	if !out.MineHit || s.Status() != StatusLost {
		t.Fatalf("Expected loss, got %+v status %v", out, s.Status())
	}
	if s.Result() != nil {
		t.Error("A loss has no result")
	}

	snap := s.Snapshot()
	check := func(c core.Coord, kind CellKind) {
		t.Helper()
		v, ok := snap.At(c)
		if !ok {
			t.Fatalf("Snapshot missing %s", c)
		}
		if v.Kind != kind {
			t.Errorf("%s: kind %v, expected %v", c, v.Kind, kind)
		}
	}
	check(mined[0], KindMine)
	check(mined[1], KindFlagged)
	check(safe[0], KindWrongFlag)
	for _, c := range mined[2:] {
		check(c, KindMissedMine)
	}
	if v, _ := snap.At(mined[0]); !v.Exploded || v.Mines != 1 {
		t.Errorf("Hit mine should be exploded, got %+v", v)
	}
	if _, err := s.Chord(mined[0]); !errors.Is(err, core.ErrIllegalAction) {
		t.Errorf("Chord after a loss should be illegal, got %v", err)
	}
}

func TestLostSnapshotMarksWrongStacks(t *testing.T) {
	mm := core.MultiMine{Enabled: true, IncreasePercent: 20, Probability: 100}
	s := newSession(t, rect(t, 9, 9), Config{MultiMine: mm, Seed: 5})
	_, mined := cellsBy(s)
	if len(mined) < 3 {
		t.Fatalf("Expected at least 3 mined cells, got %d", len(mined))
	}
	l := s.board.Layout()

	flag := func(c core.Coord, n int) {
		t.Helper()
		for i := 0; i < n; i++ {
			if _, err := s.AddFlag(c); err != nil {
				t.Fatalf("AddFlag(%s) %d failed: %v", c, i, err)
			}
		}
	}
	right, wrong := mined[0], mined[1]
	flag(right, l.Mines(right))
	if n := l.Mines(wrong); n < core.ModeMultiMine.MaxStack() {
		flag(wrong, n+1)
	} else {
		flag(wrong, n-1)
	}

	if out, err := s.RevealCell(mined[2]); err != nil || !out.MineHit {
		t.Fatalf("RevealCell() = %+v, %v; expected a mine hit", out, err)
	}
	snap := s.Snapshot()
	if v, _ := snap.At(right); v.Kind != KindFlagged {
		t.Errorf("Matching stack: kind %v, expected %v", v.Kind, KindFlagged)
	}
	if v, _ := snap.At(wrong); v.Kind != KindWrongFlag {
		t.Errorf("Stack of %d flags on %d mines: kind %v, expected %v", v.Flags, v.Mines, v.Kind, KindWrongFlag)
	}
}

func TestSnapshotHidesMinesDuringPlay(t *testing.T) {
	s := newSession(t, rect(t, 6, 6), Config{Seed: 2})
	for _, v := range s.Snapshot().Cells {
		if v.Kind != KindHidden || v.Mines != 0 {
			t.Fatalf("Fresh snapshot should be all hidden with no mines, got %+v", v)
		}
	}
	if _, ok := s.Snapshot().At(core.C(20, 20)); ok {
		t.Error("At() outside the board should report false")
	}
}

func TestFlagBudget(t *testing.T) {
	s := newSession(t, rect(t, 9, 9), Config{Seed: 4})
	coords := s.Shape().Coords()
	for i := 0; i < s.MineTarget(); i++ {
		if _, err := s.ToggleFlag(coords[i]); err != nil {
			t.Fatalf("flag %d failed: %v", i, err)
		}
	}
	if s.MinesRemaining() != 0 {
		t.Errorf("MinesRemaining = %d, expected 0", s.MinesRemaining())
	}

	_, err := s.ToggleFlag(coords[s.MineTarget()])
	if !errors.Is(err, ErrNoFlagsLeft) || !errors.Is(err, core.ErrIllegalAction) {
		t.Errorf("Expected ErrNoFlagsLeft, got %v", err)
	}

	if _, err := s.ToggleFlag(coords[0]); err != nil {
		t.Fatalf("unflag failed: %v", err)
	}
	if s.MinesRemaining() != 1 || s.FlagsPlaced() != s.MineTarget()-1 {
		t.Errorf("Counter wrong after unflag: remaining %d, placed %d", s.MinesRemaining(), s.FlagsPlaced())
	}
}

func TestToggleFlagWrapsWhenBudgetIsSpent(t *testing.T) {
	mm := core.MultiMine{Enabled: true, IncreasePercent: 20, Probability: 50}
	s := newSession(t, rect(t, 9, 9), Config{MultiMine: mm, Seed: 4})
	coords := s.Shape().Coords()

	c := coords[0]
	for i := 0; i < 2; i++ {
		if _, err := s.ToggleFlag(c); err != nil {
			t.Fatalf("toggle %d failed: %v", i, err)
		}
	}
	for i := 1; s.MinesRemaining() > 0; i++ {
		if _, err := s.AddFlag(coords[i]); err != nil {
			t.Fatalf("AddFlag(%s) failed: %v", coords[i], err)
		}
	}

	cell, err := s.ToggleFlag(c)
	if err != nil {
		t.Fatalf("ToggleFlag with no flags left failed: %v", err)
	}
	if cell.IsFlagged() || s.MinesRemaining() != 2 {
		t.Errorf("Expected the stack cleared, got %d flags and %d remaining", cell.Flags(), s.MinesRemaining())
	}

	// Hidden cells still honour the budget
	for s.MinesRemaining() > 0 {
		if _, err := s.AddFlag(coords[len(coords)-1]); err != nil {
			t.Fatalf("AddFlag failed: %v", err)
		}
	}
	if _, err := s.ToggleFlag(c); !errors.Is(err, ErrNoFlagsLeft) {
		t.Errorf("ToggleFlag on a hidden cell: expected ErrNoFlagsLeft, got %v", err)
	}
}

func TestFlaglessRejectsFlags(t *testing.T) {
	s := newSession(t, rect(t, 5, 5), Config{Flagless: true, GraceRule: true})
	if _, err := s.ToggleFlag(core.C(0, 0)); !errors.Is(err, core.ErrFlagless) {
		t.Errorf("ToggleFlag: expected ErrFlagless, got %v", err)
	}
	if _, err := s.AddFlag(core.C(0, 0)); !errors.Is(err, core.ErrFlagless) {
		t.Errorf("AddFlag: expected ErrFlagless, got %v", err)
	}
	if s.FlagsPlaced() != 0 || !s.StartedAt().IsZero() {
		t.Error("Rejected flags should not change the session")
	}
}

func TestToggleFlagModes(t *testing.T) {
	normal := newSession(t, rect(t, 9, 9), Config{GraceRule: true})
	c := core.C(2, 2)
	for i, want := range []int{1, 0, 1} {
		cell, err := normal.ToggleFlag(c)
		if err != nil {
			t.Fatalf("toggle %d failed: %v", i, err)
		}
		if cell.Flags() != want {
			t.Errorf("Normal toggle %d: %d flags, expected %d", i, cell.Flags(), want)
		}
	}

	mm := core.MultiMine{Enabled: true, IncreasePercent: 20, Probability: 50}
	multi := newSession(t, rect(t, 9, 9), Config{MultiMine: mm, GraceRule: true})
	for i, want := range []int{1, 2, 3, 4, 5, 0, 1} {
		cell, err := multi.ToggleFlag(c)
		if err != nil {
			t.Fatalf("toggle %d failed: %v", i, err)
		}
		if cell.Flags() != want {
			t.Errorf("MultiMine toggle %d: %d flags, expected %d", i, cell.Flags(), want)
		}
	}

	if _, err := multi.RemoveFlag(c); err != nil {
		t.Fatalf("RemoveFlag failed: %v", err)
	}
	if _, err := multi.RemoveFlag(c); !errors.Is(err, core.ErrIllegalAction) {
		t.Errorf("RemoveFlag on a hidden cell: expected ErrIllegalAction, got %v", err)
	}
}

func TestRejectedActionsLeaveSessionUnchanged(t *testing.T) {
	s := newSession(t, rect(t, 9, 9), Config{GraceRule: true})
	if _, err := s.ToggleFlag(core.C(0, 0)); err != nil {
		t.Fatalf("ToggleFlag failed: %v", err)
	}

	// flags block reveal, even before the layout exists
	if _, err := s.RevealCell(core.C(0, 0)); !errors.Is(err, core.ErrIllegalAction) {
		t.Errorf("Reveal of a flagged cell: expected ErrIllegalAction, got %v", err)
	}
	if s.Phase() != PhaseAwaitingFirstReveal {
		t.Error("Rejected first reveal should not place mines")
	}

	if _, err := s.RevealCell(core.C(-1, 3)); !errors.Is(err, core.ErrIllegalAction) {
		t.Errorf("Reveal outside the board: expected ErrIllegalAction, got %v", err)
	}
	if _, err := s.Chord(core.C(4, 4)); !errors.Is(err, core.ErrIllegalAction) {
		t.Errorf("Chord before any reveal: expected ErrIllegalAction, got %v", err)
	}
	if _, err := s.ToggleFlag(core.C(40, 0)); !errors.Is(err, core.ErrIllegalAction) {
		t.Errorf("Flag outside the board: expected ErrIllegalAction, got %v", err)
	}
	if s.FlagsPlaced() != 1 {
		t.Errorf("Expected 1 flag, got %d", s.FlagsPlaced())
	}
}

// numberedCell returns a safe cell with mines around it.
func numberedCell(t *testing.T, s *Session) core.Coord {
	t.Helper()
	safe, _ := cellsBy(s)
	for _, c := range safe {
		if s.board.Layout().Adjacency(c) > 0 {
			return c
		}
	}
	t.Fatal("No numbered cell on the board")
	return core.Coord{}
}

func TestChordWithMatchingFlags(t *testing.T) {
	for _, strict := range []bool{false, true} {
		s := newSession(t, rect(t, 9, 9), Config{Seed: 8, StrictChord: strict})
		c := numberedCell(t, s)
		if _, err := s.RevealCell(c); err != nil {
			t.Fatalf("RevealCell failed: %v", err)
		}
		for _, n := range s.Shape().Neighbors(c) {
			if s.board.Layout().Mines(n) > 0 {
				if _, err := s.AddFlag(n); err != nil {
					t.Fatalf("AddFlag failed: %v", err)
				}
			}
		}

		out, err := s.Chord(c)
		if err != nil {
			t.Fatalf("Chord failed: %v", err)
		}
		if out.MineHit || s.Status() == StatusLost {
			t.Fatalf("strict=%v: correctly flagged chord hit a mine", strict)
		}
		for _, n := range s.Shape().Neighbors(c) {
			cell, _ := s.board.Cell(n)
			if s.board.Layout().Mines(n) == 0 && !cell.IsRevealed() {
				t.Errorf("strict=%v: safe neighbour %s left hidden", strict, n)
			}
		}
	}
}

func TestStrictChordWithoutFlagsDoesNothing(t *testing.T) {
	s := newSession(t, rect(t, 9, 9), Config{Seed: 8, StrictChord: true})
	c := numberedCell(t, s)
	s.RevealCell(c)

	out, err := s.Chord(c)
	if err != nil {
		t.Fatalf("Chord failed: %v", err)
	}
	if len(out.Revealed) != 0 || s.Status() != StatusInProgress {
		t.Errorf("Strict chord without flags should be a no-op, got %+v", out)
	}
}

func TestLooseChordWithoutFlagsHitsMine(t *testing.T) {
	s := newSession(t, rect(t, 9, 9), Config{Seed: 8})
	c := numberedCell(t, s)
	s.RevealCell(c)

	out, err := s.Chord(c)
	if err != nil {
		t.Fatalf("Chord failed: %v", err)
	}
	if !out.MineHit || s.Status() != StatusLost {
		t.Errorf("Unflagged chord next to a mine should lose, got %+v", out)
	}
}

func TestElapsedClock(t *testing.T) {
	clock := newFakeClock()
	s := newSession(t, rect(t, 9, 9), Config{GraceRule: true, Now: clock.Now})

	clock.Advance(time.Minute)
	if s.Elapsed() != 0 {
		t.Error("Clock should not run before the first action")
	}

	s.ToggleFlag(core.C(8, 8))
	clock.Advance(5 * time.Second)
	if s.Elapsed() != 5*time.Second || s.ElapsedSeconds() != 5 {
		t.Errorf("Elapsed = %v, expected 5s", s.Elapsed())
	}

	clock.Advance(2000 * time.Second)
	if s.ElapsedSeconds() != MaxSeconds {
		t.Errorf("ElapsedSeconds should cap at %d, got %d", MaxSeconds, s.ElapsedSeconds())
	}
	if snap := s.Snapshot(); snap.StartedAt.IsZero() || snap.Elapsed != s.Elapsed() {
		t.Error("Snapshot should carry the clock")
	}
}

func TestReset(t *testing.T) {
	s := newSession(t, rect(t, 9, 9), Config{GraceRule: true, Seed: 1})
	s.ToggleFlag(core.C(0, 0))
	if _, err := s.RevealCell(core.C(4, 4)); err != nil {
		t.Fatalf("RevealCell failed: %v", err)
	}

	if err := s.Reset(2); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if s.Phase() != PhaseAwaitingFirstReveal || s.Status() != StatusInProgress {
		t.Errorf("Reset session should await the first reveal, phase %v status %v", s.Phase(), s.Status())
	}
	if s.FlagsPlaced() != 0 || !s.StartedAt().IsZero() || s.Config().Seed != 2 {
		t.Error("Reset should clear flags and clock and keep the new seed")
	}
}

func TestStatusString(t *testing.T) {
	if StatusWon.String() != "won" || StatusLost.String() != "lost" || StatusInProgress.String() != "in progress" {
		t.Error("Unexpected status names")
	}
	if StatusInProgress.Terminal() || !StatusLost.Terminal() {
		t.Error("Terminal() wrong")
	}
}
