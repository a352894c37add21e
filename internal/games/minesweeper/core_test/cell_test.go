package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
)

func TestCellNormalFlagging(t *testing.T) {
	c := core.Hidden()

	c, err := c.AddFlag(core.ModeNormal)
	if err != nil {
		t.Fatalf("AddFlag failed: %v", err)
	}
	if c.String() != "Flagged(1)" {
		t.Errorf("expected Flagged(1), got %s", c)
	}

	if _, err := c.AddFlag(core.ModeNormal); !errors.Is(err, core.ErrIllegalAction) {
		t.Errorf("second flag in normal mode should be illegal, got %v", err)
	}

	c, err = c.RemoveFlag()
	if err != nil {
		t.Fatalf("RemoveFlag failed: %v", err)
	}
	if !c.IsHidden() {
		t.Errorf("expected Hidden after unflag, got %s", c)
	}
}

func TestCellMultiMineFlagging(t *testing.T) {
	c := core.Hidden()
	for i := 1; i <= 5; i++ {
		var err error
		c, err = c.AddFlag(core.ModeMultiMine)
		if err != nil {
			t.Fatalf("AddFlag #%d failed: %v", i, err)
		}
		if c.Flags() != i {
			t.Errorf("expected %d flags, got %d", i, c.Flags())
		}
	}

	if _, err := c.AddFlag(core.ModeMultiMine); !errors.Is(err, core.ErrIllegalAction) {
		t.Errorf("sixth flag should be illegal, got %v", err)
	}

	for i := 4; i >= 0; i-- {
		var err error
		c, err = c.RemoveFlag()
		if err != nil {
			t.Fatalf("RemoveFlag failed: %v", err)
		}
		if c.Flags() != i {
			t.Errorf("expected %d flags, got %d", i, c.Flags())
		}
	}
	if !c.IsHidden() {
		t.Errorf("expected Hidden, got %s", c)
	}
}

func TestCellRevealTransitions(t *testing.T) {
	tests := []struct {
		name    string
		cell    core.CellState
		wantErr bool
	}{
		{"hidden", core.Hidden(), false},
		{"flagged", core.Flagged(1), true},
		{"revealed", core.Revealed(), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, err := tc.cell.Reveal()
			if tc.wantErr {
				if !errors.Is(err, core.ErrIllegalAction) {
					t.Errorf("expected ErrIllegalAction, got %v", err)
				}
				if next != tc.cell {
					t.Errorf("state changed on rejected reveal: %s", next)
				}
				return
			}
			if err != nil || !next.IsRevealed() {
				t.Errorf("Reveal() = %s, %v", next, err)
			}
		})
	}
}

func TestCellRevealedCannotBeFlagged(t *testing.T) {
	if _, err := core.Revealed().AddFlag(core.ModeMultiMine); !errors.Is(err, core.ErrIllegalAction) {
		t.Errorf("expected ErrIllegalAction, got %v", err)
	}
	if _, err := core.Hidden().RemoveFlag(); !errors.Is(err, core.ErrIllegalAction) {
		t.Errorf("expected ErrIllegalAction, got %v", err)
	}
}

func TestFlaggedZeroIsHidden(t *testing.T) {
	if !core.Flagged(0).IsHidden() {
		t.Error("Flagged(0) should be Hidden")
	}
	if core.Flagged(0).Flags() != 0 {
		t.Error("Hidden should report 0 flags")
	}
}
