package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
)

func TestDefaultSettingsValid(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("DefaultSettings() invalid: %v", err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultSettings() {
		t.Errorf("embedded = %+v, hardcoded = %+v", cfg, DefaultSettings())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
		ok     bool
	}{
		{"defaults", func(*Settings) {}, true},
		{"numeric difficulty", func(s *Settings) { s.Difficulty = "4" }, true},
		{"unknown difficulty", func(s *Settings) { s.Difficulty = "insane" }, false},
		{"increase at max", func(s *Settings) { s.MultiMine.MineIncrease = 60 }, true},
		{"increase too high", func(s *Settings) { s.MultiMine.MineIncrease = 61 }, false},
		{"probability too low", func(s *Settings) { s.MultiMine.StackProbability = 9 }, false},
		{"probability too high", func(s *Settings) { s.MultiMine.StackProbability = 91 }, false},
		{"narrow field", func(s *Settings) { s.Bounds.Cols = 24 }, false},
		{"tall field", func(s *Settings) { s.Bounds.Rows = 61 }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultSettings()
			tc.modify(&s)
			err := s.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("Validate() = %v, expected ErrInvalidSettings", err)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "difficulty: hard\nflagless: true\nmultimine:\n  enabled: true\n  mine_increase: 20\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.DifficultyLevel() != core.DifficultyHard {
		t.Errorf("Difficulty = %v, expected hard", cfg.DifficultyLevel())
	}
	if !cfg.Flagless || !cfg.MultiMine.Enabled || cfg.MultiMine.MineIncrease != 20 {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	// Missing keys keep defaults
	if !cfg.GraceRule || cfg.MultiMine.StackProbability != 10 || cfg.Bounds.Rows != 28 {
		t.Errorf("Defaults lost: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("bounds:\n  cols: 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("Expected ErrInvalidSettings, got %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultSettings()
	cfg.Player = "ALICE"
	cfg.StrictChord = true

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got != cfg {
		t.Errorf("Load() = %+v, expected %+v", got, cfg)
	}
}

func TestSessionConfig(t *testing.T) {
	s := DefaultSettings()
	s.Difficulty = "medium"
	s.MultiMine = MultiMineSettings{Enabled: true, MineIncrease: 30, StackProbability: 40}
	s.Flagless = true

	sc := s.SessionConfig(42)
	if sc.Difficulty != core.DifficultyMedium || sc.Seed != 42 || !sc.Flagless || !sc.GraceRule {
		t.Errorf("SessionConfig() = %+v", sc)
	}
	if sc.MultiMine != (core.MultiMine{Enabled: true, IncreasePercent: 30, Probability: 40}) {
		t.Errorf("MultiMine = %+v", sc.MultiMine)
	}
	if sc.Player != "PLAYER" {
		t.Errorf("Player = %q", sc.Player)
	}
}

func TestApplyRulePreset(t *testing.T) {
	s := DefaultSettings()
	if err := ApplyRulePreset(&s, RulesMultiMine); err != nil {
		t.Fatal(err)
	}
	if !s.MultiMine.Enabled || s.Flagless {
		t.Errorf("multimine preset: %+v", s)
	}

	if err := ApplyRulePreset(&s, "FLAGLESS"); err != nil {
		t.Fatal(err)
	}
	if s.MultiMine.Enabled || !s.Flagless {
		t.Errorf("flagless preset: %+v", s)
	}

	if err := ApplyRulePreset(&s, "bogus"); err == nil {
		t.Error("Expected error for unknown preset")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/x/y.db"); got != filepath.Join(home, "x", "y.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome() changed absolute path: %q", got)
	}
}
