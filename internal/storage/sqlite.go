// Package storage provides the SQLite leaderboard of winning times.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/ffmines/internal/games/minesweeper"
	"github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for the leaderboard.
type Store struct {
	db *sql.DB
}

// TimeEntry is one winning time.
type TimeEntry struct {
	ID        int64
	Player    string
	BoardName string // the player's name for the board
	BoardID   string // run-length board identity
	Mode      string // NORMAL or MULTI
	Seconds   int
	PlayedAt  time.Time
}

// BoardSummary aggregates a player's times on one board and mode.
type BoardSummary struct {
	Name    string
	BoardID string
	Mode    string
	Best    int
	Plays   int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS times (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			board_name TEXT NOT NULL,
			board_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			seconds INTEGER NOT NULL,
			played_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_times_board ON times(board_id, mode, seconds);
		CREATE INDEX IF NOT EXISTS idx_times_player ON times(player, board_name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveTime records a winning time. Player and board names are validated
// and upper-cased. Returns the ID of the inserted record.
func (s *Store) SaveTime(e TimeEntry) (int64, error) {
	player, err := NormalizeName(e.Player)
	if err != nil {
		return 0, err
	}
	name, err := NormalizeName(e.BoardName)
	if err != nil {
		return 0, err
	}
	if err := s.checkBoardName(player, name, e.BoardID, e.Mode); err != nil {
		return 0, err
	}
	if e.PlayedAt.IsZero() {
		e.PlayedAt = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO times (player, board_name, board_id, mode, seconds, played_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		player, name, e.BoardID, e.Mode, e.Seconds, e.PlayedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save time: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// SaveResult records a session's win. An existing name the player gave the
// same board and mode is reused; otherwise the result's board name is
// sanitized into a free one.
func (s *Store) SaveResult(r minesweeper.Result) (int64, error) {
	mode := r.Mode.String()
	name, ok, err := s.BoardNameFor(r.Player, r.BoardID, mode)
	if err != nil {
		return 0, err
	}
	if !ok {
		name, err = s.freeBoardName(r.Player, SanitizeName(r.BoardName, "BOARD"), r.BoardID, mode, r.Mode == core.ModeMultiMine)
		if err != nil {
			return 0, err
		}
	}
	return s.SaveTime(TimeEntry{
		Player:    r.Player,
		BoardName: name,
		BoardID:   r.BoardID,
		Mode:      mode,
		Seconds:   r.Seconds,
		PlayedAt:  r.Date,
	})
}

// maxNameTries bounds the suffixes tried by freeBoardName (A..ZZ).
const maxNameTries = 26 + 26*26

// freeBoardName returns base, or base with a MULTI or letter suffix, such
// that the name is not used for another board or mode of the player.
func (s *Store) freeBoardName(player, base, boardID, mode string, multi bool) (string, error) {
	player, err := NormalizeName(player)
	if err != nil {
		return "", err
	}
	candidates := []string{base}
	if multi {
		candidates = append(candidates, fitName(base, "MULTI"))
	}
	for i := 0; i < len(candidates)+maxNameTries; i++ {
		var name string
		if i < len(candidates) {
			name = candidates[i]
		} else {
			name = fitName(candidates[len(candidates)-1], letterSuffix(i-len(candidates)))
		}
		err := s.checkBoardName(player, name, boardID, mode)
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, ErrDuplicateBoardName) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: no free name left for %s", ErrDuplicateBoardName, base)
}

// fitName appends suffix to base, cutting base to keep MaxNameLen.
func fitName(base, suffix string) string {
	if keep := MaxNameLen - len(suffix); len(base) > keep {
		base = base[:keep]
	}
	return base + suffix
}

// letterSuffix maps 0, 1, .. 25, 26, .. to A, B, .. Z, AA, ..
func letterSuffix(n int) string {
	var b []byte
	for n++; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

// checkBoardName rejects a name the player already uses for another board.
func (s *Store) checkBoardName(player, name, boardID, mode string) error {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM times
		 WHERE player = ? AND board_name = ? AND (board_id != ? OR mode != ?)`,
		player, name, boardID, mode,
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("storage: cannot check board name: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %s already names another board for %s", ErrDuplicateBoardName, name, player)
	}
	return nil
}

// BoardNameFor returns the name the player gave a board and mode, if any.
func (s *Store) BoardNameFor(player, boardID, mode string) (string, bool, error) {
	player, err := NormalizeName(player)
	if err != nil {
		return "", false, err
	}
	var name string
	err = s.db.QueryRow(
		`SELECT board_name FROM times
		 WHERE player = ? AND board_id = ? AND mode = ?
		 ORDER BY id LIMIT 1`,
		player, boardID, mode,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot query board name: %w", err)
	}
	return name, true, nil
}

// TopTimes retrieves the fastest N times on a board in a mode.
// Results are ordered by seconds ascending, earlier wins first on ties.
func (s *Store) TopTimes(boardID, mode string, limit int) ([]TimeEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, player, board_name, board_id, mode, seconds, played_at
		 FROM times
		 WHERE board_id = ? AND mode = ?
		 ORDER BY seconds ASC, played_at ASC, id ASC
		 LIMIT ?`,
		boardID, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query times: %w", err)
	}
	return scanTimes(rows)
}

// PlayerTimes retrieves every time a player set on one named board.
func (s *Store) PlayerTimes(player, boardName string) ([]TimeEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, player, board_name, board_id, mode, seconds, played_at
		 FROM times
		 WHERE player = ? AND board_name = ?
		 ORDER BY seconds ASC, id ASC`,
		upper(player), upper(boardName),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query times: %w", err)
	}
	return scanTimes(rows)
}

func scanTimes(rows *sql.Rows) ([]TimeEntry, error) {
	defer rows.Close()

	var entries []TimeEntry
	for rows.Next() {
		var e TimeEntry
		var playedAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.BoardName, &e.BoardID, &e.Mode, &e.Seconds, &playedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.PlayedAt = parseTime(playedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// parseTime handles both time.Time and string columns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// BestTime returns the fastest time on a board in a mode.
// The bool is false if nobody has won there yet.
func (s *Store) BestTime(boardID, mode string) (int, bool, error) {
	var best sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(seconds) FROM times WHERE board_id = ? AND mode = ?",
		boardID, mode,
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}
	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}

// Players lists everyone with at least one time, sorted.
func (s *Store) Players() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT player FROM times ORDER BY player")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	defer rows.Close()

	var players []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return players, nil
}

// BoardsForPlayer summarizes the boards a player has won on, by name.
func (s *Store) BoardsForPlayer(player string) ([]BoardSummary, error) {
	return s.summaries(
		`SELECT board_name, board_id, mode, MIN(seconds), COUNT(*)
		 FROM times WHERE player = ?
		 GROUP BY board_name, board_id, mode
		 ORDER BY board_name, mode`,
		upper(player),
	)
}

// Boards summarizes every board and mode with a time. The name is the
// alphabetically first one any player gave it.
func (s *Store) Boards() ([]BoardSummary, error) {
	return s.summaries(
		`SELECT MIN(board_name), board_id, mode, MIN(seconds), COUNT(*)
		 FROM times
		 GROUP BY board_id, mode
		 ORDER BY MIN(board_name), mode`,
	)
}

func (s *Store) summaries(query string, args ...any) ([]BoardSummary, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query boards: %w", err)
	}
	defer rows.Close()

	var out []BoardSummary
	for rows.Next() {
		var b BoardSummary
		if err := rows.Scan(&b.Name, &b.BoardID, &b.Mode, &b.Best, &b.Plays); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// RenamePlayer moves all of a player's times to a new name.
func (s *Store) RenamePlayer(oldName, newName string) error {
	newName, err := NormalizeName(newName)
	if err != nil {
		return err
	}
	oldName = upper(oldName)
	if oldName == newName {
		return nil
	}

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM times WHERE player = ?", newName).Scan(&n); err != nil {
		return fmt.Errorf("storage: cannot check player: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %s", ErrPlayerExists, newName)
	}
	return s.exec("rename player", "UPDATE times SET player = ? WHERE player = ?", newName, oldName)
}

// RenameBoard changes the name a player gave a board.
func (s *Store) RenameBoard(player, oldName, newName string) error {
	newName, err := NormalizeName(newName)
	if err != nil {
		return err
	}
	player, oldName = upper(player), upper(oldName)

	var n int
	err = s.db.QueryRow(
		"SELECT COUNT(*) FROM times WHERE player = ? AND board_name = ?",
		player, newName,
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("storage: cannot check board name: %w", err)
	}
	if n > 0 && newName != oldName {
		return fmt.Errorf("%w: %s already names a board for %s", ErrDuplicateBoardName, newName, player)
	}
	return s.exec("rename board",
		"UPDATE times SET board_name = ? WHERE player = ? AND board_name = ?",
		newName, player, oldName)
}

// DeleteBoard removes all of a player's times on a named board.
func (s *Store) DeleteBoard(player, boardName string) error {
	return s.exec("delete board",
		"DELETE FROM times WHERE player = ? AND board_name = ?",
		upper(player), upper(boardName))
}

// DeleteTime removes one time by ID.
func (s *Store) DeleteTime(id int64) error {
	return s.exec("delete time", "DELETE FROM times WHERE id = ?", id)
}

// exec runs a statement that must affect at least one row.
func (s *Store) exec(what, query string, args ...any) error {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("storage: cannot %s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return nil
}
