// Package registry provides a global registry of board presets.
// Boards register themselves in init() functions, allowing the platform
// to discover and load them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
)

// Board is a playable board shape with a suggested difficulty.
type Board interface {
	// ID returns a unique key for this board (e.g., "easy", "expert").
	// Used for CLI arguments.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Shape returns the active cells of the board.
	Shape() *core.Shape

	// Difficulty returns the difficulty the board is meant to be played at.
	Difficulty() core.Difficulty
}

// BoardInfo contains metadata about a registered board.
type BoardInfo struct {
	ID         string
	Title      string
	Cells      int
	Difficulty core.Difficulty
}

// Factory is a function that builds a registered board.
type Factory func() Board

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]BoardInfo)
	mu        sync.RWMutex
)

// Register adds a board factory to the registry.
// Typically called from an init() function.
// Panics if a board with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: board %q already registered", id))
	}

	factories[id] = f

	b := f()
	infos[id] = BoardInfo{
		ID:         id,
		Title:      b.Title(),
		Cells:      b.Shape().Len(),
		Difficulty: b.Difficulty(),
	}
}

// List returns information about all registered boards, ordered by cell
// count and then ID so presets read from small to large.
func List() []BoardInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BoardInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Cells != result[j].Cells {
			return result[i].Cells < result[j].Cells
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds a board by its ID.
// Returns an error if the board ID is not registered.
func Create(id string) (Board, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown board %q", id)
	}

	return f(), nil
}

// Exists checks if a board with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
