package boards

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
)

// Loader loads boards from a directory tree.
type Loader struct {
	Root   string
	Bounds core.Bounds
}

// NewLoader creates a loader for root using the given field bounds.
func NewLoader(root string, bounds core.Bounds) *Loader {
	return &Loader{Root: root, Bounds: bounds}
}

// LoadAll recursively scans and loads all board files, skipping files that
// fail to parse. Returns boards sorted by ID.
func (l *Loader) LoadAll() ([]Board, error) {
	var all []Board

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		b, err := l.LoadFile(path)
		if err != nil {
			return nil
		}
		all = append(all, b)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("boards: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].ID() < all[j].ID()
	})
	return all, nil
}

// LoadFile loads a single board file. Boards without an id take the file
// name.
func (l *Loader) LoadFile(path string) (Board, error) {
	return LoadFile(path, l.Bounds)
}

// LoadFile loads a single .ffmnswpr or YAML board file.
func LoadFile(path string, bounds core.Bounds) (Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Board{}, fmt.Errorf("boards: reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var b Board
	switch ext {
	case Extension:
		shape, err := Parse(bytes.NewReader(data), bounds)
		if err != nil {
			return Board{}, fmt.Errorf("boards: parsing file %s: %w", path, err)
		}
		b = New(base, base, shape, 0)
	case ".yaml", ".yml":
		b, err = ParseYAML(data, bounds)
		if err != nil {
			return Board{}, fmt.Errorf("boards: parsing file %s: %w", path, err)
		}
		if b.id == "" {
			b.id = base
			if b.name == "" {
				b.name = base
			}
		}
	default:
		return Board{}, fmt.Errorf("boards: unsupported extension %s", ext)
	}
	b.path = path
	return b, nil
}

// LoadByID loads the board with the given id.
func (l *Loader) LoadByID(id string) (Board, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Board{}, err
	}
	for _, b := range all {
		if b.ID() == id {
			return b, nil
		}
	}
	return Board{}, fmt.Errorf("boards: board not found: %s", id)
}

// ListIDs returns all board ids in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(all))
	for i, b := range all {
		ids[i] = b.ID()
	}
	return ids, nil
}

// SaveFile writes b as a .ffmnswpr file, or YAML if path ends in .yaml.
func SaveFile(path string, b Board) error {
	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := MarshalYAML(b)
		if err != nil {
			return err
		}
		buf.Write(data)
	case Extension:
		if err := Format(&buf, b.Shape()); err != nil {
			return err
		}
	default:
		return fmt.Errorf("boards: unsupported extension %s", filepath.Ext(path))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("boards: writing file %s: %w", path, err)
	}
	return nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
