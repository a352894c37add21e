package storage

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrInvalidName is returned for an empty name or one with non-letters.
	ErrInvalidName = errors.New("storage: names must be letters only")

	// ErrDuplicateBoardName is returned when a player already uses the name
	// for a different board or mode.
	ErrDuplicateBoardName = errors.New("storage: board name already used")

	// ErrPlayerExists is returned when renaming onto an existing player.
	ErrPlayerExists = errors.New("storage: player already exists")

	// ErrNotFound is returned when a rename or delete matches nothing.
	ErrNotFound = errors.New("storage: not found")
)

// MaxNameLen caps player and board names.
const MaxNameLen = 16

// NormalizeName validates a player or board name and upper-cases it.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if len(name) > MaxNameLen {
		return "", fmt.Errorf("%w: %q longer than %d", ErrInvalidName, name, MaxNameLen)
	}
	for _, r := range name {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	return strings.ToUpper(name), nil
}

// SanitizeName turns free text such as a board title into a valid name by
// dropping everything but ASCII letters. It returns fallback when nothing
// is left.
func SanitizeName(s, fallback string) string {
	var b strings.Builder
	for _, r := range s {
		if r <= unicode.MaxASCII && unicode.IsLetter(r) && b.Len() < MaxNameLen {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	if b.Len() == 0 {
		return fallback
	}
	return b.String()
}

func upper(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }
