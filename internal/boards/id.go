package boards

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/ffmines/internal/games/minesweeper/core"
)

// Letters of the textual board id: enabled, disabled and row break.
const (
	idEnabled  = 'E'
	idDisabled = 'D'
	idNewline  = 'N'
)

var idExpand = map[rune]string{idEnabled: "1", idDisabled: "0", idNewline: "\n"}

// EncodeID returns the run-length id of a shape: its trimmed rows joined by
// N, with 1 as E and 0 as D, each run written as count then letter. A full
// 3x3 board is "3E1N3E1N3E". Shapes equal up to translation share an id.
func EncodeID(shape *core.Shape) string {
	text := strings.Join(Rows(shape), string(idNewline))
	text = strings.NewReplacer("1", string(idEnabled), "0", string(idDisabled)).Replace(text)

	var sb strings.Builder
	for i := 0; i < len(text); {
		j := i
		for j < len(text) && text[j] == text[i] {
			j++
		}
		sb.WriteString(strconv.Itoa(j - i))
		sb.WriteByte(text[i])
		i = j
	}
	return sb.String()
}

// DecodeRows expands an id back into bit rows.
func DecodeRows(id string) ([]string, error) {
	var sb strings.Builder
	count := 0
	digits := false
	for _, ch := range id {
		switch {
		case ch >= '0' && ch <= '9':
			count = count*10 + int(ch-'0')
			digits = true
		case ch == idEnabled || ch == idDisabled || ch == idNewline:
			if !digits || count == 0 {
				return nil, fmt.Errorf("%w: id %q: run of %q without a count", ErrBadFormat, id, ch)
			}
			sb.WriteString(strings.Repeat(idExpand[ch], count))
			count, digits = 0, false
		default:
			return nil, fmt.Errorf("%w: id %q: unexpected %q", ErrBadFormat, id, ch)
		}
	}
	if digits || sb.Len() == 0 {
		return nil, fmt.Errorf("%w: id %q is incomplete", ErrBadFormat, id)
	}
	return strings.Split(sb.String(), "\n"), nil
}

// DecodeID rebuilds the shape of an id at the top-left of the field.
func DecodeID(id string, bounds core.Bounds) (*core.Shape, error) {
	rows, err := DecodeRows(id)
	if err != nil {
		return nil, err
	}
	return FromRows(rows, bounds)
}
