package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrBadCoords = errors.New("badly formatted coordinates")
)

var reCoords *regexp.Regexp

func init() {
	reCoords = regexp.MustCompile(`^(?P<col>[a-zA-Z])(?P<row>[0-9]+)$`)
}

// Move is the placement of a single disc. The side that plays it is not
// part of the move; the rules decide which discs it flips for a given side.
type Move struct {
	Row int
	Col int
}

func New(row, col int) Move {
	return Move{Row: row, Col: col}
}

// String provides a string just for debugging purposes.
func (m Move) String() string {
	return fmt.Sprintf("<move %s (%d,%d)>", m.ShortDescription(), m.Row, m.Col)
}

// ShortDescription gives a coordinate like d3: column letter then 1-based row.
func (m Move) ShortDescription() string {
	return ToBoardGameCoords(m.Row, m.Col)
}

func (m Move) Equals(o Move) bool {
	return m.Row == o.Row && m.Col == o.Col
}

// ToBoardGameCoords converts a row and column to a coordinate like f5.
func ToBoardGameCoords(row, col int) string {
	return string(rune('a'+col)) + strconv.Itoa(row+1)
}

// FromBoardGameCoords does the inverse operation of ToBoardGameCoords.
func FromBoardGameCoords(c string) (int, int, error) {
	matches := reCoords.FindStringSubmatch(strings.TrimSpace(c))
	if len(matches) != 3 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadCoords, c)
	}
	row, err := strconv.Atoi(matches[2])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadCoords, c)
	}
	col := int(strings.ToLower(matches[1])[0] - 'a')
	return row - 1, col, nil
}

// FromString parses a coordinate string into a Move.
func FromString(c string) (Move, error) {
	row, col, err := FromBoardGameCoords(c)
	if err != nil {
		return Move{}, err
	}
	return Move{Row: row, Col: col}, nil
}

// Describe joins the short descriptions of a list of moves.
func Describe(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.ShortDescription()
	}
	return strings.Join(parts, " ")
}
