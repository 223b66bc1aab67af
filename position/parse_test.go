package position

import (
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/domino14/reversi/board"
)

const startingPos = "8/8/8/3wb3/3bw3/8/8/8 b"

func TestRowToCells(t *testing.T) {
	is := is.New(t)
	testcases := []struct {
		row    string
		parsed []board.Cell
	}{
		{"8", []board.Cell{0, 0, 0, 0, 0, 0, 0, 0}},
		{"3wb3", []board.Cell{0, 0, 0, 2, 1, 0, 0, 0}},
		{"b6w", []board.Cell{1, 0, 0, 0, 0, 0, 0, 2}},
		{"..xo", []board.Cell{0, 0, 1, 2}},
		{"10bw", []board.Cell{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2}},
	}
	for _, tc := range testcases {
		parsed, err := rowToCells(tc.row)
		is.NoErr(err)
		is.Equal(parsed, tc.parsed)
	}
}

func TestParseStartingPosition(t *testing.T) {
	is := is.New(t)
	p, err := Parse(startingPos)
	is.NoErr(err)
	start, _ := board.StartingBoard(8)
	is.True(p.Board.Equals(start))
	is.Equal(p.OnTurn, board.Black)
	is.Equal(len(p.Opcodes), 0)
	is.Equal(String(p.Board, p.OnTurn), startingPos)
}

func TestParseOpcodes(t *testing.T) {
	is := is.New(t)
	p, err := Parse("4/1wb1/1bw1/4 w tmr 250; gid xyz")
	is.NoErr(err)
	is.Equal(p.Board.Dim(), 4)
	is.Equal(p.OnTurn, board.White)
	is.Equal(p.Opcodes["gid"], "xyz")
	d, ok := p.TimeBudget()
	is.True(ok)
	is.Equal(d, 250*time.Millisecond)
}

func TestParseErrors(t *testing.T) {
	is := is.New(t)
	for _, pos := range []string{
		"",
		"8/8/8/3wb3/3bw3/8/8/8",
		"8/8/8/3wb3/3bw3/8/8 b",
		"8/8/8/3wb2/3bw3/8/8/8 b",
		"8/8/8/3wz3/3bw3/8/8/8 b",
		"8/8/8/3wb3/3bw3/8/8/8 q",
		"8/8/8/3wb3/3bw3/8/8/8 b tmr",
	} {
		_, err := Parse(pos)
		is.True(errors.Is(err, ErrBadPosition))
	}
}

func TestOversizedRowsRejectedEarly(t *testing.T) {
	is := is.New(t)
	for _, row := range []string{
		"50000000",
		"27",
		"20b10",
		"26b",
		"bbbbbbbbbbbbbbbbbbbbbbbbbbb",
	} {
		_, err := rowToCells(row)
		is.True(err != nil)
	}
	cells, err := rowToCells("25b")
	is.NoErr(err)
	is.Equal(len(cells), 26)

	_, err = Parse("50000000/4/4/4 b")
	is.True(errors.Is(err, ErrBadPosition))
}
