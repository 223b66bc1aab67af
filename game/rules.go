package game

import (
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
)

// Rules is everything a player needs to know about Reversi: which moves are
// legal, how a move changes the board, and when the game ends.
type Rules interface {
	// LegalMoves returns the legal moves for side in row-major order.
	LegalMoves(b *board.Board, side board.Cell) []move.Move
	// PlayMove places a disc for side and flips every captured line. The
	// returned Undo restores the board exactly.
	PlayMove(b *board.Board, m move.Move, side board.Cell) Undo
	UnplayMove(b *board.Board, u Undo)
	// IsGameOver reports whether neither side can move, along with the disc
	// counts of sideA and sideB.
	IsGameOver(b *board.Board, sideA, sideB board.Cell) (bool, int, int)
}

// Undo is the record needed to take back a played move.
type Undo struct {
	Move    move.Move
	Side    board.Cell
	Pass    bool
	Flipped []int
}

var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// StandardRules are the usual Othello rules on an N×N board.
type StandardRules struct{}

func (StandardRules) LegalMoves(b *board.Board, side board.Cell) []move.Move {
	var moves []move.Move
	n := b.Dim()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if b.At(r, c) != board.Empty {
				continue
			}
			if captures(b, r, c, side) {
				moves = append(moves, move.New(r, c))
			}
		}
	}
	return moves
}

// HasLegalMove is a cheaper check than len(LegalMoves(...)) > 0.
func (StandardRules) HasLegalMove(b *board.Board, side board.Cell) bool {
	n := b.Dim()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if b.At(r, c) == board.Empty && captures(b, r, c, side) {
				return true
			}
		}
	}
	return false
}

// IsLegal reports whether side may place a disc at m.
func (StandardRules) IsLegal(b *board.Board, m move.Move, side board.Cell) bool {
	if !b.InBounds(m.Row, m.Col) || b.At(m.Row, m.Col) != board.Empty {
		return false
	}
	return captures(b, m.Row, m.Col, side)
}

func (StandardRules) PlayMove(b *board.Board, m move.Move, side board.Cell) Undo {
	u := Undo{Move: m, Side: side}
	opp := side.Opponent()
	for _, d := range directions {
		r, c := m.Row+d[0], m.Col+d[1]
		run := 0
		for b.InBounds(r, c) && b.At(r, c) == opp {
			r += d[0]
			c += d[1]
			run++
		}
		if run == 0 || !b.InBounds(r, c) || b.At(r, c) != side {
			continue
		}
		r, c = m.Row+d[0], m.Col+d[1]
		for i := 0; i < run; i++ {
			b.Set(r, c, side)
			u.Flipped = append(u.Flipped, b.Index(r, c))
			r += d[0]
			c += d[1]
		}
	}
	b.Set(m.Row, m.Col, side)
	return u
}

func (StandardRules) UnplayMove(b *board.Board, u Undo) {
	if u.Pass {
		return
	}
	opp := u.Side.Opponent()
	for _, idx := range u.Flipped {
		b.SetIndex(idx, opp)
	}
	b.Set(u.Move.Row, u.Move.Col, board.Empty)
}

func (r StandardRules) IsGameOver(b *board.Board, sideA, sideB board.Cell) (bool, int, int) {
	over := !r.HasLegalMove(b, sideA) && !r.HasLegalMove(b, sideB)
	return over, b.Count(sideA), b.Count(sideB)
}

// captures is true if a disc of side at (row, col) would bracket at least
// one line of opposing discs.
func captures(b *board.Board, row, col int, side board.Cell) bool {
	opp := side.Opponent()
	for _, d := range directions {
		r, c := row+d[0], col+d[1]
		run := 0
		for b.InBounds(r, c) && b.At(r, c) == opp {
			r += d[0]
			c += d[1]
			run++
		}
		if run > 0 && b.InBounds(r, c) && b.At(r, c) == side {
			return true
		}
	}
	return false
}
