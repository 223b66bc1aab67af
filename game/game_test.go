package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
)

func TestNewGame(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(StandardRules{}, 8)
	is.NoErr(err)
	is.Equal(g.PlayerOnTurn(), board.Black)
	is.Equal(g.Playing(), StatePlaying)
	is.Equal(len(g.LegalMoves()), 4)
	is.True(g.Uid() != "")
}

func TestPlayMoveAndBackup(t *testing.T) {
	is := is.New(t)
	g, _ := NewGame(StandardRules{}, 8)
	orig := g.Board().Copy()

	is.NoErr(g.PlayMove(move.New(2, 3)))
	is.Equal(g.PlayerOnTurn(), board.White)
	is.Equal(g.Turn(), 1)
	is.Equal(g.SpreadFor(board.Black), 3)
	is.Equal(len(g.History()), 1)
	is.Equal(g.History()[0].Move, "d3")
	is.Equal(g.History()[0].Flipped, 1)

	cp := g.Copy()
	is.True(cp.Board().Equals(g.Board()))
	is.True(cp.Uid() != g.Uid())

	is.NoErr(g.UnplayLastMove())
	is.True(g.Board().Equals(orig))
	is.Equal(g.PlayerOnTurn(), board.Black)
	is.Equal(g.Turn(), 0)
	is.True(errors.Is(g.UnplayLastMove(), ErrNothingToUndo))

	// The copy is unaffected.
	is.Equal(cp.Turn(), 1)
}

func TestIllegalMove(t *testing.T) {
	is := is.New(t)
	g, _ := NewGame(StandardRules{}, 8)
	err := g.PlayMove(move.New(0, 0))
	is.True(errors.Is(err, ErrIllegalMove))
	is.True(errors.Is(g.Pass(), ErrCannotPass))
}

func TestForcedPass(t *testing.T) {
	is := is.New(t)
	b, _ := board.NewBoard(4)
	b.Set(0, 0, board.White)
	b.Set(0, 1, board.Black)
	g := NewFromBoard(StandardRules{}, b, board.Black)
	is.Equal(g.Playing(), StatePlaying)
	is.Equal(len(g.LegalMoves()), 0)

	is.NoErr(g.PlayTurn(nil))
	is.Equal(g.PlayerOnTurn(), board.White)
	is.Equal(g.History()[0].Move, "pass")

	is.NoErr(g.PlayMove(move.New(0, 2)))
	is.Equal(g.Playing(), StateGameOver)
	is.Equal(g.Winner(), board.White)
	is.True(errors.Is(g.PlayMove(move.New(0, 3)), ErrGameOver))

	is.NoErr(g.UnplayLastMove())
	is.Equal(g.Playing(), StatePlaying)
	is.NoErr(g.UnplayLastMove())
	is.Equal(g.PlayerOnTurn(), board.Black)
}
