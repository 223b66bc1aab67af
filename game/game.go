// Package game contains the rules of Reversi and a Game type that tracks a
// full game: whose turn it is, passes, history, and the final result.
package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
)

type PlayState int

const (
	StatePlaying PlayState = iota
	StateGameOver
)

func (p PlayState) String() string {
	if p == StateGameOver {
		return "game-over"
	}
	return "playing"
}

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrGameOver      = errors.New("game is already over")
	ErrCannotPass    = errors.New("cannot pass while a legal move exists")
	ErrNothingToUndo = errors.New("no moves to undo")
)

// Turn is one entry of the game history.
type Turn struct {
	Side       string `yaml:"side"`
	Move       string `yaml:"move"`
	Flipped    int    `yaml:"flipped"`
	BlackDiscs int    `yaml:"black"`
	WhiteDiscs int    `yaml:"white"`
}

// Game is a Reversi game in progress.
type Game struct {
	uid     string
	rules   Rules
	board   *board.Board
	onturn  board.Cell
	playing PlayState
	turnnum int

	history []Turn
	undos   []Undo
}

// NewGame starts a game on a standard starting board. Black moves first.
func NewGame(rules Rules, dim int) (*Game, error) {
	b, err := board.StartingBoard(dim)
	if err != nil {
		return nil, err
	}
	return NewFromBoard(rules, b, board.Black), nil
}

// NewFromBoard starts a game from an arbitrary position. The board is
// owned by the game afterwards.
func NewFromBoard(rules Rules, b *board.Board, onturn board.Cell) *Game {
	g := &Game{
		uid:    uuid.New().String(),
		rules:  rules,
		board:  b,
		onturn: onturn,
	}
	g.updatePlayState()
	return g
}

func (g *Game) updatePlayState() {
	over, _, _ := g.rules.IsGameOver(g.board, board.Black, board.White)
	if over {
		g.playing = StateGameOver
	} else {
		g.playing = StatePlaying
	}
}

// PlayMove validates and plays m for the player on turn.
func (g *Game) PlayMove(m move.Move) error {
	if g.playing == StateGameOver {
		return ErrGameOver
	}
	legal := false
	for _, lm := range g.rules.LegalMoves(g.board, g.onturn) {
		if lm.Equals(m) {
			legal = true
			break
		}
	}
	if !legal {
		return fmt.Errorf("%w: %s for %s", ErrIllegalMove, m.ShortDescription(), g.onturn)
	}
	u := g.rules.PlayMove(g.board, m, g.onturn)
	g.undos = append(g.undos, u)
	g.history = append(g.history, Turn{
		Side:       g.onturn.String(),
		Move:       m.ShortDescription(),
		Flipped:    len(u.Flipped),
		BlackDiscs: g.board.Count(board.Black),
		WhiteDiscs: g.board.Count(board.White),
	})
	g.onturn = g.onturn.Opponent()
	g.turnnum++
	g.updatePlayState()
	return nil
}

// Pass passes the turn. It is only allowed when the player on turn has no
// legal moves.
func (g *Game) Pass() error {
	if g.playing == StateGameOver {
		return ErrGameOver
	}
	if len(g.rules.LegalMoves(g.board, g.onturn)) > 0 {
		return ErrCannotPass
	}
	g.undos = append(g.undos, Undo{Side: g.onturn, Pass: true})
	g.history = append(g.history, Turn{
		Side:       g.onturn.String(),
		Move:       "pass",
		BlackDiscs: g.board.Count(board.Black),
		WhiteDiscs: g.board.Count(board.White),
	})
	g.onturn = g.onturn.Opponent()
	g.turnnum++
	return nil
}

// PlayTurn plays m, or passes if m is nil.
func (g *Game) PlayTurn(m *move.Move) error {
	if m == nil {
		return g.Pass()
	}
	return g.PlayMove(*m)
}

// UnplayLastMove takes back the last move or pass.
func (g *Game) UnplayLastMove() error {
	if len(g.undos) == 0 {
		return ErrNothingToUndo
	}
	u := g.undos[len(g.undos)-1]
	g.undos = g.undos[:len(g.undos)-1]
	g.history = g.history[:len(g.history)-1]
	g.rules.UnplayMove(g.board, u)
	g.onturn = u.Side
	g.turnnum--
	g.updatePlayState()
	log.Debug().Int("turn", g.turnnum).Str("onturn", g.onturn.String()).Msg("unplayed-move")
	return nil
}

// Copy makes a deep copy of the game. The copy gets its own ID.
func (g *Game) Copy() *Game {
	cp := &Game{
		uid:     uuid.New().String(),
		rules:   g.rules,
		board:   g.board.Copy(),
		onturn:  g.onturn,
		playing: g.playing,
		turnnum: g.turnnum,
		history: make([]Turn, len(g.history)),
		undos:   make([]Undo, len(g.undos)),
	}
	copy(cp.history, g.history)
	copy(cp.undos, g.undos)
	return cp
}

func (g *Game) Uid() string                  { return g.uid }
func (g *Game) Rules() Rules                 { return g.rules }
func (g *Game) Board() *board.Board          { return g.board }
func (g *Game) PlayerOnTurn() board.Cell     { return g.onturn }
func (g *Game) Playing() PlayState           { return g.playing }
func (g *Game) Turn() int                    { return g.turnnum }
func (g *Game) History() []Turn              { return g.history }
func (g *Game) LegalMoves() []move.Move      { return g.rules.LegalMoves(g.board, g.onturn) }
func (g *Game) SetPlayerOnTurn(c board.Cell) { g.onturn = c }

// DiscsFor returns the number of discs side has on the board.
func (g *Game) DiscsFor(side board.Cell) int {
	return g.board.Count(side)
}

// SpreadFor is side's disc count minus its opponent's.
func (g *Game) SpreadFor(side board.Cell) int {
	return g.board.Count(side) - g.board.Count(side.Opponent())
}

// Winner returns the side with more discs, or Empty for a draw.
func (g *Game) Winner() board.Cell {
	switch spread := g.SpreadFor(board.Black); {
	case spread > 0:
		return board.Black
	case spread < 0:
		return board.White
	}
	return board.Empty
}
