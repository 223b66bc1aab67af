package turnplayer

import (
	"context"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
)

// TurnPlayer picks a move for one side of a Reversi game.
type TurnPlayer interface {
	Name() string
	// Step returns the move to play for player, or nil to pass. The board
	// is not modified.
	Step(ctx context.Context, b *board.Board, player, opponent board.Cell) (*move.Move, error)
}
