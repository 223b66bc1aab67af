package turnplayer

import (
	"context"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/move"
)

const GreedyPlayerName = "greedy"

// GreedyPlayer takes a corner whenever it can, and otherwise the move that
// flips the most discs. Ties go to the first move in row-major order.
type GreedyPlayer struct {
	rules game.Rules
}

func NewGreedyPlayer(rules game.Rules) *GreedyPlayer {
	return &GreedyPlayer{rules: rules}
}

func (p *GreedyPlayer) Name() string {
	return GreedyPlayerName
}

func (p *GreedyPlayer) Step(ctx context.Context, b *board.Board, player, opponent board.Cell) (*move.Move, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	moves := p.rules.LegalMoves(b, player)
	if len(moves) == 0 {
		return nil, nil
	}
	corners := b.Corners()
	for _, m := range moves {
		idx := b.Index(m.Row, m.Col)
		for _, c := range corners {
			if idx == c {
				best := m
				return &best, nil
			}
		}
	}

	scratch := b.Copy()
	var best move.Move
	mostFlips := -1
	for _, m := range moves {
		u := p.rules.PlayMove(scratch, m, player)
		if len(u.Flipped) > mostFlips {
			mostFlips = len(u.Flipped)
			best = m
		}
		p.rules.UnplayMove(scratch, u)
	}
	return &best, nil
}
