package turnplayer

import (
	"context"

	"lukechampine.com/frand"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/move"
)

const RandomPlayerName = "random"

// RandomPlayer plays a uniformly random legal move.
type RandomPlayer struct {
	rules game.Rules
	rng   *frand.RNG
}

func NewRandomPlayer(rules game.Rules) *RandomPlayer {
	return &RandomPlayer{rules: rules, rng: frand.New()}
}

// NewSeededRandomPlayer is deterministic for a given 32-byte seed.
func NewSeededRandomPlayer(rules game.Rules, seed [32]byte) *RandomPlayer {
	return &RandomPlayer{rules: rules, rng: frand.NewCustom(seed[:], 1024, 12)}
}

func (p *RandomPlayer) Name() string {
	return RandomPlayerName
}

func (p *RandomPlayer) Step(ctx context.Context, b *board.Board, player, opponent board.Cell) (*move.Move, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	moves := p.rules.LegalMoves(b, player)
	if len(moves) == 0 {
		return nil, nil
	}
	m := moves[p.rng.Intn(len(moves))]
	return &m, nil
}
