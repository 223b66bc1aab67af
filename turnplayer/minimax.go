package turnplayer

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/heuristic"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/search"
)

const MinimaxPlayerName = "minimax"

// MinimaxPlayer searches with iterative deepening under a time budget.
type MinimaxPlayer struct {
	name   string
	solver *search.Solver
	last   *search.Result
}

func NewMinimaxPlayer(rules game.Rules, budget time.Duration, maxDepth int) *MinimaxPlayer {
	s := search.NewSolver(rules, heuristic.NewEvaluator(rules), budget)
	s.SetMaxDepth(maxDepth)
	return &MinimaxPlayer{name: MinimaxPlayerName, solver: s}
}

func (p *MinimaxPlayer) Name() string {
	return p.name
}

func (p *MinimaxPlayer) Step(ctx context.Context, b *board.Board, player, opponent board.Cell) (*move.Move, error) {
	res, err := p.solver.Solve(ctx, b, player, opponent)
	if err != nil {
		return nil, err
	}
	p.last = res
	if res.Move == nil {
		log.Debug().Str("player", player.String()).Int("depth", res.Depth).Msg("minimax-no-move")
	}
	return res.Move, nil
}

// LastResult is the search result of the most recent Step.
func (p *MinimaxPlayer) LastResult() *search.Result {
	return p.last
}

// Solver exposes the underlying solver for tuning.
func (p *MinimaxPlayer) Solver() *search.Solver {
	return p.solver
}
