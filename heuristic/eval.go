// Package heuristic scores Reversi positions that the search cannot see to
// the end of. Scores are from the point of view of the acting side.
package heuristic

import (
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/game"
)

const (
	CornerValue     = 10
	BlockingPenalty = 20
)

// Features is the breakdown of a single evaluation.
type Features struct {
	Phase     Phase
	Weights   Weights
	Corners   int
	Mobility  int
	Blocking  int
	DiskCount int
	Total     int
}

// Evaluator scores positions with a phase-weighted sum of corner control,
// mobility, corner blocking and disc differential.
type Evaluator struct {
	rules game.Rules
}

func NewEvaluator(rules game.Rules) *Evaluator {
	return &Evaluator{rules: rules}
}

// Evaluate returns the score of b for acting. Higher is better for acting.
// b is used for simulation and is restored before returning.
func (e *Evaluator) Evaluate(b *board.Board, acting, opposing board.Cell) int {
	return e.Breakdown(b, acting, opposing).Total
}

// Breakdown evaluates b and returns every feature along with the total.
func (e *Evaluator) Breakdown(b *board.Board, acting, opposing board.Cell) Features {
	phase := PhaseFor(b.EmptyCount(), b.Area())
	w := phase.Weights()
	f := Features{
		Phase:     phase,
		Weights:   w,
		Corners:   CornerScore(b, acting, opposing),
		Mobility:  e.Mobility(b, acting, opposing),
		Blocking:  e.Blocking(b, opposing),
		DiskCount: DiscDifferential(b, acting, opposing),
	}
	f.Total = w.Corners*f.Corners +
		w.Mobility*f.Mobility +
		w.Blocking*f.Blocking +
		w.DiskCount*f.DiskCount
	return f
}

// CornerScore is 10 per corner held by acting minus 10 per corner held by
// opposing.
func CornerScore(b *board.Board, acting, opposing board.Cell) int {
	return CornerValue*b.CornerCount(acting) - CornerValue*b.CornerCount(opposing)
}

// Mobility is the difference in the number of legal moves.
func (e *Evaluator) Mobility(b *board.Board, acting, opposing board.Cell) int {
	return len(e.rules.LegalMoves(b, acting)) - len(e.rules.LegalMoves(b, opposing))
}

// Blocking subtracts 20 for every legal move of opposing after which
// opposing holds a corner. It counts each such move, not just whether one
// exists.
func (e *Evaluator) Blocking(b *board.Board, opposing board.Cell) int {
	score := 0
	for _, m := range e.rules.LegalMoves(b, opposing) {
		u := e.rules.PlayMove(b, m, opposing)
		if b.CornerCount(opposing) > 0 {
			score -= BlockingPenalty
		}
		e.rules.UnplayMove(b, u)
	}
	return score
}

// DiscDifferential is acting's disc count minus opposing's.
func DiscDifferential(b *board.Board, acting, opposing board.Cell) int {
	return b.Count(acting) - b.Count(opposing)
}
