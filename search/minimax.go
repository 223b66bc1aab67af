package search

import (
	"fmt"
	"strings"

	"github.com/domino14/reversi/move"
)

// Candidate is a root move and the value the last completed depth gave it.
// With pruning on, only the best candidate's value is guaranteed exact; the
// others may be upper bounds.
type Candidate struct {
	Move  move.Move
	Value int
}

func max(x, y int) int {
	if x < y {
		return y
	}
	return x
}

func min(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func (s *Solver) trace(depth int, format string, args ...any) {
	if s.logStream == nil {
		return
	}
	indent := 2 * (s.currentDepth - depth)
	fmt.Fprintf(s.logStream, "  %v"+format+"\n", append([]any{strings.Repeat(" ", indent)}, args...)...)
}

// searchRoot searches every legal move of the acting side to the given
// depth and returns the best one. The earliest move wins ties.
func (s *Solver) searchRoot(depth int) (*move.Move, int, []Candidate, error) {
	var best *move.Move
	bestValue := -Infinity
	α := -Infinity
	β := Infinity

	moves := s.rules.LegalMoves(s.board, s.acting)
	candidates := make([]Candidate, 0, len(moves))
	if s.logStream != nil {
		fmt.Fprint(s.logStream, "  plays:\n")
	}
	for _, m := range moves {
		if err := s.guard.Check(); err != nil {
			return nil, 0, nil, err
		}
		s.trace(depth, "- play: %v", m.ShortDescription())
		u := s.rules.PlayMove(s.board, m, s.acting)
		value, err := s.minimax(depth-1, false, α, β)
		s.rules.UnplayMove(s.board, u)
		if err != nil {
			return nil, 0, nil, err
		}
		s.trace(depth, "  value: %v", value)
		candidates = append(candidates, Candidate{Move: m, Value: value})
		if value > bestValue {
			bestValue = value
			mc := m
			best = &mc
		}
		if s.pruning {
			α = max(α, value)
		}
	}
	return best, bestValue, candidates, nil
}

// minimax returns the value of the solver's board with depth plies left to
// search. maximizing is true when the acting side is to move.
func (s *Solver) minimax(depth int, maximizing bool, α, β int) (int, error) {
	if err := s.guard.Check(); err != nil {
		return 0, err
	}
	s.nodes++

	over, _, _ := s.rules.IsGameOver(s.board, s.acting, s.opposing)
	if over || depth == 0 {
		if !over {
			s.horizonReached = true
		}
		return s.evaluator.Evaluate(s.board, s.acting, s.opposing), nil
	}

	side := s.opposing
	if maximizing {
		side = s.acting
	}
	moves := s.rules.LegalMoves(s.board, side)
	if len(moves) == 0 {
		// A forced pass uses up a ply.
		s.trace(depth, "- pass")
		return s.minimax(depth-1, !maximizing, α, β)
	}

	if maximizing {
		bestValue := -Infinity
		for _, m := range moves {
			if err := s.guard.Check(); err != nil {
				return 0, err
			}
			s.trace(depth, "- play: %v", m.ShortDescription())
			u := s.rules.PlayMove(s.board, m, side)
			value, err := s.minimax(depth-1, false, α, β)
			s.rules.UnplayMove(s.board, u)
			if err != nil {
				return 0, err
			}
			s.trace(depth, "  value: %v", value)
			bestValue = max(bestValue, value)
			if s.pruning {
				α = max(α, value)
				if α >= β {
					break
				}
			}
		}
		return bestValue, nil
	}

	bestValue := Infinity
	for _, m := range moves {
		if err := s.guard.Check(); err != nil {
			return 0, err
		}
		s.trace(depth, "- play: %v", m.ShortDescription())
		u := s.rules.PlayMove(s.board, m, side)
		value, err := s.minimax(depth-1, true, α, β)
		s.rules.UnplayMove(s.board, u)
		if err != nil {
			return 0, err
		}
		s.trace(depth, "  value: %v", value)
		bestValue = min(bestValue, value)
		if s.pruning {
			β = min(β, value)
			if α >= β {
				break
			}
		}
	}
	return bestValue, nil
}
