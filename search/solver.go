// Package search picks a move under a wall-clock budget with iterative
// deepening over a minimax search with alpha-beta pruning.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/move"
)

const Infinity = math.MaxInt32

// Evaluator scores a position for the acting side.
type Evaluator interface {
	Evaluate(b *board.Board, acting, opposing board.Cell) int
}

// Result is what a single Solve call learned.
type Result struct {
	// Move is nil if there was no legal move or no depth finished in time.
	Move  *move.Move
	Value int
	// Depth is the last depth that was searched to completion.
	Depth      int
	Candidates []Candidate
	Nodes      uint64
	Elapsed    time.Duration
}

type Solver struct {
	rules     game.Rules
	evaluator Evaluator
	budget    time.Duration
	maxDepth  int
	clock     Clock
	pruning   bool

	logStream io.Writer

	// per-solve state
	board          *board.Board
	acting         board.Cell
	opposing       board.Cell
	guard          *TimeGuard
	nodes          uint64
	currentDepth   int
	horizonReached bool
}

// NewSolver makes a solver with the given rules, evaluator and time budget.
// Pruning is on.
func NewSolver(rules game.Rules, evaluator Evaluator, budget time.Duration) *Solver {
	return &Solver{
		rules:     rules,
		evaluator: evaluator,
		budget:    budget,
		clock:     time.Now,
		pruning:   true,
	}
}

// SelectMove returns the move to play for acting, or nil if there is none.
func (s *Solver) SelectMove(ctx context.Context, b *board.Board, acting, opposing board.Cell) *move.Move {
	res, err := s.Solve(ctx, b, acting, opposing)
	if err != nil {
		log.Err(err).Msg("solve-failed")
		return nil
	}
	return res.Move
}

// Solve deepens one ply at a time until the time budget runs out, and
// returns the result of the last depth that finished. b is not modified.
func (s *Solver) Solve(ctx context.Context, b *board.Board, acting, opposing board.Cell) (*Result, error) {
	tstart := s.clock()
	s.prepare(ctx, tstart, b, acting, opposing)
	res := &Result{}

	if len(s.rules.LegalMoves(s.board, s.acting)) == 0 {
		log.Debug().Str("acting", acting.String()).Msg("no-legal-moves")
		return res, nil
	}

	for depth := 1; s.maxDepth == 0 || depth <= s.maxDepth; depth++ {
		log.Debug().Int("plies", depth).Msg("deepening-iteratively")
		s.currentDepth = depth
		s.horizonReached = false
		if s.logStream != nil {
			fmt.Fprintf(s.logStream, "- ply: %d\n", depth)
		}
		m, val, candidates, err := s.searchRoot(depth)
		if errors.Is(err, ErrDeadlineExceeded) {
			log.Debug().Int("plies", depth).Dur("elapsed", s.guard.Elapsed()).
				Msg("deadline-stopped-deepening")
			break
		} else if err != nil {
			return nil, err
		}
		res.Move = m
		res.Value = val
		res.Depth = depth
		res.Candidates = candidates
		log.Debug().Int("ply", depth).Int("value", val).Str("move", m.ShortDescription()).
			Msg("best-val")
		if !s.horizonReached {
			// Every line ended in a finished game; searching deeper would
			// only repeat this result.
			log.Debug().Int("ply", depth).Msg("search-tree-exhausted")
			break
		}
	}
	res.Nodes = s.nodes
	res.Elapsed = s.clock().Sub(tstart)
	log.Debug().
		Uint64("nodes", res.Nodes).
		Int("depth", res.Depth).
		Float64("time-elapsed-sec", res.Elapsed.Seconds()).
		Msg("solve-returning")
	return res, nil
}

func (s *Solver) prepare(ctx context.Context, tstart time.Time, b *board.Board, acting, opposing board.Cell) {
	if s.board == nil || s.board.Dim() != b.Dim() {
		s.board = b.Copy()
	} else {
		s.board.CopyFrom(b)
	}
	s.acting = acting
	s.opposing = opposing
	s.nodes = 0
	s.currentDepth = 0
	s.guard = NewTimeGuard(ctx, tstart, s.budget, s.clock)
}

// Nodes is the number of positions visited by the last Solve.
func (s *Solver) Nodes() uint64 {
	return s.nodes
}

func (s *Solver) SetPruning(p bool) {
	s.pruning = p
}

func (s *Solver) SetMaxDepth(d int) {
	s.maxDepth = d
}

func (s *Solver) SetTimeBudget(d time.Duration) {
	s.budget = d
}

func (s *Solver) TimeBudget() time.Duration {
	return s.budget
}

func (s *Solver) SetClock(c Clock) {
	s.clock = c
}

// SetLogStream makes the solver write a trace of every searched line to w.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}
