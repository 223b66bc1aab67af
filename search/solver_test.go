package search

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/heuristic"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/position"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

// countingRules records how often the search leans on the rules.
type countingRules struct {
	game.StandardRules
	legal, played, over int
}

func (c *countingRules) LegalMoves(b *board.Board, side board.Cell) []move.Move {
	c.legal++
	return c.StandardRules.LegalMoves(b, side)
}

func (c *countingRules) PlayMove(b *board.Board, m move.Move, side board.Cell) game.Undo {
	c.played++
	return c.StandardRules.PlayMove(b, m, side)
}

func (c *countingRules) IsGameOver(b *board.Board, a, o board.Cell) (bool, int, int) {
	c.over++
	return c.StandardRules.IsGameOver(b, a, o)
}

func newTestSolver(rules game.Rules, maxDepth int) *Solver {
	s := NewSolver(rules, heuristic.NewEvaluator(rules), time.Hour)
	s.SetMaxDepth(maxDepth)
	return s
}

func mustParse(t *testing.T, pos string) *position.Parsed {
	p, err := position.Parse(pos)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// Positions reached by a few plies of ordinary play.
var testPositions = []string{
	"8/8/8/3wb3/3bw3/8/8/8 b",
	"8/8/3b4/3bb3/3bw3/8/8/8 w",
	"8/8/2bbb3/2wwwb2/3wbw2/4b3/8/8 w",
	"8/8/2w5/2wwbb2/2bwwb2/2b1w3/8/8 b",
	"6/6/2wb2/2bw2/6/6 b",
}

func TestNoLegalMovesSkipsSearch(t *testing.T) {
	is := is.New(t)
	// Black cannot bracket the white corner disc.
	p := mustParse(t, "wb2/4/4/4 b")
	rules := &countingRules{}
	s := newTestSolver(rules, 0)

	res, err := s.Solve(context.Background(), p.Board, board.Black, board.White)
	is.NoErr(err)
	is.Equal(res.Move, nil)
	is.Equal(res.Depth, 0)
	is.Equal(s.Nodes(), uint64(0))
	is.Equal(rules.played, 0)
	is.Equal(rules.over, 0)
	is.Equal(s.SelectMove(context.Background(), p.Board, board.Black, board.White), nil)
}

func TestPruningDoesNotChangeResult(t *testing.T) {
	for _, pos := range testPositions {
		p := mustParse(t, pos)
		for depth := 1; depth <= 4; depth++ {
			is := is.New(t)
			pruned := newTestSolver(game.StandardRules{}, depth)
			full := newTestSolver(game.StandardRules{}, depth)
			full.SetPruning(false)

			r1, err := pruned.Solve(context.Background(), p.Board, p.OnTurn, p.OnTurn.Opponent())
			is.NoErr(err)
			r2, err := full.Solve(context.Background(), p.Board, p.OnTurn, p.OnTurn.Opponent())
			is.NoErr(err)

			is.Equal(*r1.Move, *r2.Move)
			is.Equal(r1.Value, r2.Value)
			is.Equal(r1.Depth, r2.Depth)
			is.True(r1.Nodes <= r2.Nodes)
		}
	}
}

func TestSolveLeavesBoardAlone(t *testing.T) {
	is := is.New(t)
	p := mustParse(t, testPositions[2])
	orig := p.Board.Copy()
	s := newTestSolver(game.StandardRules{}, 3)
	m := s.SelectMove(context.Background(), p.Board, board.White, board.Black)
	is.True(m != nil)
	is.True(p.Board.Equals(orig))
}

func TestOpeningDepthOne(t *testing.T) {
	is := is.New(t)
	b, _ := board.StartingBoard(8)
	rules := game.StandardRules{}
	s := newTestSolver(rules, 1)

	res, err := s.Solve(context.Background(), b, board.Black, board.White)
	is.NoErr(err)
	is.Equal(res.Depth, 1)
	is.True(res.Move != nil)

	legal := rules.LegalMoves(b, board.Black)
	is.Equal(len(legal), 4)
	found := false
	for _, m := range legal {
		if m.Equals(*res.Move) {
			found = true
		}
	}
	is.True(found)

	// The opening is symmetric, so every candidate scores the same and the
	// first one is kept.
	is.Equal(len(res.Candidates), 4)
	for _, c := range res.Candidates {
		is.Equal(c.Value, res.Value)
	}
	is.Equal(*res.Move, legal[0])
}

func TestZeroBudgetCancelsDepthOne(t *testing.T) {
	is := is.New(t)
	b, _ := board.StartingBoard(8)
	rules := &countingRules{}
	s := NewSolver(rules, heuristic.NewEvaluator(rules), 0)
	fc := newFakeClock(time.Millisecond)
	s.SetClock(fc.Now)

	res, err := s.Solve(context.Background(), b, board.Black, board.White)
	is.NoErr(err)
	is.Equal(res.Move, nil)
	is.Equal(res.Depth, 0)
	is.Equal(res.Nodes, uint64(0))
	is.Equal(rules.played, 0)
}

func TestCancelledContextStopsSearch(t *testing.T) {
	is := is.New(t)
	b, _ := board.StartingBoard(8)
	s := newTestSolver(game.StandardRules{}, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := s.Solve(ctx, b, board.Black, board.White)
	is.NoErr(err)
	is.Equal(res.Move, nil)
}

func TestDeepeningKeepsLastCompletedDepth(t *testing.T) {
	is := is.New(t)
	p := mustParse(t, testPositions[3])
	rules := game.StandardRules{}

	// Find out how many clock reads a depth-2 search takes.
	ref := newTestSolver(rules, 2)
	refClock := newFakeClock(time.Millisecond)
	ref.SetClock(refClock.Now)
	want, err := ref.Solve(context.Background(), p.Board, board.Black, board.White)
	is.NoErr(err)
	is.Equal(want.Depth, 2)

	// Give an unlimited search just enough time to finish depth 2 but
	// nowhere near enough for depth 3.
	budget := time.Duration(refClock.reads+1) * time.Millisecond
	s := NewSolver(rules, heuristic.NewEvaluator(rules), budget)
	fc := newFakeClock(time.Millisecond)
	s.SetClock(fc.Now)
	got, err := s.Solve(context.Background(), p.Board, board.Black, board.White)
	is.NoErr(err)
	is.Equal(got.Depth, 2)
	is.Equal(*got.Move, *want.Move)
	is.Equal(got.Value, want.Value)
	is.True(got.Nodes > want.Nodes) // depth 3 was started and thrown away
}

func TestDeeperSearchIsArgmaxOfItsDepth(t *testing.T) {
	is := is.New(t)
	p := mustParse(t, testPositions[1])
	s := newTestSolver(game.StandardRules{}, 3)
	s.SetPruning(false)
	res, err := s.Solve(context.Background(), p.Board, board.White, board.Black)
	is.NoErr(err)
	is.Equal(res.Depth, 3)
	best := res.Candidates[0]
	for _, c := range res.Candidates[1:] {
		if c.Value > best.Value {
			best = c
		}
	}
	is.Equal(best.Move, *res.Move)
	is.Equal(best.Value, res.Value)
}

func TestFullBoardIsEvaluatedWithoutExpanding(t *testing.T) {
	is := is.New(t)
	p := mustParse(t, "wbwb/bwbw/wbwb/bwbw b")
	rules := &countingRules{}
	ev := heuristic.NewEvaluator(game.StandardRules{})
	s := NewSolver(rules, ev, time.Hour)
	s.prepare(context.Background(), time.Now(), p.Board, board.Black, board.White)

	val, err := s.minimax(5, true, -Infinity, Infinity)
	is.NoErr(err)
	is.Equal(val, ev.Evaluate(p.Board, board.Black, board.White))
	is.Equal(s.Nodes(), uint64(1))
	is.Equal(rules.played, 0)
	is.Equal(rules.legal, 0)
	is.True(!s.horizonReached)
}

func TestForcedPassUsesAPly(t *testing.T) {
	is := is.New(t)
	// After black a1, white has no reply but black can still play a4.
	p := mustParse(t, "1wb1/4/4/1wwb b")
	rules := game.StandardRules{}
	ev := heuristic.NewEvaluator(rules)
	s := NewSolver(rules, ev, time.Hour)
	s.SetMaxDepth(2)
	s.SetPruning(false)

	res, err := s.Solve(context.Background(), p.Board, board.Black, board.White)
	is.NoErr(err)
	is.Equal(move.Describe([]move.Move{res.Candidates[0].Move, res.Candidates[1].Move}), "a1 a4")

	after := p.Board.Copy()
	rules.PlayMove(after, move.New(0, 0), board.Black)
	is.Equal(len(rules.LegalMoves(after, board.White)), 0)
	is.True(len(rules.LegalMoves(after, board.Black)) > 0)
	// The pass takes the last ply, so the position right after a1 is what
	// gets evaluated.
	is.Equal(res.Candidates[0].Value, ev.Evaluate(after, board.Black, board.White))
}

func TestExhaustedTreeStopsDeepening(t *testing.T) {
	is := is.New(t)
	// One empty square left; the game ends after black fills it.
	p := mustParse(t, "bbbb/bwww/bwww/bww1 b")
	s := newTestSolver(game.StandardRules{}, 0)
	res, err := s.Solve(context.Background(), p.Board, board.Black, board.White)
	is.NoErr(err)
	is.Equal(res.Depth, 1)
	is.Equal(res.Move.ShortDescription(), "d4")
}

func TestTrace(t *testing.T) {
	is := is.New(t)
	b, _ := board.StartingBoard(4)
	s := newTestSolver(game.StandardRules{}, 2)
	var buf bytes.Buffer
	s.SetLogStream(&buf)
	_, err := s.Solve(context.Background(), b, board.Black, board.White)
	is.NoErr(err)
	out := buf.String()
	is.True(strings.Contains(out, "- ply: 1\n"))
	is.True(strings.Contains(out, "- ply: 2\n"))
	is.True(strings.Contains(out, "- play: b1\n"))
}
