// Package automatic plays computer-vs-computer Reversi games, for
// comparing players and tuning the search.
package automatic

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/turnplayer"
	"github.com/domino14/reversi/zobrist"
)

// GameRunner plays games between two players. It is not safe for
// concurrent use; run one per goroutine.
type GameRunner struct {
	game    *game.Game
	config  *config.Config
	logchan chan string

	players [2]turnplayer.TurnPlayer
	names   [2]string
	// blackIdx is the index of the player who has black this game.
	blackIdx int
	rng      *frand.RNG

	startedAt time.Time
	nodes     uint64
	zobrist   *zobrist.Zobrist
	// opening is the hash of the position once the random plies are done.
	opening uint64
}

// NewGameRunner makes a runner for cfg.Player1 against cfg.Player2.
func NewGameRunner(logchan chan string, cfg *config.Config) (*GameRunner, error) {
	r := &GameRunner{logchan: logchan, config: cfg}
	if err := r.Init(cfg.Player1, cfg.Player2); err != nil {
		return nil, err
	}
	return r, nil
}

// Init sets up the two players. Their names get a -1 or -2 suffix, so a
// player can play against itself.
func (r *GameRunner) Init(player1, player2 string) error {
	for idx, name := range []string{player1, player2} {
		p, err := turnplayer.New(name, r.config)
		if err != nil {
			return err
		}
		r.players[idx] = p
		r.names[idx] = fmt.Sprintf("%s-%d", p.Name(), idx+1)
	}
	return nil
}

// StartGame sets up a fresh board. blackIdx picks which player moves
// first. A nil seed makes the random opening plies unrepeatable.
func (r *GameRunner) StartGame(blackIdx int, seed *[32]byte) error {
	g, err := game.NewGame(game.StandardRules{}, r.config.BoardSize)
	if err != nil {
		return err
	}
	r.game = g
	r.blackIdx = blackIdx
	if seed != nil {
		r.rng = frand.NewCustom(seed[:], 1024, 12)
	} else {
		r.rng = frand.New()
	}
	r.startedAt = time.Now()
	r.nodes = 0
	if r.zobrist == nil || r.zobrist.Dim() != g.Board().Dim() {
		r.zobrist = zobrist.New(g.Board().Dim())
	}
	r.opening = r.zobrist.Hash(g.Board(), g.PlayerOnTurn())
	return nil
}

func (r *GameRunner) playerIdx(side board.Cell) int {
	if side == board.Black {
		return r.blackIdx
	}
	return 1 - r.blackIdx
}

// NameFor returns the name of the player who has side this game.
func (r *GameRunner) NameFor(side board.Cell) string {
	return r.names[r.playerIdx(side)]
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

func (r *GameRunner) chooseMove(ctx context.Context) (*move.Move, int, uint64, error) {
	side := r.game.PlayerOnTurn()
	legal := r.game.LegalMoves()
	if len(legal) == 0 {
		return nil, 0, 0, nil
	}
	if r.game.Turn() < r.config.RandomPlies {
		m := legal[r.rng.Intn(len(legal))]
		return &m, 0, 0, nil
	}
	p := r.players[r.playerIdx(side)]
	m, err := p.Step(ctx, r.game.Board(), side, side.Opponent())
	if err != nil {
		return nil, 0, 0, err
	}
	var depth int
	var nodes uint64
	if mp, ok := p.(*turnplayer.MinimaxPlayer); ok && mp.LastResult() != nil {
		depth = mp.LastResult().Depth
		nodes = mp.LastResult().Nodes
	}
	if m == nil {
		// The search ran out of time before finishing a single ply.
		log.Warn().Str("player", p.Name()).Str("gid", r.game.Uid()).Msg("no-move-in-time-playing-first-legal")
		m = &legal[0]
	}
	return m, depth, nodes, nil
}

// PlayBestTurn asks the player on turn for a move and plays it, or passes
// if it has none.
func (r *GameRunner) PlayBestTurn(ctx context.Context) error {
	side := r.game.PlayerOnTurn()
	m, depth, nodes, err := r.chooseMove(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.game.PlayTurn(m); err != nil {
		return err
	}
	r.nodes += nodes
	if r.game.Turn() <= r.config.RandomPlies {
		r.opening = r.zobrist.Hash(r.game.Board(), r.game.PlayerOnTurn())
	}

	if r.logchan != nil {
		turn := r.game.History()[len(r.game.History())-1]
		line := fmt.Sprintf("%v,%v,%v,%v,%v,%v,%v,%v,%v,%v\n",
			r.NameFor(side),
			r.game.Uid(),
			r.game.Turn(),
			side.DisplayString(),
			turn.Move,
			turn.Flipped,
			turn.BlackDiscs,
			turn.WhiteDiscs,
			depth,
			nodes)
		select {
		case r.logchan <- line:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// PlayFullGame plays the game started by StartGame to the end.
func (r *GameRunner) PlayFullGame(ctx context.Context) (*GameRecord, error) {
	for r.game.Playing() == game.StatePlaying {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.PlayBestTurn(ctx); err != nil {
			return nil, err
		}
	}
	rec := NewGameRecord(r.game, r.NameFor(board.Black), r.NameFor(board.White))
	rec.StartedAt = r.startedAt
	rec.EndedAt = time.Now()
	rec.Nodes = r.nodes
	rec.Opening = fmt.Sprintf("%016x", r.opening)
	log.Debug().Str("gid", rec.ID).Str("black", rec.Black).Str("white", rec.White).
		Int("black-discs", rec.BlackDiscs).Int("white-discs", rec.WhiteDiscs).Msg("game-over")
	return rec, nil
}
