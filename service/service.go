// Package service answers "what should I play here?" requests. The NATS
// bot, the Lambda handler and the HTTP server all go through it.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/position"
	"github.com/domino14/reversi/turnplayer"
)

var ErrBadRequest = errors.New("bad request")

// MaxTimeBudget caps the budget a request or a tmr opcode may ask for.
const MaxTimeBudget = 180 * time.Second

type MoveRequest struct {
	// Position is in the notation of the position package, e.g.
	// "8/8/8/3wb3/3bw3/8/8/8 b".
	Position     string `json:"position"`
	TimeBudgetMs int    `json:"time_budget_ms,omitempty"`
	MaxDepth     int    `json:"max_depth,omitempty"`
	Player       string `json:"player,omitempty"`
}

type MoveResponse struct {
	Move string `json:"move,omitempty"`
	Pass bool   `json:"pass"`
	// Fallback is set when the search did not finish a single ply in time
	// and the first legal move was returned instead.
	Fallback  bool   `json:"fallback,omitempty"`
	Depth     int    `json:"depth"`
	Value     int    `json:"value"`
	Nodes     uint64 `json:"nodes"`
	ElapsedMs int64  `json:"elapsed_ms"`
	Player    string `json:"player"`
}

type Service struct {
	cfg config.Config
}

func New(cfg config.Config) *Service {
	return &Service{cfg: cfg}
}

// budget picks the time budget: the request's, then the position's tmr
// opcode, then the configured default. Caller-supplied budgets are capped at
// MaxTimeBudget.
func (s *Service) budget(req MoveRequest, p *position.Parsed) time.Duration {
	var d time.Duration
	if req.TimeBudgetMs > 0 {
		ms := min(int64(req.TimeBudgetMs), int64(MaxTimeBudget/time.Millisecond)+1)
		d = time.Duration(ms) * time.Millisecond
	} else if tmr, ok := p.TimeBudget(); ok {
		d = tmr
	} else {
		return s.cfg.TimeBudget
	}
	if d > MaxTimeBudget {
		log.Warn().Dur("asked", d).Dur("max", MaxTimeBudget).Msg("clamping-time-budget")
		d = MaxTimeBudget
	}
	return d
}

func (s *Service) Handle(ctx context.Context, req MoveRequest) (*MoveResponse, error) {
	p, err := position.Parse(req.Position)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if req.TimeBudgetMs < 0 || req.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: negative time budget or depth", ErrBadRequest)
	}
	cfg := s.cfg
	cfg.TimeBudget = s.budget(req, p)
	if req.MaxDepth > 0 {
		cfg.MaxDepth = req.MaxDepth
	}
	name := req.Player
	if name == "" {
		name = turnplayer.MinimaxPlayerName
	}
	player, err := turnplayer.New(name, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	start := time.Now()
	acting, opposing := p.OnTurn, p.OnTurn.Opponent()
	m, err := player.Step(ctx, p.Board, acting, opposing)
	if err != nil {
		return nil, err
	}
	resp := &MoveResponse{Player: player.Name()}
	if mp, ok := player.(*turnplayer.MinimaxPlayer); ok {
		res := mp.LastResult()
		resp.Depth = res.Depth
		resp.Value = res.Value
		resp.Nodes = res.Nodes
	}
	if m == nil {
		legal := game.StandardRules{}.LegalMoves(p.Board, acting)
		if len(legal) == 0 {
			resp.Pass = true
		} else {
			log.Warn().Str("position", req.Position).Dur("budget", cfg.TimeBudget).
				Msg("no-move-in-time-using-fallback")
			m = &legal[0]
			resp.Fallback = true
		}
	}
	if m != nil {
		resp.Move = m.ShortDescription()
	}
	resp.ElapsedMs = time.Since(start).Milliseconds()
	log.Debug().Str("player", resp.Player).Str("side", acting.String()).Str("move", resp.Move).
		Bool("pass", resp.Pass).Int("depth", resp.Depth).Msg("handled-move-request")
	return resp, nil
}

// HandleJSON decodes a MoveRequest, handles it and encodes the response.
func (s *Service) HandleJSON(ctx context.Context, data []byte) ([]byte, error) {
	req := MoveRequest{}
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	resp, err := s.Handle(ctx, req)
	if err != nil {
		return nil, err
	}
	return json.Marshal(resp)
}

// ErrorResponse is what transports send back when Handle fails.
type ErrorResponse struct {
	Error string `json:"error"`
}

func ErrorJSON(err error) []byte {
	bts, _ := json.Marshal(ErrorResponse{Error: err.Error()})
	return bts
}
