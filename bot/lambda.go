package bot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/service"
)

// LambdaEvent is the payload of a Lambda move request. The answer goes out
// on ReplyChannel over NATS as well as being returned.
type LambdaEvent struct {
	GameID       string `json:"game_id"`
	Position     string `json:"position"`
	Player       string `json:"player,omitempty"`
	TimeBudgetMs int    `json:"time_budget_ms,omitempty"`
	ReplyChannel string `json:"reply_channel,omitempty"`
}

// LambdaHandler answers LambdaEvents.
type LambdaHandler struct {
	Svc *service.Service
	NC  Requester
	// ReplyOpts are extra options for the reply retries.
	ReplyOpts []retry.Option
}

// HandleRequest returns the chosen move in short form ("d3"), or "pass".
func (h *LambdaHandler) HandleRequest(ctx context.Context, evt LambdaEvent) (string, error) {
	logger := log.With().Str("gameID", evt.GameID).Logger()

	resp, err := h.Svc.Handle(ctx, service.MoveRequest{
		Position:     evt.Position,
		Player:       evt.Player,
		TimeBudgetMs: evt.TimeBudgetMs,
	})
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}
	if evt.ReplyChannel != "" && h.NC != nil {
		logger.Info().Msg("move-success-sending-via-nats")
		opts := append([]retry.Option{
			retry.Context(ctx),
			retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
				logger.Err(err).Uint("n", n).Msg("did-not-receive-ack-try-again")
				return retry.BackOffDelay(n, err, config)
			}),
		}, h.ReplyOpts...)
		err = retry.Do(
			func() error {
				// Only the acknowledgement matters, not its contents.
				_, err := h.NC.Request(evt.ReplyChannel, data, 3*time.Second)
				return err
			},
			opts...,
		)
		if err != nil {
			logger.Err(err).Msg("bot-move-failed")
		}
	}
	logger.Info().Str("move", resp.Move).Bool("pass", resp.Pass).Msg("exiting-fn")
	if resp.Pass {
		return "pass", nil
	}
	return resp.Move, nil
}
