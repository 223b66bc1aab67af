package main

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/bot"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/service"
)

// HardTimeLimitMs caps the per-move budget no matter what the request asks.
const HardTimeLimitMs = int(service.MaxTimeBudget / time.Millisecond)

func newHandler(cfg *config.Config, nc bot.Requester) *bot.LambdaHandler {
	return &bot.LambdaHandler{Svc: service.New(*cfg), NC: nc}
}

func clampEvent(evt bot.LambdaEvent) bot.LambdaEvent {
	if evt.TimeBudgetMs > HardTimeLimitMs {
		log.Warn().Int("requested", evt.TimeBudgetMs).Msg("clamping-time-budget")
		evt.TimeBudgetMs = HardTimeLimitMs
	}
	return evt
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("bad-config")
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	nc, err := bot.Connect(context.Background(), cfg.NatsURL)
	if err != nil {
		log.Fatal().AnErr("natsConnectErr", err).Msg(":(")
	}
	h := newHandler(cfg, nc)
	lambda.Start(func(ctx context.Context, evt bot.LambdaEvent) (string, error) {
		return h.HandleRequest(ctx, clampEvent(evt))
	})
}
