package main

import (
	"context"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/domino14/reversi/bot"
	"github.com/domino14/reversi/config"
)

func TestHandleRequest(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.TimeBudget = time.Hour
	cfg.MaxDepth = 1
	h := newHandler(&cfg, nil)
	ret, err := h.HandleRequest(context.Background(), bot.LambdaEvent{
		GameID:   "foo",
		Position: "8/8/8/3wb3/3bw3/8/8/8 b",
	})
	is.NoErr(err)
	is.Equal(ret, "d3")
}

func TestClampEvent(t *testing.T) {
	is := is.New(t)
	evt := clampEvent(bot.LambdaEvent{TimeBudgetMs: 10 * HardTimeLimitMs})
	is.Equal(evt.TimeBudgetMs, HardTimeLimitMs)
	evt = clampEvent(bot.LambdaEvent{TimeBudgetMs: 500})
	is.Equal(evt.TimeBudgetMs, 500)
}
