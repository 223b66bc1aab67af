package bot

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/matryer/is"
	"github.com/nats-io/nats.go"

	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/service"
)

// loopback hands requests straight to a bot, failing the first few times.
type loopback struct {
	bot      *Bot
	failures int
	calls    int
	subjects []string
}

func (l *loopback) Request(subj string, data []byte, timeout time.Duration) (*nats.Msg, error) {
	l.calls++
	l.subjects = append(l.subjects, subj)
	if l.calls <= l.failures {
		return nil, nats.ErrNoResponders
	}
	if l.bot == nil {
		return &nats.Msg{Subject: subj, Data: []byte("ack")}, nil
	}
	return &nats.Msg{Subject: subj, Data: l.bot.handle(context.Background(), data)}, nil
}

func testBot() *Bot {
	cfg := config.DefaultConfig()
	cfg.TimeBudget = time.Hour
	cfg.MaxDepth = 2
	return NewBot(&cfg)
}

func TestHandle(t *testing.T) {
	is := is.New(t)
	b := testBot()
	out := b.handle(context.Background(), []byte(`{"position": "8/8/8/3wb3/3bw3/8/8/8 w"}`))
	resp := service.MoveResponse{}
	is.NoErr(json.Unmarshal(out, &resp))
	is.Equal(resp.Depth, 2)
	is.True(resp.Move != "")

	out = b.handle(context.Background(), []byte(`{"position": "bogus"}`))
	errResp := service.ErrorResponse{}
	is.NoErr(json.Unmarshal(out, &errResp))
	is.True(errResp.Error != "")
}

func TestClientRetriesUntilBotAnswers(t *testing.T) {
	is := is.New(t)
	lb := &loopback{bot: testBot(), failures: 2}
	c := NewClient(lb, "reversi.bot")
	resp, err := c.RequestMove(context.Background(), service.MoveRequest{
		Position: "6/6/2wb2/2bw2/6/6 b",
	})
	is.NoErr(err)
	is.Equal(lb.calls, 3)
	is.Equal(resp.Depth, 2)
	is.Equal(lb.subjects[0], "reversi.bot")
}

func TestClientGivesUp(t *testing.T) {
	is := is.New(t)
	lb := &loopback{bot: testBot(), failures: 10}
	c := NewClient(lb, "reversi.bot")
	_, err := c.RequestMove(context.Background(), service.MoveRequest{Position: "6/6/2wb2/2bw2/6/6 b"})
	is.True(errors.Is(err, nats.ErrNoResponders))
	is.Equal(lb.calls, 3)
}

func TestClientReportsBotError(t *testing.T) {
	is := is.New(t)
	c := NewClient(&loopback{bot: testBot()}, "reversi.bot")
	_, err := c.RequestMove(context.Background(), service.MoveRequest{Position: "6/6 b"})
	is.True(err != nil)
}

func TestLambdaReplies(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.TimeBudget = time.Hour
	cfg.MaxDepth = 1
	nc := &loopback{failures: 1}
	h := &LambdaHandler{
		Svc:       service.New(cfg),
		NC:        nc,
		ReplyOpts: []retry.Option{retry.Delay(time.Millisecond)},
	}
	mv, err := h.HandleRequest(context.Background(), LambdaEvent{
		GameID:       "g1",
		Position:     "8/8/8/3wb3/3bw3/8/8/8 b",
		ReplyChannel: "reply.g1",
	})
	is.NoErr(err)
	is.Equal(mv, "d3")
	is.Equal(nc.calls, 2)
	is.Equal(nc.subjects[1], "reply.g1")

	mv, err = h.HandleRequest(context.Background(), LambdaEvent{Position: "wb2/4/4/4 b"})
	is.NoErr(err)
	is.Equal(mv, "pass")
}
