package bot

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/service"
)

// Requester is the part of a NATS connection the client and the Lambda
// handler need.
type Requester interface {
	Request(subj string, data []byte, timeout time.Duration) (*nats.Msg, error)
}

type Client struct {
	nc      Requester
	channel string
	// Slack is added to the request's time budget to get the NATS timeout.
	Slack time.Duration
}

func NewClient(nc Requester, channel string) *Client {
	return &Client{nc: nc, channel: channel, Slack: 2 * time.Second}
}

// RequestMove sends req to the bot and waits for its answer. It retries
// when no bot is listening yet.
func (c *Client) RequestMove(ctx context.Context, req service.MoveRequest) (*service.MoveResponse, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	timeout := time.Duration(req.TimeBudgetMs)*time.Millisecond + c.Slack
	if req.TimeBudgetMs == 0 {
		timeout += 2 * time.Second
	}
	res, err := retry.DoWithData(
		func() (*nats.Msg, error) {
			return c.nc.Request(c.channel, data, timeout)
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(100*time.Millisecond),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, nats.ErrNoResponders)
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		log.Err(err).Str("channel", c.channel).Msg("bot-request-failed")
		return nil, err
	}
	log.Debug().Str("res", string(res.Data)).Msg("bot-response")
	return decodeResponse(res.Data)
}

func decodeResponse(data []byte) (*service.MoveResponse, error) {
	errResp := service.ErrorResponse{}
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error != "" {
		return nil, errors.New("bot returned: " + errResp.Error)
	}
	resp := &service.MoveResponse{}
	if err := json.Unmarshal(data, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
