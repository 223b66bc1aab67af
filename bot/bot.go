// Package bot serves move requests over NATS request/reply.
package bot

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/service"
)

type Bot struct {
	config *config.Config
	svc    *service.Service
}

func NewBot(cfg *config.Config) *Bot {
	return &Bot{config: cfg, svc: service.New(*cfg)}
}

// handle answers a JSON MoveRequest with a JSON MoveResponse, or with a
// JSON error object.
func (bot *Bot) handle(ctx context.Context, data []byte) []byte {
	resp, err := bot.svc.HandleJSON(ctx, data)
	if err != nil {
		log.Err(err).Msg("bot-request-failed")
		return service.ErrorJSON(err)
	}
	return resp
}

// Connect dials NATS, retrying with backoff until ctx is done.
func Connect(ctx context.Context, url string) (*nats.Conn, error) {
	return retry.DoWithData(
		func() (*nats.Conn, error) {
			return nats.Connect(url)
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(200*time.Millisecond),
		retry.OnRetry(func(n uint, err error) {
			log.Err(err).Uint("n", n).Str("url", url).Msg("nats-connect-retrying")
		}),
	)
}

// Main listens on channel until ctx is cancelled.
func Main(ctx context.Context, channel string, bot *Bot) error {
	nc, err := Connect(ctx, bot.config.NatsURL)
	if err != nil {
		return err
	}
	defer nc.Close()

	_, err = nc.Subscribe(channel, func(m *nats.Msg) {
		log.Info().Int("bytes", len(m.Data)).Msg("bot-recv")
		if err := m.Respond(bot.handle(ctx, m.Data)); err != nil {
			log.Err(err).Msg("bot-respond-failed")
		}
	})
	if err != nil {
		return err
	}
	if err := nc.Flush(); err != nil {
		return err
	}
	if err := nc.LastError(); err != nil {
		return err
	}
	log.Info().Str("channel", channel).Msg("bot-listening")

	<-ctx.Done()
	log.Info().Msg("bot-draining")
	return nc.Drain()
}
