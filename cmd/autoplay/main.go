package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/automatic"
	"github.com/domino14/reversi/config"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SeedsFile != "" {
		if _, err := os.Stat(cfg.SeedsFile); errors.Is(err, fs.ErrNotExist) {
			if err := automatic.SaveSeeds(automatic.GenerateSeeds(cfg.NumGames), cfg.SeedsFile); err != nil {
				log.Fatal().Err(err).Msg("save-seeds")
			}
			log.Info().Str("file", cfg.SeedsFile).Int("n", cfg.NumGames).Msg("generated-seeds")
		}
	}

	var store automatic.Store
	if cfg.ResultsDB != "" {
		s, err := automatic.NewSQLiteStore(ctx, cfg.ResultsDB)
		if err != nil {
			log.Fatal().Err(err).Msg("open-results-db")
		}
		defer s.Close()
		store = s
	}

	summary, err := automatic.StartCompVComp(ctx, cfg, store)
	if err != nil {
		log.Error().Err(err).Msg("autoplay-failed")
		return
	}
	fmt.Println(summary)
}
