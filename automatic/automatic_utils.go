package automatic

import (
	"context"
	"errors"
	"expvar"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/reversi/config"
)

const TurnLogHeader = "playerID,gameID,turn,side,move,flipped,black,white,depth,nodes\n"

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int

	ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

	playing atomic.Bool
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// StartCompVComp plays cfg.NumGames games between cfg.Player1 and
// cfg.Player2 on cfg.Threads goroutines, alternating who moves first. Each
// finished game goes to store (if not nil) and to a YAML record in
// cfg.RecordsDir (if set); every turn goes to the CSV file cfg.LogFile (if
// set). It blocks until all games are done or ctx is cancelled.
func StartCompVComp(ctx context.Context, cfg *config.Config, store Store) (*Summary, error) {
	if !playing.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	defer playing.Store(false)

	var seeds [][32]byte
	if cfg.SeedsFile != "" {
		var err error
		if seeds, err = LoadSeeds(cfg.SeedsFile); err != nil {
			return nil, err
		}
	}

	// Build the runners up front so a bad player name fails fast.
	logChan := make(chan string, 100)
	runners := make([]*GameRunner, cfg.Threads)
	for i := range runners {
		r, err := NewGameRunner(logChan, cfg)
		if err != nil {
			return nil, err
		}
		runners[i] = r
	}
	summary := NewSummary(runners[0].names[0], runners[0].names[1])

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	writer := errgroup.Group{}
	if cfg.LogFile != "" {
		logfile, err := os.Create(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		writer.Go(func() error {
			defer logfile.Close()
			_, err := logfile.WriteString(TurnLogHeader)
			if err != nil {
				cancel()
			}
			for msg := range logChan {
				if err != nil {
					// Keep draining so no worker blocks on a full channel.
					continue
				}
				if _, err = logfile.WriteString(msg); err != nil {
					cancel()
				}
			}
			if err != nil {
				log.Err(err).Str("logfile", cfg.LogFile).Msg("turn-log-write-failed")
			}
			return err
		})
	} else {
		writer.Go(func() error {
			for range logChan {
			}
			return nil
		})
	}

	if cfg.RecordsDir != "" {
		if err := os.MkdirAll(cfg.RecordsDir, 0755); err != nil {
			close(logChan)
			writer.Wait()
			return nil, err
		}
	}

	log.Debug().Int("games", cfg.NumGames).Int("threads", cfg.Threads).Msg("starting-autoplay")
	CVCCounter.Set(0)
	jobs := make(chan int, 100)
	results := make(chan *GameRecord, 100)

	collector := errgroup.Group{}
	collector.Go(func() error {
		var firstErr error
		for rec := range results {
			summary.Add(rec)
			CVCCounter.Add(1)
			if store != nil {
				if err := store.SaveGame(ctx, rec); err != nil && firstErr == nil {
					firstErr = err
				}
			}
			if cfg.RecordsDir != "" {
				if _, err := WriteRecord(cfg.RecordsDir, rec); err != nil && firstErr == nil {
					firstErr = err
				}
			}
		}
		return firstErr
	})

	workers := errgroup.Group{}
	for _, r := range runners {
		r := r
		workers.Go(func() error {
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for idx := range jobs {
				var seed *[32]byte
				if idx < len(seeds) {
					seed = &seeds[idx]
				}
				if err := r.StartGame(idx%2, seed); err != nil {
					cancel()
					return err
				}
				rec, err := r.PlayFullGame(ctx)
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil
				} else if err != nil {
					cancel()
					return err
				}
				results <- rec
			}
			return nil
		})
	}

gameLoop:
	for i := 0; i < cfg.NumGames; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			log.Info().Msg("got stop signal, exiting soon...")
			break gameLoop
		}
		if (i+1)%1000 == 0 {
			log.Info().Int("queued", i+1).Msg("queued-jobs")
		}
	}
	close(jobs)
	log.Debug().Msg("finished-queueing-jobs")

	workerErr := workers.Wait()
	close(results)
	close(logChan)
	collectorErr := collector.Wait()
	writerErr := writer.Wait()
	log.Info().Int("games", summary.Games).Msg("all-games-finished")

	if workerErr != nil {
		return summary, workerErr
	}
	if collectorErr != nil {
		return summary, collectorErr
	}
	return summary, writerErr
}
