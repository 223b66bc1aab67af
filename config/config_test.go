package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(*cfg, DefaultConfig())
	is.Equal(cfg.TimeBudget, 1900*time.Millisecond)
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--time-budget", "250ms", "--max-depth", "4", "--debug",
		"--player2", "random"}))
	is.Equal(cfg.TimeBudget, 250*time.Millisecond)
	is.Equal(cfg.MaxDepth, 4)
	is.True(cfg.Debug)
	is.Equal(cfg.Player2, "random")
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("REVERSI_BOARD_SIZE", "6")
	t.Setenv("REVERSI_NATS_URL", "nats://example:4222")
	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.BoardSize, 6)
	is.Equal(cfg.NatsURL, "nats://example:4222")
}

func TestLoadFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "reversi.yaml")
	is.NoErr(os.WriteFile(path, []byte("time-budget: 500ms\nnum-games: 3\n"), 0644))
	cfg := &Config{}
	// Flags still win over the file.
	is.NoErr(cfg.Load([]string{"--config", path, "--num-games", "7"}))
	is.Equal(cfg.TimeBudget, 500*time.Millisecond)
	is.Equal(cfg.NumGames, 7)
}

func TestValidate(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.Equal(cfg.Load([]string{"--threads", "0"}), ErrBadThreads)
	cfg = &Config{}
	is.Equal(cfg.Load([]string{"--time-budget", "-1s"}), ErrBadTimeBudget)
}
