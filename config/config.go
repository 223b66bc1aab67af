package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultTimeBudget = 1900 * time.Millisecond
	DefaultBoardSize  = 8
	DefaultBotSubject = "reversi.bot"
	DefaultNatsURL    = "nats://127.0.0.1:4222"
	DefaultHTTPAddr   = ":8088"

	EnvPrefix = "REVERSI"
)

const (
	ConfigTimeBudget  = "time-budget"
	ConfigMaxDepth    = "max-depth"
	ConfigBoardSize   = "board-size"
	ConfigDebug       = "debug"
	ConfigNatsURL     = "nats-url"
	ConfigBotSubject  = "bot-subject"
	ConfigHTTPAddr    = "http-addr"
	ConfigResultsDB   = "results-db"
	ConfigPlayer1     = "player1"
	ConfigPlayer2     = "player2"
	ConfigNumGames    = "num-games"
	ConfigThreads     = "threads"
	ConfigLogFile     = "log-file"
	ConfigRecordsDir  = "records-dir"
	ConfigRandomPlies = "random-plies"
	ConfigSeedsFile   = "seeds-file"
	ConfigFile        = "config"
)

var (
	ErrBadTimeBudget = errors.New("time budget must not be negative")
	ErrBadThreads    = errors.New("threads must be at least 1")
)

type Config struct {
	// TimeBudget is the wall-clock budget for choosing a single move.
	TimeBudget time.Duration
	// MaxDepth caps iterative deepening. 0 means no cap.
	MaxDepth  int
	BoardSize int
	Debug     bool

	NatsURL    string
	BotSubject string
	HTTPAddr   string

	// autoplay
	ResultsDB  string
	Player1    string
	Player2    string
	NumGames   int
	Threads    int
	LogFile    string
	RecordsDir string
	// RandomPlies is the number of random opening moves played before the
	// players take over, so that deterministic players do not repeat the
	// same game.
	RandomPlies int
	SeedsFile   string
}

// DefaultConfig returns a config with every default filled in. Useful for
// tests.
func DefaultConfig() Config {
	return Config{
		TimeBudget:  DefaultTimeBudget,
		BoardSize:   DefaultBoardSize,
		NatsURL:     DefaultNatsURL,
		BotSubject:  DefaultBotSubject,
		HTTPAddr:    DefaultHTTPAddr,
		Player1:     "minimax",
		Player2:     "greedy",
		NumGames:    10,
		Threads:     1,
		RandomPlies: 4,
	}
}

func flagSet(name string) *pflag.FlagSet {
	d := DefaultConfig()
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Duration(ConfigTimeBudget, d.TimeBudget, "wall-clock budget for choosing a move")
	fs.Int(ConfigMaxDepth, d.MaxDepth, "maximum search depth in plies (0 for no limit)")
	fs.Int(ConfigBoardSize, d.BoardSize, "board dimension (even, 4 to 26)")
	fs.Bool(ConfigDebug, d.Debug, "debug logging on")
	fs.String(ConfigNatsURL, d.NatsURL, "the NATS server URL")
	fs.String(ConfigBotSubject, d.BotSubject, "the NATS subject the bot listens on")
	fs.String(ConfigHTTPAddr, d.HTTPAddr, "listen address for the HTTP API")
	fs.String(ConfigResultsDB, d.ResultsDB, "sqlite file to store autoplay results in (optional)")
	fs.String(ConfigPlayer1, d.Player1, "first player for autoplay (minimax, greedy, random)")
	fs.String(ConfigPlayer2, d.Player2, "second player for autoplay (minimax, greedy, random)")
	fs.Int(ConfigNumGames, d.NumGames, "number of autoplay games")
	fs.Int(ConfigThreads, d.Threads, "number of autoplay games to run at once")
	fs.String(ConfigLogFile, d.LogFile, "CSV file to log autoplay turns to (optional)")
	fs.String(ConfigRecordsDir, d.RecordsDir, "directory to write YAML game records to (optional)")
	fs.Int(ConfigRandomPlies, d.RandomPlies, "random opening moves per autoplay game")
	fs.String(ConfigSeedsFile, d.SeedsFile, "file of per-game seeds for repeatable autoplay openings (optional)")
	fs.String(ConfigFile, "", "path to a YAML config file (optional)")
	return fs
}

// Load reads configuration from, in order of precedence: command-line
// flags, REVERSI_* environment variables, an optional config file, and
// the defaults.
func (c *Config) Load(args []string) error {
	fs := flagSet("reversi")
	if err := fs.Parse(args); err != nil {
		return err
	}
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile := v.GetString(ConfigFile); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	}

	c.TimeBudget = v.GetDuration(ConfigTimeBudget)
	c.MaxDepth = v.GetInt(ConfigMaxDepth)
	c.BoardSize = v.GetInt(ConfigBoardSize)
	c.Debug = v.GetBool(ConfigDebug)
	c.NatsURL = v.GetString(ConfigNatsURL)
	c.BotSubject = v.GetString(ConfigBotSubject)
	c.HTTPAddr = v.GetString(ConfigHTTPAddr)
	c.ResultsDB = v.GetString(ConfigResultsDB)
	c.Player1 = v.GetString(ConfigPlayer1)
	c.Player2 = v.GetString(ConfigPlayer2)
	c.NumGames = v.GetInt(ConfigNumGames)
	c.Threads = v.GetInt(ConfigThreads)
	c.LogFile = v.GetString(ConfigLogFile)
	c.RecordsDir = v.GetString(ConfigRecordsDir)
	c.RandomPlies = v.GetInt(ConfigRandomPlies)
	c.SeedsFile = v.GetString(ConfigSeedsFile)

	return c.Validate()
}

func (c *Config) Validate() error {
	if c.TimeBudget < 0 {
		return ErrBadTimeBudget
	}
	if c.Threads < 1 {
		return ErrBadThreads
	}
	if c.RandomPlies < 0 {
		c.RandomPlies = 0
	}
	if c.MaxDepth < 0 {
		c.MaxDepth = 0
	}
	return nil
}
