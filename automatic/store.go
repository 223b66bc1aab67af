package automatic

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/domino14/reversi/stats"
)

// Store keeps finished games so results can be compared across runs.
type Store interface {
	SaveGame(ctx context.Context, rec *GameRecord) error
	Standings(ctx context.Context) (map[string]*stats.WinRate, error)
	Close() error
}

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Autoplay threads share one connection.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening results db %s: %w", path, err)
	}
	s := &SQLiteStore{db: db}
	if err := s.EnsureTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) EnsureTables(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS games (
	id TEXT PRIMARY KEY,
	black TEXT NOT NULL,
	white TEXT NOT NULL,
	board_size INTEGER NOT NULL,
	black_discs INTEGER NOT NULL,
	white_discs INTEGER NOT NULL,
	winner TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	opening TEXT NOT NULL DEFAULT '',
	turns INTEGER NOT NULL,
	nodes INTEGER NOT NULL,
	started_at TEXT,
	ended_at TEXT
);`)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS games_fingerprint ON games (fingerprint)`)
	return err
}

func (s *SQLiteStore) SaveGame(ctx context.Context, rec *GameRecord) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO games (id, black, white, board_size,
black_discs, white_discs, winner, fingerprint, opening, turns, nodes, started_at, ended_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?) ON CONFLICT (id) DO NOTHING`,
		rec.ID, rec.Black, rec.White, rec.BoardSize, rec.BlackDiscs, rec.WhiteDiscs,
		rec.Winner, rec.Fingerprint, rec.Opening, len(rec.Turns), int64(rec.Nodes),
		rec.StartedAt.UTC().Format(time.RFC3339Nano), rec.EndedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		log.Err(err).Str("gid", rec.ID).Msg("failed-to-save-game")
	}
	return err
}

// Standings returns every player's record over all stored games.
func (s *SQLiteStore) Standings(ctx context.Context) (map[string]*stats.WinRate, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT black, white, black_discs, white_discs FROM games`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := map[string]*stats.WinRate{}
	tally := func(name string, spread int) {
		if res[name] == nil {
			res[name] = &stats.WinRate{}
		}
		res[name].Add(spread)
	}
	for rows.Next() {
		var black, white string
		var bd, wd int
		if err := rows.Scan(&black, &white, &bd, &wd); err != nil {
			return nil, err
		}
		tally(black, bd-wd)
		tally(white, wd-bd)
	}
	return res, rows.Err()
}

// CountDuplicates returns how many stored games ended in the same position
// as some other stored game.
func (s *SQLiteStore) CountDuplicates(ctx context.Context) (int, error) {
	var n sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
SELECT SUM(c) FROM (SELECT COUNT(*) AS c FROM games GROUP BY fingerprint HAVING COUNT(*) > 1)`).Scan(&n)
	if err != nil {
		return 0, err
	}
	return int(n.Int64), nil
}
