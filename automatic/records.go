package automatic

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash"
	"gopkg.in/yaml.v3"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/position"
)

const DrawName = "draw"

// GameRecord is a finished game.
type GameRecord struct {
	ID         string `yaml:"id"`
	Black      string `yaml:"black"`
	White      string `yaml:"white"`
	BoardSize  int    `yaml:"board_size"`
	BlackDiscs int    `yaml:"black_discs"`
	WhiteDiscs int    `yaml:"white_discs"`
	// Winner is the winning player's name, or "draw".
	Winner        string `yaml:"winner"`
	FinalPosition string `yaml:"final_position"`
	Fingerprint   string `yaml:"fingerprint"`
	// Opening hashes the position after the random opening plies.
	Opening   string      `yaml:"opening"`
	Nodes     uint64      `yaml:"nodes"`
	StartedAt time.Time   `yaml:"started_at"`
	EndedAt   time.Time   `yaml:"ended_at"`
	Turns     []game.Turn `yaml:"turns"`
}

// Fingerprint hashes a position so identical games can be spotted.
func Fingerprint(b *board.Board, onturn board.Cell) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(position.String(b, onturn)))
}

func NewGameRecord(g *game.Game, black, white string) *GameRecord {
	b := g.Board()
	rec := &GameRecord{
		ID:            g.Uid(),
		Black:         black,
		White:         white,
		BoardSize:     b.Dim(),
		BlackDiscs:    b.Count(board.Black),
		WhiteDiscs:    b.Count(board.White),
		FinalPosition: position.String(b, g.PlayerOnTurn()),
		Fingerprint:   Fingerprint(b, g.PlayerOnTurn()),
		Turns:         append([]game.Turn(nil), g.History()...),
	}
	switch g.Winner() {
	case board.Black:
		rec.Winner = black
	case board.White:
		rec.Winner = white
	default:
		rec.Winner = DrawName
	}
	return rec
}

// SpreadFor is the named player's final disc spread.
func (rec *GameRecord) SpreadFor(name string) int {
	switch name {
	case rec.Black:
		return rec.BlackDiscs - rec.WhiteDiscs
	case rec.White:
		return rec.WhiteDiscs - rec.BlackDiscs
	}
	return 0
}

// WriteRecord saves rec as <dir>/<id>.yaml.
func WriteRecord(dir string, rec *GameRecord) (string, error) {
	out, err := yaml.Marshal(rec)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, rec.ID+".yaml")
	if err := os.WriteFile(path, out, 0644); err != nil {
		return "", fmt.Errorf("writing game record: %w", err)
	}
	return path, nil
}

func ReadRecord(path string) (*GameRecord, error) {
	bts, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rec := &GameRecord{}
	if err := yaml.Unmarshal(bts, rec); err != nil {
		return nil, fmt.Errorf("parsing game record %s: %w", path, err)
	}
	return rec, nil
}
