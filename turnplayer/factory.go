package turnplayer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/game"
)

var ErrUnknownPlayer = errors.New("unknown player")

// Names lists every player that New knows how to build.
var Names = []string{MinimaxPlayerName, GreedyPlayerName, RandomPlayerName}

// New builds a player by name. The minimax player takes its time budget and
// depth cap from cfg.
func New(name string, cfg *config.Config) (TurnPlayer, error) {
	rules := game.StandardRules{}
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case MinimaxPlayerName:
		return NewMinimaxPlayer(rules, cfg.TimeBudget, cfg.MaxDepth), nil
	case GreedyPlayerName:
		return NewGreedyPlayer(rules), nil
	case RandomPlayerName:
		return NewRandomPlayer(rules), nil
	}
	return nil, fmt.Errorf("%w %q; valid options: %s", ErrUnknownPlayer, name,
		strings.Join(lo.Map(Names, func(n string, _ int) string { return "'" + n + "'" }), ", "))
}
