package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/reversi/automatic"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/position"
	"github.com/domino14/reversi/stats"
	"github.com/domino14/reversi/turnplayer"
)

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

// Duration accepts a Go duration ("500ms") or a bare number of
// milliseconds.
func (c CmdOptions) Duration(key string, defaultD time.Duration) (time.Duration, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultD, nil
	}
	if ms, err := strconv.Atoi(v[0]); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(v[0])
}

func (sc *ShellController) displayGame() string {
	g := sc.game
	var sb strings.Builder
	sb.WriteString(g.Board().ToDisplayText())
	if g.Playing() == game.StateGameOver {
		winner := g.Winner()
		if winner == board.Empty {
			sb.WriteString("Game over: draw\n")
		} else {
			sb.WriteString(fmt.Sprintf("Game over: %s wins by %d\n", winner, g.SpreadFor(winner)))
		}
	} else {
		sb.WriteString(fmt.Sprintf("%s to move (turn %d)\n", g.PlayerOnTurn(), g.Turn()+1))
	}
	sb.WriteString("Position: " + position.String(g.Board(), g.PlayerOnTurn()))
	return sb.String()
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	size, err := cmd.options.IntDefault("size", sc.config.BoardSize)
	if err != nil {
		return nil, err
	}
	g, err := game.NewGame(sc.rules, size)
	if err != nil {
		return nil, err
	}
	sc.game = g
	sc.lastRes = nil
	return msg(sc.displayGame()), nil
}

func (sc *ShellController) pos(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: pos \"<position>\"")
	}
	p, err := position.Parse(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	sc.game = game.NewFromBoard(sc.rules, p.Board, p.OnTurn)
	sc.lastRes = nil
	if d, ok := p.TimeBudget(); ok {
		sc.solver.SetTimeBudget(d)
	}
	return msg(sc.displayGame()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.displayGame()), nil
}

func (sc *ShellController) gen(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	moves := sc.game.LegalMoves()
	if len(moves) == 0 {
		return msg(sc.game.PlayerOnTurn().String() + " has no moves and must pass"), nil
	}
	side := sc.game.PlayerOnTurn()
	var sb strings.Builder
	sb.WriteString("     Move  Flips  Eval\n")
	scratch := sc.game.Board().Copy()
	for i, m := range moves {
		u := sc.rules.PlayMove(scratch, m, side)
		val := sc.evaluator.Evaluate(scratch, side, side.Opponent())
		sc.rules.UnplayMove(scratch, u)
		sb.WriteString(fmt.Sprintf("%3d: %-6s%-7d%d\n", i+1, m.ShortDescription(), len(u.Flipped), val))
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	side := sc.game.PlayerOnTurn()
	if s := cmd.options.String("side"); s != "" {
		var err error
		if side, err = board.CellFromString(s); err != nil {
			return nil, err
		}
	}
	f := sc.evaluator.Breakdown(sc.game.Board(), side, side.Opponent())
	w := f.Weights
	out := fmt.Sprintf("Evaluation for %s (%s game)\n", side, f.Phase) +
		fmt.Sprintf("  corners:   %4d x %2d\n", f.Corners, w.Corners) +
		fmt.Sprintf("  mobility:  %4d x %2d\n", f.Mobility, w.Mobility) +
		fmt.Sprintf("  blocking:  %4d x %2d\n", f.Blocking, w.Blocking) +
		fmt.Sprintf("  discs:     %4d x %2d\n", f.DiskCount, w.DiskCount) +
		fmt.Sprintf("  total:     %4d", f.Total)
	return msg(out), nil
}

func (sc *ShellController) search(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	budget, err := cmd.options.Duration("time", sc.solver.TimeBudget())
	if err != nil {
		return nil, err
	}
	depth, err := cmd.options.IntDefault("depth", sc.config.MaxDepth)
	if err != nil {
		return nil, err
	}
	sc.solver.SetTimeBudget(budget)
	sc.solver.SetMaxDepth(depth)
	sc.solver.SetPruning(!cmd.options.Bool("nopruning"))
	if tf := cmd.options.String("trace"); tf != "" {
		f, err := os.Create(tf)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		sc.solver.SetLogStream(f)
		defer sc.solver.SetLogStream(nil)
	}

	side := sc.game.PlayerOnTurn()
	res, err := sc.solver.Solve(context.Background(), sc.game.Board(), side, side.Opponent())
	if err != nil {
		return nil, err
	}
	sc.lastRes = res
	if res.Move == nil {
		if len(sc.game.LegalMoves()) == 0 {
			return msg(side.String() + " has no moves and must pass"), nil
		}
		return msg("no depth finished in " + budget.String()), nil
	}
	var sb strings.Builder
	sb.WriteString(sc.printer.Sprintf("Best move: %s (value %d) at depth %d; %d nodes in %v\n",
		res.Move.ShortDescription(), res.Value, res.Depth, res.Nodes, res.Elapsed.Round(time.Millisecond)))
	for _, c := range res.Candidates {
		sb.WriteString(fmt.Sprintf("  %-5s %d\n", c.Move.ShortDescription(), c.Value))
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <coords|pass>")
	}
	if cmd.args[0] == "pass" {
		if err := sc.game.Pass(); err != nil {
			return nil, err
		}
		return msg(sc.displayGame()), nil
	}
	m, err := move.FromString(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := sc.game.PlayMove(m); err != nil {
		return nil, err
	}
	return msg(sc.displayGame()), nil
}

func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.game.Playing() == game.StateGameOver {
		return nil, game.ErrGameOver
	}
	name := cmd.options.String("player")
	if name == "" {
		name = turnplayer.MinimaxPlayerName
	}
	cfg := *sc.config
	cfg.TimeBudget = sc.solver.TimeBudget()
	p, err := turnplayer.New(name, &cfg)
	if err != nil {
		return nil, err
	}
	side := sc.game.PlayerOnTurn()
	m, err := p.Step(context.Background(), sc.game.Board(), side, side.Opponent())
	if err != nil {
		return nil, err
	}
	if m == nil && len(sc.game.LegalMoves()) > 0 {
		return nil, errors.New("no move found in time")
	}
	if err := sc.game.PlayTurn(m); err != nil {
		return nil, err
	}
	played := "pass"
	if m != nil {
		played = m.ShortDescription()
	}
	log.Debug().Str("player", p.Name()).Str("move", played).Msg("aiplay")
	return msg(fmt.Sprintf("%s plays %s\n%s", p.Name(), played, sc.displayGame())), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if err := sc.game.UnplayLastMove(); err != nil {
		return nil, err
	}
	return msg(sc.displayGame()), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(sc.printer.Sprintf("time: %v\ndepth: %d\nsize: %d",
			sc.solver.TimeBudget(), sc.config.MaxDepth, sc.config.BoardSize)), nil
	}
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: set <time|depth|size> <value>")
	}
	val := cmd.args[1]
	switch cmd.args[0] {
	case "time":
		d, err := CmdOptions{"v": {val}}.Duration("v", 0)
		if err != nil {
			return nil, err
		}
		if d < 0 {
			return nil, errors.New("time must not be negative")
		}
		sc.solver.SetTimeBudget(d)
		sc.config.TimeBudget = d
	case "depth":
		d, err := strconv.Atoi(val)
		if err != nil {
			return nil, err
		}
		sc.config.MaxDepth = max(d, 0)
		sc.solver.SetMaxDepth(sc.config.MaxDepth)
	case "size":
		n, err := strconv.Atoi(val)
		if err != nil {
			return nil, err
		}
		if _, err := board.NewBoard(n); err != nil {
			return nil, err
		}
		sc.config.BoardSize = n
	default:
		return nil, fmt.Errorf("no such setting: %s", cmd.args[0])
	}
	return msg("set " + cmd.args[0] + " to " + val), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	cfg := *sc.config
	if len(cmd.args) > 0 {
		cfg.Player1 = cmd.args[0]
	}
	if len(cmd.args) > 1 {
		cfg.Player2 = cmd.args[1]
	}
	var err error
	if cfg.NumGames, err = cmd.options.IntDefault("games", cfg.NumGames); err != nil {
		return nil, err
	}
	if cfg.Threads, err = cmd.options.IntDefault("threads", cfg.Threads); err != nil {
		return nil, err
	}
	if cfg.Threads < 1 {
		return nil, errors.New("threads must be at least 1")
	}
	if f := cmd.options.String("logfile"); f != "" {
		cfg.LogFile = f
	}
	if d := cmd.options.String("records"); d != "" {
		cfg.RecordsDir = d
	}
	if db := cmd.options.String("db"); db != "" {
		cfg.ResultsDB = db
	}

	ctx := context.Background()
	var store automatic.Store
	if cfg.ResultsDB != "" {
		s, err := automatic.NewSQLiteStore(ctx, cfg.ResultsDB)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		store = s
	}
	summary, err := automatic.StartCompVComp(ctx, &cfg, store)
	if err != nil {
		return nil, err
	}
	out := summary.String()
	if store != nil {
		standings, err := store.Standings(ctx)
		if err != nil {
			return nil, err
		}
		out += "\nAll-time standings:\n" + formatStandings(standings)
	}
	return msg(strings.TrimRight(out, "\n")), nil
}

func formatStandings(standings map[string]*stats.WinRate) string {
	var sb strings.Builder
	names := lo.Keys(standings)
	slices.Sort(names)
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", name, standings[name]))
	}
	return sb.String()
}

func (sc *ShellController) analyzeLog(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: analyze-log <file>")
	}
	out, err := automatic.AnalyzeLogFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(out, "\n")), nil
}
