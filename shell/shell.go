// Package shell is an interactive command line for setting up Reversi
// positions, inspecting the evaluator and running the search.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/heuristic"
	"github.com/domino14/reversi/search"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("please start a game first with `new` or `pos`")
	errQuit              = errors.New("quit")
)

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

// extractFields splits a command line into the command, its positional
// arguments and its -key value options. Quotes group words together.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: CmdOptions{}}
	for i := 1; i < len(fields); i++ {
		if strings.HasPrefix(fields[i], "-") && len(fields[i]) > 1 {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := fields[i][1:]
			cmd.options[key] = append(cmd.options[key], fields[i+1])
			i++
			continue
		}
		cmd.args = append(cmd.args, fields[i])
	}
	return cmd, nil
}

type ShellController struct {
	l      *readline.Instance
	config *config.Config

	game      *game.Game
	rules     game.StandardRules
	evaluator *heuristic.Evaluator
	solver    *search.Solver
	lastRes   *search.Result

	printer *message.Printer
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func NewShellController(cfg *config.Config) *ShellController {
	rules := game.StandardRules{}
	ev := heuristic.NewEvaluator(rules)
	solver := search.NewSolver(rules, ev, cfg.TimeBudget)
	solver.SetMaxDepth(cfg.MaxDepth)
	return &ShellController{
		config:    cfg,
		rules:     rules,
		evaluator: ev,
		solver:    solver,
		printer:   message.NewPrinter(language.English),
	}
}

func (sc *ShellController) stderr() io.Writer {
	if sc.l != nil {
		return sc.l.Stderr()
	}
	return os.Stderr
}

func (sc *ShellController) showMessage(m string) {
	io.WriteString(sc.stderr(), m)
	io.WriteString(sc.stderr(), "\n")
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// Execute runs a single command line.
func (sc *ShellController) Execute(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye":
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "pos":
		return sc.pos(cmd)
	case "s", "show":
		return sc.show(cmd)
	case "gen":
		return sc.gen(cmd)
	case "eval":
		return sc.eval(cmd)
	case "go":
		return sc.search(cmd)
	case "play":
		return sc.play(cmd)
	case "aiplay":
		return sc.aiplay(cmd)
	case "undo":
		return sc.undo(cmd)
	case "set":
		return sc.set(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "analyze-log":
		return sc.analyzeLog(cmd)
	}
	log.Debug().Str("line", line).Msg("unrecognized-command")
	return nil, fmt.Errorf("unrecognized command %q; try `help`", cmd.cmd)
}

// ExecuteAndShow runs line and prints its result or error.
func (sc *ShellController) ExecuteAndShow(line string) {
	resp, err := sc.Execute(line)
	if err != nil {
		if !errors.Is(err, errQuit) {
			sc.showError(err)
		}
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

// Loop reads commands until the user quits, then signals sig.
func (sc *ShellController) Loop(sig chan os.Signal) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mreversi>\033[0m ",
		HistoryFile:     "/tmp/reversi-readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		log.Err(err).Msg("readline-init-failed")
		sig <- syscall.SIGINT
		return
	}
	sc.l = l
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		resp, err := sc.Execute(line)
		if errors.Is(err, errQuit) {
			break
		} else if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msg("exiting-readline-loop")
	sig <- syscall.SIGINT
}
