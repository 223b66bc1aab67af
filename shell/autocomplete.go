package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/reversi/turnplayer"
)

// ShellCompleter completes command names, options and a few option values.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"new":      {Options: []string{"-size"}},
	"eval":     {Options: []string{"-side"}},
	"go":       {Options: []string{"-time", "-depth", "-nopruning", "-trace"}},
	"aiplay":   {Options: []string{"-player"}},
	"set":      {Args: []string{"time", "depth", "size"}},
	"help":     {Args: []string{"go", "pos", "set", "autoplay"}},
	"autoplay": {Options: []string{"-games", "-threads", "-logfile", "-records", "-db"}, Args: turnplayer.Names},
}

var commandNames = []string{
	"help", "new", "pos", "s", "show", "gen", "eval", "go", "play", "aiplay",
	"undo", "set", "autoplay", "analyze-log", "exit",
}

var boolValues = []string{"true", "false"}

// Do implements readline.AutoCompleter.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		if strings.HasPrefix(lastCompleteField, "-") {
			switch strings.TrimPrefix(lastCompleteField, "-") {
			case "nopruning":
				completions = boolValues
			case "player":
				completions = turnplayer.Names
			case "side":
				completions = []string{"b", "w"}
			default:
				// free-form value
				return nil, 0
			}
		}

		if completions == nil {
			if md, ok := commandMetadata[cmdName]; ok {
				if strings.HasPrefix(prefix, "-") || len(md.Args) == 0 {
					completions = md.Options
				} else {
					completions = md.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
