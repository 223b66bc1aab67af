package shell

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/reversi/config"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func testController() *ShellController {
	cfg := config.DefaultConfig()
	cfg.TimeBudget = time.Hour
	cfg.MaxDepth = 2
	return NewShellController(&cfg)
}

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"autoplay -logfile /path/to/log.txt",
			&shellcmd{"autoplay", nil, CmdOptions{"logfile": {"/path/to/log.txt"}}},
			nil},
		{"autoplay greedy random -games 10 ",
			&shellcmd{"autoplay",
				[]string{"greedy", "random"},
				CmdOptions{"games": {"10"}}},
			nil,
		},
		{`pos "8/8/8/3wb3/3bw3/8/8/8 b"`,
			&shellcmd{"pos", []string{"8/8/8/3wb3/3bw3/8/8/8 b"}, CmdOptions{}},
			nil},
		{"go -depth", nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func TestCmdOptions(t *testing.T) {
	is := is.New(t)
	opts := CmdOptions{"time": {"250"}, "d": {"2s"}, "depth": {"4"}, "nopruning": {"TRUE"}}
	d, err := opts.Duration("time", 0)
	is.NoErr(err)
	is.Equal(d, 250*time.Millisecond)
	d, err = opts.Duration("d", 0)
	is.NoErr(err)
	is.Equal(d, 2*time.Second)
	d, err = opts.Duration("missing", time.Minute)
	is.NoErr(err)
	is.Equal(d, time.Minute)
	n, err := opts.IntDefault("depth", 0)
	is.NoErr(err)
	is.Equal(n, 4)
	is.True(opts.Bool("nopruning"))
	is.True(!opts.Bool("missing"))
	is.Equal(opts.String("missing"), "")
}

func TestCommandsNeedAGame(t *testing.T) {
	is := is.New(t)
	sc := testController()
	for _, line := range []string{"s", "gen", "eval", "go", "play d3", "aiplay", "undo"} {
		_, err := sc.Execute(line)
		is.Equal(err, errNoGame)
	}
}

func TestUnknownCommand(t *testing.T) {
	sc := testController()
	_, err := sc.Execute("frobnicate")
	assert.ErrorContains(t, err, "unrecognized command")
	_, err = sc.Execute("exit")
	assert.ErrorIs(t, err, errQuit)
}

func TestPlayAndUndo(t *testing.T) {
	is := is.New(t)
	sc := testController()
	_, err := sc.Execute("new -size 6")
	is.NoErr(err)
	is.Equal(sc.game.Board().Dim(), 6)

	_, err = sc.Execute(`pos "8/8/8/3wb3/3bw3/8/8/8 b"`)
	is.NoErr(err)

	resp, err := sc.Execute("gen")
	is.NoErr(err)
	for _, m := range []string{"d3", "c4", "f5", "e6"} {
		assert.Contains(t, resp.message, m)
	}

	_, err = sc.Execute("play d3")
	is.NoErr(err)
	is.Equal(sc.game.Turn(), 1)
	is.Equal(sc.game.Board().Count(1)+sc.game.Board().Count(2), 5)

	_, err = sc.Execute("play a1")
	is.True(err != nil)

	_, err = sc.Execute("undo")
	is.NoErr(err)
	is.Equal(sc.game.Turn(), 0)

	_, err = sc.Execute("undo")
	is.True(err != nil)
}

func TestEval(t *testing.T) {
	sc := testController()
	_, err := sc.Execute(`pos "8/8/8/3wb3/3bw3/8/8/8 b"`)
	assert.NoError(t, err)
	resp, err := sc.Execute("eval")
	assert.NoError(t, err)
	assert.Contains(t, resp.message, "early game")
	assert.Contains(t, resp.message, "total:        0")
}

func TestGo(t *testing.T) {
	is := is.New(t)
	sc := testController()
	_, err := sc.Execute(`pos "8/8/8/3wb3/3bw3/8/8/8 b"`)
	is.NoErr(err)

	trace := filepath.Join(t.TempDir(), "trace.yaml")
	resp, err := sc.Execute("go -depth 1 -trace " + trace)
	is.NoErr(err)
	assert.Contains(t, resp.message, "Best move: d3")
	is.Equal(sc.lastRes.Depth, 1)
	is.Equal(len(sc.lastRes.Candidates), 4)

	dat, err := os.ReadFile(trace)
	is.NoErr(err)
	assert.Contains(t, string(dat), "- play: d3")
}

func TestAIPlayPasses(t *testing.T) {
	is := is.New(t)
	sc := testController()
	_, err := sc.Execute(`pos "wb2/4/4/4 b"`)
	is.NoErr(err)
	resp, err := sc.Execute("aiplay -player greedy")
	is.NoErr(err)
	assert.Contains(t, resp.message, "greedy plays pass")
}

func TestSet(t *testing.T) {
	is := is.New(t)
	sc := testController()
	_, err := sc.Execute("set time 300")
	is.NoErr(err)
	is.Equal(sc.solver.TimeBudget(), 300*time.Millisecond)
	_, err = sc.Execute("set depth 3")
	is.NoErr(err)
	is.Equal(sc.config.MaxDepth, 3)
	_, err = sc.Execute("set size 7")
	is.True(err != nil)
	_, err = sc.Execute("set colour blue")
	is.True(err != nil)
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	c := NewShellCompleter(testController())

	line := []rune("aut")
	matches, n := c.Do(line, len(line))
	is.Equal(n, 3)
	is.Equal(matches, [][]rune{[]rune("oplay")})

	line = []rune("go -no")
	matches, n = c.Do(line, len(line))
	is.Equal(n, 3)
	is.Equal(matches, [][]rune{[]rune("pruning")})

	line = []rune("aiplay -player g")
	matches, _ = c.Do(line, len(line))
	is.Equal(matches, [][]rune{[]rune("reedy")})
}
