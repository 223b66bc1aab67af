package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/domino14/reversi/stats"
)

type playerTurnStats struct {
	turns   int
	passes  int
	depth   stats.Statistic
	nodes   stats.Statistic
	flipped stats.Statistic
}

// AnalyzeLogFile reads a CSV turn log written by StartCompVComp and
// summarizes search depth, nodes and flips per player.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	r := csv.NewReader(file)

	players := map[string]*playerTurnStats{}
	games := map[string]bool{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == "playerID" {
			continue
		}
		if len(record) != 10 {
			return "", fmt.Errorf("bad turn log line: %v", strings.Join(record, ","))
		}
		ps := players[record[0]]
		if ps == nil {
			ps = &playerTurnStats{}
			players[record[0]] = ps
		}
		games[record[1]] = true
		ps.turns++
		if record[4] == "pass" {
			ps.passes++
			continue
		}
		flipped, err := strconv.Atoi(record[5])
		if err != nil {
			return "", err
		}
		depth, err := strconv.Atoi(record[8])
		if err != nil {
			return "", err
		}
		nodes, err := strconv.ParseUint(record[9], 10, 64)
		if err != nil {
			return "", err
		}
		ps.flipped.Push(float64(flipped))
		if depth > 0 {
			ps.depth.Push(float64(depth))
			ps.nodes.Push(float64(nodes))
		}
	}

	names := make([]string, 0, len(players))
	for n := range players {
		names = append(names, n)
	}
	sort.Strings(names)

	out := fmt.Sprintf("Games: %d\n", len(games))
	for _, n := range names {
		ps := players[n]
		out += fmt.Sprintf("%v: %d turns, %d passes, mean flips %.3f\n",
			n, ps.turns, ps.passes, ps.flipped.Mean())
		if ps.depth.Iterations() > 0 {
			out += fmt.Sprintf("%v: mean depth %.3f (stdev %.3f), mean nodes %.1f\n",
				n, ps.depth.Mean(), ps.depth.Stdev(), ps.nodes.Mean())
		}
	}
	return out, nil
}
