package automatic

import (
	"sort"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/domino14/reversi/stats"
)

// Summary aggregates the games of one autoplay run.
type Summary struct {
	Player1 string
	Player2 string
	Games   int
	// BlackWins counts games won by whoever moved first.
	BlackWins float64
	Nodes     uint64
	Records   map[string]*stats.WinRate

	spreads  []float64
	openings map[string]struct{}
}

func NewSummary(player1, player2 string) *Summary {
	return &Summary{
		Player1: player1,
		Player2: player2,
		Records: map[string]*stats.WinRate{
			player1: {},
			player2: {},
		},
		openings: map[string]struct{}{},
	}
}

func (s *Summary) Add(rec *GameRecord) {
	s.Games++
	s.Nodes += rec.Nodes
	switch rec.Winner {
	case rec.Black:
		s.BlackWins++
	case DrawName:
		s.BlackWins += 0.5
	}
	for _, name := range []string{rec.Black, rec.White} {
		if s.Records[name] == nil {
			s.Records[name] = &stats.WinRate{}
		}
		s.Records[name].Add(rec.SpreadFor(name))
	}
	s.spreads = append(s.spreads, float64(rec.SpreadFor(s.Player1)))
	if rec.Opening != "" {
		s.openings[rec.Opening] = struct{}{}
	}
}

// DistinctOpenings is the number of different positions the games reached
// once their random opening plies were played.
func (s *Summary) DistinctOpenings() int {
	return len(s.openings)
}

// Histogram buckets the first player's final disc spreads.
func (s *Summary) Histogram(bins int) histogram.Histogram {
	return histogram.Hist(bins, s.spreads)
}

func (s *Summary) String() string {
	p := message.NewPrinter(language.English)
	var sb strings.Builder
	sb.WriteString(p.Sprintf("Games played: %d\n", s.Games))
	names := make([]string, 0, len(s.Records))
	for name := range s.Records {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(p.Sprintf("%s: %s\n", name, s.Records[name].String()))
	}
	if s.Games > 0 {
		sb.WriteString(p.Sprintf("First mover wins: %.1f (%.3f%%)\n",
			s.BlackWins, 100*s.BlackWins/float64(s.Games)))
	}
	sb.WriteString(p.Sprintf("Distinct openings: %d\n", s.DistinctOpenings()))
	sb.WriteString(p.Sprintf("Nodes searched: %d\n", s.Nodes))
	if len(s.spreads) > 0 {
		sb.WriteString(p.Sprintf("%s disc spread:\n", s.Player1))
		histogram.Fprint(&sb, s.Histogram(10), histogram.Linear(40))
	}
	return sb.String()
}
