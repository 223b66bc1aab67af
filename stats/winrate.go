package stats

import (
	"fmt"
	"math"
)

// WinRate tallies game outcomes from one player's point of view. A draw
// counts as half a win.
type WinRate struct {
	Wins   int
	Losses int
	Draws  int
	spread Statistic
}

// Add records one finished game with the given final disc spread.
func (w *WinRate) Add(spread int) {
	switch {
	case spread > 0:
		w.Wins++
	case spread < 0:
		w.Losses++
	default:
		w.Draws++
	}
	w.spread.Push(float64(spread))
}

func (w *WinRate) Games() int {
	return w.Wins + w.Losses + w.Draws
}

// Pct is the fraction of points won, between 0 and 1.
func (w *WinRate) Pct() float64 {
	if w.Games() == 0 {
		return 0
	}
	return (float64(w.Wins) + float64(w.Draws)/2) / float64(w.Games())
}

// Interval returns the normal-approximation confidence interval of Pct,
// clamped to [0, 1].
func (w *WinRate) Interval(confidence float64) (float64, float64) {
	n := w.Games()
	if n == 0 {
		return 0, 1
	}
	p := w.Pct()
	half := ZVal(confidence) * math.Sqrt(p*(1-p)/float64(n))
	return math.Max(0, p-half), math.Min(1, p+half)
}

func (w *WinRate) Spread() *Statistic {
	return &w.spread
}

func (w *WinRate) String() string {
	lo, hi := w.Interval(95)
	return fmt.Sprintf("%d-%d-%d (%.1f%%, 95%% CI %.1f%%-%.1f%%), avg spread %.2f ± %.2f",
		w.Wins, w.Losses, w.Draws, 100*w.Pct(), 100*lo, 100*hi,
		w.spread.Mean(), w.spread.StandardError())
}
