package heuristic

// Phase is the stage of the game, judged by how much of the board is empty.
type Phase int

const (
	Early Phase = iota
	Mid
	Late
)

func (p Phase) String() string {
	switch p {
	case Early:
		return "early"
	case Mid:
		return "mid"
	}
	return "late"
}

// Weights multiply the four evaluation features.
type Weights struct {
	Corners   int
	Mobility  int
	Blocking  int
	DiskCount int
}

var (
	EarlyWeights = Weights{Corners: 5, Mobility: 10, Blocking: 3, DiskCount: 1}
	MidWeights   = Weights{Corners: 9, Mobility: 5, Blocking: 5, DiskCount: 3}
	LateWeights  = Weights{Corners: 15, Mobility: 2, Blocking: 5, DiskCount: 8}
)

// PhaseFor classifies the position by the fraction e = empty/area:
// e > 0.6 is early, 0.2 < e <= 0.6 is mid, and anything else is late.
// The comparisons are done in integers so the boundaries are exact.
func PhaseFor(empty, area int) Phase {
	switch {
	case empty*5 > area*3:
		return Early
	case empty*5 > area:
		return Mid
	}
	return Late
}

func (p Phase) Weights() Weights {
	switch p {
	case Early:
		return EarlyWeights
	case Mid:
		return MidWeights
	}
	return LateWeights
}

// WeightsFor returns the weight set for the given empty count and area.
func WeightsFor(empty, area int) Weights {
	return PhaseFor(empty, area).Weights()
}
