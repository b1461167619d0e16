package metrics

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary condenses a run. Game lengths only cover games that had a winner.
type Summary struct {
	Games       int
	Draws       int
	Failures    int
	Wins        map[string]int
	MeanTurns   float64
	MedianTurns float64
	P90Turns    float64
	MinTurns    float64
	MaxTurns    float64
}

func Summarize(records []GameRecord) Summary {
	summary := Summary{Games: len(records), Wins: map[string]int{}}

	lengths := make([]float64, 0, len(records))
	for _, record := range records {
		switch {
		case record.Err != "":
			summary.Failures++
		case record.Draw:
			summary.Draws++
		default:
			summary.Wins[record.Winner]++
			lengths = append(lengths, float64(record.Turns))
		}
	}
	if len(lengths) == 0 {
		return summary
	}

	sort.Float64s(lengths)
	summary.MeanTurns = stat.Mean(lengths, nil)
	summary.MedianTurns = stat.Quantile(0.5, stat.Empirical, lengths, nil)
	summary.P90Turns = stat.Quantile(0.9, stat.Empirical, lengths, nil)
	summary.MinTurns = floats.Min(lengths)
	summary.MaxTurns = floats.Max(lengths)
	return summary
}

// WinRate returns the share of decided games won by player.
func (s Summary) WinRate(player string) float64 {
	decided := s.Games - s.Draws - s.Failures
	if decided == 0 {
		return 0
	}
	return float64(s.Wins[player]) / float64(decided)
}
