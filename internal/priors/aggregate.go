package priors

import (
	"math"

	"github.com/jonathan/jd-annotator/internal/types"
)

// aggregateDimension tallies categorical values and returns the mode as a
// Dimension: confidence is the mode's share of all votes (3 decimals), n is
// the vote count. Ties break toward the first-encountered value. An empty
// input yields an unobserved dimension with neutral confidence.
func aggregateDimension(values []string) types.Dimension {
	if len(values) == 0 {
		return types.NewDimension()
	}

	counts := make(map[string]int, len(values))
	var order []string
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	mode := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[mode] {
			mode = v
		}
	}

	return types.Dimension{
		Value:      mode,
		Confidence: round3(float64(counts[mode]) / float64(len(values))),
		N:          len(values),
	}
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
