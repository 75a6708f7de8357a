// Package match decides whether a JD fragment deserves an annotation
// suggestion and, if so, which values to suggest: semantic similarity over the
// sentence index first, keyword priors as the fallback.
package match

import "math"

// norm returns the L2 norm of a vector.
func norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// dot returns the dot product over the shared prefix of two vectors.
func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// cosineSimilarities scores the query against every row of the matrix in one
// pass. The query norm is computed once; zero-norm inputs clamp to 0 so a
// degenerate vector can never divide by zero or win the arg-max.
func cosineSimilarities(query []float64, matrix [][]float64) []float64 {
	scores := make([]float64, len(matrix))

	queryNorm := norm(query)
	if queryNorm == 0 {
		return scores
	}

	for i, row := range matrix {
		rowNorm := norm(row)
		if rowNorm == 0 {
			continue
		}
		scores[i] = dot(query, row) / (queryNorm * rowNorm)
	}
	return scores
}

// argMax returns the index and value of the largest score, or (-1, 0) for an
// empty slice.
func argMax(scores []float64) (int, float64) {
	best := -1
	bestScore := 0.0
	for i, s := range scores {
		if best == -1 || s > bestScore {
			best = i
			bestScore = s
		}
	}
	if best == -1 {
		return -1, 0
	}
	return best, bestScore
}
