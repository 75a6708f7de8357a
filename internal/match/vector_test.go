package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarities_IdenticalVectors(t *testing.T) {
	scores := cosineSimilarities([]float64{1, 2, 3}, [][]float64{{1, 2, 3}})
	assert.InDelta(t, 1.0, scores[0], 1e-9)
}

func TestCosineSimilarities_OrthogonalVectors(t *testing.T) {
	scores := cosineSimilarities([]float64{1, 0}, [][]float64{{0, 1}})
	assert.InDelta(t, 0.0, scores[0], 1e-9)
}

func TestCosineSimilarities_OppositeVectors(t *testing.T) {
	scores := cosineSimilarities([]float64{1, 0}, [][]float64{{-1, 0}})
	assert.InDelta(t, -1.0, scores[0], 1e-9)
}

func TestCosineSimilarities_ZeroQueryClampsToZero(t *testing.T) {
	scores := cosineSimilarities([]float64{0, 0}, [][]float64{{1, 2}, {3, 4}})
	assert.Equal(t, []float64{0, 0}, scores)
}

func TestCosineSimilarities_ZeroRowClampsToZero(t *testing.T) {
	scores := cosineSimilarities([]float64{1, 2}, [][]float64{{0, 0}, {1, 2}})
	assert.Equal(t, 0.0, scores[0])
	assert.InDelta(t, 1.0, scores[1], 1e-9)
}

func TestArgMax(t *testing.T) {
	tests := []struct {
		name      string
		scores    []float64
		wantIdx   int
		wantScore float64
	}{
		{"empty slice", nil, -1, 0},
		{"single element", []float64{0.3}, 0, 0.3},
		{"max in middle", []float64{0.1, 0.9, 0.4}, 1, 0.9},
		{"all negative", []float64{-0.5, -0.1, -0.9}, 1, -0.1},
		{"first of equal maxima wins", []float64{0.7, 0.7}, 0, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, score := argMax(tt.scores)
			assert.Equal(t, tt.wantIdx, idx)
			assert.Equal(t, tt.wantScore, score)
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and splits on punctuation",
			text: "Experience with Python, Docker & Kubernetes!",
			want: []string{"experience", "with", "python", "docker", "kubernetes"},
		},
		{
			name: "drops short tokens",
			text: "5+ years of Go on K8s",
			want: []string{"years", "k8s"},
		},
		{
			name: "deduplicates preserving first occurrence",
			text: "python python java python",
			want: []string{"python", "java"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenize(tt.text))
		})
	}
}
