package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"scaled", []float32{1, 2, 3}, []float32{2, 4, 6}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"pythagorean", []float32{3, 4}, []float32{1, 0}, 0.6},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"both empty", []float32{}, []float32{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-6)
		})
	}
}

func TestCosineSimilarity_Symmetric(t *testing.T) {
	vectors := [][]float32{
		{0.1, -0.4, 2.5, 0},
		{3, 3, -1, 0.5},
		{0, 0, 0, 1},
	}

	for _, a := range vectors {
		self, err := CosineSimilarity(a, a)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, self, 1e-6)

		for _, b := range vectors {
			ab, err := CosineSimilarity(a, b)
			require.NoError(t, err)
			ba, err := CosineSimilarity(b, a)
			require.NoError(t, err)
			assert.Equal(t, ab, ba)
		}
	}
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestOverallScore(t *testing.T) {
	score, err := OverallScore([]float32{3, 4}, []float32{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 60.0, score)

	score, err = OverallScore([]float32{0, 0}, []float32{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestOverallScore_OpposedVectorsFloorAtZero(t *testing.T) {
	score, err := OverallScore([]float32{1, 0}, []float32{-1, 0.1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, "Worst Match", MatchLabel(score))

	score, err = OverallScore([]float32{1, 0}, []float32{-1, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestMatchLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "Perfect Choice"},
		{95, "Perfect Choice"},
		{94.99, "Good Match"},
		{80, "Good Match"},
		{79.99, "Average Match"},
		{50, "Average Match"},
		{49.99, "Worst Match"},
		{-20, "Worst Match"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchLabel(tt.score), "score %v", tt.score)
	}
}
