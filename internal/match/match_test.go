package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "both empty", a: "", b: "", want: 0},
		{name: "left empty", a: "", b: "abc", want: 3},
		{name: "right empty", a: "abc", b: "", want: 3},
		{name: "equal", a: "GLU", b: "GLU", want: 0},
		{name: "single substitution", a: "kitten", b: "sitten", want: 1},
		{name: "classic kitten sitting", a: "kitten", b: "sitting", want: 3},
		{name: "single deletion", a: "CREATININE", b: "CREATININ", want: 1},
		{name: "completely different", a: "ab", b: "xyz", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LevenshteinDistance(tt.a, tt.b))
		})
	}
}

func TestSimilarity(t *testing.T) {
	t.Run("identical strings score 1", func(t *testing.T) {
		for _, s := range []string{"a", "GLU", "CREATININE"} {
			assert.Equal(t, 1.0, Similarity(s, s))
		}
	})

	t.Run("empty vs non-empty scores 0", func(t *testing.T) {
		assert.Equal(t, 0.0, Similarity("", "GLU"))
		assert.Equal(t, 0.0, Similarity("GLU", ""))
	})

	t.Run("both empty score 1", func(t *testing.T) {
		assert.Equal(t, 1.0, Similarity("", ""))
	})

	t.Run("symmetric", func(t *testing.T) {
		pairs := [][2]string{
			{"CREATININE", "CREATININ"},
			{"GLU", "GLOB"},
			{"kitten", "sitting"},
		}
		for _, p := range pairs {
			assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]))
		}
	})

	t.Run("one edit in ten characters", func(t *testing.T) {
		assert.InDelta(t, 0.9, Similarity("CREATININE", "CREATININA"), 1e-9)
	})
}

func TestFindBestMatch(t *testing.T) {
	candidates := []string{"Creatinine", "Glucose", "Albumin", "Total Protein"}

	t.Run("exact after normalization", func(t *testing.T) {
		got := FindBestMatch("CREATININE", candidates, DefaultThreshold)
		require.True(t, got.Matched())
		assert.Equal(t, "Creatinine", got.Match)
		assert.Equal(t, 1.0, got.Similarity)
	})

	t.Run("one letter typo", func(t *testing.T) {
		got := FindBestMatch("Creatinin", candidates, DefaultThreshold)
		require.True(t, got.Matched())
		assert.Equal(t, "Creatinine", got.Match)
		assert.Greater(t, got.Similarity, 0.8)
	})

	t.Run("below threshold returns no match even with numeric best", func(t *testing.T) {
		got := FindBestMatch("Sodium", candidates, DefaultThreshold)
		assert.False(t, got.Matched())
		assert.Less(t, got.Similarity, DefaultThreshold)
	})

	t.Run("no candidates", func(t *testing.T) {
		got := FindBestMatch("Sodium", nil, DefaultThreshold)
		assert.False(t, got.Matched())
	})

	t.Run("tie goes to first candidate", func(t *testing.T) {
		got := FindBestMatch("ab", []string{"abc", "abd"}, 0.5)
		require.True(t, got.Matched())
		assert.Equal(t, "abc", got.Match)
	})
}

func TestFindAllMatches(t *testing.T) {
	candidates := []string{"Creatinine", "Creatinin", "Creatine Kinase", "Glucose"}

	got := FindAllMatches("Creatinine", candidates, DefaultThreshold)
	require.NotEmpty(t, got)

	// Sorted descending, nothing below threshold.
	for i, r := range got {
		assert.GreaterOrEqual(t, r.Similarity, DefaultThreshold)
		if i > 0 {
			assert.LessOrEqual(t, r.Similarity, got[i-1].Similarity)
		}
	}
	assert.Equal(t, "Creatinine", got[0].Candidate)

	for _, r := range got {
		assert.NotEqual(t, "Glucose", r.Candidate)
	}
}
