package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/resume-ranker/internal/feature"
	"github.com/spigell/resume-ranker/internal/job"
)

func TestTokenSimilarity(t *testing.T) {
	cases := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{name: "identical texts", a: "python backend engineer", b: "python backend engineer", expected: 1.0},
		{name: "disjoint vocabularies", a: "python backend", b: "java frontend", expected: 0.0},
		{name: "partial overlap", a: "python sql backend", b: "python backend engineer", expected: 0.5},
		{name: "empty candidate", a: "", b: "python", expected: 0.0},
		{name: "empty job description", a: "python", b: "", expected: 0.0},
		{name: "punctuation only", a: "!!! ---", b: "python", expected: 0.0},
		{name: "case and punctuation ignored", a: "Python, Backend.", b: "python backend", expected: 1.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, TokenSimilarity(tc.a, tc.b), 1e-9)
		})
	}
}

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name     string
		a        []float64
		b        []float64
		expected float64
	}{
		{name: "identical vectors", a: []float64{1, 2, 3}, b: []float64{1, 2, 3}, expected: 1.0},
		{name: "orthogonal vectors", a: []float64{1, 0}, b: []float64{0, 1}, expected: 0.0},
		{name: "opposite vectors clip to zero", a: []float64{1, 1}, b: []float64{-1, -1}, expected: 0.0},
		{name: "empty vectors", a: nil, b: nil, expected: 0.0},
		{name: "dimension mismatch", a: []float64{1, 2}, b: []float64{1, 2, 3}, expected: 0.0},
		{name: "zero-norm vector", a: []float64{0, 0}, b: []float64{1, 2}, expected: 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, CosineSimilarity(tc.a, tc.b), 1e-9)
		})
	}
}

func TestSemanticScoreSelectsStrategy(t *testing.T) {
	requirements := &job.Requirements{
		JobDescription: "python backend engineer",
	}

	// Token overlap when no embeddings are present.
	features := &feature.Features{ProcessedText: "python backend engineer"}
	assert.InDelta(t, 1.0, SemanticScore(features, requirements), 1e-9)

	// Candidate embedding alone is not enough; job side must carry one too.
	features.Embedding = []float64{1, 0}
	assert.InDelta(t, 1.0, SemanticScore(features, requirements), 1e-9)

	// Both sides embedded switches to cosine.
	requirements.Embedding = []float64{0, 1}
	assert.InDelta(t, 0.0, SemanticScore(features, requirements), 1e-9)
}
