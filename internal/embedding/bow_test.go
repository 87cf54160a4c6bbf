package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-ranker/internal/ranking"
)

func TestBOWIsDeterministic(t *testing.T) {
	bow := NewBOW(0)
	assert.Equal(t, "hashed-bow-256", bow.Model())

	first, err := bow.Embed(context.Background(), "python sql backend")
	require.NoError(t, err)
	second, err := bow.Embed(context.Background(), "python sql backend")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, DefaultBOWDimension)
}

func TestBOWVectorIsUnitLength(t *testing.T) {
	bow := NewBOW(64)

	vector, err := bow.Embed(context.Background(), "go services kubernetes go go")
	require.NoError(t, err)
	require.Len(t, vector, 64)

	var norm float64
	for _, v := range vector {
		norm += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestBOWEmptyTextHasNoEmbedding(t *testing.T) {
	bow := NewBOW(64)

	vector, err := bow.Embed(context.Background(), "   !!! ")
	require.NoError(t, err)
	assert.Nil(t, vector)
}

func TestBOWCosineReflectsTokenOverlap(t *testing.T) {
	bow := NewBOW(DefaultBOWDimension)

	same, err := bow.Embed(context.Background(), "python backend engineer")
	require.NoError(t, err)
	other, err := bow.Embed(context.Background(), "python backend engineer")
	require.NoError(t, err)
	disjoint, err := bow.Embed(context.Background(), "haskell compiler research")
	require.NoError(t, err)

	assert.InDelta(t, 1.0, ranking.CosineSimilarity(same, other), 1e-9)
	assert.Less(t, ranking.CosineSimilarity(same, disjoint), 0.5)
}
