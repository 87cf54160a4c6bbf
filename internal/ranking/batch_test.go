package ranking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/feature"
	"github.com/spigell/resume-ranker/internal/job"
)

// skillOnlyRequirements isolates the skill component so batch tests can
// dictate exact scores through the skill lists alone.
func skillOnlyRequirements() *job.Requirements {
	return &job.Requirements{
		RequiredSkills: []string{"python", "sql"},
		SkillWeight:    1,
	}
}

func TestRankBatchOrdersByScoreDescending(t *testing.T) {
	ranker := New(zap.NewNop())
	candidates := []Candidate{
		{ID: "weak", Features: &feature.Features{Skills: []string{"python"}}},
		{ID: "strong", Features: &feature.Features{Skills: []string{"python", "sql"}}},
	}

	ranked, failures := ranker.RankBatch(context.Background(), skillOnlyRequirements(), candidates)
	require.Empty(t, failures)
	require.Len(t, ranked, 2)

	assert.Equal(t, "strong", ranked[0].ID)
	assert.Equal(t, "weak", ranked[1].ID)
	assert.Greater(t, ranked[0].Result.TotalScore, ranked[1].Result.TotalScore)
}

func TestRankBatchStableSortPreservesInputOrderOnTies(t *testing.T) {
	ranker := New(zap.NewNop())

	// A and C tie at 0.5; B scores 1.0. Expected order is B, A, C.
	candidates := []Candidate{
		{ID: "A", Features: &feature.Features{Skills: []string{"python"}}},
		{ID: "B", Features: &feature.Features{Skills: []string{"python", "sql"}}},
		{ID: "C", Features: &feature.Features{Skills: []string{"sql"}}},
	}

	ranked, failures := ranker.RankBatch(context.Background(), skillOnlyRequirements(), candidates)
	require.Empty(t, failures)
	require.Len(t, ranked, 3)

	assert.Equal(t, "B", ranked[0].ID)
	assert.Equal(t, "A", ranked[1].ID)
	assert.Equal(t, "C", ranked[2].ID)
	assert.InDelta(t, ranked[1].Result.TotalScore, ranked[2].Result.TotalScore, 1e-9)
}

func TestRankBatchIsolatesPerItemFailures(t *testing.T) {
	ranker := New(zap.NewNop())
	candidates := []Candidate{
		{ID: "ok", Features: &feature.Features{Skills: []string{"python", "sql"}}},
		{ID: "broken", Features: nil},
		{ID: "also-ok", Features: &feature.Features{Skills: []string{"python"}}},
	}

	ranked, failures := ranker.RankBatch(context.Background(), skillOnlyRequirements(), candidates)

	require.Len(t, failures, 1)
	assert.Equal(t, "broken", failures[0].ID)
	require.Error(t, failures[0].Err)

	require.Len(t, ranked, 2)
	assert.Equal(t, "ok", ranked[0].ID)
	assert.Equal(t, "also-ok", ranked[1].ID)
}

func TestRankBatchEmptyInput(t *testing.T) {
	ranker := New(zap.NewNop())

	ranked, failures := ranker.RankBatch(context.Background(), skillOnlyRequirements(), nil)
	assert.Empty(t, ranked)
	assert.Empty(t, failures)
}

func TestRankBatchWithWorkers(t *testing.T) {
	ranker := New(zap.NewNop(), WithWorkers(8))

	candidates := make([]Candidate, 0, 100)
	for i := 0; i < 100; i++ {
		skills := []string{"python"}
		if i%2 == 0 {
			skills = append(skills, "sql")
		}
		candidates = append(candidates, Candidate{
			ID:       string(rune('a'+i%26)) + "-candidate",
			Features: &feature.Features{Skills: skills},
		})
	}

	ranked, failures := ranker.RankBatch(context.Background(), skillOnlyRequirements(), candidates)
	require.Empty(t, failures)
	require.Len(t, ranked, 100)

	for i := 1; i < len(ranked); i++ {
		require.GreaterOrEqual(t, ranked[i-1].Result.TotalScore, ranked[i].Result.TotalScore)
	}
}

func TestRankBatchCancelledContext(t *testing.T) {
	ranker := New(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	candidates := []Candidate{
		{ID: "x", Features: &feature.Features{Skills: []string{"python"}}},
	}

	ranked, failures := ranker.RankBatch(ctx, skillOnlyRequirements(), candidates)
	assert.Empty(t, ranked)
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0].Err, context.Canceled)
}
