package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleResume = `Jane Doe
jane.doe@example.com
+1 415 555 0100

SUMMARY
Backend engineer with 6 years of experience building services in Python and Go.

SKILLS
Python, SQL, Docker; Kubernetes
Node.js | CI/CD

EXPERIENCE
Acme Corp, 2018 - 2024
Built data pipelines with Python and PostgreSQL.

EDUCATION
B.Sc Computer Science, Example University
`

func TestFromTextExtractsContactInfo(t *testing.T) {
	extractor := New(nil, zap.NewNop())

	features, err := extractor.FromText(context.Background(), sampleResume)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", features.Name)
	assert.Equal(t, "jane.doe@example.com", features.Email)
	assert.Equal(t, "+14155550100", features.Phone)
}

func TestFromTextExtractsSkills(t *testing.T) {
	extractor := New(nil, zap.NewNop())

	features, err := extractor.FromText(context.Background(), sampleResume)
	require.NoError(t, err)

	for _, expected := range []string{"python", "sql", "docker", "kubernetes", "nodejs", "cicd", "postgresql", "go"} {
		assert.Contains(t, features.Skills, expected)
	}
	assert.IsIncreasing(t, features.Skills)
}

func TestFromTextExtractsExperienceYears(t *testing.T) {
	extractor := New(nil, zap.NewNop())

	features, err := extractor.FromText(context.Background(), sampleResume)
	require.NoError(t, err)

	require.NotNil(t, features.ExperienceYears)
	assert.InDelta(t, 6.0, *features.ExperienceYears, 1e-9)
}

func TestFromTextFallsBackToYearSpan(t *testing.T) {
	extractor := New(nil, zap.NewNop())

	features, err := extractor.FromText(context.Background(), "Worked at Acme from 2017 to 2021.")
	require.NoError(t, err)

	require.NotNil(t, features.ExperienceYears)
	assert.InDelta(t, 4.0, *features.ExperienceYears, 1e-9)
}

func TestFromTextProcessedTextDropsStopwords(t *testing.T) {
	extractor := New(nil, zap.NewNop())

	features, err := extractor.FromText(context.Background(), "Built services with Python and the team")
	require.NoError(t, err)

	assert.Equal(t, "built services python team", features.ProcessedText)
	assert.Equal(t, 4, features.TextLength)
}

func TestFromTextExtractsEducationAndSummary(t *testing.T) {
	extractor := New(nil, zap.NewNop())

	features, err := extractor.FromText(context.Background(), sampleResume)
	require.NoError(t, err)

	require.Len(t, features.Education, 1)
	assert.Contains(t, features.Education[0], "Example University")
	assert.Contains(t, features.Summary, "Backend engineer")
}

func TestFromTextEmptyInput(t *testing.T) {
	extractor := New(nil, zap.NewNop())

	features, err := extractor.FromText(context.Background(), "")
	require.NoError(t, err)

	assert.Empty(t, features.Skills)
	assert.Empty(t, features.ProcessedText)
	assert.Nil(t, features.ExperienceYears)
	assert.Nil(t, features.Embedding)
}

type stubEmbedder struct {
	vector   []float64
	err      error
	lastText string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	s.lastText = text
	return s.vector, s.err
}

func (s *stubEmbedder) Model() string { return "stub" }

func TestFromTextEmbedsProcessedText(t *testing.T) {
	stub := &stubEmbedder{vector: []float64{0.5, 0.5}}
	extractor := New(stub, zap.NewNop())

	features, err := extractor.FromText(context.Background(), "Python backend services")
	require.NoError(t, err)

	assert.Equal(t, []float64{0.5, 0.5}, features.Embedding)
	assert.Equal(t, features.ProcessedText, stub.lastText)
}

func TestFromTextEmbedderFailure(t *testing.T) {
	stub := &stubEmbedder{err: errors.New("quota exceeded")}
	extractor := New(stub, zap.NewNop())

	_, err := extractor.FromText(context.Background(), "Python backend services")
	require.Error(t, err)
}
