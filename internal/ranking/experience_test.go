package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/resume-ranker/internal/feature"
)

func TestExperienceScore(t *testing.T) {
	cases := []struct {
		name      string
		candidate *float64
		required  float64
		expected  float64
	}{
		{name: "meets requirement", candidate: feature.Years(5), required: 3, expected: 1.0},
		{name: "partial credit", candidate: feature.Years(2), required: 4, expected: 0.5},
		{name: "unknown experience", candidate: nil, required: 4, expected: 0.0},
		{name: "no requirement", candidate: feature.Years(2), required: 0, expected: 1.0},
		{name: "negative requirement treated as absent", candidate: nil, required: -1, expected: 1.0},
		{name: "negative candidate treated as unknown", candidate: feature.Years(-2), required: 4, expected: 0.0},
		{name: "exactly at threshold", candidate: feature.Years(4), required: 4, expected: 1.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, ExperienceScore(tc.candidate, tc.required), 1e-9)
		})
	}
}
