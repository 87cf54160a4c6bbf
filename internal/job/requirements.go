// Package job loads and validates the hiring criteria and scoring weights
// supplied by a caller.
package job

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Default component weights, applied when the payload omits them.
const (
	DefaultSkillWeight      = 0.4
	DefaultSemanticWeight   = 0.3
	DefaultExperienceWeight = 0.3
)

// ErrInvalidInput marks requirement payloads that are structurally broken.
var ErrInvalidInput = errors.New("invalid job requirements payload")

// Requirements describes one ranking run: the job to match against and the
// weights for each scoring component. Weights are not required to sum to 1;
// the ranker normalizes by their sum.
type Requirements struct {
	JobDescription     string   `json:"job_description"`
	RequiredSkills     []string `json:"required_skills"`
	RequiredExperience float64  `json:"required_experience"`
	SkillWeight        float64  `json:"skill_weight"`
	SemanticWeight     float64  `json:"semantic_weight"`
	ExperienceWeight   float64  `json:"experience_weight"`

	// Embedding of the job description, set by the driver when a vector
	// semantic strategy is active. Never part of the wire payload.
	Embedding []float64 `json:"-"`
}

// payloadSchema mirrors the flat key-value wire format. Pointer fields
// distinguish absent keys from explicit zeros so defaults apply correctly.
type payloadSchema struct {
	JobDescription     string   `mapstructure:"job_description"`
	RequiredSkills     []string `mapstructure:"required_skills"`
	RequiredExperience *float64 `mapstructure:"required_experience"`
	SkillWeight        *float64 `mapstructure:"skill_weight"`
	SemanticWeight     *float64 `mapstructure:"semantic_weight"`
	ExperienceWeight   *float64 `mapstructure:"experience_weight"`
}

// Decode converts a loosely-typed payload into Requirements, applying weight
// defaults and clamping malformed values to safe ones.
func Decode(payload map[string]any) (*Requirements, error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: payload is required", ErrInvalidInput)
	}

	var schema payloadSchema
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &schema,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("building requirements decoder: %w", err)
	}

	if err := decoder.Decode(payload); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	requirements := &Requirements{
		JobDescription:     schema.JobDescription,
		RequiredSkills:     normalizeSkills(schema.RequiredSkills),
		RequiredExperience: clampNonNegative(valueOr(schema.RequiredExperience, 0)),
		SkillWeight:        clampNonNegative(valueOr(schema.SkillWeight, DefaultSkillWeight)),
		SemanticWeight:     clampNonNegative(valueOr(schema.SemanticWeight, DefaultSemanticWeight)),
		ExperienceWeight:   clampNonNegative(valueOr(schema.ExperienceWeight, DefaultExperienceWeight)),
	}

	return requirements, nil
}

// FromFile loads requirements from a JSON or YAML file.
func FromFile(path string) (*Requirements, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading job requirements file: %w", err)
	}

	return Decode(v.AllSettings())
}

// WeightSum returns the sum of the configured component weights.
func (r *Requirements) WeightSum() float64 {
	return r.SkillWeight + r.SemanticWeight + r.ExperienceWeight
}

func normalizeSkills(skills []string) []string {
	normalized := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill != "" {
			normalized = append(normalized, skill)
		}
	}
	return normalized
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
