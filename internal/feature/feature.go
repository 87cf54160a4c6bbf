package feature

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

// ErrInvalidInput marks payloads that are structurally broken (wrong types
// entirely, e.g. a list where a mapping was expected). Malformed values
// inside an otherwise well-shaped payload are coerced, not rejected.
var ErrInvalidInput = errors.New("invalid features payload")

// Features is the record produced by a feature extractor for a single resume.
// It is constructed once and not mutated afterwards.
type Features struct {
	Name            string    `mapstructure:"name" json:"name,omitempty"`
	Email           string    `mapstructure:"email" json:"email,omitempty"`
	Phone           string    `mapstructure:"phone" json:"phone,omitempty"`
	Skills          []string  `mapstructure:"skills" json:"skills,omitempty"`
	ProcessedText   string    `mapstructure:"processed_text" json:"processed_text,omitempty"`
	ExperienceYears *float64  `mapstructure:"-" json:"experience_years,omitempty"`
	Embedding       []float64 `mapstructure:"embedding" json:"embedding,omitempty"`
	Education       []string  `mapstructure:"education" json:"education,omitempty"`
	Summary         string    `mapstructure:"summary" json:"summary,omitempty"`
	TextLength      int       `mapstructure:"text_length" json:"text_length,omitempty"`
}

// Decode converts a loosely-typed payload into a Features record. Scalar
// values are coerced weakly ("4" becomes 4.0, a single skill string becomes a
// one-element list). A non-numeric or negative experience value is treated as
// unknown rather than rejected.
func Decode(payload map[string]any) (*Features, error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: payload is required", ErrInvalidInput)
	}

	raw := make(map[string]any, len(payload))
	for key, value := range payload {
		raw[key] = value
	}

	years := coerceYears(raw["experience_years"])
	delete(raw, "experience_years")

	var features Features
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &features,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("building features decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	features.ExperienceYears = years
	features.Normalize()

	return &features, nil
}

// Normalize trims and lowercases the skill list and drops unusable values.
// It is safe to call on a zero Features.
func (f *Features) Normalize() {
	skills := make([]string, 0, len(f.Skills))
	for _, skill := range f.Skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill != "" {
			skills = append(skills, skill)
		}
	}
	f.Skills = skills

	if f.ExperienceYears != nil && *f.ExperienceYears < 0 {
		f.ExperienceYears = nil
	}

	if f.TextLength < 0 {
		f.TextLength = 0
	}
}

// Years is a convenience constructor for the optional experience field.
func Years(v float64) *float64 {
	return &v
}

func coerceYears(value any) *float64 {
	if value == nil {
		return nil
	}

	years, err := cast.ToFloat64E(value)
	if err != nil || years < 0 {
		return nil
	}

	return &years
}
