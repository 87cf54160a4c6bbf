// Package filtering narrows the set of discovered resumes before scoring.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/resume"
)

// Filter represents a single filtering step applied to resume sources.
type Filter interface {
	Name() string
	Apply(ctx context.Context, s *resume.Sources) (*resume.Sources, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Filtering executes filters sequentially against a source collection.
type Filtering struct {
	steps  []Filter
	logger *zap.Logger
}

func New(logger *zap.Logger, steps ...Filter) *Filtering {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filtering{steps: steps, logger: logger}
}

// Run applies all steps in order, returning the remaining sources.
func (f *Filtering) Run(ctx context.Context, s *resume.Sources) (*resume.Sources, error) {
	for _, step := range f.steps {
		next, info, err := step.Apply(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		f.logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		s = next
	}

	return s, nil
}
