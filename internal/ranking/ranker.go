package ranking

import (
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/feature"
	"github.com/spigell/resume-ranker/internal/job"
)

// Weights records the component weights a score was computed with.
type Weights struct {
	Skill      float64 `json:"skill_weight"`
	Semantic   float64 `json:"semantic_weight"`
	Experience float64 `json:"experience_weight"`
}

// Sum returns the total of the component weights.
func (w Weights) Sum() float64 {
	return w.Skill + w.Semantic + w.Experience
}

// Breakdown itemizes the per-component scores and the weights used, so every
// total score is explainable.
type Breakdown struct {
	SkillScore      float64 `json:"skill_score"`
	SemanticScore   float64 `json:"semantic_score"`
	ExperienceScore float64 `json:"experience_score"`
	Weights         Weights `json:"weights"`
}

// ScoreResult is the outcome of scoring one candidate. TotalScore is always
// in [0,1]; display scaling belongs to the presentation layer.
type ScoreResult struct {
	TotalScore float64   `json:"total_score"`
	Breakdown  Breakdown `json:"breakdown"`
}

// Ranker combines skill overlap, semantic similarity and experience matching
// into a single weighted, normalized score.
type Ranker struct {
	logger  *zap.Logger
	workers int
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithWorkers sets the number of concurrent scoring workers for batches.
func WithWorkers(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.workers = n
		}
	}
}

// New creates a Ranker. A nil logger is replaced with a no-op one.
func New(logger *zap.Logger, opts ...Option) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Ranker{
		logger:  logger,
		workers: defaultWorkers,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ScoreCandidate scores a single candidate against the job requirements.
// It is a pure transformation: total over any well-formed input, no side
// effects beyond debug logging.
func (r *Ranker) ScoreCandidate(f *feature.Features, requirements *job.Requirements) *ScoreResult {
	if f == nil {
		f = &feature.Features{}
	}

	weights := Weights{
		Skill:      clampWeight(requirements.SkillWeight),
		Semantic:   clampWeight(requirements.SemanticWeight),
		Experience: clampWeight(requirements.ExperienceWeight),
	}

	skillScore := SkillScore(f.Skills, requirements.RequiredSkills)
	semanticScore := SemanticScore(f, requirements)
	experienceScore := ExperienceScore(f.ExperienceYears, requirements.RequiredExperience)

	raw := weights.Skill*skillScore + weights.Semantic*semanticScore + weights.Experience*experienceScore

	total := 0.0
	if sum := weights.Sum(); sum > 0 {
		total = raw / sum
	}

	r.logger.Debug("scored candidate",
		zap.Float64("skill_score", skillScore),
		zap.Float64("semantic_score", semanticScore),
		zap.Float64("experience_score", experienceScore),
		zap.Float64("total_score", total),
	)

	return &ScoreResult{
		TotalScore: total,
		Breakdown: Breakdown{
			SkillScore:      skillScore,
			SemanticScore:   semanticScore,
			ExperienceScore: experienceScore,
			Weights:         weights,
		},
	}
}

func clampWeight(w float64) float64 {
	if w < 0 {
		return 0
	}
	return w
}
