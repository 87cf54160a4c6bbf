package ranking

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-ranker/internal/feature"
	"github.com/spigell/resume-ranker/internal/job"
)

const defaultWorkers = 4

// Candidate pairs an identifier with the features extracted for one resume.
type Candidate struct {
	ID       string
	Features *feature.Features
}

// Ranked is one entry of a ranked batch.
type Ranked struct {
	ID     string
	Result *ScoreResult
}

// Failure reports a candidate that could not be scored.
type Failure struct {
	ID  string
	Err error
}

// RankBatch scores candidates concurrently and returns them ordered by total
// score descending. Equal scores keep their input order. A candidate that
// cannot be scored becomes a Failure and is excluded from the ranking; it
// never aborts the batch.
func (r *Ranker) RankBatch(ctx context.Context, requirements *job.Requirements, candidates []Candidate) ([]Ranked, []Failure) {
	results := make([]*ScoreResult, len(candidates))
	errs := make([]error, len(candidates))

	group := &errgroup.Group{}
	group.SetLimit(r.workers)

	for i, candidate := range candidates {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			if candidate.Features == nil {
				errs[i] = errors.New("features are missing")
				return nil
			}
			results[i] = r.ScoreCandidate(candidate.Features, requirements)
			return nil
		})
	}

	// Workers report per-item errors through errs, never through the group.
	_ = group.Wait()

	ranked := make([]Ranked, 0, len(candidates))
	failures := make([]Failure, 0)
	for i, candidate := range candidates {
		if errs[i] != nil {
			failures = append(failures, Failure{ID: candidate.ID, Err: errs[i]})
			continue
		}
		ranked = append(ranked, Ranked{ID: candidate.ID, Result: results[i]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.TotalScore > ranked[j].Result.TotalScore
	})

	return ranked, failures
}
