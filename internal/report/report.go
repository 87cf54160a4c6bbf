// Package report renders ranking results for terminal output and export.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spigell/resume-ranker/internal/ranking"
)

// displayScale converts unit-range scores to the 0-10 scale used for
// presentation. Exported dumps keep the raw unit range.
const displayScale = 10

// Entry is one ranked candidate in presentation form.
type Entry struct {
	Rank      int               `json:"rank"`
	ID        string            `json:"id"`
	Score     float64           `json:"score"`
	Breakdown ranking.Breakdown `json:"breakdown"`
}

// DisplayScore returns the score on the 0-10 presentation scale.
func (e *Entry) DisplayScore() float64 {
	return e.Score * displayScale
}

// Failure is one candidate that could not be scored.
type Failure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// Results holds everything a ranking run produced.
type Results struct {
	Entries  []*Entry   `json:"entries"`
	Failures []*Failure `json:"failures,omitempty"`
}

// New builds presentation results from ranked candidates and failures.
// Ranks are assigned from the incoming order, which is already sorted.
func New(ranked []ranking.Ranked, failures []ranking.Failure) *Results {
	results := &Results{}
	for i, r := range ranked {
		results.Entries = append(results.Entries, &Entry{
			Rank:      i + 1,
			ID:        r.ID,
			Score:     r.Result.TotalScore,
			Breakdown: r.Result.Breakdown,
		})
	}
	for _, f := range failures {
		results.Failures = append(results.Failures, &Failure{
			ID:    f.ID,
			Error: f.Err.Error(),
		})
	}
	return results
}

// Table renders the top entries as an aligned text table. A limit of zero or
// less shows everything.
func (r *Results) Table(limit int) string {
	entries := r.Entries
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-5s %-40s %s\n", "RANK", "CANDIDATE", "SCORE")
	for _, entry := range entries {
		fmt.Fprintf(&b, "%-5d %-40s %.2f\n", entry.Rank, entry.ID, entry.DisplayScore())
	}

	if len(r.Failures) > 0 {
		fmt.Fprintf(&b, "\n%d candidate(s) could not be scored\n", len(r.Failures))
	}

	return b.String()
}

// BreakdownReport renders per-candidate sub-scores for all entries.
func (r *Results) BreakdownReport() string {
	var b strings.Builder
	for _, entry := range r.Entries {
		fmt.Fprintf(&b, "%d. %s (%.2f)\n", entry.Rank, entry.ID, entry.DisplayScore())
		fmt.Fprintf(&b, "   skills: %.3f  semantic: %.3f  experience: %.3f\n",
			entry.Breakdown.SkillScore,
			entry.Breakdown.SemanticScore,
			entry.Breakdown.ExperienceScore,
		)
	}
	for _, failure := range r.Failures {
		fmt.Fprintf(&b, "-. %s: %s\n", failure.ID, failure.Error)
	}
	return b.String()
}

// DumpToTmpFile writes the results as indented JSON to a temporary file and
// returns its path. Scores stay in the unit range.
func (r *Results) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "results_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// FailedIDs returns the identifiers of candidates that failed scoring.
func (r *Results) FailedIDs() []string {
	ids := make([]string, 0, len(r.Failures))
	for _, failure := range r.Failures {
		ids = append(ids, failure.ID)
	}
	return ids
}
