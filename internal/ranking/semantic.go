package ranking

import (
	"math"

	"github.com/spigell/resume-ranker/internal/feature"
	"github.com/spigell/resume-ranker/internal/job"
)

// TokenSimilarity returns the Jaccard similarity of the token sets of a and
// b. Either side tokenizing to nothing scores 0.
func TokenSimilarity(a, b string) float64 {
	setA := TokenSet(a)
	setB := TokenSet(b)

	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}

// CosineSimilarity returns the cosine similarity of two dense vectors,
// clipped to [0,1]. A negative cosine counts as no relatedness. Empty,
// zero-norm or dimension-mismatched vectors score 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	cosine := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if cosine < 0 {
		return 0.0
	}
	if cosine > 1 {
		return 1.0
	}

	return cosine
}

// SemanticScore compares the candidate against the job description, using
// cosine similarity when both sides carry an embedding and token overlap
// otherwise.
func SemanticScore(f *feature.Features, requirements *job.Requirements) float64 {
	if len(f.Embedding) > 0 && len(requirements.Embedding) > 0 {
		return CosineSimilarity(f.Embedding, requirements.Embedding)
	}
	return TokenSimilarity(f.ProcessedText, requirements.JobDescription)
}
