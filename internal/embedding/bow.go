package embedding

import (
	"context"
	"fmt"
	"math"

	"github.com/minio/highwayhash"

	"github.com/spigell/resume-ranker/internal/ranking"
)

// DefaultBOWDimension matches the hashed bag-of-words fallback dimension of
// the upstream feature extractor.
const DefaultBOWDimension = 256

// Fixed 32-byte hashing key. Changing it changes every vector, so it is part
// of the embedder's identity.
var bowKey = []byte("resume-ranker-hashed-bow-256-key")

// BOW is a deterministic hashed bag-of-words embedder. Each token is hashed
// into one of dimension buckets and the bucket counts are L2-normalized. It
// needs no external service and produces comparable vectors for any two
// texts embedded with the same dimension.
type BOW struct {
	dimension int
}

// NewBOW creates a hashed bag-of-words embedder. Non-positive dimensions
// fall back to DefaultBOWDimension.
func NewBOW(dimension int) *BOW {
	if dimension <= 0 {
		dimension = DefaultBOWDimension
	}
	return &BOW{dimension: dimension}
}

func (b *BOW) Embed(_ context.Context, text string) ([]float64, error) {
	tokens := ranking.Tokens(text)
	if len(tokens) == 0 {
		return nil, nil
	}

	vector := make([]float64, b.dimension)
	for _, token := range tokens {
		bucket := highwayhash.Sum64([]byte(token), bowKey) % uint64(b.dimension)
		vector[bucket]++
	}

	var norm float64
	for _, v := range vector {
		norm += v * v
	}
	if norm == 0 {
		return nil, nil
	}

	norm = math.Sqrt(norm)
	for i := range vector {
		vector[i] /= norm
	}

	return vector, nil
}

func (b *BOW) Model() string {
	return fmt.Sprintf("hashed-bow-%d", b.dimension)
}
