// Package embedding defines the contract for turning text into dense vectors
// used by the vector semantic strategy.
package embedding

import "context"

// Embedder produces a dense vector for a piece of text. A nil vector with a
// nil error means the text carried no embeddable content.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Model() string
}
