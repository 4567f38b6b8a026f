// Package embed provides embedding generation for chunk content and queries.
// The default backend is a local deterministic model; a hosted OpenAI
// backend can be selected through configuration.
package embed

import (
	"context"
	"errors"
)

var (
	// ErrEmptyText is returned when text is empty
	ErrEmptyText = errors.New("text cannot be empty")
	// ErrWrongDimensions is returned when an embedding has unexpected dimensions
	ErrWrongDimensions = errors.New("embedding has wrong dimensions")
)

// Embedder generates an embedding vector for a piece of text. Chunk content
// and retrieval queries go through the same embedder so rankings stay
// comparable.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}
