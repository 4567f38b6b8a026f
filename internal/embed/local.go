package embed

import (
	"context"
	"fmt"

	fastembed "github.com/anush008/fastembed-go"
)

// LocalEmbedderDimensions is the output dimension of bge-small-en-v1.5.
const LocalEmbedderDimensions = 384

// LocalEmbedder runs a small embedding model in-process. Same input, same
// vector, no network calls.
type LocalEmbedder struct {
	model *fastembed.FlagEmbedding
}

// NewLocalEmbedder loads the local model, downloading it into cacheDir on
// first use.
func NewLocalEmbedder(cacheDir string) (*LocalEmbedder, error) {
	model, err := fastembed.NewFlagEmbedding(&fastembed.InitOptions{
		Model:    fastembed.BGESmallENV15,
		CacheDir: cacheDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load local embedding model: %w", err)
	}
	return &LocalEmbedder{model: model}, nil
}

// GenerateEmbedding embeds the given text.
func (e *LocalEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	embedding, err := e.model.QueryEmbed(text)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}
	if len(embedding) != LocalEmbedderDimensions {
		return nil, ErrWrongDimensions
	}
	return embedding, nil
}

// Close releases the model's resources.
func (e *LocalEmbedder) Close() error {
	if e.model != nil {
		e.model.Destroy()
	}
	return nil
}
