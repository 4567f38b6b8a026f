//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloo-solutions/veriflow/internal/domain"
	"github.com/cloo-solutions/veriflow/internal/testutil"
)

func testChunk(source, content string, index int, embedding []float32) domain.StoredChunk {
	return domain.StoredChunk{
		ID:      uuid.NewString(),
		Content: content,
		Index:   index,
		Metadata: domain.Metadata{
			Source: source,
			Type:   domain.SegmentTypeText,
		},
		Embedding: embedding,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestChunkRepository_InsertAndSearch(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewChunkRepository(pool)

	chunks := []domain.StoredChunk{
		testChunk("rules.txt", "discount codes are 5-15% off", 0, []float32{1, 0, 0}),
		testChunk("rules.txt", "invalid codes show an error banner", 1, []float32{0, 1, 0}),
		testChunk("faq.md", "shipping takes 3 days", 0, []float32{0, 0, 1}),
	}

	n, err := repo.InsertChunks(ctx, chunks)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Query vector close to the first chunk's embedding.
	results, err := repo.SearchByEmbedding(ctx, []float32{0.9, 0.1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "discount codes are 5-15% off", results[0].Content)
	assert.Equal(t, "rules.txt", results[0].Metadata.Source)
	assert.Equal(t, domain.SegmentTypeText, results[0].Metadata.Type)
	assert.Equal(t, "invalid codes show an error banner", results[1].Content)
}

func TestChunkRepository_SearchEmptyStore(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewChunkRepository(pool)

	results, err := repo.SearchByEmbedding(ctx, []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestChunkRepository_AppendOnly(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewChunkRepository(pool)

	// Ingesting identical content twice doubles the row count.
	first := []domain.StoredChunk{
		testChunk("rules.txt", "discount codes are 5-15% off", 0, []float32{1, 0, 0}),
	}
	second := []domain.StoredChunk{
		testChunk("rules.txt", "discount codes are 5-15% off", 0, []float32{1, 0, 0}),
	}

	_, err := repo.InsertChunks(ctx, first)
	require.NoError(t, err)
	_, err = repo.InsertChunks(ctx, second)
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestChunkRepository_LimitCapsResults(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewChunkRepository(pool)

	var chunks []domain.StoredChunk
	for i := 0; i < 8; i++ {
		chunks = append(chunks, testChunk("rules.txt", "chunk", i, []float32{float32(i), 1, 0}))
	}
	_, err := repo.InsertChunks(ctx, chunks)
	require.NoError(t, err)

	results, err := repo.SearchByEmbedding(ctx, []float32{0, 1, 0}, 5)
	require.NoError(t, err)
	assert.Len(t, results, 5)
}
