package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/cloo-solutions/veriflow/internal/domain"
)

// dbtx is satisfied by both pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ChunkRepository handles persistence of embedded knowledge chunks. The
// store is append-only: re-ingesting identical content creates duplicate
// rows, and rows are never mutated.
type ChunkRepository struct {
	db dbtx
}

func NewChunkRepository(pool *pgxpool.Pool) *ChunkRepository {
	return &ChunkRepository{db: pool}
}

// InsertChunks appends the given chunks to the store and returns the number
// of rows written.
func (r *ChunkRepository) InsertChunks(ctx context.Context, chunks []domain.StoredChunk) (int, error) {
	count := 0
	for _, c := range chunks {
		createdAt := c.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		_, err := r.db.Exec(ctx,
			`INSERT INTO chunks
				(id, source, segment_type, page, chunk_index, content, embedding, created_at)
			 VALUES
				($1, $2, $3, $4, $5, $6, $7, $8)`,
			c.ID,
			c.Metadata.Source,
			nullableString(string(c.Metadata.Type)),
			c.Metadata.Page,
			c.Index,
			c.Content,
			pgvector.NewVector(c.Embedding),
			createdAt,
		)
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// SearchByEmbedding returns the k chunks nearest to the query embedding by
// cosine distance, nearest first. An empty store yields an empty slice, not
// an error.
func (r *ChunkRepository) SearchByEmbedding(ctx context.Context, embedding []float32, k int) ([]domain.StoredChunk, error) {
	if k <= 0 {
		k = 5
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, source, segment_type, page, chunk_index, content, created_at
		 FROM chunks
		 ORDER BY embedding <=> $1
		 LIMIT $2`,
		pgvector.NewVector(embedding), k,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.StoredChunk, 0, k)
	for rows.Next() {
		var c domain.StoredChunk
		var segmentType *string
		if err := rows.Scan(&c.ID, &c.Metadata.Source, &segmentType, &c.Metadata.Page, &c.Index, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		if segmentType != nil {
			c.Metadata.Type = domain.SegmentType(*segmentType)
		}
		results = append(results, c)
	}

	return results, rows.Err()
}

// Count returns the total number of stored chunks.
func (r *ChunkRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&count)
	return count, err
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
