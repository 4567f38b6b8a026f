package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/cloo-solutions/veriflow/internal/domain"
	"github.com/cloo-solutions/veriflow/internal/ingest"
	"github.com/cloo-solutions/veriflow/internal/telemetry"
)

// ChunkRepositoryInterface defines the repository interface for chunk persistence
type ChunkRepositoryInterface interface {
	InsertChunks(ctx context.Context, chunks []domain.StoredChunk) (int, error)
	SearchByEmbedding(ctx context.Context, embedding []float32, k int) ([]domain.StoredChunk, error)
}

// EmbeddingClient defines the interface for generating embeddings
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// UUIDGenerator defines interface for UUID generation (for testing)
type UUIDGenerator interface {
	NewString() string
}

// DefaultUUIDGenerator is the default UUID generator using google/uuid
type DefaultUUIDGenerator struct{}

// NewString generates a new UUID string
func (g *DefaultUUIDGenerator) NewString() string {
	return uuid.NewString()
}

// UploadedFile is one file from the multipart ingest payload.
type UploadedFile struct {
	Name   string
	Reader io.Reader
}

// IngestInput carries the support documents and the single target HTML page.
type IngestInput struct {
	Files []UploadedFile
	HTML  UploadedFile
}

// IngestResult reports what an ingest call produced.
type IngestResult struct {
	FilesProcessed int
	ChunksCreated  int
}

// IngestService builds the knowledge base: it persists uploads to the
// working directory, loads and chunks them, and appends embedded chunks to
// the store.
type IngestService struct {
	repo      ChunkRepositoryInterface
	embedder  EmbeddingClient
	uploadDir string
	chunkCfg  ChunkConfig
	uuidGen   UUIDGenerator
}

// NewIngestService creates a new IngestService instance
func NewIngestService(repo ChunkRepositoryInterface, embedder EmbeddingClient, uploadDir string) *IngestService {
	return &IngestService{
		repo:      repo,
		embedder:  embedder,
		uploadDir: uploadDir,
		chunkCfg:  DefaultChunkConfig(),
		uuidGen:   &DefaultUUIDGenerator{},
	}
}

// NewIngestServiceWithUUIDGen creates a new IngestService with a custom UUID generator (for testing)
func NewIngestServiceWithUUIDGen(repo ChunkRepositoryInterface, embedder EmbeddingClient, uploadDir string, uuidGen UUIDGenerator) *IngestService {
	svc := NewIngestService(repo, embedder, uploadDir)
	svc.uuidGen = uuidGen
	return svc
}

// Ingest processes one upload batch. Unreadable or unparseable support files
// are logged and skipped; a bad file never fails the batch. The HTML file is
// always written to the fixed artifact name, replacing any previous upload.
func (s *IngestService) Ingest(ctx context.Context, input IngestInput) (*IngestResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "IngestService.Ingest", telemetry.SpanAttributes{
		Operation: "ingest",
	})
	defer span.End()

	if input.HTML.Reader == nil {
		return nil, domain.ErrNoHTMLFile
	}

	var segments []domain.Segment

	for _, file := range input.Files {
		name := filepath.Base(file.Name)
		path, err := s.saveUpload(name, file.Reader)
		if err != nil {
			log.Printf("skipping %s: %v", name, err)
			continue
		}
		loaded, err := ingest.LoadDocument(path, name)
		if err != nil {
			log.Printf("skipping %s: %v", name, err)
			continue
		}
		segments = append(segments, loaded...)
	}

	htmlPath, err := s.saveUpload(domain.HTMLArtifactName, input.HTML.Reader)
	if err != nil {
		return nil, domain.NewUpstreamError("html upload", err)
	}
	htmlSegments, err := ingest.SplitHTML(htmlPath)
	if err != nil {
		return nil, domain.NewUpstreamError("html processing", err)
	}
	segments = append(segments, htmlSegments...)

	chunks := SplitSegments(segments, s.chunkCfg)

	stored := make([]domain.StoredChunk, 0, len(chunks))
	now := time.Now().UTC()
	for _, chunk := range chunks {
		embedding, err := s.embedder.GenerateEmbedding(ctx, chunk.Content)
		if err != nil {
			span.SetError(err)
			return nil, domain.NewUpstreamError("embedding", err)
		}
		stored = append(stored, domain.StoredChunk{
			ID:        s.uuidGen.NewString(),
			Content:   chunk.Content,
			Index:     chunk.Index,
			Metadata:  chunk.Metadata,
			Embedding: embedding,
			CreatedAt: now,
		})
	}

	created := 0
	if len(stored) > 0 {
		created, err = s.repo.InsertChunks(ctx, stored)
		if err != nil {
			span.SetError(err)
			return nil, domain.NewUpstreamError("vector store", err)
		}
	}

	return &IngestResult{
		FilesProcessed: len(input.Files) + 1,
		ChunksCreated:  created,
	}, nil
}

func (s *IngestService) saveUpload(name string, r io.Reader) (string, error) {
	// Uploads are stored flat under the working directory; strip any path
	// components a client might send.
	path := filepath.Join(s.uploadDir, filepath.Base(name))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path, nil
}
