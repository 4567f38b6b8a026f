//go:build e2e

package e2e

import (
	"context"
	"crypto/sha256"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cloo-solutions/veriflow/internal/api/handlers"
	"github.com/cloo-solutions/veriflow/internal/repository"
	"github.com/cloo-solutions/veriflow/internal/server"
	"github.com/cloo-solutions/veriflow/internal/service"
	"github.com/cloo-solutions/veriflow/internal/testutil"
)

const embeddingDims = 8

// hashEmbedder produces deterministic embeddings from text content so tests
// get stable nearest-neighbor ordering without a model download.
type hashEmbedder struct{}

func (e *hashEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	sum := sha256.Sum256([]byte(text))
	out := make([]float32, embeddingDims)
	for i := range out {
		out[i] = float32(sum[i])/255.0 - 0.5
	}
	return out, nil
}

// scriptedGenerator returns canned completions and records the prompts it saw.
type scriptedGenerator struct {
	planText   string
	scriptText string
	prompts    []string
}

func (g *scriptedGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if len(g.prompts) == 1 {
		return g.planText, nil
	}
	return g.scriptText, nil
}

// TestEnv holds the resources for one end-to-end test.
type TestEnv struct {
	Pool      *pgxpool.Pool
	ServerURL string
	UploadDir string
	Generator *scriptedGenerator
	cleanup   []func()
}

// SetupEnv starts a pgvector container and an in-process HTTP server wired
// with real repositories and services. Only the embedding model and the LLM
// are replaced with deterministic fakes.
func SetupEnv(t *testing.T, generator *scriptedGenerator) *TestEnv {
	ctx := context.Background()

	pgC := testutil.NewPostgresContainer(ctx, t)
	pool := testutil.NewTestPool(ctx, t, pgC, "../../migrations")

	uploadDir := t.TempDir()
	embedder := &hashEmbedder{}
	chunkRepo := repository.NewChunkRepository(pool)

	ingestSvc := service.NewIngestService(chunkRepo, embedder, uploadDir)

	var textGen service.TextGenerator
	if generator != nil {
		textGen = generator
	}
	generationSvc := service.NewGenerationService(textGen, chunkRepo, embedder, uploadDir)

	router := server.NewRouter(server.RouterConfig{
		IngestHandler:     handlers.NewIngestHandler(ingestSvc),
		GenerationHandler: handlers.NewGenerationHandler(generationSvc),
	})

	srv := httptest.NewServer(router)

	env := &TestEnv{
		Pool:      pool,
		ServerURL: srv.URL,
		UploadDir: uploadDir,
		Generator: generator,
	}
	env.cleanup = append(env.cleanup,
		srv.Close,
		pool.Close,
		func() { _ = pgC.Terminate(ctx) },
	)
	return env
}

// Teardown releases all resources in reverse order.
func (e *TestEnv) Teardown() {
	for i := len(e.cleanup) - 1; i >= 0; i-- {
		e.cleanup[i]()
	}
}
