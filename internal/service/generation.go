package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloo-solutions/veriflow/internal/domain"
	"github.com/cloo-solutions/veriflow/internal/telemetry"
)

// Retrieval depths: plans ground on a wider slice of the knowledge base
// than scripts, which only need the rules nearest the one test case.
const (
	PlanRetrievalK   = 5
	ScriptRetrievalK = 3
)

const planPromptTemplate = `You are an expert QA Automation Engineer.
Based strictly on the provided context, generate detailed test cases.

Context: %s
User Request: %s

Requirements:
1. Do NOT hallucinate. Use only the provided context.
2. Output a Markdown table with columns: Test_ID, Feature, Scenario, Expected_Result, Grounded_Source.
`

const scriptPromptTemplate = `Role: Senior Selenium Automation Engineer.
Task: Write a robust, runnable Python Selenium script for this test case.

Test Case Scenario:
%s

Relevant Rules (Grounding):
%s

Target HTML Source (Use EXACT IDs/Selectors):
%s

Requirements:
1. Use webdriver.Chrome.
2. Use WebDriverWait for explicit waits.
3. Assert the 'Expected Result' mentioned in the test case.
4. Handle the 'checkout.html' file path assuming it is in the current directory.
5. Output ONLY valid Python code.
`

// TextGenerator issues a single LLM completion for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GenerationService produces grounded test plans and automation scripts.
// A nil generator means the LLM is not configured; both operations then
// fail fast without touching the network.
type GenerationService struct {
	generator TextGenerator
	repo      ChunkRepositoryInterface
	embedder  EmbeddingClient
	uploadDir string
}

// NewGenerationService creates a new GenerationService instance
func NewGenerationService(generator TextGenerator, repo ChunkRepositoryInterface, embedder EmbeddingClient, uploadDir string) *GenerationService {
	return &GenerationService{
		generator: generator,
		repo:      repo,
		embedder:  embedder,
		uploadDir: uploadDir,
	}
}

// GenerateTestPlan retrieves the chunks nearest the user's request and asks
// the model for a markdown test-plan table. The model text is returned
// verbatim; table shape is a soft contract the presentation layer handles.
func (s *GenerationService) GenerateTestPlan(ctx context.Context, userPrompt string) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, "GenerationService.GenerateTestPlan", telemetry.SpanAttributes{
		Operation: "generate_plan",
		Query:     userPrompt,
	})
	defer span.End()

	if s.generator == nil {
		return "", domain.ErrGenerationNotConfigured
	}
	if strings.TrimSpace(userPrompt) == "" {
		return "", domain.ErrEmptyPrompt
	}

	chunks, err := s.Retrieve(ctx, userPrompt, PlanRetrievalK)
	if err != nil {
		span.SetError(err)
		return "", err
	}

	contents := make([]string, 0, len(chunks))
	for _, c := range chunks {
		contents = append(contents, c.Content)
	}
	contextText := strings.Join(contents, "\n\n")

	prompt := fmt.Sprintf(planPromptTemplate, contextText, userPrompt)

	result, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		span.SetError(err)
		return "", domain.NewUpstreamError("llm call", err)
	}
	return result, nil
}

// GenerateScript builds a Selenium script for one test case, grounded on the
// nearest rule chunks and the full raw HTML of the last ingested page.
// Requires a prior ingest; otherwise returns a not-found error.
func (s *GenerationService) GenerateScript(ctx context.Context, testCase string) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, "GenerationService.GenerateScript", telemetry.SpanAttributes{
		Operation: "generate_script",
	})
	defer span.End()

	if s.generator == nil {
		return "", domain.ErrGenerationNotConfigured
	}
	if strings.TrimSpace(testCase) == "" {
		return "", domain.ErrEmptyTestCase
	}

	htmlPath := filepath.Join(s.uploadDir, domain.HTMLArtifactName)
	htmlContent, err := os.ReadFile(htmlPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrHTMLArtifactNotFound
		}
		return "", domain.NewUpstreamError("html artifact read", err)
	}

	chunks, err := s.Retrieve(ctx, testCase, ScriptRetrievalK)
	if err != nil {
		span.SetError(err)
		return "", err
	}

	rules := make([]string, 0, len(chunks))
	for _, c := range chunks {
		rules = append(rules, c.Content)
	}

	prompt := fmt.Sprintf(scriptPromptTemplate, testCase, strings.Join(rules, "\n"), string(htmlContent))

	result, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		span.SetError(err)
		return "", domain.NewUpstreamError("llm call", err)
	}
	return stripCodeFence(result), nil
}

// Retrieve embeds the query and returns the k nearest chunks from the
// store, nearest first.
func (s *GenerationService) Retrieve(ctx context.Context, query string, k int) ([]domain.StoredChunk, error) {
	embedding, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, domain.NewUpstreamError("query embedding", err)
	}

	chunks, err := s.repo.SearchByEmbedding(ctx, embedding, k)
	if err != nil {
		return nil, domain.NewUpstreamError("vector search", err)
	}
	return chunks, nil
}

// stripCodeFence removes a leading and trailing markdown code fence. It is
// cosmetic only: the remaining text is not validated as code.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}

	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	} else {
		trimmed = strings.TrimPrefix(trimmed, "```")
	}
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
