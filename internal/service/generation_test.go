package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cloo-solutions/veriflow/internal/domain"
)

type MockChunkRepository struct {
	mock.Mock
}

func (m *MockChunkRepository) InsertChunks(ctx context.Context, chunks []domain.StoredChunk) (int, error) {
	args := m.Called(ctx, chunks)
	return args.Int(0), args.Error(1)
}

func (m *MockChunkRepository) SearchByEmbedding(ctx context.Context, embedding []float32, k int) ([]domain.StoredChunk, error) {
	args := m.Called(ctx, embedding, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoredChunk), args.Error(1)
}

type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

type MockGenerator struct {
	mock.Mock
	lastPrompt string
}

func (m *MockGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.lastPrompt = prompt
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func writeHTMLArtifact(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, domain.HTMLArtifactName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestGenerateTestPlan_NotConfigured(t *testing.T) {
	svc := NewGenerationService(nil, new(MockChunkRepository), new(MockEmbedder), t.TempDir())

	_, err := svc.GenerateTestPlan(context.Background(), "test the discount code")

	assert.ErrorIs(t, err, domain.ErrGenerationNotConfigured)
}

func TestGenerateTestPlan_EmptyPrompt(t *testing.T) {
	svc := NewGenerationService(new(MockGenerator), new(MockChunkRepository), new(MockEmbedder), t.TempDir())

	_, err := svc.GenerateTestPlan(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrEmptyPrompt)
}

func TestGenerateTestPlan_Success(t *testing.T) {
	repo := new(MockChunkRepository)
	embedder := new(MockEmbedder)
	generator := new(MockGenerator)
	svc := NewGenerationService(generator, repo, embedder, t.TempDir())

	query := "test the discount code feature"
	vec := []float32{0.1, 0.2, 0.3}
	retrieved := []domain.StoredChunk{
		{Content: "Discount codes must be 5-15% off", Metadata: domain.Metadata{Source: "rules.txt"}},
		{Content: "Invalid codes show an error banner", Metadata: domain.Metadata{Source: "rules.txt"}},
	}
	plan := "| Test_ID | Feature | Scenario | Expected_Result | Grounded_Source |\n| TC-001 | Discount | Valid code | 15% off | rules.txt |"

	embedder.On("GenerateEmbedding", mock.Anything, query).Return(vec, nil)
	repo.On("SearchByEmbedding", mock.Anything, vec, PlanRetrievalK).Return(retrieved, nil)
	generator.On("GenerateText", mock.Anything, mock.Anything).Return(plan, nil)

	result, err := svc.GenerateTestPlan(context.Background(), query)

	require.NoError(t, err)
	assert.Equal(t, plan, result)

	// Retrieved contents are joined double-newline separated, in order,
	// ahead of the user request.
	assert.Contains(t, generator.lastPrompt, "Discount codes must be 5-15% off\n\nInvalid codes show an error banner")
	assert.Contains(t, generator.lastPrompt, query)
	assert.Contains(t, generator.lastPrompt, "Test_ID, Feature, Scenario, Expected_Result, Grounded_Source")
	assert.Contains(t, generator.lastPrompt, "Do NOT hallucinate")

	repo.AssertExpectations(t)
	embedder.AssertExpectations(t)
	generator.AssertExpectations(t)
}

func TestGenerateTestPlan_EmbeddingFailure(t *testing.T) {
	repo := new(MockChunkRepository)
	embedder := new(MockEmbedder)
	generator := new(MockGenerator)
	svc := NewGenerationService(generator, repo, embedder, t.TempDir())

	embedder.On("GenerateEmbedding", mock.Anything, mock.Anything).Return(nil, errors.New("model offline"))

	_, err := svc.GenerateTestPlan(context.Background(), "anything")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "query embedding failed")
	generator.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything)
}

func TestGenerateTestPlan_LLMFailure(t *testing.T) {
	repo := new(MockChunkRepository)
	embedder := new(MockEmbedder)
	generator := new(MockGenerator)
	svc := NewGenerationService(generator, repo, embedder, t.TempDir())

	embedder.On("GenerateEmbedding", mock.Anything, mock.Anything).Return([]float32{0.5}, nil)
	repo.On("SearchByEmbedding", mock.Anything, mock.Anything, PlanRetrievalK).Return([]domain.StoredChunk{}, nil)
	generator.On("GenerateText", mock.Anything, mock.Anything).Return("", errors.New("quota exceeded"))

	_, err := svc.GenerateTestPlan(context.Background(), "anything")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm call failed")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerateScript_NotConfigured(t *testing.T) {
	svc := NewGenerationService(nil, new(MockChunkRepository), new(MockEmbedder), t.TempDir())

	_, err := svc.GenerateScript(context.Background(), "Test_ID: TC-001")

	assert.ErrorIs(t, err, domain.ErrGenerationNotConfigured)
}

func TestGenerateScript_NoHTMLArtifact(t *testing.T) {
	svc := NewGenerationService(new(MockGenerator), new(MockChunkRepository), new(MockEmbedder), t.TempDir())

	_, err := svc.GenerateScript(context.Background(), "Test_ID: TC-001")

	assert.ErrorIs(t, err, domain.ErrHTMLArtifactNotFound)
}

func TestGenerateScript_Success(t *testing.T) {
	dir := t.TempDir()
	html := `<form><input id="discount-code"/><button id="apply-discount">Apply</button></form>`
	writeHTMLArtifact(t, dir, html)

	repo := new(MockChunkRepository)
	embedder := new(MockEmbedder)
	generator := new(MockGenerator)
	svc := NewGenerationService(generator, repo, embedder, dir)

	testCase := "Test_ID: TC-001\nScenario: Apply valid code 'SAVE15'\nExpected_Result: Price reduces by 15%"
	vec := []float32{0.9}
	rules := []domain.StoredChunk{
		{Content: "Codes are 5-15% off", Metadata: domain.Metadata{Source: "rules.txt"}},
	}

	embedder.On("GenerateEmbedding", mock.Anything, testCase).Return(vec, nil)
	repo.On("SearchByEmbedding", mock.Anything, vec, ScriptRetrievalK).Return(rules, nil)
	generator.On("GenerateText", mock.Anything, mock.Anything).
		Return("```python\nfrom selenium import webdriver\n```", nil)

	script, err := svc.GenerateScript(context.Background(), testCase)

	require.NoError(t, err)
	assert.Equal(t, "from selenium import webdriver", script)

	assert.Contains(t, generator.lastPrompt, testCase)
	assert.Contains(t, generator.lastPrompt, "Codes are 5-15% off")
	assert.Contains(t, generator.lastPrompt, `id="discount-code"`)
	assert.Contains(t, generator.lastPrompt, "WebDriverWait")
	assert.Contains(t, generator.lastPrompt, "ONLY valid Python code")
}

func TestGenerateScript_EmptyTestCase(t *testing.T) {
	dir := t.TempDir()
	writeHTMLArtifact(t, dir, "<html></html>")
	svc := NewGenerationService(new(MockGenerator), new(MockChunkRepository), new(MockEmbedder), dir)

	_, err := svc.GenerateScript(context.Background(), "")

	assert.ErrorIs(t, err, domain.ErrEmptyTestCase)
}

func TestRetrieve_EmptyStore(t *testing.T) {
	repo := new(MockChunkRepository)
	embedder := new(MockEmbedder)
	svc := NewGenerationService(new(MockGenerator), repo, embedder, t.TempDir())

	embedder.On("GenerateEmbedding", mock.Anything, "query").Return([]float32{0.1}, nil)
	repo.On("SearchByEmbedding", mock.Anything, []float32{0.1}, 5).Return([]domain.StoredChunk{}, nil)

	chunks, err := svc.Retrieve(context.Background(), "query", 5)

	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"python fence", "```python\nprint('hi')\n```", "print('hi')"},
		{"bare fence", "```\nprint('hi')\n```", "print('hi')"},
		{"no fence", "print('hi')", "print('hi')"},
		{"fence with surrounding whitespace", "\n```python\nx = 1\n```\n", "x = 1"},
		{"inner fences preserved", "```python\na = '```'\nb = 2\n```", "a = '```'\nb = 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.in))
		})
	}
}
