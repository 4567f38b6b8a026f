// Package gemini wraps the hosted Gemini API used for test-plan and script
// generation.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-pro"

// generationTemperature is kept low for consistent, reproducible output.
const generationTemperature = 0.1

// ErrNoAPIKey is returned when the Gemini API key is not set
var ErrNoAPIKey = errors.New("GOOGLE_API_KEY not set")

// Client wraps the Gemini SDK client.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client. The API key must be non-empty; callers
// gate on configuration before constructing one.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// GenerateText issues a single completion for the prompt and returns the
// model's text verbatim. One attempt, no retry; upstream errors propagate.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(generationTemperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("gemini: no text in response")
	}
	return sb.String(), nil
}

// Close releases the underlying SDK client.
func (c *Client) Close() error {
	return c.client.Close()
}
