package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	// ProviderGemini is the Google Gemini provider name.
	ProviderGemini = "gemini"

	// DefaultGeminiModel balances quality and latency for rescoring.
	DefaultGeminiModel = "gemini-1.5-flash"
)

// GeminiClient implements Completer using the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed completer.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing API key", ErrNoProvider)
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

// Complete implements Completer.
func (c *GeminiClient) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(temperature)
	if maxTokens > 0 {
		model.SetMaxOutputTokens(int32(maxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}

	return extractText(resp)
}

// Provider implements Completer.
func (c *GeminiClient) Provider() string {
	return ProviderGemini
}

// Close implements Completer.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractText pulls the text parts out of a Gemini response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", ErrProviderFailed)
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no content in response", ErrProviderFailed)
	}

	var out string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	if out == "" {
		return "", fmt.Errorf("%w: no text parts in response", ErrProviderFailed)
	}
	return out, nil
}

var _ Completer = (*GeminiClient)(nil)
