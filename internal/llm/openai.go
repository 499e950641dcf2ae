package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// ProviderOpenAI is the OpenAI-compatible provider name.
	ProviderOpenAI = "openai"

	// DefaultOpenAIModel is the default chat model.
	DefaultOpenAIModel = "gpt-4o-mini"

	// DefaultOpenAIBaseURL is the hosted endpoint; override for compatible
	// gateways.
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"

	completionTimeout = 30 * time.Second
)

// OpenAIClient implements Completer against the OpenAI chat-completions
// API, or any compatible endpoint.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOpenAIClient creates an OpenAI-backed completer.
func NewOpenAIClient(apiKey, baseURL, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing API key", ErrNoProvider)
	}
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: completionTimeout,
		},
	}, nil
}

// Complete implements Completer.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	reqBody := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": temperature,
	}
	if maxTokens > 0 {
		reqBody["max_tokens"] = maxTokens
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: api error %d: %s", ErrProviderFailed, resp.StatusCode, string(errBody))
	}

	var apiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrProviderFailed, err)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrProviderFailed)
	}

	return apiResp.Choices[0].Message.Content, nil
}

// Provider implements Completer.
func (c *OpenAIClient) Provider() string {
	return ProviderOpenAI
}

// Close implements Completer.
func (c *OpenAIClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

var _ Completer = (*OpenAIClient)(nil)
