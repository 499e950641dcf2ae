package llm

import (
	"context"
	"errors"
	"strings"
)

// Common errors
var (
	ErrEmptyPrompt    = errors.New("prompt cannot be empty")
	ErrProviderFailed = errors.New("language model provider failed")
	ErrNoProvider     = errors.New("no language model provider configured")
	ErrUnknownModel   = errors.New("unknown language model provider")
)

// Completer is the minimal language-model capability the rescorer needs:
// one bounded completion call. Implementations apply their own request
// timeout; callers treat any error as "enrichment unavailable".
type Completer interface {
	// Complete returns the model's text response for prompt, limited to
	// maxTokens output tokens.
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)

	// Provider returns the provider name for logging.
	Provider() string

	// Close releases any resources held by the client.
	Close() error
}

// StripFences removes a surrounding markdown code fence from a model
// response, if present. Models frequently wrap JSON output in ```json
// blocks even when asked not to.
func StripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
