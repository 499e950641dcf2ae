package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Environment variables for provider selection
const (
	EnvProvider      = "PKGPILOT_LLM_PROVIDER"
	EnvDisableAI     = "PKGPILOT_DISABLE_AI"
	EnvGeminiAPIKey  = "GEMINI_API_KEY"
	EnvOpenAIAPIKey  = "OPENAI_API_KEY"
	EnvOpenAIBaseURL = "PKGPILOT_OPENAI_BASE_URL"
	EnvModel         = "PKGPILOT_LLM_MODEL"
)

// NewFromEnv creates a completer based on environment variables.
// Priority:
//  1. PKGPILOT_DISABLE_AI set → no completer (privacy opt-out)
//  2. PKGPILOT_LLM_PROVIDER (gemini, openai, none)
//  3. Check for API keys: GEMINI_API_KEY, OPENAI_API_KEY
//  4. No keys found → no completer
//
// A nil Completer with a nil error means the capability is absent; the
// pipeline then runs with rule-based scores only.
func NewFromEnv(ctx context.Context) (Completer, error) {
	if Disabled() {
		return nil, nil
	}

	provider := strings.ToLower(os.Getenv(EnvProvider))
	geminiKey := os.Getenv(EnvGeminiAPIKey)
	openaiKey := os.Getenv(EnvOpenAIAPIKey)
	model := os.Getenv(EnvModel)

	// Explicit provider selection
	if provider != "" {
		switch provider {
		case ProviderGemini:
			return NewGeminiClient(ctx, geminiKey, model)
		case ProviderOpenAI:
			return NewOpenAIClient(openaiKey, os.Getenv(EnvOpenAIBaseURL), model)
		case "none":
			return nil, nil
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownModel, provider)
		}
	}

	// Auto-detect based on available API keys
	if geminiKey != "" {
		return NewGeminiClient(ctx, geminiKey, model)
	}
	if openaiKey != "" {
		return NewOpenAIClient(openaiKey, os.Getenv(EnvOpenAIBaseURL), model)
	}

	return nil, nil
}

// Disabled reports whether the privacy opt-out is set: when true no project
// context may leave the machine, regardless of configured providers.
func Disabled() bool {
	switch strings.ToLower(os.Getenv(EnvDisableAI)) {
	case "", "0", "false":
		return false
	default:
		return true
	}
}
