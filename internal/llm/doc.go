// Package llm provides the optional language-model capability used for
// rescoring. Providers (Google Gemini, OpenAI-compatible endpoints) sit
// behind the Completer interface; an env-driven factory selects one at
// startup or reports the capability absent.
//
// The capability is strictly optional: a nil Completer from NewFromEnv is
// not an error, and PKGPILOT_DISABLE_AI forces it off so no project context
// leaves the machine.
package llm
