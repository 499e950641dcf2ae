package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIComplete_ReturnsMessageContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])
		assert.EqualValues(t, 2000, body["max_tokens"])

		fmt.Fprint(w, `{"choices": [{"message": {"content": "[]"}}]}`)
	}))
	defer server.Close()

	client, err := NewOpenAIClient("sk-test", server.URL, "")
	require.NoError(t, err)
	defer func() {
		_ = client.Close()
	}()

	out, err := client.Complete(context.Background(), "rescore these", 2000, 0.2)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestOpenAIComplete_EmptyPrompt(t *testing.T) {
	client, err := NewOpenAIClient("sk-test", "http://unused.invalid", "")
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "", 100, 0.2)
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestOpenAIComplete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewOpenAIClient("sk-test", server.URL, "")
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "hello", 100, 0.2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProviderFailed)
	assert.Contains(t, err.Error(), "429")
}

func TestOpenAIComplete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	}))
	defer server.Close()

	client, err := NewOpenAIClient("sk-test", server.URL, "")
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "hello", 100, 0.2)
	assert.ErrorIs(t, err, ErrProviderFailed)
}

func TestNewOpenAIClient_MissingKey(t *testing.T) {
	_, err := NewOpenAIClient("", "", "")
	assert.ErrorIs(t, err, ErrNoProvider)
}
