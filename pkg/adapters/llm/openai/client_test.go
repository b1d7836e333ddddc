package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/todomcp/pkg/domain"
	"github.com/aretw0/todomcp/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completionReply = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1700000000,
	"model": "test-model",
	"choices": [{
		"index": 0,
		"finish_reason": "stop",
		"message": {"role": "assistant", "content": "{\"intent\": \"list_tasks\", \"params\": {\"filter\": \"today\"}}"}
	}],
	"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
}`

func TestComplete_RequestAndReply(t *testing.T) {
	var captured map[string]any
	var auth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionReply))
	}))
	defer server.Close()

	c := New("secret", "test-model", WithBaseURL(server.URL))
	out, err := c.Complete(context.Background(), ports.CompletionRequest{
		System:      "classify",
		Examples:    []ports.Exchange{{User: "u1", Assistant: "a1"}},
		Prompt:      "Show me my tasks for today",
		Temperature: 0.1,
		MaxTokens:   200,
	})
	require.NoError(t, err)

	assert.Equal(t, `{"intent": "list_tasks", "params": {"filter": "today"}}`, out)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "test-model", captured["model"])
	assert.InDelta(t, 0.1, captured["temperature"], 1e-9)
	assert.EqualValues(t, 200, captured["max_tokens"])

	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 4)

	roles := make([]string, 0, len(messages))
	for _, m := range messages {
		roles = append(roles, m.(map[string]any)["role"].(string))
	}
	assert.Equal(t, []string{"system", "user", "assistant", "user"}, roles)
}

func TestComplete_NonOKStatus(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "overloaded", "type": "server_error"}}`))
	}))
	defer server.Close()

	c := New("secret", "test-model", WithBaseURL(server.URL))
	_, err := c.Complete(context.Background(), ports.CompletionRequest{Prompt: "hi"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=500")
	assert.Equal(t, 1, calls, "requests must not be retried")
}

func TestComplete_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := New("secret", "test-model", WithBaseURL(url), WithTimeout(time.Second))
	_, err := c.Complete(context.Background(), ports.CompletionRequest{Prompt: "hi"})

	var netErr *domain.NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestComplete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "x", "object": "chat.completion", "created": 1, "model": "m", "choices": []}`))
	}))
	defer server.Close()

	c := New("secret", "m", WithBaseURL(server.URL))
	_, err := c.Complete(context.Background(), ports.CompletionRequest{Prompt: "hi"})
	assert.ErrorContains(t, err, "no choices")
}

func TestNewGroq_Defaults(t *testing.T) {
	c := NewGroq("key", "")
	assert.Equal(t, "groq-"+DefaultGroqModel, c.Name())
}
