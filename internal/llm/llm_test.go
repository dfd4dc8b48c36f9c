package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Method        string
	Path          string
	Authorization string
	Body          struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Stream    bool   `json:"stream"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
}

func newCompletionServer(t *testing.T, status int, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()

	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Method = r.Method
		captured.Path = r.URL.Path
		captured.Authorization = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured.Body))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, captured
}

const okResponse = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "model": "gpt-4o",
  "choices": [
    {"index": 0, "message": {"role": "assistant", "content": "  feat: add a.txt\n"}, "finish_reason": "stop"}
  ],
  "usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
}`

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Options{})
	assert.Equal(t, DefaultModel, client.opts.Model)
	assert.Equal(t, "gpt-4o", DefaultModel)
	assert.Equal(t, 100, client.opts.MaxTokens)
}

func TestComplete_Success(t *testing.T) {
	server, captured := newCompletionServer(t, http.StatusOK, okResponse)
	client := NewClient(Options{APIBase: server.URL + "/v1"})

	content, err := client.Complete(context.Background(), "sk-test", "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "  feat: add a.txt\n", content)

	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "/v1/chat/completions", captured.Path)
	assert.Equal(t, "Bearer sk-test", captured.Authorization)
	assert.Equal(t, DefaultModel, captured.Body.Model)
	assert.Equal(t, DefaultMaxTokens, captured.Body.MaxTokens)
	assert.False(t, captured.Body.Stream)
	require.Len(t, captured.Body.Messages, 1)
	assert.Equal(t, "user", captured.Body.Messages[0].Role)
	assert.Equal(t, "the prompt", captured.Body.Messages[0].Content)
}

func TestComplete_CustomModel(t *testing.T) {
	server, captured := newCompletionServer(t, http.StatusOK, okResponse)
	client := NewClient(Options{APIBase: server.URL, Model: "gpt-4o-mini", MaxTokens: 42})

	_, err := client.Complete(context.Background(), "sk-test", "p")
	require.NoError(t, err)
	assert.Equal(t, "/chat/completions", captured.Path)
	assert.Equal(t, "gpt-4o-mini", captured.Body.Model)
	assert.Equal(t, 42, captured.Body.MaxTokens)
}

func TestComplete_MissingContent(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no choices", body: `{"id":"x","choices":[]}`},
		{name: "null content", body: `{"id":"x","choices":[{"index":0,"message":{"role":"assistant","content":null}}]}`},
		{name: "no message", body: `{"id":"x","choices":[{"index":0}]}`},
		{name: "number content", body: `{"id":"x","choices":[{"index":0,"message":{"role":"assistant","content":42}}]}`},
		{name: "boolean content", body: `{"id":"x","choices":[{"index":0,"message":{"role":"assistant","content":true}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newCompletionServer(t, http.StatusOK, tt.body)
			client := NewClient(Options{APIBase: server.URL})

			_, err := client.Complete(context.Background(), "sk-test", "p")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNoMessage)
			assert.True(t, strings.HasPrefix(err.Error(), "failed to extract commit message from response"), err.Error())
		})
	}
}

func TestComplete_HTTPError(t *testing.T) {
	server, _ := newCompletionServer(t, http.StatusUnauthorized,
		`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`)
	client := NewClient(Options{APIBase: server.URL})

	_, err := client.Complete(context.Background(), "sk-bad", "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to call LLM")
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestComplete_HTTPErrorWithMalformedBody(t *testing.T) {
	server, _ := newCompletionServer(t, http.StatusInternalServerError, `{"error":{"message":42}}`)
	client := NewClient(Options{APIBase: server.URL})

	_, err := client.Complete(context.Background(), "sk-test", "p")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMessage)
	assert.Contains(t, err.Error(), "failed to call LLM")
}

func TestComplete_TransportError(t *testing.T) {
	client := NewClient(Options{APIBase: "http://127.0.0.1:1"})

	_, err := client.Complete(context.Background(), "sk-test", "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to call LLM")
}

func TestComplete_MissingAPIKey(t *testing.T) {
	client := NewClient(Options{APIBase: "http://127.0.0.1:1"})

	_, err := client.Complete(context.Background(), "", "p")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestComplete_CancelledContext(t *testing.T) {
	server, _ := newCompletionServer(t, http.StatusOK, okResponse)
	client := NewClient(Options{APIBase: server.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Complete(ctx, "sk-test", "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
