package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatBackend(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func okResponse(content string) string {
	resp := map[string]any{
		"id": "cmpl-1",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestGenerate_Success(t *testing.T) {
	var gotBody chatRequest
	srv := chatBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(okResponse("generated text")))
	})

	client := NewChatClient("test-key", srv.URL, "test-model")
	text, err := client.Generate(context.Background(), "hello", Options{})
	require.NoError(t, err)
	assert.Equal(t, "generated text", text)

	// Exactly one user-role message carrying the prompt
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "user", gotBody.Messages[0].Role)
	assert.Equal(t, "hello", gotBody.Messages[0].Content)
}

func TestGenerate_Options(t *testing.T) {
	var gotBody chatRequest
	srv := chatBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(okResponse("ok")))
	})

	temp := float32(0.6)
	client := NewChatClient("test-key", srv.URL, "test-model")
	_, err := client.Generate(context.Background(), "p", Options{Temperature: &temp, MaxTokens: 6000})
	require.NoError(t, err)

	require.NotNil(t, gotBody.Temperature)
	assert.InDelta(t, 0.6, float64(*gotBody.Temperature), 0.001)
	assert.Equal(t, 6000, gotBody.MaxTokens)
}

func TestGenerate_NoChoices(t *testing.T) {
	srv := chatBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"cmpl-1","choices":[]}`))
	})

	client := NewChatClient("test-key", srv.URL, "test-model")
	_, err := client.Generate(context.Background(), "p", Options{})
	require.Error(t, err)

	var svcErr *ServiceError
	assert.True(t, errors.As(err, &svcErr))
	assert.Contains(t, svcErr.Message, "no choices")
}

func TestGenerate_EmptyContent(t *testing.T) {
	srv := chatBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(okResponse("   ")))
	})

	client := NewChatClient("test-key", srv.URL, "test-model")
	_, err := client.Generate(context.Background(), "p", Options{})

	// An empty message must never be returned as valid content
	var svcErr *ServiceError
	require.Error(t, err)
	assert.True(t, errors.As(err, &svcErr))
}

func TestGenerate_RetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	srv := chatBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(okResponse("recovered")))
	})

	client := NewChatClient("test-key", srv.URL, "test-model")
	text, err := client.Generate(context.Background(), "p", Options{})
	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGenerate_RetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := chatBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	client := NewChatClient("test-key", srv.URL, "test-model")
	_, err := client.Generate(context.Background(), "p", Options{})
	require.Error(t, err)
	assert.Equal(t, int32(maxAttempts), calls.Load())
}

func TestGenerate_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := chatBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	})

	client := NewChatClient("test-key", srv.URL, "test-model")
	_, err := client.Generate(context.Background(), "p", Options{})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	client := NewChatClient("", "http://localhost:1", "test-model")
	_, err := client.Generate(context.Background(), "p", Options{})

	var svcErr *ServiceError
	require.Error(t, err)
	assert.True(t, errors.As(err, &svcErr))
}

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain json untouched",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n{\"a\": 1}\n  ",
			expected: `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}
