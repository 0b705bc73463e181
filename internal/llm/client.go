// Package llm provides the single integration point with the external
// text-generation backend. The backend speaks an OpenAI-compatible chat
// completions protocol: one user-role message in, a list of choices out.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is the narrow generation interface the rest of the system depends
// on. Implementations must be stateless between calls: no conversation state
// is carried from one Generate to the next.
type Client interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// Options are the per-call generation parameters
type Options struct {
	Temperature *float32
	MaxTokens   int
}

// retry policy for transient backend failures
const (
	maxAttempts      = 3
	baseRetryBackoff = 250 * time.Millisecond
)

// ChatClient is a chat-completions Client over HTTP
type ChatClient struct {
	apiKey  string
	baseURL string
	model   string
	httpDo  *http.Client
}

// NewChatClient creates a chat-completions client. baseURL defaults to the
// Groq endpoint when empty.
func NewChatClient(apiKey, baseURL, model string) *ChatClient {
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	if model == "" {
		model = "openai/gpt-oss-20b"
	}
	return &ChatClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		httpDo:  &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float32      `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

// Generate submits the prompt as a single user-role message and returns the
// generated text. Transient failures (transport errors, 429, 5xx) are retried
// with bounded exponential backoff before a ServiceError is surfaced. An
// unusable response (no choices, empty message content) is never returned as
// an empty-string success.
func (c *ChatClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	if c.apiKey == "" {
		return "", &ServiceError{Message: "API key is required"}
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return "", &ServiceError{Message: "failed to encode request", Cause: err}
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := baseRetryBackoff << (attempt - 1)
			select {
			case <-ctx.Done():
				return "", &ServiceError{Message: "generation cancelled", Cause: ctx.Err()}
			case <-time.After(backoff):
			}
		}

		text, retryable, err := c.doRequest(ctx, body)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}

	return "", lastErr
}

// doRequest performs one chat-completions round trip. The second return
// value reports whether the failure is worth retrying.
func (c *ChatClient) doRequest(ctx context.Context, body []byte) (string, bool, error) {
	endpoint := fmt.Sprintf("%s/chat/completions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", false, &ServiceError{Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpDo.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, &ServiceError{Message: "generation cancelled", Cause: ctx.Err()}
		}
		return "", true, &ServiceError{Message: "backend unreachable", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		svcErr := &ServiceError{
			Message:    fmt.Sprintf("backend returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data))),
			StatusCode: resp.StatusCode,
		}
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return "", retryable, svcErr
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", false, &ServiceError{Message: "failed to decode response", Cause: err}
	}
	if len(out.Choices) == 0 {
		return "", false, &ServiceError{Message: "no choices in response"}
	}

	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", false, &ServiceError{Message: "response missing message content"}
	}
	return content, false, nil
}
