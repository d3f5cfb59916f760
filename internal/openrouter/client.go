package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/CodexForgeBR/openrouter-helper/internal/ratelimit"
)

const (
	// DefaultBaseURL is the OpenRouter API root.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// DefaultReferer identifies the calling project to OpenRouter's
	// attribution headers.
	DefaultReferer = "https://github.com"

	chatCompletionsPath = "/chat/completions"

	maxErrorBodyExcerpt = 200
)

// Client calls the OpenRouter chat-completions endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	title      string
	httpClient *http.Client
}

// NewClient creates a client for the given API root. The timeout bounds
// each request end to end, including reading the response body.
func NewClient(baseURL, apiKey, title string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		title:      title,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateChatCompletion performs a single chat-completions request.
// Failures come back as *RequestError classified for retry dispatch,
// except a cancelled parent context, which surfaces as the context's
// own error.
func (c *Client) CreateChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode chat request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatCompletionsPath, bytes.NewBuffer(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build chat request")
	}
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("HTTP-Referer", DefaultReferer)
	httpReq.Header.Set("X-Title", c.title)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RequestError{Kind: KindConnectivity, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RequestError{Kind: KindConnectivity, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		reqErr := &RequestError{
			Kind:       classifyStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, data),
		}
		if reqErr.Kind == KindRateLimit {
			reqErr.RateLimit = ratelimit.FromHeaders(resp.Header, time.Now())
		}
		return nil, reqErr
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(data, &chatResp); err != nil {
		return nil, &RequestError{
			Kind:    KindContentInvalid,
			Message: fmt.Sprintf("invalid response body: %v", err),
			Err:     err,
		}
	}
	return &chatResp, nil
}

// errorMessage extracts a human-readable detail from an error reply.
// It prefers the JSON error envelope, then a trimmed body excerpt,
// then the standard status text.
func errorMessage(status int, body []byte) string {
	var envelope ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return http.StatusText(status)
	}
	if len(text) > maxErrorBodyExcerpt {
		text = text[:maxErrorBodyExcerpt]
	}
	return text
}
