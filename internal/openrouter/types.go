// Package openrouter provides a minimal client for the OpenRouter
// chat-completions API and the classified errors its callers dispatch on.
package openrouter

import (
	"github.com/samber/lo"
)

// ChatRequest represents a chat completion request.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

// UserMessage builds a single-message conversation carrying the prompt.
func UserMessage(prompt string) []Message {
	return []Message{{Role: "user", Content: prompt}}
}

// ChatResponse represents a chat completion response.
type ChatResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Choice represents a completion choice.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage represents token usage information.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ErrorResponse is the error envelope returned for non-2xx replies.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// APIError is the detail inside an ErrorResponse. Code is left raw
// because providers return either a number or a string there.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    any    `json:"code"`
}

// FirstContent returns the first choice's message content.
// A missing choice or empty content yields a KindContentInvalid
// RequestError; only the first choice is ever consulted.
func (r *ChatResponse) FirstContent() (string, error) {
	if r == nil {
		return "", &RequestError{Kind: KindContentInvalid, Message: "Invalid API response: no choices found"}
	}
	first, ok := lo.First(r.Choices)
	if !ok {
		return "", &RequestError{Kind: KindContentInvalid, Message: "Invalid API response: no choices found"}
	}
	if first.Message.Content == "" {
		return "", &RequestError{Kind: KindContentInvalid, Message: "Invalid API response: empty message content"}
	}
	return first.Message.Content, nil
}
