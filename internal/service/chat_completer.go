package service

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

// ChatRequest is one system+user exchange with the language model.
type ChatRequest struct {
	SystemPrompt string
	UserPrompt   string
	// Structured asks the model for a single JSON object instead of free text.
	Structured bool
}

// ChatCompleter performs a single, unretried model call.
type ChatCompleter interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// UpstreamError is a non-2xx answer from the model endpoint.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("chat completion failed with status %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("chat completion failed with status %d", e.StatusCode)
}

// Message is the endpoint's own error text, if the body carries one.
func (e *UpstreamError) Message() string {
	if !gjson.Valid(e.Body) {
		return ""
	}
	return gjson.Get(e.Body, "error.message").String()
}

// Details returns the decoded error body, or the raw text when it is not JSON.
func (e *UpstreamError) Details() any {
	if e.Body == "" {
		return nil
	}
	if gjson.Valid(e.Body) {
		return gjson.Parse(e.Body).Value()
	}
	return e.Body
}
