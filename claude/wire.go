package claude

import (
	"encoding/json"
	"fmt"
)

// Wire types (i.e. types that go across a boundary)
// Request and response bodies for the Messages API

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	System      string    `json:"system,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
}

// ContentBlock is a discriminated union over the block shapes the API
// returns. Type "text" carries Text; type "tool_use" carries Name and Input.
type ContentBlock struct {
	Type  string          `json:"type"`
	Text  string          `json:"text,omitempty"`
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

type Response struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Content    []ContentBlock `json:"content"`
	Model      string         `json:"model"`
	StopReason string         `json:"stop_reason"`
	Usage      Usage          `json:"usage"`
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type APIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

var _ error = &APIError{}

func (e *APIError) Error() string {
	return fmt.Sprintf("error from Claude API: type=%s message=%s", e.Type, e.Message)
}

type errResponseBody struct {
	Type  string   `json:"type"`
	Error APIError `json:"error"`
}
