// Package llm is a thin wrapper around the Claude Messages API client used by
// the agent services. It keeps one process-wide client and exposes single-shot
// and history-aware chat calls.
//
// The package-level client is not guarded by a lock. Callers that invoke
// Configure concurrently with Chat or GetClient must serialize those calls
// themselves.
package llm

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dwpark/llm/claude"
	"github.com/dwpark/llm/internal/config"
)

// Defaults applied when the caller passes a zero value.
const (
	DefaultMaxTokens   = 1024
	DefaultTemperature = 0.6
)

// ErrInvalidResponse reports a response from the Claude API that does not
// carry a usable first content block. Only ChatWithHistory returns it.
var ErrInvalidResponse = errors.New("invalid response from Claude API")

// Process-wide client, built on first use or via Configure.
var (
	client        *claude.Client
	currentAPIKey = config.Get().APIKey
)

func newClient() *claude.Client {
	return claude.NewClient(claude.NewConfig(config.Get().BaseURL, currentAPIKey))
}

// Configure rebuilds the process-wide client with a custom API key.
//
// baseURL is accepted for compatibility with other provider wrappers and
// ignored; the endpoint comes from the process defaults. A non-empty apiKey
// replaces the stored key. The cached client is replaced unconditionally, so
// every later call goes through the returned instance. An empty stored key is
// not an error here; it surfaces on the first real API call.
func Configure(baseURL, apiKey string) *claude.Client {
	if apiKey != "" {
		currentAPIKey = apiKey
	}

	client = newClient()
	return client
}

// GetClient returns the cached client, constructing it on first use.
func GetClient() *claude.Client {
	if client == nil {
		client = newClient()
	}
	return client
}

// resolveModel maps the "default" sentinel (or an empty name) to the
// configured default model.
func resolveModel(model string) string {
	if model == "" || model == "default" {
		return config.Get().Model
	}
	return model
}

// Chat sends a single user message and returns the model's reply text.
//
// A model of "" or "default" resolves to the configured default, and
// maxTokens <= 0 resolves to DefaultMaxTokens. This path does not check the
// response shape: API errors come back from the client, and a response with
// no content blocks panics on the index.
func Chat(message, model string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	rsp, err := GetClient().CreateMessage(claude.Request{
		Model:     resolveModel(model),
		MaxTokens: maxTokens,
		Messages:  []claude.Message{{Role: "user", Content: message}},
	})
	if err != nil {
		return "", err
	}

	return rsp.Content[0].Text, nil
}

// ChatWithHistory sends a conversation and returns the model's reply text.
//
// Messages with role "system" are pulled out of the sequence and carried in
// the request's dedicated system field; when several are present the last one
// wins. The remaining messages keep their order. Zero maxTokens and
// temperature resolve to DefaultMaxTokens and DefaultTemperature.
//
// Unlike Chat, the response shape is validated: a nil or empty content list,
// or a first block that is neither text nor tool_use, returns an error
// wrapping ErrInvalidResponse.
func ChatWithHistory(messages []claude.Message, model string, maxTokens int, temperature float64) (string, error) {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	if temperature <= 0 {
		temperature = DefaultTemperature
	}

	// The Anthropic API has a separate top-level field for system prompts
	// rather than a system role in the message list.
	var systemPrompt string
	filtered := make([]claude.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == "system" {
			systemPrompt = msg.Content
			continue
		}
		filtered = append(filtered, msg)
	}

	request := claude.Request{
		Model:       resolveModel(model),
		MaxTokens:   maxTokens,
		Temperature: &temperature,
		Messages:    filtered,
	}
	if systemPrompt != "" {
		request.System = systemPrompt
	}

	rsp, err := GetClient().CreateMessage(request)
	if err != nil {
		return "", err
	}

	return extractText(rsp)
}

func extractText(rsp *claude.Response) (string, error) {
	if rsp == nil {
		return "", fmt.Errorf("%w: nil response", ErrInvalidResponse)
	}
	if rsp.Content == nil {
		return "", fmt.Errorf("%w: response without content: %+v", ErrInvalidResponse, rsp)
	}
	if len(rsp.Content) == 0 {
		return "", fmt.Errorf("%w: empty content list", ErrInvalidResponse)
	}

	block := rsp.Content[0]
	switch block.Type {
	case "text":
		return block.Text, nil
	case "tool_use":
		return fmt.Sprintf("<|channel|>commentary to=functions.%s<|message|>%s<|call|>", block.Name, toolInputString(block.Input)), nil
	}

	return "", fmt.Errorf("%w: unexpected content type %q", ErrInvalidResponse, block.Type)
}

// toolInputString renders a tool_use input for the commentary template. A
// JSON string is unquoted; an object keeps its wire bytes.
func toolInputString(input json.RawMessage) string {
	var s string
	if err := json.Unmarshal(input, &s); err == nil {
		return s
	}
	return string(input)
}
