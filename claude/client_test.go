package claude_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dwpark/llm/claude"
)

func TestCreateMessage(t *testing.T) {
	var gotReq claude.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/messages", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("x-api-key"))
		require.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{
			"id": "msg_123",
			"type": "message",
			"role": "assistant",
			"content": [{"type": "text", "text": "Hello there"}],
			"model": "claude-3-haiku-20240307",
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 12, "output_tokens": 4}
		}`))
		require.NoError(t, err)
	}))
	defer server.Close()

	client := claude.NewClient(claude.NewConfig(server.URL, "test-key"))

	temperature := 0.6
	rsp, err := client.CreateMessage(claude.Request{
		Model:       claude.HAIKU,
		MaxTokens:   1024,
		Temperature: &temperature,
		System:      "be brief",
		Messages: []claude.Message{
			{Role: "user", Content: "hello claude how are you?"},
		},
	})
	require.NoError(t, err)

	require.Equal(t, claude.HAIKU, gotReq.Model)
	require.Equal(t, 1024, gotReq.MaxTokens)
	require.Equal(t, "be brief", gotReq.System)
	require.NotNil(t, gotReq.Temperature)
	require.Equal(t, 0.6, *gotReq.Temperature)
	require.Len(t, gotReq.Messages, 1)

	require.Equal(t, "msg_123", rsp.ID)
	require.Len(t, rsp.Content, 1)
	require.Equal(t, "text", rsp.Content[0].Type)
	require.Equal(t, "Hello there", rsp.Content[0].Text)
	require.Equal(t, "end_turn", rsp.StopReason)
	require.Equal(t, 12, rsp.Usage.InputTokens)
}

func TestCreateMessageAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, err := w.Write([]byte(`{
			"type": "error",
			"error": {"type": "authentication_error", "message": "invalid x-api-key"}
		}`))
		require.NoError(t, err)
	}))
	defer server.Close()

	client := claude.NewClient(claude.NewConfig(server.URL, "bad-key"))

	rsp, err := client.CreateMessage(claude.Request{
		Model:     claude.HAIKU,
		MaxTokens: 1024,
		Messages:  []claude.Message{{Role: "user", Content: "hello"}},
	})
	require.Nil(t, rsp)

	apiErr := &claude.APIError{}
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "authentication_error", apiErr.Type)
	require.Equal(t, "invalid x-api-key", apiErr.Message)
}

func TestCreateMessageToolUse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{
			"id": "msg_456",
			"type": "message",
			"role": "assistant",
			"content": [{"type": "tool_use", "id": "toolu_1", "name": "lookup", "input": {"q": "x"}}],
			"model": "claude-3-haiku-20240307",
			"stop_reason": "tool_use"
		}`))
		require.NoError(t, err)
	}))
	defer server.Close()

	client := claude.NewClient(claude.NewConfig(server.URL, "test-key"))

	rsp, err := client.CreateMessage(claude.Request{
		Model:     claude.HAIKU,
		MaxTokens: 1024,
		Messages:  []claude.Message{{Role: "user", Content: "look up x"}},
	})
	require.NoError(t, err)

	require.Len(t, rsp.Content, 1)
	require.Equal(t, "tool_use", rsp.Content[0].Type)
	require.Equal(t, "lookup", rsp.Content[0].Name)
	require.JSONEq(t, `{"q": "x"}`, string(rsp.Content[0].Input))
}

func TestCreateMessageUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, err := w.Write([]byte(`{"type": "message"}`))
		require.NoError(t, err)
	}))
	defer server.Close()

	client := claude.NewClient(claude.NewConfig(server.URL, "test-key"))

	_, err := client.CreateMessage(claude.Request{
		Model:     claude.HAIKU,
		MaxTokens: 1024,
		Messages:  []claude.Message{{Role: "user", Content: "hello"}},
	})
	require.ErrorContains(t, err, "unexpected status 502")
}
