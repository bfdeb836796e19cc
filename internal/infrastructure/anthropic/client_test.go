package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/jan-assistant/internal/domain/llm"
)

func TestClient_CreateMessage(t *testing.T) {
	var body map[string]any
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		apiKey = r.Header.Get("X-Api-Key")
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"stop_reason": "tool_use",
			"content": [
				{"type": "text", "text": "Let me check."},
				{"type": "tool_use", "id": "toolu_1", "name": "get_weather", "input": {"location": "Paris"}}
			],
			"usage": {"input_tokens": 12, "output_tokens": 7}
		}`))
	}))
	defer srv.Close()

	client := NewClient("sk-test", srv.URL, 5*time.Second)
	resp, err := client.CreateMessage(context.Background(), llm.MessageRequest{
		Model:     "claude-test",
		MaxTokens: 100,
		System:    "be nice",
		Messages: []llm.Message{
			llm.UserText("weather?"),
			{Role: llm.RoleAssistant, Content: []llm.ContentBlock{llm.ToolUseBlock("toolu_0", "get_weather", json.RawMessage(`{"location":"Rome"}`))}},
			{Role: llm.RoleUser, Content: []llm.ContentBlock{llm.ToolResultBlock("toolu_0", "sunny", false)}},
		},
		Tools: []llm.ToolDefinition{{
			Name:        "get_weather",
			Description: "Weather lookup",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{"location": map[string]any{"type": "string"}},
				"required":   []string{"location"},
			},
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "sk-test", apiKey)
	assert.Equal(t, "claude-test", body["model"])
	assert.EqualValues(t, 100, body["max_tokens"])
	require.Len(t, body["messages"], 3)
	require.Len(t, body["tools"], 1)

	assert.Equal(t, llm.StopToolUse, resp.StopReason)
	assert.Equal(t, 12, resp.Usage.InputTokens)
	text, ok := resp.FirstText()
	require.True(t, ok)
	assert.Equal(t, "Let me check.", text)
	uses := resp.ToolUses()
	require.Len(t, uses, 1)
	assert.Equal(t, "toolu_1", uses[0].ID)
	assert.JSONEq(t, `{"location":"Paris"}`, string(uses[0].Input))
}

func TestClient_CreateMessage_HTTPError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"boom"}}`))
	}))
	defer srv.Close()

	client := NewClient("sk-test", srv.URL, time.Second)
	_, err := client.CreateMessage(context.Background(), llm.MessageRequest{
		Model:    "claude-test",
		Messages: []llm.Message{llm.UserText("hi")},
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestToParams_RejectsUnknownRole(t *testing.T) {
	_, err := toParams(llm.MessageRequest{Messages: []llm.Message{{Role: "system"}}})
	require.Error(t, err)
}
