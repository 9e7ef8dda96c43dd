package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewOpenAIClient(OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
}

func TestOpenAIClient_ChatPlainText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req["model"])
		assert.Nil(t, req["tools"], "no tools declared, none should be sent")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"Hello there."}}]}`))
	})

	result, err := client.Chat(context.Background(), ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "Hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello there.", result.Content)
	assert.False(t, result.HasToolCalls())
}

func TestOpenAIClient_ChatDeclaresTools(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Tools      []map[string]interface{} `json:"tools"`
			ToolChoice string                   `json:"tool_choice"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Tools, 1)
		assert.Equal(t, "auto", req.ToolChoice)

		w.Write([]byte(`{"choices":[{"message":{
			"content":"",
			"tool_calls":[{"id":"call_1","type":"function",
				"function":{"name":"web_search","arguments":"{\"query\":\"go 1.24\"}"}}]
		}}]}`))
	})

	result, err := client.Chat(context.Background(), ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "What is new in Go?"}},
		Tools: []Tool{{
			Name:        "web_search",
			Description: "Search the web",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{"type": "string"},
				},
			},
		}},
	})
	require.NoError(t, err)
	require.True(t, result.HasToolCalls())
	assert.Equal(t, "call_1", result.ToolCalls[0].ID)
	assert.Equal(t, "web_search", result.ToolCalls[0].Name)
	assert.JSONEq(t, `{"query":"go 1.24"}`, result.ToolCalls[0].Arguments)
}

func TestOpenAIClient_ChatRoundTripsToolResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role       string `json:"role"`
				ToolCallID string `json:"tool_call_id"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 3)
		assert.Equal(t, "tool", req.Messages[2].Role)
		assert.Equal(t, "call_1", req.Messages[2].ToolCallID)

		w.Write([]byte(`{"choices":[{"message":{"content":"Go 1.24 was released."}}]}`))
	})

	result, err := client.Chat(context.Background(), ChatRequest{
		Messages: []Message{
			{Role: RoleUser, Content: "What is new in Go?"},
			{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "call_1", Name: "web_search", Arguments: `{"query":"go"}`}}},
			{Role: RoleTool, ToolCallID: "call_1", Content: "Go 1.24 release notes..."},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Go 1.24 was released.", result.Content)
}

func TestOpenAIClient_ChatServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	})

	_, err := client.Chat(context.Background(), ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "Hi"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestOpenAIClient_ChatNoChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.Chat(context.Background(), ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "Hi"}},
	})
	assert.Error(t, err)
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	failures := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		failures++
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	req := ChatRequest{Messages: []Message{{Role: RoleUser, Content: "Hi"}}}
	for i := 0; i < 3; i++ {
		_, err := client.Chat(context.Background(), req)
		require.Error(t, err)
	}

	// Circuit is now open; the next call must be rejected without an HTTP hit.
	before := failures
	_, err := client.Chat(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
	assert.Equal(t, before, failures)
}
