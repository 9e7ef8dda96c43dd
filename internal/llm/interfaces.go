// Package llm provides the chat-completion client used by the Folio chat
// engine: message and tool-call types, an OpenAI-compatible HTTP client, a
// circuit breaker guarding outbound calls, and JSON recovery helpers for
// model output that ignores formatting instructions.
package llm

import "context"

// Message roles in a chat-completion conversation.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one entry in a chat-completion message sequence.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall // set on assistant messages that request tool execution
	ToolCallID string     // set on tool messages, ties the result to its call
}

// ToolCall is a structured request from the model to execute a named
// capability. Arguments is the raw JSON argument payload as produced by the
// model; it may be malformed and must be parsed defensively.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Tool declares a capability the model may invoke. Parameters is a JSON
// schema object describing the arguments.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// ChatRequest is one chat-completion call.
type ChatRequest struct {
	Messages    []Message
	Tools       []Tool  // optional; when set, tool_choice is "auto"
	Temperature float64 // 0 means provider default
	MaxTokens   int     // 0 means provider default
}

// ChatResult is the model's reply: either plain text, one or more tool
// calls, or both.
type ChatResult struct {
	Content   string
	ToolCalls []ToolCall
}

// HasToolCalls reports whether the model requested tool execution.
func (r *ChatResult) HasToolCalls() bool {
	return len(r.ToolCalls) > 0
}

// ChatCompleter is the interface for multi-turn chat completion with
// optional tool declarations. Both the tag classifier and the response
// generator depend on this interface, so tests can inject fakes.
type ChatCompleter interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResult, error)
	GetModel() string
}
