package chat

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/scrypster/folio/internal/llm"
	"github.com/scrypster/folio/pkg/types"
)

const (
	// maxToolRounds bounds the generation loop: a model that keeps
	// requesting tools can trigger at most this many completion calls.
	maxToolRounds = 5

	// generatorMaxTokens caps the length of any single completion.
	generatorMaxTokens = 1024

	// fallbackResponse is returned when the loop exhausts its rounds
	// without the model ever producing text.
	fallbackResponse = "I'm sorry, I couldn't generate a response."

	webSearchToolName = "web_search"
)

// WebSearcher performs a web search and always returns presentable text.
// *search.Adapter satisfies this.
type WebSearcher interface {
	Search(ctx context.Context, query string) string
}

// generation loop states
type genState int

const (
	stateAwaitModel genState = iota
	stateExecuteTools
	stateDone
)

// Generator drives the bounded tool-call loop: it sends the conversation to
// the model, executes any requested web searches, feeds results back, and
// repeats until the model answers in text or the round budget runs out.
type Generator struct {
	client      llm.ChatCompleter
	searcher    WebSearcher
	temperature float64
}

// NewGenerator creates a response generator.
func NewGenerator(client llm.ChatCompleter, searcher WebSearcher, temperature float64) *Generator {
	return &Generator{
		client:      client,
		searcher:    searcher,
		temperature: temperature,
	}
}

// webSearchTool declares the single capability the model may invoke.
func webSearchTool() llm.Tool {
	return llm.Tool{
		Name:        webSearchToolName,
		Description: "Search the web for current information not covered by what you already know. Use for news, prices, weather, release dates, and other specific current facts.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The search query",
				},
			},
			"required": []string{"query"},
		},
	}
}

// Generate produces the assistant's reply to the latest user message, given
// the rendered system prompt and the prior conversation turns.
func (g *Generator) Generate(ctx context.Context, systemPrompt, userMessage string, history []types.ChatTurn) (string, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userMessage})

	tools := []llm.Tool{webSearchTool()}

	state := stateAwaitModel
	rounds := 0
	var result *llm.ChatResult

	// The budget counts completion calls, not state transitions: a model
	// that tool-calls every round gets exactly maxToolRounds chances.
	for state != stateDone && rounds < maxToolRounds {
		switch state {
		case stateAwaitModel:
			rounds++
			var err error
			result, err = g.client.Chat(ctx, llm.ChatRequest{
				Messages:    messages,
				Tools:       tools,
				Temperature: g.temperature,
				MaxTokens:   generatorMaxTokens,
			})
			if err != nil {
				return "", fmt.Errorf("chat completion failed: %w", err)
			}
			if result.HasToolCalls() {
				state = stateExecuteTools
			} else {
				state = stateDone
			}

		case stateExecuteTools:
			messages = append(messages, llm.Message{
				Role:      llm.RoleAssistant,
				Content:   result.Content,
				ToolCalls: result.ToolCalls,
			})
			for _, call := range result.ToolCalls {
				messages = append(messages, llm.Message{
					Role:       llm.RoleTool,
					Content:    g.executeToolCall(ctx, call),
					ToolCallID: call.ID,
				})
			}
			state = stateAwaitModel
		}
	}

	// Covers both a clean finish and exhaustion on a reply that carried
	// text alongside its tool calls.
	if result != nil && strings.TrimSpace(result.Content) != "" {
		return result.Content, nil
	}

	// Budget exhausted without any text in the final reply. Prefer text
	// the model produced in an earlier round over the canned fallback.
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == llm.RoleAssistant && strings.TrimSpace(messages[i].Content) != "" {
			return messages[i].Content, nil
		}
	}
	return fallbackResponse, nil
}

// executeToolCall runs one tool call and returns the result text to feed
// back to the model. Failures become descriptive strings, never errors: the
// model is expected to work around a failed search.
func (g *Generator) executeToolCall(ctx context.Context, call llm.ToolCall) string {
	if call.Name != webSearchToolName {
		log.Printf("generator: model requested unknown tool %q", call.Name)
		return fmt.Sprintf("Error: unknown tool %q", call.Name)
	}

	var args struct {
		Query string `json:"query"`
	}
	if err := llm.ParseToolArguments(call.Arguments, &args); err != nil {
		log.Printf("generator: malformed web_search arguments: %v", err)
		return "Error: the search arguments could not be parsed."
	}
	if strings.TrimSpace(args.Query) == "" {
		return "Error: the search query was empty."
	}

	return g.searcher.Search(ctx, args.Query)
}
