package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/scrypster/folio/pkg/types"
)

// maxHistoryTurns bounds how much caller-supplied conversation history is
// replayed into the model.
const maxHistoryTurns = 20

// Service is the chat engine facade: one call per visitor message, no state
// kept between requests.
type Service struct {
	classifier *Classifier
	assembler  *Assembler
	prompts    *PromptBuilder
	generator  *Generator
	timeout    time.Duration
}

// NewService wires the pipeline stages into a chat service. timeout bounds
// the whole request, classification through generation.
func NewService(classifier *Classifier, assembler *Assembler, prompts *PromptBuilder, generator *Generator, timeout time.Duration) *Service {
	return &Service{
		classifier: classifier,
		assembler:  assembler,
		prompts:    prompts,
		generator:  generator,
		timeout:    timeout,
	}
}

// Chat answers one visitor message. History is the caller's record of prior
// turns; it is replayed into the model but never persisted here.
func (s *Service) Chat(ctx context.Context, message string, history []types.ChatTurn) (*types.ChatResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("message must not be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Classification degrades to no tags; retrieval then falls back to
	// recency alone.
	tags := s.classifier.InferTags(ctx, message)
	log.Printf("chat: inferred tags %v", tags)

	chatCtx, err := s.assembler.BuildContext(ctx, message, tags)
	if err != nil {
		return nil, fmt.Errorf("failed to generate chat response: %w", err)
	}

	systemPrompt := s.prompts.BuildSystemPrompt(chatCtx)

	reply, err := s.generator.Generate(ctx, systemPrompt, message, trimHistory(history))
	if err != nil {
		return nil, fmt.Errorf("failed to generate chat response: %w", err)
	}

	return &types.ChatResponse{
		Message:     reply,
		ContextUsed: chatCtx.Counts(),
	}, nil
}

// trimHistory keeps the most recent turns.
func trimHistory(history []types.ChatTurn) []types.ChatTurn {
	if len(history) <= maxHistoryTurns {
		return history
	}
	return history[len(history)-maxHistoryTurns:]
}
