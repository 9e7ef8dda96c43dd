// Package chat implements the conversational retrieval-and-response engine:
// tag inference over a fixed vocabulary, concurrent context retrieval from
// the content store, system prompt construction, and a bounded tool-calling
// generation loop with a web search capability.
package chat

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/scrypster/folio/internal/llm"
)

// maxInferredTags caps how many tags one query may map to.
const maxInferredTags = 3

// classifierMaxTokens keeps the tag-inference call cheap; the expected
// output is a tiny JSON object.
const classifierMaxTokens = 100

// Classifier maps a free-text visitor query to topical tags drawn from the
// persona's fixed vocabulary, using a single constrained-JSON LLM call.
type Classifier struct {
	client      llm.ChatCompleter
	personas    *PersonaHolder
	temperature float64
}

// NewClassifier creates a classifier using the given chat client.
func NewClassifier(client llm.ChatCompleter, personas *PersonaHolder, temperature float64) *Classifier {
	return &Classifier{
		client:      client,
		personas:    personas,
		temperature: temperature,
	}
}

// InferTags returns 0 to 3 tags from the vocabulary that are semantically
// relevant to the query. Classification failure never aborts the pipeline:
// any transport or parse problem degrades to the empty set, which downstream
// means "no tag filter, rely on recency".
func (c *Classifier) InferTags(ctx context.Context, query string) []string {
	vocab := c.personas.Get().TagVocabulary

	result, err := c.client.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: tagInferencePrompt(query, vocab)},
		},
		Temperature: c.temperature,
		MaxTokens:   classifierMaxTokens,
	})
	if err != nil {
		log.Printf("classifier: tag inference call failed: %v", err)
		return []string{}
	}
	if result.Content == "" {
		log.Printf("classifier: tag inference returned empty response")
		return []string{}
	}

	tags, err := llm.ParseTagResponse(result.Content)
	if err != nil {
		log.Printf("classifier: failed to parse tag response: %v", err)
		return []string{}
	}

	return filterToVocabulary(tags, vocab)
}

// filterToVocabulary keeps only known tags, deduplicated in first-seen
// order, capped at maxInferredTags.
func filterToVocabulary(tags, vocab []string) []string {
	known := make(map[string]bool, len(vocab))
	for _, t := range vocab {
		known[t] = true
	}

	seen := make(map[string]bool, len(tags))
	filtered := []string{}
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if !known[tag] || seen[tag] {
			continue
		}
		seen[tag] = true
		filtered = append(filtered, tag)
		if len(filtered) == maxInferredTags {
			break
		}
	}
	return filtered
}

// tagInferencePrompt builds a strict JSON-only prompt for tag selection.
func tagInferencePrompt(query string, vocab []string) string {
	return fmt.Sprintf(`TASK: Select topical tags matching a question about a person's life and work.
OUTPUT: ONLY valid JSON. NO markdown. NO code blocks. NO explanation.

ALLOWED TAGS (ONLY these):
%s

RULES:
1. Pick 1-3 tags that are semantically relevant to the question.
2. Map synonyms to the closest allowed tag (e.g. "fun" means leisure).
3. If nothing fits, return an empty array.
4. Response MUST be exactly: {"tags":["tag1","tag2"]}

QUESTION:
%s

RESPOND WITH ONLY THIS JSON STRUCTURE (nothing else):
{"tags":["example"]}`, strings.Join(vocab, ", "), query)
}
