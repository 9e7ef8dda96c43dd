// Package search provides the web search capability exposed to the chat
// model as a tool. It queries an ordered chain of providers and normalizes
// whatever comes back into a single text blob; it never returns an error to
// the caller, only apology text when every provider fails.
package search

import (
	"context"
	"log"
)

// Fixed fallback messages returned when no provider produces a result.
const (
	msgNoResults = "I couldn't find specific details about that through web search."
	msgFailed    = "I encountered an error while searching the web for that information."
)

// Provider is one web search backend. attempt returns the formatted result
// text; an empty string with a nil error means the provider answered but had
// nothing useful.
type Provider interface {
	Name() string
	attempt(ctx context.Context, query string) (string, error)
}

// Adapter queries providers in order and returns the first non-empty result.
type Adapter struct {
	providers []Provider
}

// NewAdapter creates an adapter over the given provider chain. Providers are
// consulted in the order supplied.
func NewAdapter(providers ...Provider) *Adapter {
	return &Adapter{providers: providers}
}

// Search runs the query through the provider chain. It always returns some
// text: the first provider's non-empty result, a fixed "no details" message
// when every provider came back empty, or a fixed error message when every
// attempt failed outright.
func (a *Adapter) Search(ctx context.Context, query string) string {
	attempted := 0
	failed := 0

	for _, p := range a.providers {
		result, err := p.attempt(ctx, query)
		attempted++
		if err != nil {
			log.Printf("search: provider %s failed: %v", p.Name(), err)
			failed++
			continue
		}
		if result != "" {
			return result
		}
	}

	if attempted > 0 && failed == attempted {
		return msgFailed
	}
	return msgNoResults
}
