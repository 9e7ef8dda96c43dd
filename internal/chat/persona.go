package chat

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Persona is the product-content half of the system prompt: who the
// assistant speaks as and which topical tags the classifier may choose.
// The wording is configuration; the behavioral policy rules in prompt.go
// are not and are always appended.
type Persona struct {
	// Name is the subject's display name.
	Name string `yaml:"name"`

	// Identity describes who the assistant is and on whose behalf it speaks.
	Identity string `yaml:"identity"`

	// Tone describes the voice the assistant answers in.
	Tone string `yaml:"tone"`

	// TagVocabulary is the fixed set of tags the classifier may select from.
	TagVocabulary []string `yaml:"tag_vocabulary"`
}

// DefaultPersona returns the compiled-in persona used when no override file
// is configured.
func DefaultPersona() *Persona {
	return &Persona{
		Name: "Jason",
		Identity: "You are Jason's personal portfolio assistant. You speak on his behalf " +
			"to visitors of his portfolio site, answering questions about his work, " +
			"background, projects, and life.",
		Tone: "Friendly, concise, and a little playful. Write like a helpful human, " +
			"not a search engine.",
		TagVocabulary: []string{
			"leisure", "work", "learning", "travel", "technology", "hobby",
			"conference", "food", "exercise", "social", "reflection",
			"achievement", "challenge",
		},
	}
}

// LoadPersona reads a YAML persona file and overlays it onto the defaults.
// Fields absent from the file keep their default values.
func LoadPersona(path string) (*Persona, error) {
	persona := DefaultPersona()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read persona file: %w", err)
	}
	if err := yaml.Unmarshal(data, persona); err != nil {
		return nil, fmt.Errorf("failed to parse persona file: %w", err)
	}
	if len(persona.TagVocabulary) == 0 {
		persona.TagVocabulary = DefaultPersona().TagVocabulary
	}
	return persona, nil
}

// PersonaHolder provides goroutine-safe access to the active persona so the
// file watcher can swap it in while requests are being served.
type PersonaHolder struct {
	mu      sync.RWMutex
	persona *Persona
}

// NewPersonaHolder creates a holder seeded with the given persona.
func NewPersonaHolder(persona *Persona) *PersonaHolder {
	if persona == nil {
		persona = DefaultPersona()
	}
	return &PersonaHolder{persona: persona}
}

// Get returns the active persona.
func (h *PersonaHolder) Get() *Persona {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.persona
}

// Set replaces the active persona.
func (h *PersonaHolder) Set(persona *Persona) {
	if persona == nil {
		return
	}
	h.mu.Lock()
	h.persona = persona
	h.mu.Unlock()
}
