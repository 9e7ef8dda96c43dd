package chat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePersonaFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "persona.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPersonaOverlaysDefaults(t *testing.T) {
	path := writePersonaFile(t, `
name: "Mara"
tone: "Dry and direct."
`)

	persona, err := LoadPersona(path)
	require.NoError(t, err)

	assert.Equal(t, "Mara", persona.Name)
	assert.Equal(t, "Dry and direct.", persona.Tone)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, DefaultPersona().Identity, persona.Identity)
	assert.Equal(t, DefaultPersona().TagVocabulary, persona.TagVocabulary)
}

func TestLoadPersonaCustomVocabulary(t *testing.T) {
	path := writePersonaFile(t, `
tag_vocabulary: [music, cooking, climbing]
`)

	persona, err := LoadPersona(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"music", "cooking", "climbing"}, persona.TagVocabulary)
}

func TestLoadPersonaMissingFile(t *testing.T) {
	_, err := LoadPersona(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read persona file")
}

func TestLoadPersonaInvalidYAML(t *testing.T) {
	path := writePersonaFile(t, "name: [unclosed")

	_, err := LoadPersona(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse persona file")
}

func TestPersonaHolderSwap(t *testing.T) {
	holder := NewPersonaHolder(nil)
	assert.Equal(t, DefaultPersona().Name, holder.Get().Name)

	custom := DefaultPersona()
	custom.Name = "Mara"
	holder.Set(custom)
	assert.Equal(t, "Mara", holder.Get().Name)

	// A nil set is ignored rather than clearing the active persona.
	holder.Set(nil)
	assert.Equal(t, "Mara", holder.Get().Name)
}
