package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8484, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "sqlite", cfg.Storage.StorageEngine)
	assert.Equal(t, "./data", cfg.Storage.DataPath)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "https://api.openai.com", cfg.LLM.BaseURL)
	assert.Equal(t, 0.7, cfg.LLM.Temperature)
	assert.Equal(t, 90*time.Second, cfg.Chat.RequestTimeout)
	assert.Equal(t, "development", cfg.Security.SecurityMode)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_PORT", "9000")
	t.Setenv("FOLIO_STORAGE_ENGINE", "postgres")
	t.Setenv("FOLIO_POSTGRES_DSN", "postgres://localhost/folio")
	t.Setenv("FOLIO_LLM_TEMPERATURE", "0.3")
	t.Setenv("FOLIO_CHAT_TIMEOUT", "45s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Storage.StorageEngine)
	assert.Equal(t, "postgres://localhost/folio", cfg.Storage.PostgresDSN)
	assert.Equal(t, 0.3, cfg.LLM.Temperature)
	assert.Equal(t, 45*time.Second, cfg.Chat.RequestTimeout)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("FOLIO_PORT", "not-a-number")
	t.Setenv("FOLIO_LLM_TEMPERATURE", "hot")
	t.Setenv("FOLIO_CHAT_TIMEOUT", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8484, cfg.Server.Port)
	assert.Equal(t, 0.7, cfg.LLM.Temperature)
	assert.Equal(t, 90*time.Second, cfg.Chat.RequestTimeout)
}
