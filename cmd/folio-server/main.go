// Command folio-server runs the Folio portfolio backend: the conversational
// assistant plus the portfolio content API.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scrypster/folio/internal/chat"
	"github.com/scrypster/folio/internal/config"
	"github.com/scrypster/folio/internal/llm"
	"github.com/scrypster/folio/internal/notify"
	"github.com/scrypster/folio/internal/search"
	"github.com/scrypster/folio/internal/server"
	"github.com/scrypster/folio/internal/storage"
	"github.com/scrypster/folio/internal/storage/postgres"
	"github.com/scrypster/folio/internal/storage/sqlite"
)

func main() {
	personaPath := flag.String("persona", "", "Path to persona YAML file (overrides FOLIO_CHAT_PERSONA_PATH)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *personaPath != "" {
		cfg.Chat.PersonaPath = *personaPath
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Persona: compiled-in defaults, optional YAML overlay, hot reload.
	personas := chat.NewPersonaHolder(chat.DefaultPersona())
	if cfg.Chat.PersonaPath != "" {
		persona, err := chat.LoadPersona(cfg.Chat.PersonaPath)
		if err != nil {
			log.Fatalf("Failed to load persona: %v", err)
		}
		personas.Set(persona)

		watcher := notify.NewPersonaWatcher(cfg.Chat.PersonaPath, func(path string) {
			persona, err := chat.LoadPersona(path)
			if err != nil {
				log.Printf("Persona reload failed, keeping previous: %v", err)
				return
			}
			personas.Set(persona)
			log.Printf("Persona reloaded from %s", path)
		})
		if err := watcher.Start(); err != nil {
			log.Printf("Persona watcher disabled: %v", err)
		} else {
			defer watcher.Stop()
		}
	}

	client := llm.NewOpenAIClient(llm.OpenAIConfig{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		BaseURL: cfg.LLM.BaseURL,
		Timeout: cfg.LLM.Timeout,
	})

	searcher := search.NewAdapter(searchProviders(cfg)...)

	chatService := chat.NewService(
		chat.NewClassifier(client, personas, cfg.LLM.Temperature),
		chat.NewAssembler(store),
		chat.NewPromptBuilder(personas),
		chat.NewGenerator(client, searcher, cfg.LLM.Temperature),
		cfg.Chat.RequestTimeout,
	)

	addr, err := server.Start(ctx, cfg, store, chatService)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	log.Printf("Folio API running at http://%s (model %s, storage %s)",
		addr, client.GetModel(), cfg.Storage.StorageEngine)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")
	cancel()
	time.Sleep(1 * time.Second) // Give in-flight requests time to finish
}

// openStore builds the configured content store.
func openStore(cfg *config.Config) (storage.ContentStore, error) {
	switch cfg.Storage.StorageEngine {
	case "postgres":
		return postgres.NewContentStore(cfg.Storage.PostgresDSN)
	default:
		if err := os.MkdirAll(cfg.Storage.DataPath, 0o755); err != nil {
			return nil, err
		}
		return sqlite.NewContentStore(cfg.Storage.DataPath + "/folio.db")
	}
}

// searchProviders builds the ordered web-search chain: Tavily when a key is
// configured, then the keyless DuckDuckGo fallback.
func searchProviders(cfg *config.Config) []search.Provider {
	providers := []search.Provider{}
	if cfg.Search.TavilyAPIKey != "" {
		providers = append(providers, search.NewTavilyProvider(search.TavilyConfig{
			APIKey:  cfg.Search.TavilyAPIKey,
			Timeout: cfg.Search.Timeout,
		}))
	}
	providers = append(providers, search.NewDuckDuckGoProvider(search.DuckDuckGoConfig{
		Timeout: cfg.Search.Timeout,
	}))
	return providers
}
