// Package server provides HTTP server initialization and lifecycle
// management for the Folio API.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/scrypster/folio/internal/config"
	"github.com/scrypster/folio/internal/storage"
	"github.com/scrypster/folio/web/handlers"
)

// securityHeadersMiddleware adds security headers to all HTTP responses.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// methodRouter dispatches GET and POST on one route and rejects the rest.
func methodRouter(get, post http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			get(w, r)
		case http.MethodPost:
			post(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// Start initializes and starts the HTTP server. It returns the actual
// address being listened on, useful for testing with port 0. The server
// shuts down gracefully when ctx is cancelled.
func Start(ctx context.Context, cfg *config.Config, store storage.ContentStore, chatService handlers.ChatService) (string, error) {
	mux := http.NewServeMux()

	// Rate limiter shared by every route (10 req/sec, burst of 20).
	rateLimiter := handlers.NewRateLimiter(10.0, 20)

	chatHandlers := handlers.NewChatHandlers(chatService)
	contentHandlers := handlers.NewContentHandlers(store)

	// API routes (require auth in production mode)
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		chatHandlers.PostChat(w, r)
	})
	apiMux.HandleFunc("/api/activities", methodRouter(contentHandlers.ListActivities, contentHandlers.CreateActivity))
	apiMux.HandleFunc("/api/jobs", methodRouter(contentHandlers.ListJobs, contentHandlers.CreateJob))
	apiMux.HandleFunc("/api/education", methodRouter(contentHandlers.ListEducation, contentHandlers.CreateEducation))
	apiMux.HandleFunc("/api/projects", methodRouter(contentHandlers.ListProjects, contentHandlers.CreateProject))
	apiMux.HandleFunc("/api/tools", methodRouter(contentHandlers.ListTools, contentHandlers.CreateTool))

	// Health endpoint — no auth required, used by monitoring
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","version":"1.0.0"}`))
	})

	// Wrap API routes with auth middleware
	mux.Handle("/api/", handlers.RequireAuth(apiMux, cfg))

	// Wrap the whole server with rate limiting, then security headers
	handler := handlers.RateLimitMiddleware(mux, rateLimiter)
	handler = securityHeadersMiddleware(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * cfg.Chat.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	actualAddr := listener.Addr().String()

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("server error: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown error: %v", err)
		}
	}()

	return actualAddr, nil
}
