// Package handlers provides the HTTP handlers and middleware for the Folio
// API: the chat endpoint and the portfolio content endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/scrypster/folio/pkg/types"
)

// ChatService answers one visitor message given the prior turns.
// *chat.Service satisfies this.
type ChatService interface {
	Chat(ctx context.Context, message string, history []types.ChatTurn) (*types.ChatResponse, error)
}

// ChatHandlers contains the HTTP handler for the chat endpoint.
type ChatHandlers struct {
	service ChatService
}

// NewChatHandlers creates a ChatHandlers instance.
func NewChatHandlers(service ChatService) *ChatHandlers {
	return &ChatHandlers{service: service}
}

// PostChat handles POST /api/chat.
func (h *ChatHandlers) PostChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "request body too large", nil)
			return
		}
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "message is required", nil)
		return
	}

	resp, err := h.service.Chat(r.Context(), req.Message, req.History)
	if err != nil {
		log.Printf("handlers: chat request failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to generate chat response", nil)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
