package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/scrypster/folio/pkg/types"
)

// ErrorResponse is the standard error response format for the API.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ChatRequest is the request format for POST /api/chat. History is the
// caller's record of the conversation so far; the server keeps no session
// state.
type ChatRequest struct {
	Message string           `json:"message"`
	History []types.ChatTurn `json:"history,omitempty"`
}

// maxChatBodyBytes caps the chat request body. Long histories beyond this
// point stop being a conversation and start being a payload.
const maxChatBodyBytes = 64 * 1024

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing to do but log.
		log.Printf("handlers: failed to encode JSON response: %v", err)
	}
}

// respondError writes an error response with the given status code.
func respondError(w http.ResponseWriter, statusCode int, message string, err error) {
	errResp := ErrorResponse{
		Error: message,
		Code:  http.StatusText(statusCode),
	}
	if err != nil {
		errResp.Details = map[string]interface{}{
			"error": err.Error(),
		}
	}
	respondJSON(w, statusCode, errResp)
}
