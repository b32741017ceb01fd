package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-med-reminder/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// RunEnvelope wraps dispatch run summaries.
type RunEnvelope struct {
	Summary *domain.RunSummary `json:"summary,omitempty"`
	Caller  string             `json:"caller,omitempty"`
	Error   string             `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg, ErrorCode: status})
}
