package api

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Erro     string   `json:"erro"`
	Detalhes []string `json:"detalhes,omitempty"`
}

// MessageResponse represents a successful write response.
type MessageResponse struct {
	Mensagem string `json:"mensagem"`
	ID       int64  `json:"id,omitempty"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, status int, message string, details ...string) {
	writeJSON(w, status, ErrorResponse{
		Erro:     message,
		Detalhes: details,
	})
}
