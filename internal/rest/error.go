package rest

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteError responds with status and an ErrorResponse body.
func WriteError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encodeErr := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   message,
		Details: details,
	})
	if encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}

func WriteBadRequest(w http.ResponseWriter, message, details string) {
	WriteError(w, http.StatusBadRequest, message, details)
}

func WriteNotFound(w http.ResponseWriter, message, details string) {
	WriteError(w, http.StatusNotFound, message, details)
}
