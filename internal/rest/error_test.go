package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantBody   ErrorResponse
	}{
		{
			name:       "bad request",
			write:      func(w http.ResponseWriter) { WriteBadRequest(w, "Invalid repository", "owner is required") },
			wantStatus: http.StatusBadRequest,
			wantBody:   ErrorResponse{Error: "Invalid repository", Details: "owner is required"},
		},
		{
			name:       "not found without details",
			write:      func(w http.ResponseWriter) { WriteNotFound(w, "Repository not found", "") },
			wantStatus: http.StatusNotFound,
			wantBody:   ErrorResponse{Error: "Repository not found"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			tt.write(w)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			var body ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
