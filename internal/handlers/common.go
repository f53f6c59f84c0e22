package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"hrpilot/internal/contextutil"
	"hrpilot/internal/ingest"
	"hrpilot/internal/llm"
	"hrpilot/internal/storage"
	"hrpilot/internal/vectorstore"
)

// decodeJSON decodes a JSON request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	writeJSON(ctx, w, status, ErrorResponse{Success: false, Error: message})
}

// statusForError maps domain errors onto HTTP statuses. Unrecognized errors
// are internal.
func statusForError(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ingest.ErrUnsupportedFileType), errors.Is(err, ingest.ErrEmptyDocument):
		return http.StatusBadRequest
	case errors.Is(err, llm.ErrEmbeddingProvider), errors.Is(err, llm.ErrChatProvider):
		return http.StatusBadGateway
	case errors.Is(err, vectorstore.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
