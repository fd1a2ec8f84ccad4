package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
	"github.com/MrSnakeDoc/rolewithai/internal/logger"
)

// UserHeader identifies the caller. Anonymous requests share DefaultUser.
const (
	UserHeader  = "X-User-ID"
	DefaultUser = "default"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto status codes. Internal errors are
// logged and never echoed to the client.
func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Error(), Field: ve.Field})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		log.Error("request failed", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// decode reads a JSON body into v. Malformed bodies are validation errors.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &domain.ValidationError{Field: "body", Message: "request body is empty"}
		}
		return &domain.ValidationError{Field: "body", Message: "malformed JSON"}
	}
	return nil
}

func userID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(UserHeader)); id != "" {
		return id
	}
	return DefaultUser
}
