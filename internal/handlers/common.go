package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/suhruthkrishna/bookpal/internal/embedding"
	"github.com/suhruthkrishna/bookpal/internal/library"
	"github.com/suhruthkrishna/bookpal/internal/metadata"
	"github.com/suhruthkrishna/bookpal/internal/recommend"
	"github.com/suhruthkrishna/bookpal/internal/storage"
)

type Handler struct {
	service *library.Service
}

func New(service *library.Service) *Handler {
	return &Handler{service: service}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		slog.Error("Unable to encode error response", "err", err)
	}
}

// writeDomainError maps each error kind to a stable status code and
// user-facing message, so the UI can render an actionable message per
// kind instead of a raw error string.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrEmptyLibrary):
		h.writeError(w, "Add at least one favorite before checking a new book", http.StatusConflict)
	case errors.Is(err, metadata.ErrNotFound):
		h.writeError(w, "No book found for that ISBN", http.StatusNotFound)
	case errors.Is(err, metadata.ErrInvalidISBN):
		h.writeError(w, "That ISBN has no digits in it", http.StatusBadRequest)
	case errors.Is(err, metadata.ErrUnavailable):
		h.writeError(w, "Book metadata services are unavailable, try again later", http.StatusBadGateway)
	case errors.Is(err, embedding.ErrEmptyInput):
		h.writeError(w, "This book has no description or title text to analyze", http.StatusUnprocessableEntity)
	case errors.Is(err, storage.ErrDuplicateFavorite):
		h.writeError(w, "This book is already in your favorites", http.StatusConflict)
	case errors.Is(err, storage.ErrFavoriteNotFound):
		h.writeError(w, "This book is not in your favorites", http.StatusNotFound)
	case errors.Is(err, recommend.ErrUndefinedSimilarity):
		h.writeError(w, "Could not compare this book against your favorites", http.StatusUnprocessableEntity)
	default:
		var dimErr *recommend.DimensionMismatchError
		if errors.As(err, &dimErr) {
			h.writeError(w, "Saved favorites were embedded with a different model; re-add them", http.StatusConflict)
			return
		}
		slog.Error("Unhandled error", "err", err)
		h.writeError(w, "Internal server error", http.StatusInternalServerError)
	}
}
