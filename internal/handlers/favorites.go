package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// AddFavoriteRequest is the POST /api/favorites payload. Genre overrides
// the detected genre when set.
type AddFavoriteRequest struct {
	ISBN  string `json:"isbn"`
	Genre string `json:"genre,omitempty"`
}

func (h *Handler) HandleFavorites(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		favorites, err := h.service.FavoritesByGenre()
		if err != nil {
			h.writeDomainError(w, err)
			return
		}
		h.writeJSON(w, favorites)
	case "POST":
		var req AddFavoriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		if req.ISBN == "" {
			h.writeError(w, "isbn is required", http.StatusBadRequest)
			return
		}

		entry, err := h.service.AddFavoriteByISBN(r.Context(), req.ISBN, req.Genre)
		if err != nil {
			h.writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		h.writeJSON(w, entry)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleFavoriteDetail(w http.ResponseWriter, r *http.Request) {
	isbn := strings.TrimPrefix(r.URL.Path, "/api/favorites/")
	if isbn == "" {
		h.writeError(w, "ISBN missing from path", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case "GET":
		entry, err := h.service.Favorite(isbn)
		if err != nil {
			h.writeDomainError(w, err)
			return
		}
		h.writeJSON(w, entry)
	case "DELETE":
		if err := h.service.RemoveFavorite(isbn); err != nil {
			h.writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := h.service.Reset(); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
