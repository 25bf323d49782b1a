package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/suhruthkrishna/bookpal/internal/models"
)

// CheckRequest is the POST /api/check payload
type CheckRequest struct {
	ISBN string `json:"isbn"`
}

// CheckResponse pairs the fetched candidate with its verdict
type CheckResponse struct {
	Book    *models.BookRecord   `json:"book"`
	Verdict *models.MatchVerdict `json:"verdict"`
}

func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.ISBN == "" {
		h.writeError(w, "isbn is required", http.StatusBadRequest)
		return
	}

	book, verdict, err := h.service.Check(r.Context(), req.ISBN)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.writeJSON(w, CheckResponse{Book: book, Verdict: verdict})
}
