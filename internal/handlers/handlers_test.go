package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/suhruthkrishna/bookpal/internal/config"
	"github.com/suhruthkrishna/bookpal/internal/library"
	"github.com/suhruthkrishna/bookpal/internal/models"
)

const googleBooksFixture = `{
	"totalItems": 1,
	"items": [{"volumeInfo": {
		"title": "The Hobbit",
		"authors": ["J.R.R. Tolkien"],
		"description": "A hobbit goes on an adventure with dragons.",
		"categories": ["Fantasy fiction"]
	}}]
}`

type fixedEmbedder struct {
	vec []float32
}

func (f *fixedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return f.vec, nil
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	cfg := config.Default()
	cfg.FavoritesPath = filepath.Join(t.TempDir(), "favorites.json")

	service, err := library.NewServiceWith(cfg, &fixedEmbedder{vec: []float32{1, 0}})
	if err != nil {
		t.Fatalf("NewServiceWith returned error: %v", err)
	}

	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(googleBooksFixture)); err != nil {
			t.Errorf("write failed: %v", err)
		}
	}))
	t.Cleanup(google.Close)
	service.Fetcher().GoogleBooksBaseURL = google.URL

	return New(service)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Unable to marshal payload: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func addFavorite(t *testing.T, h *Handler, isbn string) {
	t.Helper()

	rec := postJSON(t, h.HandleFavorites, "/api/favorites", AddFavoriteRequest{ISBN: isbn})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201 adding favorite, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAddFavorite(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.HandleFavorites, "/api/favorites", AddFavoriteRequest{ISBN: "9780547928227"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var entry models.FavoriteEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
		t.Fatalf("Unable to decode response: %v", err)
	}
	if entry.Book.Title != "The Hobbit" {
		t.Errorf("Expected fetched title, got %s", entry.Book.Title)
	}
	if entry.Book.Genre != "Fantasy" {
		t.Errorf("Expected detected genre Fantasy, got %s", entry.Book.Genre)
	}
}

func TestAddFavoriteGenreOverride(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.HandleFavorites, "/api/favorites", AddFavoriteRequest{ISBN: "9780547928227", Genre: "Classic"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var entry models.FavoriteEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
		t.Fatalf("Unable to decode response: %v", err)
	}
	if entry.Book.Genre != "Classic" {
		t.Errorf("Expected overridden genre Classic, got %s", entry.Book.Genre)
	}
}

func TestAddFavoriteMissingISBN(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.HandleFavorites, "/api/favorites", AddFavoriteRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestAddFavoriteDuplicate(t *testing.T) {
	h := newTestHandler(t)

	addFavorite(t, h, "9780547928227")

	rec := postJSON(t, h.HandleFavorites, "/api/favorites", AddFavoriteRequest{ISBN: "9780547928227"})
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409 for duplicate, got %d", rec.Code)
	}
}

func TestListFavorites(t *testing.T) {
	h := newTestHandler(t)

	addFavorite(t, h, "9780547928227")

	req := httptest.NewRequest("GET", "/api/favorites", nil)
	rec := httptest.NewRecorder()
	h.HandleFavorites(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var byGenre map[string][]models.FavoriteEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &byGenre); err != nil {
		t.Fatalf("Unable to decode response: %v", err)
	}
	if len(byGenre["Fantasy"]) != 1 {
		t.Errorf("Expected 1 Fantasy favorite, got %d", len(byGenre["Fantasy"]))
	}
}

func TestCheckEmptyLibrary(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.HandleCheck, "/api/check", CheckRequest{ISBN: "9780547928227"})
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409 for empty library, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unable to decode response: %v", err)
	}
	if resp["error"] == "" {
		t.Error("Expected an error message in the response")
	}
}

func TestCheckStrongMatch(t *testing.T) {
	h := newTestHandler(t)

	addFavorite(t, h, "9780547928227")

	// The stub embedder gives every book the same vector, so the
	// candidate scores 1.0 against its own genre profile
	rec := postJSON(t, h.HandleCheck, "/api/check", CheckRequest{ISBN: "9780618968633"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp CheckResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unable to decode response: %v", err)
	}
	if resp.Book == nil || resp.Book.Title != "The Hobbit" {
		t.Errorf("Expected the fetched book in the response, got %+v", resp.Book)
	}
	if resp.Verdict == nil || resp.Verdict.Tier != models.TierStrong {
		t.Errorf("Expected strong tier, got %+v", resp.Verdict)
	}
	if resp.Verdict != nil && len(resp.Verdict.Suggestions) != 0 {
		t.Errorf("Expected no suggestions on a strong match, got %d", len(resp.Verdict.Suggestions))
	}
}

func TestCheckMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/check", nil)
	rec := httptest.NewRecorder()
	h.HandleCheck(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rec.Code)
	}
}

func TestDeleteFavorite(t *testing.T) {
	h := newTestHandler(t)

	addFavorite(t, h, "9780547928227")

	req := httptest.NewRequest("DELETE", "/api/favorites/9780547928227", nil)
	rec := httptest.NewRecorder()
	h.HandleFavoriteDetail(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", rec.Code)
	}

	req = httptest.NewRequest("DELETE", "/api/favorites/9780547928227", nil)
	rec = httptest.NewRecorder()
	h.HandleFavoriteDetail(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for missing favorite, got %d", rec.Code)
	}
}

func TestGetFavoriteDetail(t *testing.T) {
	h := newTestHandler(t)

	addFavorite(t, h, "9780547928227")

	req := httptest.NewRequest("GET", "/api/favorites/9780547928227", nil)
	rec := httptest.NewRecorder()
	h.HandleFavoriteDetail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var entry models.FavoriteEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
		t.Fatalf("Unable to decode response: %v", err)
	}
	if entry.Book.ISBN != "9780547928227" {
		t.Errorf("Expected ISBN 9780547928227, got %s", entry.Book.ISBN)
	}
}

func TestReset(t *testing.T) {
	h := newTestHandler(t)

	addFavorite(t, h, "9780547928227")

	req := httptest.NewRequest("POST", "/api/reset", nil)
	rec := httptest.NewRecorder()
	h.HandleReset(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", rec.Code)
	}

	rec = postJSON(t, h.HandleCheck, "/api/check", CheckRequest{ISBN: "9780547928227"})
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409 after reset, got %d", rec.Code)
	}
}

func TestInvalidJSON(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("POST", "/api/favorites", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.HandleFavorites(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
