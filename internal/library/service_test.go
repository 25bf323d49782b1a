package library

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/suhruthkrishna/bookpal/internal/config"
	"github.com/suhruthkrishna/bookpal/internal/models"
	"github.com/suhruthkrishna/bookpal/internal/recommend"
	"github.com/suhruthkrishna/bookpal/internal/storage"
)

// fixedEmbedder returns the same unit vector for every text
type fixedEmbedder struct {
	vec []float32
}

func (f *fixedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return f.vec, nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	cfg := config.Default()
	cfg.FavoritesPath = filepath.Join(t.TempDir(), "favorites.json")

	service, err := NewServiceWith(cfg, &fixedEmbedder{vec: []float32{1, 0}})
	if err != nil {
		t.Fatalf("NewServiceWith returned error: %v", err)
	}
	return service
}

func fantasyBook(isbn string) models.BookRecord {
	return models.BookRecord{
		ISBN:        isbn,
		Title:       "Book " + isbn,
		Authors:     []string{"Author"},
		Description: "An epic tale of dragons.",
		Categories:  []string{"Fantasy fiction"},
	}
}

func TestAddFavoriteRecordDetectsGenre(t *testing.T) {
	service := newTestService(t)

	entry, err := service.AddFavoriteRecord(context.Background(), fantasyBook("1"))
	if err != nil {
		t.Fatalf("AddFavoriteRecord returned error: %v", err)
	}

	if entry.Book.Genre != "Fantasy" {
		t.Errorf("Expected detected genre Fantasy, got %s", entry.Book.Genre)
	}
	if len(entry.Embedding) == 0 {
		t.Error("Expected entry to carry its embedding")
	}

	favorites, err := service.Favorites()
	if err != nil {
		t.Fatalf("Favorites returned error: %v", err)
	}
	if len(favorites) != 1 {
		t.Errorf("Expected 1 favorite, got %d", len(favorites))
	}
}

func TestAddFavoriteRecordDuplicate(t *testing.T) {
	service := newTestService(t)

	if _, err := service.AddFavoriteRecord(context.Background(), fantasyBook("1")); err != nil {
		t.Fatalf("AddFavoriteRecord returned error: %v", err)
	}

	_, err := service.AddFavoriteRecord(context.Background(), fantasyBook("1"))
	if !errors.Is(err, storage.ErrDuplicateFavorite) {
		t.Errorf("Expected ErrDuplicateFavorite, got %v", err)
	}
}

func TestEvaluateEmptyLibrary(t *testing.T) {
	service := newTestService(t)

	_, err := service.Evaluate(context.Background(), fantasyBook("100"))
	if !errors.Is(err, recommend.ErrEmptyLibrary) {
		t.Errorf("Expected ErrEmptyLibrary, got %v", err)
	}
}

func TestEvaluateStrongMatch(t *testing.T) {
	service := newTestService(t)

	if _, err := service.AddFavoriteRecord(context.Background(), fantasyBook("1")); err != nil {
		t.Fatalf("AddFavoriteRecord returned error: %v", err)
	}

	// Same embedder vector for candidate and favorite, so similarity is 1.0
	verdict, err := service.Evaluate(context.Background(), fantasyBook("100"))
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if verdict.Tier != models.TierStrong {
		t.Errorf("Expected strong tier, got %s", verdict.Tier)
	}
}

func TestCheckFetchesAndEvaluates(t *testing.T) {
	service := newTestService(t)

	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{
			"totalItems": 1,
			"items": [{"volumeInfo": {
				"title": "The Hobbit",
				"authors": ["J.R.R. Tolkien"],
				"description": "An adventure.",
				"categories": ["Fantasy fiction"]
			}}]
		}`)); err != nil {
			t.Errorf("write failed: %v", err)
		}
	}))
	defer google.Close()
	service.Fetcher().GoogleBooksBaseURL = google.URL

	if _, err := service.AddFavoriteRecord(context.Background(), fantasyBook("1")); err != nil {
		t.Fatalf("AddFavoriteRecord returned error: %v", err)
	}

	book, verdict, err := service.Check(context.Background(), "9780547928227")
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if book.Title != "The Hobbit" {
		t.Errorf("Expected fetched title, got %s", book.Title)
	}
	if verdict.Tier != models.TierStrong {
		t.Errorf("Expected strong tier, got %s", verdict.Tier)
	}
}

func TestRemoveFavorite(t *testing.T) {
	service := newTestService(t)

	if _, err := service.AddFavoriteRecord(context.Background(), fantasyBook("1")); err != nil {
		t.Fatalf("AddFavoriteRecord returned error: %v", err)
	}
	if err := service.RemoveFavorite("1"); err != nil {
		t.Fatalf("RemoveFavorite returned error: %v", err)
	}

	favorites, err := service.Favorites()
	if err != nil {
		t.Fatalf("Favorites returned error: %v", err)
	}
	if len(favorites) != 0 {
		t.Errorf("Expected empty library, got %d favorites", len(favorites))
	}
}

func TestImportSkipsDuplicates(t *testing.T) {
	service := newTestService(t)

	if _, err := service.AddFavoriteRecord(context.Background(), fantasyBook("1")); err != nil {
		t.Fatalf("AddFavoriteRecord returned error: %v", err)
	}

	added, err := service.Import(context.Background(), []models.BookRecord{
		fantasyBook("1"), // duplicate, skipped
		fantasyBook("2"),
		fantasyBook("3"),
	})
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if added != 2 {
		t.Errorf("Expected 2 records imported, got %d", added)
	}

	favorites, err := service.Favorites()
	if err != nil {
		t.Fatalf("Favorites returned error: %v", err)
	}
	if len(favorites) != 3 {
		t.Errorf("Expected 3 favorites total, got %d", len(favorites))
	}
}

func TestReset(t *testing.T) {
	service := newTestService(t)

	if _, err := service.AddFavoriteRecord(context.Background(), fantasyBook("1")); err != nil {
		t.Fatalf("AddFavoriteRecord returned error: %v", err)
	}
	if err := service.Reset(); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}

	favorites, err := service.Favorites()
	if err != nil {
		t.Fatalf("Favorites returned error: %v", err)
	}
	if len(favorites) != 0 {
		t.Errorf("Expected empty library after reset, got %d", len(favorites))
	}
}
