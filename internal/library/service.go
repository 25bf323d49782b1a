// Package library orchestrates the user's favorites: fetching metadata,
// embedding books, persisting entries and evaluating candidates.
package library

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/suhruthkrishna/bookpal/internal/config"
	"github.com/suhruthkrishna/bookpal/internal/embedding"
	"github.com/suhruthkrishna/bookpal/internal/metadata"
	"github.com/suhruthkrishna/bookpal/internal/models"
	"github.com/suhruthkrishna/bookpal/internal/recommend"
	"github.com/suhruthkrishna/bookpal/internal/storage"
)

// Service wires the metadata fetcher, embedder and favorites store
// behind the operations the CLI and HTTP surfaces expose
type Service struct {
	store       *storage.FavoritesStore
	fetcher     *metadata.Fetcher
	cache       *embedding.Cache
	recommender *recommend.Recommender
}

// NewService builds a service from config
func NewService(cfg config.Config) (*Service, error) {
	embedder, err := embedding.NewProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}
	return NewServiceWith(cfg, embedder)
}

// NewServiceWith builds a service around an explicit embedder, which
// tests use to substitute deterministic vectors
func NewServiceWith(cfg config.Config, embedder embedding.Embedder) (*Service, error) {
	recommender, err := recommend.New(embedder, cfg.RecommenderOptions())
	if err != nil {
		return nil, err
	}
	s := &Service{
		store:       storage.NewFavoritesStore(cfg.FavoritesPath),
		fetcher:     metadata.NewFetcher(),
		cache:       embedding.NewCache(embedder),
		recommender: recommender,
	}

	// Seed the cache with persisted embeddings so saved favorites are
	// never re-embedded
	if favorites, err := s.store.All(); err == nil {
		for _, fav := range favorites {
			s.cache.Put(fav.Book.ISBN, fav.Embedding)
		}
	}

	return s, nil
}

// Fetcher exposes the metadata fetcher so callers can adjust its HTTP
// client or base URLs
func (s *Service) Fetcher() *metadata.Fetcher {
	return s.fetcher
}

// AddFavoriteByISBN fetches the book's metadata, embeds it and persists
// it as a favorite. A non-empty genreOverride replaces the detected genre.
func (s *Service) AddFavoriteByISBN(ctx context.Context, isbn, genreOverride string) (*models.FavoriteEntry, error) {
	book, err := s.fetcher.GetBookByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if genreOverride != "" {
		book.Genre = genreOverride
	}
	return s.AddFavoriteRecord(ctx, *book)
}

// AddFavoriteRecord embeds and persists an already-fetched book record
func (s *Service) AddFavoriteRecord(ctx context.Context, book models.BookRecord) (*models.FavoriteEntry, error) {
	if book.Genre == "" {
		book.Genre = metadata.DetectGenre(book.Categories)
	}

	vec, err := s.cache.EmbedRecord(ctx, book)
	if err != nil {
		return nil, err
	}

	entry := models.FavoriteEntry{
		Book:      book,
		Embedding: vec,
		AddedAt:   time.Now().UTC(),
	}
	if err := s.store.Add(entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// RemoveFavorite deletes a favorite and drops its cached embedding
func (s *Service) RemoveFavorite(isbn string) error {
	if err := s.store.Remove(isbn); err != nil {
		return err
	}
	s.cache.Forget(isbn)
	return nil
}

// Favorites returns the library snapshot in insertion order
func (s *Service) Favorites() ([]models.FavoriteEntry, error) {
	return s.store.All()
}

// FavoritesByGenre returns the library grouped by genre
func (s *Service) FavoritesByGenre() (map[string][]models.FavoriteEntry, error) {
	return s.store.ByGenre()
}

// Favorite returns one favorite by ISBN
func (s *Service) Favorite(isbn string) (*models.FavoriteEntry, error) {
	return s.store.Find(isbn)
}

// Check fetches a candidate book and evaluates it against the current
// library snapshot
func (s *Service) Check(ctx context.Context, isbn string) (*models.BookRecord, *models.MatchVerdict, error) {
	book, err := s.fetcher.GetBookByISBN(ctx, isbn)
	if err != nil {
		return nil, nil, err
	}

	verdict, err := s.Evaluate(ctx, *book)
	if err != nil {
		return book, nil, err
	}
	return book, verdict, nil
}

// Evaluate runs the recommender for a candidate against the stored
// favorites. The snapshot is read once at call start; concurrent
// mutation is serialized by the store's writer lock.
func (s *Service) Evaluate(ctx context.Context, candidate models.BookRecord) (*models.MatchVerdict, error) {
	favorites, err := s.store.All()
	if err != nil {
		return nil, err
	}
	return s.recommender.Evaluate(ctx, candidate, favorites)
}

// Import bulk-adds book records as favorites, skipping duplicates.
// Returns the number added.
func (s *Service) Import(ctx context.Context, books []models.BookRecord) (int, error) {
	added := 0
	for _, book := range books {
		if _, err := s.AddFavoriteRecord(ctx, book); err != nil {
			if ctx.Err() != nil {
				return added, ctx.Err()
			}
			slog.Warn("Skipping import record", "isbn", book.ISBN, "title", book.Title, "err", err)
			continue
		}
		added++
	}
	if added == 0 && len(books) > 0 {
		return 0, fmt.Errorf("no records imported out of %d", len(books))
	}
	return added, nil
}

// Reset clears the entire library
func (s *Service) Reset() error {
	return s.store.Reset()
}
