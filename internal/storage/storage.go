// Package storage persists the user's favorites as a JSON file keyed by
// genre, the contract the rest of the system reads its library snapshot
// from.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/suhruthkrishna/bookpal/internal/models"
)

var (
	// ErrDuplicateFavorite is returned when the ISBN is already saved
	ErrDuplicateFavorite = errors.New("book already in favorites")

	// ErrFavoriteNotFound is returned when removing an unknown ISBN
	ErrFavoriteNotFound = errors.New("favorite not found")
)

// DefaultPath is the favorites file used when no path is configured
const DefaultPath = "favorites.json"

// FavoritesStore reads and writes the favorites file. A single writer
// lock serializes mutation against in-flight reads; readers get copies,
// so an evaluation's snapshot never changes mid-call.
type FavoritesStore struct {
	path string
	mu   sync.RWMutex
}

// NewFavoritesStore creates a store backed by the given file path
func NewFavoritesStore(path string) *FavoritesStore {
	if path == "" {
		path = DefaultPath
	}
	return &FavoritesStore{path: path}
}

// load reads the favorites file. A missing file is an empty library.
func (s *FavoritesStore) load() (map[string][]models.FavoriteEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]models.FavoriteEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read favorites file: %w", err)
	}

	favorites := map[string][]models.FavoriteEntry{}
	if err := json.Unmarshal(data, &favorites); err != nil {
		return nil, fmt.Errorf("failed to parse favorites file: %w", err)
	}
	return favorites, nil
}

// save writes the favorites file, creating parent directories as needed
func (s *FavoritesStore) save(favorites map[string][]models.FavoriteEntry) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create favorites directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(favorites, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal favorites: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write favorites file: %w", err)
	}
	return nil
}

// All returns every favorite ordered by when it was added, so downstream
// tie-breaking by insertion order is deterministic.
func (s *FavoritesStore) All() ([]models.FavoriteEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	favorites, err := s.load()
	if err != nil {
		return nil, err
	}

	genres := make([]string, 0, len(favorites))
	for genre := range favorites {
		genres = append(genres, genre)
	}
	sort.Strings(genres)

	var entries []models.FavoriteEntry
	for _, genre := range genres {
		entries = append(entries, favorites[genre]...)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AddedAt.Before(entries[j].AddedAt)
	})
	return entries, nil
}

// ByGenre returns the favorites grouped by genre as stored on disk
func (s *FavoritesStore) ByGenre() (map[string][]models.FavoriteEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

// Add appends a favorite under its genre. Fails with ErrDuplicateFavorite
// if the ISBN is already present anywhere in the library; an existing
// entry is never silently overwritten.
func (s *FavoritesStore) Add(entry models.FavoriteEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites, err := s.load()
	if err != nil {
		return err
	}

	for genre, entries := range favorites {
		for _, existing := range entries {
			if existing.Book.ISBN == entry.Book.ISBN {
				return fmt.Errorf("%w: ISBN %s (genre %s)", ErrDuplicateFavorite, entry.Book.ISBN, genre)
			}
		}
	}

	genre := entry.Book.Genre
	favorites[genre] = append(favorites[genre], entry)
	if err := s.save(favorites); err != nil {
		return err
	}

	slog.Info("Added favorite", "isbn", entry.Book.ISBN, "title", entry.Book.Title, "genre", genre)
	return nil
}

// Remove deletes the favorite with the given ISBN. Empty genre buckets
// are dropped so absent genres have no profile entry downstream.
func (s *FavoritesStore) Remove(isbn string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites, err := s.load()
	if err != nil {
		return err
	}

	for genre, entries := range favorites {
		for i, entry := range entries {
			if entry.Book.ISBN != isbn {
				continue
			}
			favorites[genre] = append(entries[:i:i], entries[i+1:]...)
			if len(favorites[genre]) == 0 {
				delete(favorites, genre)
			}
			if err := s.save(favorites); err != nil {
				return err
			}
			slog.Info("Removed favorite", "isbn", isbn, "genre", genre)
			return nil
		}
	}

	return fmt.Errorf("%w: ISBN %s", ErrFavoriteNotFound, isbn)
}

// Find returns the favorite with the given ISBN
func (s *FavoritesStore) Find(isbn string) (*models.FavoriteEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	favorites, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, entries := range favorites {
		for _, entry := range entries {
			if entry.Book.ISBN == isbn {
				return &entry, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: ISBN %s", ErrFavoriteNotFound, isbn)
}

// Reset deletes the favorites file entirely
func (s *FavoritesStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove favorites file: %w", err)
	}
	slog.Info("Cleared favorites", "path", s.path)
	return nil
}
