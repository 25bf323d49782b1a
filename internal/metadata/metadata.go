// Package metadata retrieves book records by ISBN from Google Books with
// an OpenLibrary fallback.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/suhruthkrishna/bookpal/internal/models"
)

var (
	// ErrNotFound is returned when no source has a record for the ISBN
	ErrNotFound = errors.New("book not found")

	// ErrUnavailable is returned when the metadata sources could not be
	// reached or answered with a server error. Not retried here; callers
	// own retry policy.
	ErrUnavailable = errors.New("metadata service unavailable")

	// ErrInvalidISBN is returned when the ISBN has no usable characters
	ErrInvalidISBN = errors.New("invalid ISBN")
)

// Fetcher retrieves book metadata from external APIs
type Fetcher struct {
	HTTPClient *http.Client

	GoogleBooksBaseURL string
	OpenLibraryBaseURL string
}

// NewFetcher creates a new metadata fetcher
func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		GoogleBooksBaseURL: "https://www.googleapis.com/books/v1/volumes",
		OpenLibraryBaseURL: "https://openlibrary.org/api/volumes/brief/isbn",
	}
}

// GetBookByISBN looks up a book, trying Google Books first and falling
// back to OpenLibrary. The detected primary genre is filled in on the
// returned record.
func (f *Fetcher) GetBookByISBN(ctx context.Context, isbn string) (*models.BookRecord, error) {
	cleaned, err := CleanISBN(isbn)
	if err != nil {
		return nil, err
	}

	book, googleErr := f.fetchFromGoogleBooks(ctx, cleaned)
	if googleErr != nil {
		slog.Warn("Google Books lookup failed, trying OpenLibrary", "isbn", cleaned, "err", googleErr)
		var openLibraryErr error
		book, openLibraryErr = f.fetchFromOpenLibrary(ctx, cleaned)
		if openLibraryErr != nil {
			if errors.Is(googleErr, ErrNotFound) && errors.Is(openLibraryErr, ErrNotFound) {
				return nil, fmt.Errorf("%w: ISBN %s", ErrNotFound, cleaned)
			}
			return nil, fmt.Errorf("%w: google books: %v; openlibrary: %v",
				ErrUnavailable, googleErr, openLibraryErr)
		}
	}

	book.Genre = DetectGenre(book.Categories)
	slog.Info("Fetched book metadata",
		"isbn", book.ISBN, "title", book.Title, "genre", book.Genre, "source", book.Source)
	return book, nil
}
