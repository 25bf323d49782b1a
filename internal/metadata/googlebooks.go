package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/suhruthkrishna/bookpal/internal/models"
)

// googleBooksResponse is the subset of the Google Books volumes API
// response this fetcher reads
type googleBooksResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Description   string   `json:"description"`
			Categories    []string `json:"categories"`
			PublishedDate string   `json:"publishedDate"`
			Publisher     string   `json:"publisher"`
			PageCount     int      `json:"pageCount"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// fetchFromGoogleBooks queries the Google Books volumes API by ISBN
func (f *Fetcher) fetchFromGoogleBooks(ctx context.Context, isbn string) (*models.BookRecord, error) {
	reqURL := f.GoogleBooksBaseURL + "?q=" + url.QueryEscape("isbn:"+isbn)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request: %w", err)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: google books returned status %d - %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var response googleBooksResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	if response.TotalItems == 0 || len(response.Items) == 0 {
		return nil, ErrNotFound
	}

	info := response.Items[0].VolumeInfo
	book := &models.BookRecord{
		ISBN:          isbn,
		Title:         info.Title,
		Authors:       info.Authors,
		Description:   info.Description,
		Categories:    info.Categories,
		PublishedDate: info.PublishedDate,
		Publisher:     info.Publisher,
		PageCount:     info.PageCount,
		Source:        "Google Books",
	}
	if book.Title == "" {
		book.Title = "Unknown Title"
	}
	if len(book.Authors) == 0 {
		book.Authors = []string{"Unknown Author"}
	}

	return book, nil
}
