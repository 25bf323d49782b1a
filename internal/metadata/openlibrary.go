package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/suhruthkrishna/bookpal/internal/models"
)

// nameOrString decodes OpenLibrary fields that appear either as a plain
// string or as an object with a "name" key, depending on the record
type nameOrString string

func (n *nameOrString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = nameOrString(s)
		return nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*n = nameOrString(obj.Name)
	return nil
}

// openLibraryResponse is the brief volumes API response: a map of record
// keys to record data
type openLibraryResponse struct {
	Records map[string]struct {
		Data struct {
			Title         string         `json:"title"`
			Authors       []nameOrString `json:"authors"`
			Description   nameOrString   `json:"description"`
			Subjects      []nameOrString `json:"subjects"`
			PublishDate   string         `json:"publish_date"`
			Publishers    []nameOrString `json:"publishers"`
			NumberOfPages int            `json:"number_of_pages"`
		} `json:"data"`
	} `json:"records"`
}

// fetchFromOpenLibrary queries the OpenLibrary brief volumes API by ISBN
// as the fallback source
func (f *Fetcher) fetchFromOpenLibrary(ctx context.Context, isbn string) (*models.BookRecord, error) {
	reqURL := fmt.Sprintf("%s/%s.json", f.OpenLibraryBaseURL, isbn)

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
		return nil, fmt.Errorf("%w: openlibrary returned status %d - %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var response openLibraryResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(response.Records) == 0 {
		return nil, ErrNotFound
	}

	// The brief API keys records by bib key; take the first one
	for _, record := range response.Records {
		data := record.Data

		book := &models.BookRecord{
			ISBN:          isbn,
			Title:         data.Title,
			Description:   string(data.Description),
			PublishedDate: data.PublishDate,
			PageCount:     data.NumberOfPages,
			Source:        "OpenLibrary",
		}
		for _, author := range data.Authors {
			book.Authors = append(book.Authors, string(author))
		}
		for _, subject := range data.Subjects {
			book.Categories = append(book.Categories, string(subject))
		}
		for _, publisher := range data.Publishers {
			book.Publisher = string(publisher)
			break
		}
		if book.Title == "" {
			book.Title = "Unknown Title"
		}
		if len(book.Authors) == 0 {
			book.Authors = []string{"Unknown Author"}
		}

		return book, nil
	}

	return nil, ErrNotFound
}
