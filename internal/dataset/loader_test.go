package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewLoader(t *testing.T) {
	path := "./books.parquet"
	loader := NewLoader(path)

	if loader.datasetPath != path {
		t.Errorf("Expected path %s, got %s", path, loader.datasetPath)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	loader := NewLoader("books.csv")

	_, err := loader.Load()
	if err == nil {
		t.Fatal("Expected error for unsupported format")
	}
}

func TestLoadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.jsonl")
	content := `{"isbn":"9780547928227","title":"The Hobbit","authors":["J.R.R. Tolkien"],"description":"An adventure.","categories":["Fantasy fiction"],"genre":"Fantasy","publisher":"Allen & Unwin","page_count":310}

{"isbn":"9780441013593","title":"Dune","authors":["Frank Herbert"],"genre":"Science Fiction"}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write dataset: %v", err)
	}

	loader := NewLoader(path)
	records, err := loader.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records (blank line skipped), got %d", len(records))
	}
	if records[0].Title != "The Hobbit" {
		t.Errorf("Expected The Hobbit, got %s", records[0].Title)
	}
	if records[1].Genre != "Science Fiction" {
		t.Errorf("Expected Science Fiction, got %s", records[1].Genre)
	}
}

func TestLoadJSONLInvalidLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.jsonl")
	content := `{"isbn":"1","title":"Good"}
not json at all
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write dataset: %v", err)
	}

	loader := NewLoader(path)
	if _, err := loader.Load(); err == nil {
		t.Error("Expected error for invalid JSON line")
	}
}

func TestToBookRecord(t *testing.T) {
	record := BookImportRecord{
		ISBN:       "9780547928227",
		Title:      "The Hobbit",
		Authors:    []string{"J.R.R. Tolkien"},
		Categories: []string{"Fantasy fiction"},
		Genre:      "Fantasy",
		PageCount:  310,
	}

	book := record.ToBookRecord()
	if book.ISBN != record.ISBN || book.Title != record.Title {
		t.Errorf("Expected fields copied, got %+v", book)
	}
	if book.Source != "import" {
		t.Errorf("Expected source import, got %s", book.Source)
	}
}
