package metadata

import (
	"errors"
	"testing"
)

func TestCleanISBN(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "plain isbn13", raw: "9780547928227", expected: "9780547928227"},
		{name: "hyphenated", raw: "978-0-547-92822-7", expected: "9780547928227"},
		{name: "spaces", raw: "978 0547 928227", expected: "9780547928227"},
		{name: "isbn10 with check X", raw: "0-8044-2957-x", expected: "080442957X"},
		{name: "surrounding junk", raw: "ISBN: 9780547928227", expected: "9780547928227"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanISBN(tt.raw)
			if err != nil {
				t.Fatalf("CleanISBN returned error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestCleanISBNInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "no digits", raw: "not-an-isbn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CleanISBN(tt.raw)
			if !errors.Is(err, ErrInvalidISBN) {
				t.Errorf("Expected ErrInvalidISBN, got %v", err)
			}
		})
	}
}
