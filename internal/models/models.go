package models

import "time"

// BookRecord represents book metadata fetched from an external source
type BookRecord struct {
	ISBN          string   `json:"isbn"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Description   string   `json:"description"`
	Categories    []string `json:"categories"`
	Genre         string   `json:"genre"` // detected primary genre
	Publisher     string   `json:"publisher,omitempty"`
	PublishedDate string   `json:"published_date,omitempty"`
	PageCount     int      `json:"page_count,omitempty"`
	Source        string   `json:"source,omitempty"` // "Google Books" or "OpenLibrary"
}

// FavoriteEntry is a book the user marked as a favorite, together with
// its embedding so genre profiles can be rebuilt without re-embedding
type FavoriteEntry struct {
	Book      BookRecord `json:"book"`
	Embedding []float32  `json:"embedding"`
	AddedAt   time.Time  `json:"added_at"`
}

// GenreProfile is the mean embedding of all favorites sharing one genre
type GenreProfile struct {
	Genre     string    `json:"genre"`
	Embedding []float32 `json:"embedding"`
	Count     int       `json:"count"` // number of contributing favorites
}

// Tier classifies a similarity score
type Tier string

const (
	TierStrong  Tier = "strong"
	TierPartial Tier = "partial"
	TierNone    Tier = "none"
)

// Suggestion is a favorite offered as an alternative when the candidate
// is not a strong match
type Suggestion struct {
	Book  BookRecord `json:"book"`
	Score float64    `json:"score"`
}

// MatchVerdict is the result of evaluating a candidate book against the
// user's favorites
type MatchVerdict struct {
	ISBN        string       `json:"isbn"`
	Genre       string       `json:"genre"` // best-matching genre
	Score       float64      `json:"score"`
	Tier        Tier         `json:"tier"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}
