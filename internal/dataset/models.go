package dataset

import "github.com/suhruthkrishna/bookpal/internal/models"

// BookImportRecord is one row of a favorites import dataset. The column
// layout matches the JSON favorites contract so a dataset can be produced
// from an exported library.
type BookImportRecord struct {
	ISBN          string   `json:"isbn" parquet:"isbn"`
	Title         string   `json:"title" parquet:"title"`
	Authors       []string `json:"authors" parquet:"authors,list"`
	Description   string   `json:"description" parquet:"description"`
	Categories    []string `json:"categories" parquet:"categories,list"`
	Genre         string   `json:"genre" parquet:"genre"`
	Publisher     string   `json:"publisher" parquet:"publisher"`
	PublishedDate string   `json:"published_date" parquet:"published_date"`
	PageCount     int      `json:"page_count" parquet:"page_count"`
}

// ToBookRecord converts an import row to the domain record
func (r *BookImportRecord) ToBookRecord() models.BookRecord {
	return models.BookRecord{
		ISBN:          r.ISBN,
		Title:         r.Title,
		Authors:       r.Authors,
		Description:   r.Description,
		Categories:    r.Categories,
		Genre:         r.Genre,
		Publisher:     r.Publisher,
		PublishedDate: r.PublishedDate,
		PageCount:     r.PageCount,
		Source:        "import",
	}
}
