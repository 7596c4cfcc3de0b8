package model

import (
	"time"
)

// Book represents the database entity for the books table.
// The copy counters (total_copies / available_copies) are owned by the
// lending ledger: catalog updates never touch available_copies directly
// except through the delta rules in the service layer.
type Book struct {
	ID              int64      `db:"id"`
	Title           string     `db:"title"`
	Author          string     `db:"author"`
	ISBN            *string    `db:"isbn"`
	Description     *string    `db:"description"`
	Genre           *string    `db:"genre"`
	PublicationYear *int       `db:"publication_year"`
	TotalCopies     int        `db:"total_copies"`
	AvailableCopies int        `db:"available_copies"`
	CoverURL        *string    `db:"cover_url"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at"`
}

// BookResponse is the public view of a book
type BookResponse struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	ISBN            *string    `json:"isbn,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Genre           *string    `json:"genre,omitempty"`
	PublicationYear *int       `json:"publication_year,omitempty"`
	TotalCopies     int        `json:"total_copies"`
	AvailableCopies int        `json:"available_copies"`
	CoverURL        *string    `json:"cover_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

func (b *Book) ToResponse() BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Description:     b.Description,
		Genre:           b.Genre,
		PublicationYear: b.PublicationYear,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		CoverURL:        b.CoverURL,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// ToResponseList converts a slice of entities
func ToResponseList(books []Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for i := range books {
		out = append(out, books[i].ToResponse())
	}
	return out
}

// BookSummary is the condensed form used by the chat assistant
type BookSummary struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
	Available   int    `json:"available"`
	Total       int    `json:"total"`
}

// LibrarySnapshot aggregates catalog state for the assistant context
type LibrarySnapshot struct {
	TotalTitles     int            `json:"total_titles"`
	TotalCopies     int            `json:"total_copies"`
	AvailableCopies int            `json:"available_copies"`
	IssuedCopies    int            `json:"issued_copies"`
	Genres          map[string]int `json:"genres"`
	Books           []BookSummary  `json:"books"`
}

// Summarize builds a BookSummary, substituting placeholders for empty fields
func (b *Book) Summarize() BookSummary {
	genre := "Unknown"
	if b.Genre != nil && *b.Genre != "" {
		genre = *b.Genre
	}
	description := "No description available"
	if b.Description != nil && *b.Description != "" {
		description = *b.Description
	}
	return BookSummary{
		Title:       b.Title,
		Author:      b.Author,
		Genre:       genre,
		Description: description,
		Available:   b.AvailableCopies,
		Total:       b.TotalCopies,
	}
}
