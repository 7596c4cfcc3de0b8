package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateBookRequest adds a title to the catalog.
// TotalCopies defaults to 1; AvailableCopies defaults to TotalCopies.
type CreateBookRequest struct {
	Title           string  `json:"title" binding:"required"`
	Author          string  `json:"author" binding:"required"`
	ISBN            *string `json:"isbn"`
	Description     *string `json:"description"`
	Genre           *string `json:"genre"`
	PublicationYear *int    `json:"publication_year"`
	TotalCopies     *int    `json:"total_copies"`
	AvailableCopies *int    `json:"available_copies"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.ISBN,
			validation.When(r.ISBN != nil, validation.Length(0, 20)),
		),
		validation.Field(&r.Genre,
			validation.When(r.Genre != nil, validation.Length(0, 50)),
		),
		validation.Field(&r.PublicationYear,
			validation.When(r.PublicationYear != nil,
				validation.Min(0).Error("publication year cannot be negative"),
				validation.Max(time.Now().Year()+1),
			),
		),
		validation.Field(&r.TotalCopies,
			validation.When(r.TotalCopies != nil, validation.Min(0)),
		),
		validation.Field(&r.AvailableCopies,
			validation.When(r.AvailableCopies != nil, validation.Min(0)),
		),
	)
}

// UpdateBookRequest performs a partial update; nil fields keep current values
type UpdateBookRequest struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	ISBN            *string `json:"isbn"`
	Description     *string `json:"description"`
	Genre           *string `json:"genre"`
	PublicationYear *int    `json:"publication_year"`
	TotalCopies     *int    `json:"total_copies"`
	AvailableCopies *int    `json:"available_copies"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Length(1, 200)),
		),
		validation.Field(&r.Author,
			validation.When(r.Author != nil, validation.Length(1, 100)),
		),
		validation.Field(&r.ISBN,
			validation.When(r.ISBN != nil, validation.Length(0, 20)),
		),
		validation.Field(&r.TotalCopies,
			validation.When(r.TotalCopies != nil, validation.Min(0)),
		),
		validation.Field(&r.AvailableCopies,
			validation.When(r.AvailableCopies != nil, validation.Min(0)),
		),
	)
}

// SearchBooksRequest mirrors GET /books/search query params
type SearchBooksRequest struct {
	Query string `form:"query" binding:"required"`
	Genre string `form:"genre"`
}
