package repository

import (
	"context"

	"smartlib-backend/internal/domains/book/model"
)

// RepositoryInterface defines the contract for catalog data access.
// Copy counters are read here but mutated only by the ledger repository.
type RepositoryInterface interface {
	// Create inserts a new book and populates the generated id.
	// Returns ErrISBNTaken on a duplicate isbn.
	Create(ctx context.Context, book *model.Book) error

	// GetByID returns ErrBookNotFound when missing
	GetByID(ctx context.Context, id int64) (*model.Book, error)

	// List returns books ordered by id
	List(ctx context.Context, offset, limit int) ([]model.Book, error)

	// Search matches query against title/author/description (case-insensitive
	// substring) with an optional exact genre filter
	Search(ctx context.Context, query, genre string) ([]model.Book, error)

	// Update persists the full entity, guarded by the copy counters the
	// caller read (compare-and-swap). Returns ErrBookNotFound when the
	// book is missing, ErrConcurrentUpdate when the counters changed
	// underneath the caller.
	Update(ctx context.Context, book *model.Book, prevTotal, prevAvailable int) error

	// UpdateCoverURL sets only the cover_url column
	UpdateCoverURL(ctx context.Context, id int64, coverURL string) error

	// Delete removes the book; returns ErrBookNotFound when missing
	Delete(ctx context.Context, id int64) error
}
