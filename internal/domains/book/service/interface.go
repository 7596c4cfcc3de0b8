package service

import (
	"context"

	"smartlib-backend/internal/domains/book/model"
)

// ServiceInterface defines the contract for catalog business logic
type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error)
	GetByID(ctx context.Context, id int64) (*model.BookResponse, error)
	List(ctx context.Context, offset, limit int) ([]model.BookResponse, error)
	Search(ctx context.Context, req model.SearchBooksRequest) ([]model.BookResponse, error)
	Update(ctx context.Context, id int64, req model.UpdateBookRequest) (*model.BookResponse, error)
	Delete(ctx context.Context, id int64) error

	// UploadCover validates, resizes and stores a cover image, then records
	// the resulting URL on the book
	UploadCover(ctx context.Context, id int64, data []byte) (*model.BookResponse, error)

	// Snapshot returns aggregate catalog state for the chat assistant,
	// cached briefly in Redis
	Snapshot(ctx context.Context) (*model.LibrarySnapshot, error)

	// InvalidateSnapshot drops the cached snapshot; called after any
	// operation that changes copy counters
	InvalidateSnapshot(ctx context.Context)
}
