package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"smartlib-backend/internal/domains/ledger/model"
)

// RepositoryInterface defines the contract for ledger data access.
//
// The mutating operations take a pgx.Tx because the service owns the
// transaction boundary: a book-row lock and the matching issue-record
// write must commit together or not at all.
type RepositoryInterface interface {
	// GetBookCountsForUpdate locks the book row (SELECT ... FOR UPDATE)
	// and returns its copy counters.
	// Returns ErrBookUnavailable when the book does not exist.
	GetBookCountsForUpdate(ctx context.Context, tx pgx.Tx, bookID int64) (total, available int, err error)

	// DecrementAvailable decrements available_copies by 1, guarded by
	// available_copies > 0. Returns ErrBookUnavailable when the guard
	// rejects the update.
	DecrementAvailable(ctx context.Context, tx pgx.Tx, bookID int64) error

	// IncrementAvailable increments available_copies by 1, guarded by
	// available_copies < total_copies so the invariant can never break.
	IncrementAvailable(ctx context.Context, tx pgx.Tx, bookID int64) error

	// InsertIssue inserts a new issue record and populates the generated id
	InsertIssue(ctx context.Context, tx pgx.Tx, issue *model.BookIssue) error

	// GetActiveIssueForUpdate locks and returns the issue matching
	// (issueID, userID, status=issued). Returns ErrIssueNotFound otherwise.
	GetActiveIssueForUpdate(ctx context.Context, tx pgx.Tx, issueID, userID int64) (*model.BookIssue, error)

	// MarkReturned flips the issue to returned with the given timestamp.
	// Returns ErrIssueNotFound when the issue is not active anymore.
	MarkReturned(ctx context.Context, tx pgx.Tx, issueID int64, returnedAt time.Time) error

	// ListActiveForUser returns the user's active issues ordered by id
	ListActiveForUser(ctx context.Context, userID int64) ([]model.BookIssue, error)

	// ListAll returns every issue regardless of status, ordered by id,
	// together with the total count for pagination metadata
	ListAll(ctx context.Context, offset, limit int) ([]model.BookIssue, int, error)

	// ListDueSoon returns active issues whose due date falls within the
	// window from now, joined with borrower contact details
	ListDueSoon(ctx context.Context, window time.Duration) ([]model.DueSoonIssue, error)
}
