package service

import (
	"context"
	"time"

	"smartlib-backend/internal/domains/ledger/model"
)

// ServiceInterface is the inventory ledger: the only mutation path for a
// book's available_copies and an issue's status/return_date.
type ServiceInterface interface {
	// Issue lends one copy of bookID to userID until dueDate.
	// The copy-count decrement and the issue insert commit atomically.
	// Returns ErrBookUnavailable when the book is missing or out of
	// copies, ErrConflict after exhausted conflict retries.
	Issue(ctx context.Context, userID, bookID int64, dueDate time.Time) (*model.IssueResponse, error)

	// Return gives back the copy held under issueID, scoped to userID.
	// Returns ErrIssueNotFound when no matching active issue exists.
	Return(ctx context.Context, issueID, userID int64) (*model.IssueResponse, error)

	// ListActiveForUser returns the user's open issues in insertion order
	ListActiveForUser(ctx context.Context, userID int64) ([]model.IssueResponse, error)

	// ListAll is the admin pagination view over every issue record.
	// Returns the page plus the total count.
	ListAll(ctx context.Context, offset, limit int) ([]model.IssueResponse, int, error)
}
