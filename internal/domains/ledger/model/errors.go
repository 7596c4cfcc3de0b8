package model

import "errors"

var (
	// ErrBookUnavailable is returned on issue when the book does not exist
	// or has no available copies. The two cases are deliberately not
	// distinguished on the wire.
	ErrBookUnavailable = errors.New("book not available for issue")

	// ErrIssueNotFound is returned on return when no active issue matches
	// the (issue, user) pair. Covers unknown ids, already-returned issues
	// and issues owned by another user, so existence is never leaked.
	ErrIssueNotFound = errors.New("issue not found or already returned")

	// ErrConflict is returned after bounded retries when the store keeps
	// reporting transient transaction conflicts
	ErrConflict = errors.New("conflicting concurrent update, try again")
)
