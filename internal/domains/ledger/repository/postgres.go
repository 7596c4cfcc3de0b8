package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartlib-backend/internal/domains/ledger/model"
)

const issueColumns = `
	id, user_id, book_id, issue_date, due_date, return_date, status, created_at, updated_at`

// postgresRepository implements RepositoryInterface
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanIssue(row pgx.Row, i *model.BookIssue) error {
	return row.Scan(
		&i.ID,
		&i.UserID,
		&i.BookID,
		&i.IssueDate,
		&i.DueDate,
		&i.ReturnDate,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
}

func (r *postgresRepository) GetBookCountsForUpdate(ctx context.Context, tx pgx.Tx, bookID int64) (int, int, error) {
	// Row lock serializes concurrent issue/return against the same book
	query := `
		SELECT total_copies, available_copies
		FROM books
		WHERE id = $1
		FOR UPDATE
	`

	var total, available int
	err := tx.QueryRow(ctx, query, bookID).Scan(&total, &available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, model.ErrBookUnavailable
		}
		return 0, 0, fmt.Errorf("failed to lock book row: %w", err)
	}

	return total, available, nil
}

func (r *postgresRepository) DecrementAvailable(ctx context.Context, tx pgx.Tx, bookID int64) error {
	// The predicate is a second fence behind the row lock: even if a
	// caller skips GetBookCountsForUpdate the counter cannot go negative.
	query := `
		UPDATE books
		SET available_copies = available_copies - 1, updated_at = NOW()
		WHERE id = $1 AND available_copies > 0
	`

	tag, err := tx.Exec(ctx, query, bookID)
	if err != nil {
		return fmt.Errorf("failed to decrement available copies: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookUnavailable
	}

	return nil
}

func (r *postgresRepository) IncrementAvailable(ctx context.Context, tx pgx.Tx, bookID int64) error {
	query := `
		UPDATE books
		SET available_copies = available_copies + 1, updated_at = NOW()
		WHERE id = $1 AND available_copies < total_copies
	`

	tag, err := tx.Exec(ctx, query, bookID)
	if err != nil {
		return fmt.Errorf("failed to increment available copies: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either the book vanished or the counter is already at total:
		// both mean the ledger and catalog disagree
		return fmt.Errorf("failed to increment available copies: book %d counter at capacity or missing", bookID)
	}

	return nil
}

func (r *postgresRepository) InsertIssue(ctx context.Context, tx pgx.Tx, issue *model.BookIssue) error {
	query := `
		INSERT INTO book_issues (user_id, book_id, issue_date, due_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		issue.UserID,
		issue.BookID,
		issue.IssueDate,
		issue.DueDate,
		issue.Status,
		issue.CreatedAt,
	).Scan(&issue.ID)
	if err != nil {
		return fmt.Errorf("failed to insert issue: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetActiveIssueForUpdate(ctx context.Context, tx pgx.Tx, issueID, userID int64) (*model.BookIssue, error) {
	// Scoped to the requesting user so other users' issues are
	// indistinguishable from nonexistent ones
	query := `SELECT` + issueColumns + `
		FROM book_issues
		WHERE id = $1 AND user_id = $2 AND status = $3
		FOR UPDATE
	`

	var issue model.BookIssue
	err := scanIssue(tx.QueryRow(ctx, query, issueID, userID, model.StatusIssued), &issue)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to lock issue row: %w", err)
	}

	return &issue, nil
}

func (r *postgresRepository) MarkReturned(ctx context.Context, tx pgx.Tx, issueID int64, returnedAt time.Time) error {
	// The status predicate makes the transition exactly-once
	query := `
		UPDATE book_issues
		SET status = $2, return_date = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`

	tag, err := tx.Exec(ctx, query, issueID, model.StatusReturned, returnedAt, model.StatusIssued)
	if err != nil {
		return fmt.Errorf("failed to mark issue returned: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrIssueNotFound
	}

	return nil
}

func (r *postgresRepository) ListActiveForUser(ctx context.Context, userID int64) ([]model.BookIssue, error) {
	query := `SELECT` + issueColumns + `
		FROM book_issues
		WHERE user_id = $1 AND status = $2
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, userID, model.StatusIssued)
	if err != nil {
		return nil, fmt.Errorf("failed to list active issues: %w", err)
	}
	defer rows.Close()

	return collectIssues(rows)
}

func (r *postgresRepository) ListAll(ctx context.Context, offset, limit int) ([]model.BookIssue, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM book_issues`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count issues: %w", err)
	}

	query := `SELECT` + issueColumns + `
		FROM book_issues
		ORDER BY id
		OFFSET $1 LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list issues: %w", err)
	}
	defer rows.Close()

	issues, err := collectIssues(rows)
	if err != nil {
		return nil, 0, err
	}

	return issues, total, nil
}

func (r *postgresRepository) ListDueSoon(ctx context.Context, window time.Duration) ([]model.DueSoonIssue, error) {
	query := `
		SELECT bi.id, bi.user_id, u.username, u.email, b.title, bi.due_date
		FROM book_issues bi
		JOIN users u ON u.id = bi.user_id
		JOIN books b ON b.id = bi.book_id
		WHERE bi.status = $1
		  AND bi.due_date > NOW()
		  AND bi.due_date <= NOW() + $2::interval
		ORDER BY bi.due_date
	`

	interval := fmt.Sprintf("%d seconds", int(window.Seconds()))
	rows, err := r.pool.Query(ctx, query, model.StatusIssued, interval)
	if err != nil {
		return nil, fmt.Errorf("failed to list due-soon issues: %w", err)
	}
	defer rows.Close()

	reminders := make([]model.DueSoonIssue, 0)
	for rows.Next() {
		var d model.DueSoonIssue
		if err := rows.Scan(&d.IssueID, &d.UserID, &d.Username, &d.Email, &d.BookTitle, &d.DueDate); err != nil {
			return nil, fmt.Errorf("failed to scan due-soon issue: %w", err)
		}
		reminders = append(reminders, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate due-soon issues: %w", err)
	}

	return reminders, nil
}

func collectIssues(rows pgx.Rows) ([]model.BookIssue, error) {
	issues := make([]model.BookIssue, 0)
	for rows.Next() {
		var i model.BookIssue
		if err := scanIssue(rows, &i); err != nil {
			return nil, fmt.Errorf("failed to scan issue: %w", err)
		}
		issues = append(issues, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate issues: %w", err)
	}
	return issues, nil
}
