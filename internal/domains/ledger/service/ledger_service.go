package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"smartlib-backend/internal/domains/ledger/model"
	"smartlib-backend/internal/domains/ledger/repository"
	"smartlib-backend/internal/shared/utils"
	"smartlib-backend/pkg/database"
	"smartlib-backend/pkg/logger"
)

const (
	// conflictRetries bounds the retry loop for transient store conflicts
	// so contention cannot turn into a busy loop
	conflictRetries = 3
	conflictBackoff = 25 * time.Millisecond
)

// TxRunner abstracts the transaction boundary so tests can run the
// ledger against a fake store
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(pgx.Tx) error) error
}

// PoolRunner runs transactions on a pgx pool
type PoolRunner struct {
	Pool *pgxpool.Pool
}

func (p PoolRunner) RunInTx(ctx context.Context, fn func(pgx.Tx) error) error {
	return database.WithTransaction(ctx, p.Pool, fn)
}

// SnapshotInvalidator drops cached catalog aggregates after counter changes
type SnapshotInvalidator interface {
	InvalidateSnapshot(ctx context.Context)
}

type ledgerService struct {
	runner     TxRunner
	repo       repository.RepositoryInterface
	finePerDay decimal.Decimal
	maxLimit   int
	snapshots  SnapshotInvalidator // may be nil
}

// NewService creates a new ledger service
func NewService(
	runner TxRunner,
	repo repository.RepositoryInterface,
	finePerDay decimal.Decimal,
	maxListLimit int,
	snapshots SnapshotInvalidator,
) ServiceInterface {
	if maxListLimit <= 0 {
		maxListLimit = 100
	}
	return &ledgerService{
		runner:     runner,
		repo:       repo,
		finePerDay: finePerDay,
		maxLimit:   maxListLimit,
		snapshots:  snapshots,
	}
}

func (s *ledgerService) Issue(ctx context.Context, userID, bookID int64, dueDate time.Time) (*model.IssueResponse, error) {
	var issue *model.BookIssue

	err := s.withConflictRetry(ctx, func() error {
		return s.runner.RunInTx(ctx, func(tx pgx.Tx) error {
			_, available, err := s.repo.GetBookCountsForUpdate(ctx, tx, bookID)
			if err != nil {
				return err
			}
			if available <= 0 {
				return model.ErrBookUnavailable
			}

			if err := s.repo.DecrementAvailable(ctx, tx, bookID); err != nil {
				return err
			}

			now := time.Now()
			issue = &model.BookIssue{
				UserID:    userID,
				BookID:    bookID,
				IssueDate: now,
				DueDate:   dueDate,
				Status:    model.StatusIssued,
				CreatedAt: now,
			}
			return s.repo.InsertIssue(ctx, tx, issue)
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	resp := issue.ToResponse(time.Now(), s.finePerDay)
	return &resp, nil
}

func (s *ledgerService) Return(ctx context.Context, issueID, userID int64) (*model.IssueResponse, error) {
	var issue *model.BookIssue

	err := s.withConflictRetry(ctx, func() error {
		return s.runner.RunInTx(ctx, func(tx pgx.Tx) error {
			found, err := s.repo.GetActiveIssueForUpdate(ctx, tx, issueID, userID)
			if err != nil {
				return err
			}

			now := time.Now()
			if err := s.repo.MarkReturned(ctx, tx, issueID, now); err != nil {
				return err
			}

			if err := s.repo.IncrementAvailable(ctx, tx, found.BookID); err != nil {
				return err
			}

			found.Status = model.StatusReturned
			found.ReturnDate = &now
			issue = found
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	resp := issue.ToResponse(time.Now(), s.finePerDay)
	return &resp, nil
}

func (s *ledgerService) ListActiveForUser(ctx context.Context, userID int64) ([]model.IssueResponse, error) {
	issues, err := s.repo.ListActiveForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list active issues: %w", err)
	}
	return model.ToResponseList(issues, time.Now(), s.finePerDay), nil
}

func (s *ledgerService) ListAll(ctx context.Context, offset, limit int) ([]model.IssueResponse, int, error) {
	offset, limit = utils.NormalizeOffsetLimit(offset, limit, s.maxLimit)

	issues, total, err := s.repo.ListAll(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list issues: %w", err)
	}
	return model.ToResponseList(issues, time.Now(), s.finePerDay), total, nil
}

// withConflictRetry retries fn on transient transaction conflicts
// (serialization failure, deadlock, lock-not-available) a bounded number
// of times, then surfaces ErrConflict. Domain errors pass through.
func (s *ledgerService) withConflictRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= conflictRetries; attempt++ {
		err = fn()
		if err == nil || !isRetryableTxError(err) {
			return err
		}

		logger.Warn("retrying ledger transaction after store conflict", map[string]interface{}{
			"attempt": attempt,
		})

		select {
		case <-time.After(conflictBackoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("%w: %v", model.ErrConflict, err)
}

func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", // serialization_failure
		"40P01", // deadlock_detected
		"55P03": // lock_not_available
		return true
	}
	return false
}

func (s *ledgerService) invalidate(ctx context.Context) {
	if s.snapshots != nil {
		s.snapshots.InvalidateSnapshot(ctx)
	}
}
