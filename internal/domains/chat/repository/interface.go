package repository

import (
	"context"

	"smartlib-backend/internal/domains/chat/model"
)

// RepositoryInterface defines the contract for transcript data access
type RepositoryInterface interface {
	// Insert persists one exchange and populates the generated id
	Insert(ctx context.Context, msg *model.ChatMessage) error

	// ListRecentForUser returns the user's newest exchanges first
	ListRecentForUser(ctx context.Context, userID int64, limit int) ([]model.ChatMessage, error)
}
