package service

import (
	"context"

	"smartlib-backend/internal/domains/chat/model"
)

// ServiceInterface defines the contract for the library assistant
type ServiceInterface interface {
	// Chat answers a user message and persists the exchange
	Chat(ctx context.Context, userID int64, req model.ChatRequest) (*model.ChatResponse, error)

	// History returns the user's recent exchanges, newest first
	History(ctx context.Context, userID int64) ([]model.HistoryEntry, error)
}
