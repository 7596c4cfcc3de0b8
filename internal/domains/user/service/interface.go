package service

import (
	"context"

	"smartlib-backend/internal/domains/user/model"
)

// ServiceInterface defines the contract for user business logic
type ServiceInterface interface {
	// Register creates a new member account.
	// Returns ErrUsernameTaken / ErrEmailTaken on duplicates.
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserResponse, error)

	// Login verifies credentials and returns a bearer token.
	// Returns ErrInvalidCredentials on any authentication failure.
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)

	// GetProfile returns the authenticated user's profile
	GetProfile(ctx context.Context, userID int64) (*model.UserResponse, error)
}
