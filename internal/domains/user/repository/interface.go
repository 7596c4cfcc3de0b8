package repository

import (
	"context"

	"smartlib-backend/internal/domains/user/model"
)

// RepositoryInterface defines the contract for user data access
type RepositoryInterface interface {
	// Create inserts a new user and populates the generated id.
	// Returns ErrUsernameTaken / ErrEmailTaken on unique violations.
	Create(ctx context.Context, user *model.User) error

	// FindByID returns ErrUserNotFound when missing
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindByUsername is used for login; returns ErrUserNotFound when missing
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// ExistsByUsername reports whether the username is taken
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether the email is taken
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
