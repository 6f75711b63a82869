package ports

import (
	"context"

	"github.com/cornelius/blog/internal/core/domain"
)

// UserRepository defines the persistence operations for credentials.
type UserRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no user has that name.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound for unknown or malformed ids.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create stores a new user and returns it with its generated ID.
	// Returns domain.ErrUsernameTaken if the username already exists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
