package ports

import (
	"context"

	"github.com/cornelius/blog/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
