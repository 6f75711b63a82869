package ports

import (
	"context"

	"github.com/cornelius/blog/internal/core/domain"
)

// SessionService issues, resolves and invalidates login sessions.
type SessionService interface {
	Create(ctx context.Context, userID string) (*domain.Session, error)
	// Resolve returns the user id bound to token, or domain.ErrSessionNotFound
	// when the token is empty, unknown or past its expiry.
	Resolve(ctx context.Context, token string) (string, error)
	// Destroy invalidates the session. Failures wrap domain.ErrSessionDestroy.
	Destroy(ctx context.Context, token string) error
}
