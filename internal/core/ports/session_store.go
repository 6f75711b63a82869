package ports

import (
	"context"

	"github.com/cornelius/blog/internal/core/domain"
)

// SessionStore keeps server-side session state keyed by token.
type SessionStore interface {
	// Save persists the session until its ExpiresAt.
	Save(ctx context.Context, session *domain.Session) error
	// Get returns domain.ErrSessionNotFound for unknown or expired tokens.
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}
