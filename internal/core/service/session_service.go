package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cornelius/blog/internal/core/domain"
	"github.com/cornelius/blog/internal/core/ports"
)

// DefaultSessionTTL is the absolute lifetime of a login session.
const DefaultSessionTTL = 45 * time.Minute

// SessionService hands out opaque session tokens and resolves them back to
// user ids. Expiry is absolute: activity does not extend a session.
type SessionService struct {
	store  ports.SessionStore
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

func NewSessionService(store ports.SessionStore, ttl time.Duration, logger zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{store: store, ttl: ttl, now: time.Now, logger: logger}
}

// TTL returns the lifetime given to new sessions.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

func (s *SessionService) Create(ctx context.Context, userID string) (*domain.Session, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := s.now().UTC()
	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Debug().Str("user_id", userID).Time("expires_at", session.ExpiresAt).Msg("session created")
	return session, nil
}

func (s *SessionService) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrSessionNotFound
	}

	session, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return "", err
		}
		return "", fmt.Errorf("resolve session: %w", err)
	}

	// The store's own TTL may lag behind; the recorded expiry is authoritative.
	if session.Expired(s.now()) || session.UserID == "" {
		return "", domain.ErrSessionNotFound
	}
	return session.UserID, nil
}

func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSessionDestroy, err)
	}
	return nil
}
