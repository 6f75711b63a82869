package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cornelius/blog/internal/core/domain"
)

const (
	ContextUserID       = "user_id"
	ContextSessionToken = "session_token"

	LoginPath = "/login"
)

// SessionResolver is the part of the session service the middleware needs.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// LoadSession resolves the session cookie on every request. A valid session
// puts the user id into the context; anything else leaves the request
// anonymous. The decoded token is kept even when it no longer resolves so
// logout can still clean it up.
func LoadSession(sessions SessionResolver, codec *CookieCodec, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(codec.Name())
			if err != nil {
				return next(c)
			}

			token, err := codec.Decode(cookie.Value)
			if err != nil {
				return next(c)
			}
			c.Set(ContextSessionToken, token)

			userID, err := sessions.Resolve(c.Request().Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrSessionNotFound) {
					log.Warn().Err(err).Str("path", c.Path()).Msg("session lookup failed, treating request as anonymous")
				}
				return next(c)
			}

			c.Set(ContextUserID, userID)
			return next(c)
		}
	}
}

// RequireSession redirects anonymous requests to the login page without
// calling the wrapped handler.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if UserID(c) == "" {
				return c.Redirect(http.StatusFound, LoginPath)
			}
			return next(c)
		}
	}
}

// UserID returns the id resolved by LoadSession, or "" for anonymous requests.
func UserID(c echo.Context) string {
	id, _ := c.Get(ContextUserID).(string)
	return id
}

// SessionToken returns the session token carried by the request cookie, if any.
func SessionToken(c echo.Context) string {
	token, _ := c.Get(ContextSessionToken).(string)
	return token
}
