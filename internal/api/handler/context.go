package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cornelius/blog/internal/api/middleware"
	"github.com/cornelius/blog/internal/core/ports"
)

const (
	pathLogin = "/login"
	pathHome  = "/home"
)

// sessionDeps bundles what handlers need to issue and drop sessions.
type sessionDeps struct {
	sessions ports.SessionService
	cookies  *middleware.CookieCodec
	log      zerolog.Logger
}

// endSession destroys the request's session, if any, and clears the cookie.
// The destroy error is returned so callers decide whether it is fatal.
func (d sessionDeps) endSession(c echo.Context) error {
	c.SetCookie(d.cookies.Clear())
	return d.sessions.Destroy(c.Request().Context(), middleware.SessionToken(c))
}

// forceLogout ends the session and sends the client to the login page. Used
// when a session points at a user that can no longer be loaded.
func (d sessionDeps) forceLogout(c echo.Context, reason error) error {
	d.log.Warn().Err(reason).Str("user_id", middleware.UserID(c)).Msg("session user unavailable, logging out")
	if err := d.endSession(c); err != nil {
		d.log.Error().Err(err).Msg("failed to destroy session")
	}
	return c.Redirect(http.StatusFound, pathLogin)
}

// currentUserID returns the user id put in place by middleware.LoadSession.
// Routes behind middleware.RequireSession always have one.
func currentUserID(c echo.Context) string {
	return middleware.UserID(c)
}
