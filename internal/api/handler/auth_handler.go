package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cornelius/blog/internal/api/metrics"
	"github.com/cornelius/blog/internal/api/middleware"
	"github.com/cornelius/blog/internal/api/view"
	"github.com/cornelius/blog/internal/core/domain"
	"github.com/cornelius/blog/internal/core/ports"
)

const (
	msgUsernameTaken  = "Username is already taken"
	msgInternalServer = "Internal Server Error"
)

type AuthHandler struct {
	authService ports.AuthService
	sessionDeps
}

func NewAuthHandler(authService ports.AuthService, sessions ports.SessionService, cookies *middleware.CookieCodec, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessionDeps: sessionDeps{sessions: sessions, cookies: cookies, log: log},
	}
}

// Index handles GET /.
func (h *AuthHandler) Index(c echo.Context) error {
	return c.Redirect(http.StatusFound, pathLogin)
}

// ShowLogin renders the login form.
//
// @Summary      Login form
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /login [get]
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageLogin, view.FormPage{})
}

// Login authenticates the user and starts a session. Every failure sends the
// client back to the login form without saying what went wrong.
//
// @Summary      Log in
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      302  "Redirect to /home, or back to /login on failure"
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var form credentialsForm
	if err := c.Bind(&form); err != nil || c.Validate(&form) != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return c.Redirect(http.StatusFound, pathLogin)
	}

	ctx := c.Request().Context()
	user, err := h.authService.Login(ctx, form.Username, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
			h.log.Error().Err(err).Msg("login failed")
		}
		return c.Redirect(http.StatusFound, pathLogin)
	}

	// Drop whatever session the browser carried before issuing a new one.
	if token := middleware.SessionToken(c); token != "" {
		if err := h.sessions.Destroy(ctx, token); err != nil {
			h.log.Warn().Err(err).Msg("failed to destroy previous session")
		}
	}

	session, err := h.sessions.Create(ctx, user.ID)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return err
	}
	cookie, err := h.cookies.Encode(session)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return err
	}
	c.SetCookie(cookie)

	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	h.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return c.Redirect(http.StatusFound, pathHome)
}

// ShowRegister renders the registration form.
//
// @Summary      Registration form
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /register [get]
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageRegister, view.FormPage{})
}

// Register creates a new account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      302  "Redirect to /login"
// @Failure      400  "Form re-rendered with a validation message"
// @Failure      409  "Form re-rendered with: Username is already taken"
// @Failure      500  "Form re-rendered with: Internal Server Error"
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var form credentialsForm
	if err := c.Bind(&form); err != nil {
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return h.renderRegister(c, http.StatusBadRequest, "invalid form", form)
	}
	if err := c.Validate(&form); err != nil {
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return h.renderRegister(c, http.StatusBadRequest, err.Error(), form)
	}

	_, err := h.authService.Register(c.Request().Context(), form.Username, form.Password)
	switch {
	case err == nil:
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
		return c.Redirect(http.StatusFound, pathLogin)
	case errors.Is(err, domain.ErrUsernameTaken):
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultTaken).Inc()
		return h.renderRegister(c, http.StatusConflict, msgUsernameTaken, form)
	case errors.Is(err, domain.ErrInvalidInput):
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return h.renderRegister(c, http.StatusBadRequest, "username and password are required, password at most 72 bytes", form)
	default:
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultError).Inc()
		h.log.Error().Err(err).Str("username", form.Username).Msg("registration failed")
		return h.renderRegister(c, http.StatusInternalServerError, msgInternalServer, form)
	}
}

func (h *AuthHandler) renderRegister(c echo.Context, status int, msg string, form credentialsForm) error {
	return c.Render(status, view.PageRegister, view.FormPage{
		Error:  msg,
		Values: map[string]string{"username": form.Username},
	})
}

// Logout destroys the current session. A session that cannot be destroyed
// is reported as a server error rather than silently kept alive.
//
// @Summary      Log out
// @Tags         auth
// @Success      302  "Redirect to /login"
// @Failure      500  "Session could not be destroyed"
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.endSession(c); err != nil {
		metrics.LogoutsTotal.WithLabelValues(metrics.ResultError).Inc()
		return err
	}
	metrics.LogoutsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return c.Redirect(http.StatusFound, pathLogin)
}
