package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cornelius/blog/internal/api/middleware"
	"github.com/cornelius/blog/internal/api/view"
	"github.com/cornelius/blog/internal/core/domain"
	"github.com/cornelius/blog/internal/core/ports"
)

type stubAuthService struct {
	registerFn    func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn       func(ctx context.Context, username, password string) (*domain.User, error)
	currentUserFn func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.currentUserFn(ctx, userID)
}

type stubSessionService struct {
	created    []string
	destroyed  []string
	destroyErr error
}

func (s *stubSessionService) Create(_ context.Context, userID string) (*domain.Session, error) {
	s.created = append(s.created, userID)
	now := time.Now()
	return &domain.Session{
		Token:     "tok-" + userID,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(45 * time.Minute),
	}, nil
}

func (s *stubSessionService) Resolve(_ context.Context, _ string) (string, error) {
	return "", domain.ErrSessionNotFound
}

func (s *stubSessionService) Destroy(_ context.Context, token string) error {
	if s.destroyErr != nil {
		return s.destroyErr
	}
	if token != "" {
		s.destroyed = append(s.destroyed, token)
	}
	return nil
}

type stubPostService struct {
	listFn   func(ctx context.Context) ([]*domain.Post, error)
	createFn func(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error)
	deleteFn func(ctx context.Context, input ports.DeletePostInput) error
}

func (s *stubPostService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	return s.listFn(ctx)
}

func (s *stubPostService) CreatePost(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	return s.createFn(ctx, input)
}

func (s *stubPostService) DeletePost(ctx context.Context, input ports.DeletePostInput) error {
	return s.deleteFn(ctx, input)
}

var testCodec = middleware.NewCookieCodec("test-secret", false)

// newTestContext builds an echo context with the validator and renderer the
// router would install. A non-nil form is sent url-encoded.
func newTestContext(t *testing.T, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	renderer, err := view.New("")
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}
	e := echo.New()
	e.Validator = NewValidator()
	e.Renderer = renderer

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withUser(c echo.Context, userID, token string) {
	c.Set(middleware.ContextUserID, userID)
	c.Set(middleware.ContextSessionToken, token)
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != location {
		t.Fatalf("expected redirect to %s, got %q", location, got)
	}
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.DefaultCookieName {
			return c
		}
	}
	return nil
}

var nopLogger = zerolog.Nop()
