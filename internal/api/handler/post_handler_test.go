package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/cornelius/blog/internal/core/domain"
	"github.com/cornelius/blog/internal/core/ports"
)

func aliceAuth() *stubAuthService {
	return &stubAuthService{
		currentUserFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{ID: "u1", Username: "alice"}, nil
		},
	}
}

func TestPostHandler_Home_ListsPostsWithOwnership(t *testing.T) {
	posts := &stubPostService{
		listFn: func(ctx context.Context) ([]*domain.Post, error) {
			return []*domain.Post{
				{ID: "p1", Title: "Mine", Content: "hello", OwnerID: "u1", Signature: "alice", CreatedAt: time.Now()},
				{ID: "p2", Title: "Theirs", Content: "hey", OwnerID: "u2", Signature: "bob", CreatedAt: time.Now()},
			}, nil
		},
	}
	h := NewPostHandler(aliceAuth(), posts, &stubSessionService{}, testCodec, nopLogger)

	c, rec := newTestContext(t, http.MethodGet, "/home", nil)
	withUser(c, "u1", "tok-u1")
	if err := h.Home(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"alice", "Mine", "Theirs", "bob", `action="/deletepost/p1"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in body:\n%s", want, body)
		}
	}
	if strings.Contains(body, `action="/deletepost/p2"`) {
		t.Fatalf("delete form must only be shown for owned posts")
	}
}

func TestPostHandler_Home_MissingUserLogsOut(t *testing.T) {
	posts := &stubPostService{
		listFn: func(ctx context.Context) ([]*domain.Post, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	sessions := &stubSessionService{}
	h := NewPostHandler(aliceAuth(), posts, sessions, testCodec, nopLogger)

	c, rec := newTestContext(t, http.MethodGet, "/home", nil)
	withUser(c, "ghost", "tok-ghost")
	if err := h.Home(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	assertRedirect(t, rec, "/login")
	if len(sessions.destroyed) != 1 || sessions.destroyed[0] != "tok-ghost" {
		t.Fatalf("expected session destroyed, got %v", sessions.destroyed)
	}
}

func TestPostHandler_ShowNewPost(t *testing.T) {
	h := NewPostHandler(aliceAuth(), &stubPostService{}, &stubSessionService{}, testCodec, nopLogger)

	c, rec := newTestContext(t, http.MethodGet, "/newpost", nil)
	withUser(c, "u1", "tok-u1")
	if err := h.ShowNewPost(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `action="/newpost"`) {
		t.Fatalf("unexpected page: %d %s", rec.Code, rec.Body.String())
	}
}

func TestPostHandler_CreatePost_Success(t *testing.T) {
	posts := &stubPostService{
		createFn: func(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
			if input.Title != "Hello" || input.Content != "World" || input.UserID != "u1" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Post{ID: "p1", Title: input.Title, OwnerID: input.UserID, Signature: "alice"}, nil
		},
	}
	h := NewPostHandler(aliceAuth(), posts, &stubSessionService{}, testCodec, nopLogger)

	c, rec := newTestContext(t, http.MethodPost, "/newpost", url.Values{"title": {"Hello"}, "content": {"World"}})
	withUser(c, "u1", "tok-u1")
	if err := h.CreatePost(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertRedirect(t, rec, "/home")
}

func TestPostHandler_CreatePost_InvalidPayload(t *testing.T) {
	posts := &stubPostService{
		createFn: func(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewPostHandler(aliceAuth(), posts, &stubSessionService{}, testCodec, nopLogger)

	c, rec := newTestContext(t, http.MethodPost, "/newpost", url.Values{"title": {""}, "content": {"draft"}})
	withUser(c, "u1", "tok-u1")
	if err := h.CreatePost(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "title is required") || !strings.Contains(body, "draft") {
		t.Fatalf("expected message and kept content:\n%s", body)
	}
}

func TestPostHandler_CreatePost_UnknownUserLogsOut(t *testing.T) {
	posts := &stubPostService{
		createFn: func(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	sessions := &stubSessionService{}
	h := NewPostHandler(aliceAuth(), posts, sessions, testCodec, nopLogger)

	c, rec := newTestContext(t, http.MethodPost, "/newpost", url.Values{"title": {"Hello"}, "content": {"World"}})
	withUser(c, "ghost", "tok-ghost")
	if err := h.CreatePost(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertRedirect(t, rec, "/login")
	if len(sessions.destroyed) != 1 {
		t.Fatalf("expected session destroyed, got %v", sessions.destroyed)
	}
}

func TestPostHandler_DeletePost(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"owner", nil, nil},
		{"not owner", domain.ErrForbidden, domain.ErrForbidden},
		{"missing", domain.ErrPostNotFound, domain.ErrPostNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := &stubPostService{
				deleteFn: func(ctx context.Context, input ports.DeletePostInput) error {
					if input.PostID != "p1" || input.UserID != "u1" {
						t.Fatalf("unexpected input: %+v", input)
					}
					return tt.err
				},
			}
			h := NewPostHandler(aliceAuth(), posts, &stubSessionService{}, testCodec, nopLogger)

			c, rec := newTestContext(t, http.MethodPost, "/deletepost/p1", nil)
			c.SetParamNames("id")
			c.SetParamValues("p1")
			withUser(c, "u1", "tok-u1")

			err := h.DeletePost(c)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("handler error: %v", err)
				}
				assertRedirect(t, rec, "/home")
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
