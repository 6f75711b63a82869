package ports

import (
	"context"

	"github.com/cornelius/blog/internal/core/domain"
)

// CreatePostInput carries the form values and the author resolved from the session.
type CreatePostInput struct {
	Title   string
	Content string
	UserID  string
}

// DeletePostInput identifies the post and the user asking to delete it.
type DeletePostInput struct {
	PostID string
	UserID string
}

// PostService defines use-case operations for posts.
type PostService interface {
	ListPosts(ctx context.Context) ([]*domain.Post, error)
	CreatePost(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	DeletePost(ctx context.Context, input DeletePostInput) error
}
