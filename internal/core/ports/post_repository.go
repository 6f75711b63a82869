package ports

import (
	"context"

	"github.com/cornelius/blog/internal/core/domain"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	// List returns every post ordered by creation time, oldest first.
	List(ctx context.Context) ([]*domain.Post, error)
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// DeleteByID removes a post. Deleting an unknown id is not an error;
	// ownership is checked by the caller.
	DeleteByID(ctx context.Context, id string) error
}
