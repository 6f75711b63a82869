package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cornelius/blog/internal/core/domain"
	"github.com/cornelius/blog/internal/core/ports"
)

type PostService struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, logger: logger}
}

func (s *PostService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// CreatePost stores a post signed with the author's current username.
// Returns domain.ErrUserNotFound when the session user no longer exists.
func (s *PostService) CreatePost(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, domain.ErrInvalidInput
	}

	author, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	created, err := s.posts.Create(ctx, &domain.Post{
		Title:     input.Title,
		Content:   input.Content,
		OwnerID:   author.ID,
		Signature: author.Username,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", author.ID).Msg("failed to create post")
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.logger.Info().Str("post_id", created.ID).Str("user_id", author.ID).Msg("post created")
	return created, nil
}

// DeletePost removes a post if and only if input.UserID owns it.
func (s *PostService) DeletePost(ctx context.Context, input ports.DeletePostInput) error {
	post, err := s.posts.FindByID(ctx, input.PostID)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return err
		}
		return fmt.Errorf("delete post: %w", err)
	}

	if !post.OwnedBy(input.UserID) {
		s.logger.Warn().
			Str("post_id", post.ID).
			Str("owner_id", post.OwnerID).
			Str("user_id", input.UserID).
			Msg("delete rejected: not the owner")
		return domain.ErrForbidden
	}

	if err := s.posts.DeleteByID(ctx, post.ID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	s.logger.Info().Str("post_id", post.ID).Str("user_id", input.UserID).Msg("post deleted")
	return nil
}
