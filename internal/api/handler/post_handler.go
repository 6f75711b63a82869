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

// PostHandler serves the session-gated pages: the post list, the new-post
// form and post deletion.
type PostHandler struct {
	authService ports.AuthService
	postService ports.PostService
	sessionDeps
}

func NewPostHandler(authService ports.AuthService, postService ports.PostService, sessions ports.SessionService, cookies *middleware.CookieCodec, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		authService: authService,
		postService: postService,
		sessionDeps: sessionDeps{sessions: sessions, cookies: cookies, log: log},
	}
}

// Home lists every post together with the current user.
//
// @Summary      Post list
// @Tags         posts
// @Produce      html
// @Success      200
// @Success      302  "Redirect to /login when the session or its user is gone"
// @Router       /home [get]
func (h *PostHandler) Home(c echo.Context) error {
	userID := currentUserID(c)
	ctx := c.Request().Context()

	user, err := h.authService.CurrentUser(ctx, userID)
	if err != nil {
		return h.forceLogout(c, err)
	}

	posts, err := h.postService.ListPosts(ctx)
	if err != nil {
		return err
	}

	page := view.HomePage{Username: user.Username, Posts: make([]view.PostItem, 0, len(posts))}
	for _, p := range posts {
		page.Posts = append(page.Posts, view.PostItem{
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Content,
			Signature: p.Signature,
			CreatedAt: p.CreatedAt,
			Owned:     p.OwnedBy(userID),
		})
	}
	return c.Render(http.StatusOK, view.PageHome, page)
}

// ShowNewPost renders the new-post form.
//
// @Summary      New post form
// @Tags         posts
// @Produce      html
// @Success      200
// @Router       /newpost [get]
func (h *PostHandler) ShowNewPost(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageNewPost, view.FormPage{})
}

// CreatePost publishes a post signed with the author's username.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        title    formData  string  true  "Title"
// @Param        content  formData  string  true  "Content"
// @Success      302  "Redirect to /home"
// @Failure      400  "Form re-rendered with a validation message"
// @Router       /newpost [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	var form newPostForm
	if err := c.Bind(&form); err != nil {
		return h.renderNewPost(c, "invalid form", form)
	}
	if err := c.Validate(&form); err != nil {
		return h.renderNewPost(c, err.Error(), form)
	}

	_, err := h.postService.CreatePost(c.Request().Context(), ports.CreatePostInput{
		Title:   form.Title,
		Content: form.Content,
		UserID:  currentUserID(c),
	})
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return h.renderNewPost(c, "title and content are required", form)
	case errors.Is(err, domain.ErrUserNotFound):
		return h.forceLogout(c, err)
	case err != nil:
		return err
	}

	metrics.PostsCreatedTotal.Inc()
	return c.Redirect(http.StatusFound, pathHome)
}

func (h *PostHandler) renderNewPost(c echo.Context, msg string, form newPostForm) error {
	return c.Render(http.StatusBadRequest, view.PageNewPost, view.FormPage{
		Error:  msg,
		Values: map[string]string{"title": form.Title, "content": form.Content},
	})
}

// DeletePost removes a post owned by the current user.
//
// @Summary      Delete a post
// @Tags         posts
// @Param        id   path  string  true  "Post ID"
// @Success      302  "Redirect to /home"
// @Failure      403  "Post belongs to another user"
// @Failure      404  "Post not found"
// @Router       /deletepost/{id} [post]
func (h *PostHandler) DeletePost(c echo.Context) error {
	err := h.postService.DeletePost(c.Request().Context(), ports.DeletePostInput{
		PostID: c.Param("id"),
		UserID: currentUserID(c),
	})
	switch {
	case err == nil:
		metrics.PostDeletionsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
		return c.Redirect(http.StatusFound, pathHome)
	case errors.Is(err, domain.ErrPostNotFound):
		metrics.PostDeletionsTotal.WithLabelValues(metrics.ResultNotFound).Inc()
	case errors.Is(err, domain.ErrForbidden):
		metrics.PostDeletionsTotal.WithLabelValues(metrics.ResultDenied).Inc()
	default:
		metrics.PostDeletionsTotal.WithLabelValues(metrics.ResultError).Inc()
	}
	return err
}
