package domain

import (
	"errors"
	"time"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrForbidden    = errors.New("access forbidden")
)

// Post is a text entry written by a single user.
//
// Signature is a snapshot of the author's username taken at creation time;
// OwnerID is what authorization decisions are made on.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OwnerID   string    `json:"owner_id"`
	Signature string    `json:"signature"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnedBy reports whether userID is allowed to delete the post.
func (p *Post) OwnedBy(userID string) bool {
	return userID != "" && p.OwnerID == userID
}
