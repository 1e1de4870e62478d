package model

import (
	"errors"
	"time"
)

// Post represents a content item attributed to its author.
type Post struct {
	ID        string    `db:"id" json:"id"`
	AuthorID  string    `db:"author_id" json:"author_id"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FeedItem is the feed projection of a post: timestamps are intentionally
// omitted from the listing.
type FeedItem struct {
	ID       string `db:"id" json:"id"`
	AuthorID string `db:"author_id" json:"author_id"`
	Message  string `db:"message" json:"message"`
}

// CreatePostRequest is the request body for creating a post. Any author id in
// the payload is ignored; attribution always comes from the verified caller.
type CreatePostRequest struct {
	Message string `json:"message"`
}

// Feed pagination bounds
const (
	FeedDefaultLimit = 50
	FeedDefaultSkip  = 0
)

var (
	// ErrPostNotFound is returned when a post cannot be found
	ErrPostNotFound = errors.New("post not found")
)
