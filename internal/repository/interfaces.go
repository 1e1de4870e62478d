package repository

import (
	"context"

	"followgram/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]model.User, error)
	// Update applies only the non-nil fields and returns the updated record.
	Update(ctx context.Context, id string, update *model.UserUpdate) (*model.User, error)
	// Delete hard-deletes the user and returns the deleted snapshot.
	Delete(ctx context.Context, id string) (*model.User, error)
	// GetFollowing returns the user's following sequence in insertion order.
	GetFollowing(ctx context.Context, id string) ([]string, error)
	// SetFollowing replaces the whole following sequence and returns the
	// updated record. Callers own the read-modify-write cycle.
	SetFollowing(ctx context.Context, id string, following []string) (*model.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// ListByAuthors returns the feed projection of posts whose author is in
	// authorIDs, in store order, after skipping skip rows and taking limit.
	ListByAuthors(ctx context.Context, authorIDs []string, limit, skip int) ([]model.FeedItem, error)
}
