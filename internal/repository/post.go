package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"followgram/internal/model"
)

// postRepository implements PostRepository using sqlx
type postRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a new post, assigning its id.
func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	query := `
		INSERT INTO posts (id, author_id, message, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`

	p.ID = uuid.NewString()

	row := r.db.QueryRowxContext(ctx, query, p.ID, p.AuthorID, p.Message)
	if err := row.Scan(&p.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// ListByAuthors returns the feed projection for the given author set.
// No explicit ordering: the store's natural order is preserved.
func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []string, limit, skip int) ([]model.FeedItem, error) {
	query := `
		SELECT id, author_id, message
		FROM posts
		WHERE author_id = ANY($1)
		OFFSET $2 LIMIT $3
	`

	items := []model.FeedItem{}
	err := r.db.SelectContext(ctx, &items, query, pq.StringArray(authorIDs), skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by authors: %w", err)
	}

	return items, nil
}
