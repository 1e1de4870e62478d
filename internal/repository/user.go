package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"followgram/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// userRow maps the users table; roles and following are TEXT[] columns.
type userRow struct {
	ID           string         `db:"id"`
	Email        string         `db:"email"`
	Name         string         `db:"name"`
	PasswordHash string         `db:"password_hash"`
	Roles        pq.StringArray `db:"roles"`
	Following    pq.StringArray `db:"following"`
	AvatarURL    *string        `db:"avatar_url"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (row *userRow) toUser() *model.User {
	roles := make([]model.Role, len(row.Roles))
	for i, r := range row.Roles {
		roles[i] = model.Role(r)
	}
	return &model.User{
		ID:           row.ID,
		Email:        row.Email,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		Roles:        roles,
		Following:    []string(row.Following),
		AvatarURL:    row.AvatarURL,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func rolesToStrings(roles []model.Role) pq.StringArray {
	out := make(pq.StringArray, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

const userColumns = `id, email, name, password_hash, roles, following, avatar_url, created_at, updated_at`

// isUniqueViolation detects the Postgres duplicate-key error class.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Create inserts a new user into the database, assigning its id.
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, roles, following, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	u.ID = uuid.NewString()

	row := r.db.QueryRowxContext(ctx, query,
		u.ID,
		u.Email,
		u.Name,
		u.PasswordHash,
		rolesToStrings(u.Roles),
		pq.StringArray(u.Following),
		u.AvatarURL,
	)

	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return model.ErrEmailExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var row userRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return row.toUser(), nil
}

// GetByEmail retrieves a user by their email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var row userRow
	err := r.db.GetContext(ctx, &row, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return row.toUser(), nil
}

// ExistsByEmail checks if an email is already taken
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// List returns all users in insertion order.
func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`

	var rows []userRow
	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]model.User, len(rows))
	for i := range rows {
		users[i] = *rows[i].toUser()
	}
	return users, nil
}

// Update applies the non-nil fields of update as a partial merge.
func (r *userRepository) Update(ctx context.Context, id string, update *model.UserUpdate) (*model.User, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Email != nil {
		add("email", *update.Email)
	}
	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.PasswordHash != nil {
		add("password_hash", *update.PasswordHash)
	}
	if update.Roles != nil {
		add("roles", rolesToStrings(*update.Roles))
	}
	if update.AvatarURL != nil {
		add("avatar_url", *update.AvatarURL)
	}

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(sets, ", "), userColumns)

	var row userRow
	err := r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return nil, model.ErrEmailExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return row.toUser(), nil
}

// Delete hard-deletes the user and returns the deleted snapshot.
func (r *userRepository) Delete(ctx context.Context, id string) (*model.User, error) {
	query := `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns

	var row userRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	return row.toUser(), nil
}

// GetFollowing returns the user's following sequence.
func (r *userRepository) GetFollowing(ctx context.Context, id string) ([]string, error) {
	query := `SELECT following FROM users WHERE id = $1`

	var following pq.StringArray
	err := r.db.GetContext(ctx, &following, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get following: %w", err)
	}

	return []string(following), nil
}

// SetFollowing replaces the whole following sequence.
func (r *userRepository) SetFollowing(ctx context.Context, id string, following []string) (*model.User, error) {
	query := `
		UPDATE users SET following = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	var row userRow
	err := r.db.GetContext(ctx, &row, query, id, pq.StringArray(following))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to set following: %w", err)
	}

	return row.toUser(), nil
}
