package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"followgram/internal/model"
	"followgram/internal/repository"
)

// UserService handles business logic for user lifecycle operations
type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// hashPassword derives the stored form of a plaintext password. Salted and
// adaptive: two calls with the same input yield different stored forms.
func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// verifyPassword reports whether plaintext matches the stored form. Never
// errors: any mismatch or malformed stored form is false.
func verifyPassword(password, storedForm string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedForm), []byte(password)) == nil
}

// Register creates a new user account. Roles are always forced empty here: a
// self-registration can never grant itself privileges, whatever the payload
// carried.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("email is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, fmt.Errorf("password is required")
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, model.ErrEmailExists
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: passwordHash,
		Roles:        []model.Role{},
		Following:    []string{},
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user by email and password. A missing user and a
// wrong password surface as distinct errors so the handler can reply with
// distinct messages.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if !verifyPassword(req.Password, user.PasswordHash) {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// UpdateSelf applies a partial update on the caller's own record. The payload
// cannot carry roles, so privilege escalation is structurally impossible. The
// password is re-hashed only when present in the update.
func (s *UserService) UpdateSelf(ctx context.Context, id string, req *model.UpdateUserRequest) (*model.User, error) {
	update := &model.UserUpdate{
		Email: req.Email,
		Name:  req.Name,
	}

	if err := setPasswordHash(update, req.Password); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, update)
}

// UpdateByID applies an admin partial update on an arbitrary record, which may
// additionally set roles.
func (s *UserService) UpdateByID(ctx context.Context, id string, req *model.AdminUpdateUserRequest) (*model.User, error) {
	update := &model.UserUpdate{
		Email: req.Email,
		Name:  req.Name,
		Roles: req.Roles,
	}

	if err := setPasswordHash(update, req.Password); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, update)
}

// setPasswordHash hashes the password into the update when present. An absent
// password skips hashing and leaves the stored hash untouched.
func setPasswordHash(update *model.UserUpdate, password *string) error {
	if password == nil {
		return nil
	}
	hash, err := hashPassword(*password)
	if err != nil {
		return err
	}
	update.PasswordHash = &hash
	return nil
}

// Delete hard-deletes a user and returns the deleted snapshot.
func (s *UserService) Delete(ctx context.Context, id string) (*model.User, error) {
	return s.repo.Delete(ctx, id)
}

// SetAvatar persists the uploaded avatar URL on the user record.
func (s *UserService) SetAvatar(ctx context.Context, id string, avatarURL string) (*model.User, error) {
	return s.repo.Update(ctx, id, &model.UserUpdate{AvatarURL: &avatarURL})
}
