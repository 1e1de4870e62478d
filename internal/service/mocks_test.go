package service

import (
	"context"

	"followgram/internal/model"
)

// =============================================================================
// MOCK COLLABORATORS
// =============================================================================
//
// The services depend on the repository and cache INTERFACES, so unit tests
// swap in mocks whose behavior each test defines through function fields.

type mockUserRepository struct {
	createFn        func(ctx context.Context, user *model.User) error
	getByIDFn       func(ctx context.Context, id string) (*model.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*model.User, error)
	existsByEmailFn func(ctx context.Context, email string) (bool, error)
	listFn          func(ctx context.Context) ([]model.User, error)
	updateFn        func(ctx context.Context, id string, update *model.UserUpdate) (*model.User, error)
	deleteFn        func(ctx context.Context, id string) (*model.User, error)
	getFollowingFn  func(ctx context.Context, id string) ([]string, error)
	setFollowingFn  func(ctx context.Context, id string, following []string) (*model.User, error)

	// Track calls for assertions
	createCalls       []*model.User
	setFollowingCalls [][]string
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]model.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepository) Update(ctx context.Context, id string, update *model.UserUpdate) (*model.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, update)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) (*model.User, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetFollowing(ctx context.Context, id string) ([]string, error) {
	if m.getFollowingFn != nil {
		return m.getFollowingFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) SetFollowing(ctx context.Context, id string, following []string) (*model.User, error) {
	m.setFollowingCalls = append(m.setFollowingCalls, following)
	if m.setFollowingFn != nil {
		return m.setFollowingFn(ctx, id, following)
	}
	return &model.User{ID: id, Following: following}, nil
}

type mockPostRepository struct {
	createFn        func(ctx context.Context, post *model.Post) error
	listByAuthorsFn func(ctx context.Context, authorIDs []string, limit, skip int) ([]model.FeedItem, error)

	createCalls []*model.Post
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	m.createCalls = append(m.createCalls, post)
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) ListByAuthors(ctx context.Context, authorIDs []string, limit, skip int) ([]model.FeedItem, error) {
	if m.listByAuthorsFn != nil {
		return m.listByAuthorsFn(ctx, authorIDs, limit, skip)
	}
	return nil, nil
}

// mockFollowingCache records calls and serves a fixed entry.
type mockFollowingCache struct {
	entry    []string
	hasEntry bool
	getErr   error

	setCalls        [][]string
	invalidateCalls []string
}

func (m *mockFollowingCache) Get(ctx context.Context, userID string) ([]string, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	return m.entry, m.hasEntry, nil
}

func (m *mockFollowingCache) Set(ctx context.Context, userID string, following []string) error {
	m.setCalls = append(m.setCalls, following)
	return nil
}

func (m *mockFollowingCache) Invalidate(ctx context.Context, userID string) error {
	m.invalidateCalls = append(m.invalidateCalls, userID)
	return nil
}
