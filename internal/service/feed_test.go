package service

import (
	"context"
	"errors"
	"testing"

	"followgram/internal/model"
)

type listCall struct {
	authors []string
	limit   int
	skip    int
}

func feedFixture(following []string, items []model.FeedItem) (*FeedService, *mockUserRepository, *mockPostRepository, *mockFollowingCache, *[]listCall) {
	calls := &[]listCall{}
	userRepo := &mockUserRepository{
		getFollowingFn: func(ctx context.Context, id string) ([]string, error) {
			return following, nil
		},
	}
	postRepo := &mockPostRepository{
		listByAuthorsFn: func(ctx context.Context, authorIDs []string, limit, skip int) ([]model.FeedItem, error) {
			*calls = append(*calls, listCall{authors: authorIDs, limit: limit, skip: skip})
			return items, nil
		},
	}
	cache := &mockFollowingCache{}
	return NewFeedService(userRepo, postRepo, cache), userRepo, postRepo, cache, calls
}

func hasAuthor(authors []string, id string) bool {
	for _, a := range authors {
		if a == id {
			return true
		}
	}
	return false
}

func TestFeedService_SelfInclusion(t *testing.T) {
	// Empty following: the author set is exactly the caller
	svc, _, _, _, calls := feedFixture([]string{}, nil)

	if _, err := svc.ListFeed(context.Background(), "a", 50, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(*calls) != 1 {
		t.Fatalf("ListByAuthors called %d times, want 1", len(*calls))
	}
	authors := (*calls)[0].authors
	if len(authors) != 1 || authors[0] != "a" {
		t.Errorf("authors = %v, want exactly the caller", authors)
	}
}

func TestFeedService_Scoping(t *testing.T) {
	// a follows b but not c: the author set is {b, a}
	svc, _, _, _, calls := feedFixture([]string{"b"}, nil)

	if _, err := svc.ListFeed(context.Background(), "a", 50, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	authors := (*calls)[0].authors
	if !hasAuthor(authors, "a") || !hasAuthor(authors, "b") {
		t.Errorf("authors = %v, want caller and followee", authors)
	}
	if hasAuthor(authors, "c") {
		t.Errorf("authors = %v, must not include a non-followed user", authors)
	}
}

func TestFeedService_PaginationDefaults(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		skip      int
		wantLimit int
		wantSkip  int
	}{
		{"explicit values pass through", 10, 5, 10, 5},
		{"zero limit falls back to default", 0, 0, model.FeedDefaultLimit, 0},
		{"negative values fall back to defaults", -1, -3, model.FeedDefaultLimit, model.FeedDefaultSkip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _, calls := feedFixture(nil, nil)

			if _, err := svc.ListFeed(context.Background(), "a", tt.limit, tt.skip); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			call := (*calls)[0]
			if call.limit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", call.limit, tt.wantLimit)
			}
			if call.skip != tt.wantSkip {
				t.Errorf("skip = %d, want %d", call.skip, tt.wantSkip)
			}
		})
	}
}

func TestFeedService_CallerMissing(t *testing.T) {
	userRepo := &mockUserRepository{
		getFollowingFn: func(ctx context.Context, id string) ([]string, error) {
			return nil, model.ErrUserNotFound
		},
	}
	svc := NewFeedService(userRepo, &mockPostRepository{}, &mockFollowingCache{})

	_, err := svc.ListFeed(context.Background(), "ghost", 50, 0)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
	}
}

func TestFeedService_CacheHitSkipsStore(t *testing.T) {
	storeReads := 0
	userRepo := &mockUserRepository{
		getFollowingFn: func(ctx context.Context, id string) ([]string, error) {
			storeReads++
			return nil, nil
		},
	}
	var captured []string
	postRepo := &mockPostRepository{
		listByAuthorsFn: func(ctx context.Context, authorIDs []string, limit, skip int) ([]model.FeedItem, error) {
			captured = authorIDs
			return nil, nil
		},
	}
	cache := &mockFollowingCache{entry: []string{"b"}, hasEntry: true}
	svc := NewFeedService(userRepo, postRepo, cache)

	if _, err := svc.ListFeed(context.Background(), "a", 50, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if storeReads != 0 {
		t.Errorf("store read %d times on a cache hit, want 0", storeReads)
	}
	if !hasAuthor(captured, "b") || !hasAuthor(captured, "a") {
		t.Errorf("authors = %v, want cached followee plus caller", captured)
	}
}

func TestFeedService_CacheMissPopulatesCache(t *testing.T) {
	svc, _, _, cache, _ := feedFixture([]string{"b"}, nil)

	if _, err := svc.ListFeed(context.Background(), "a", 50, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cache.setCalls) != 1 {
		t.Fatalf("cache Set called %d times, want 1", len(cache.setCalls))
	}
	if len(cache.setCalls[0]) != 1 || cache.setCalls[0][0] != "b" {
		t.Errorf("cached following = %v, want [b]", cache.setCalls[0])
	}
}

func TestFeedService_CacheErrorFallsBackToStore(t *testing.T) {
	userRepo := &mockUserRepository{
		getFollowingFn: func(ctx context.Context, id string) ([]string, error) {
			return []string{"b"}, nil
		},
	}
	var captured []string
	postRepo := &mockPostRepository{
		listByAuthorsFn: func(ctx context.Context, authorIDs []string, limit, skip int) ([]model.FeedItem, error) {
			captured = authorIDs
			return nil, nil
		},
	}
	cache := &mockFollowingCache{getErr: errors.New("redis down")}
	svc := NewFeedService(userRepo, postRepo, cache)

	if _, err := svc.ListFeed(context.Background(), "a", 50, 0); err != nil {
		t.Fatalf("cache failure must degrade to the store, got error: %v", err)
	}
	if !hasAuthor(captured, "b") {
		t.Errorf("authors = %v, want store-backed followee", captured)
	}
}

// The caller's own id inside its following sequence is tolerated: the author
// set naturally dedups via membership, and self is always included anyway.
func TestFeedService_SelfInFollowingIsHarmless(t *testing.T) {
	svc, _, _, _, calls := feedFixture([]string{"a", "b"}, nil)

	if _, err := svc.ListFeed(context.Background(), "a", 50, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	authors := (*calls)[0].authors
	if !hasAuthor(authors, "a") || !hasAuthor(authors, "b") {
		t.Errorf("authors = %v, want caller and followee", authors)
	}
}
