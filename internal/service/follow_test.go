package service

import (
	"context"
	"errors"
	"testing"

	"followgram/internal/model"
)

// followFixture wires a FollowService over a stored following sequence and
// returns the repo and cache mocks for assertions.
func followFixture(stored []string) (*FollowService, *mockUserRepository, *mockFollowingCache) {
	following := stored
	mockRepo := &mockUserRepository{
		getFollowingFn: func(ctx context.Context, id string) ([]string, error) {
			return following, nil
		},
		setFollowingFn: func(ctx context.Context, id string, updated []string) (*model.User, error) {
			following = updated
			return &model.User{ID: id, Following: updated}, nil
		},
	}
	cache := &mockFollowingCache{}
	return NewFollowService(mockRepo, cache), mockRepo, cache
}

func countOf(ids []string, id string) int {
	n := 0
	for _, v := range ids {
		if v == id {
			n++
		}
	}
	return n
}

func TestFollowService_Follow_Appends(t *testing.T) {
	svc, _, cache := followFixture([]string{"b"})

	user, err := svc.Follow(context.Background(), "a", "c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"b", "c"}
	if len(user.Following) != len(want) {
		t.Fatalf("following = %v, want %v", user.Following, want)
	}
	for i, id := range want {
		if user.Following[i] != id {
			t.Errorf("following[%d] = %q, want %q (insertion order)", i, user.Following[i], id)
		}
	}

	if len(cache.invalidateCalls) != 1 {
		t.Errorf("cache invalidated %d times, want 1", len(cache.invalidateCalls))
	}
}

func TestFollowService_Follow_Idempotent(t *testing.T) {
	svc, _, _ := followFixture(nil)

	if _, err := svc.Follow(context.Background(), "a", "b"); err != nil {
		t.Fatalf("first follow: %v", err)
	}
	user, err := svc.Follow(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("second follow: %v", err)
	}

	if got := countOf(user.Following, "b"); got != 1 {
		t.Errorf("following contains %d occurrences of target, want exactly 1", got)
	}
}

func TestFollowService_Unfollow_RemovesTarget(t *testing.T) {
	svc, _, cache := followFixture([]string{"b", "c", "d"})

	user, err := svc.Unfollow(context.Background(), "a", "c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if countOf(user.Following, "c") != 0 {
		t.Errorf("following = %v, should not contain the unfollowed id", user.Following)
	}
	if len(user.Following) != 2 {
		t.Errorf("following = %v, want the two remaining ids", user.Following)
	}
	if len(cache.invalidateCalls) != 1 {
		t.Errorf("cache invalidated %d times, want 1", len(cache.invalidateCalls))
	}
}

func TestFollowService_Unfollow_NonFollowedIsNoop(t *testing.T) {
	svc, _, _ := followFixture([]string{"b"})

	user, err := svc.Unfollow(context.Background(), "a", "z")
	if err != nil {
		t.Fatalf("unfollowing a non-followed target should not error: %v", err)
	}

	if len(user.Following) != 1 || user.Following[0] != "b" {
		t.Errorf("following = %v, want unchanged [b]", user.Following)
	}
}

func TestFollowService_Follow_FollowerMissing(t *testing.T) {
	mockRepo := &mockUserRepository{
		getFollowingFn: func(ctx context.Context, id string) ([]string, error) {
			return nil, model.ErrUserNotFound
		},
	}
	svc := NewFollowService(mockRepo, &mockFollowingCache{})

	_, err := svc.Follow(context.Background(), "ghost", "b")
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
	}
	if len(mockRepo.setFollowingCalls) != 0 {
		t.Error("SetFollowing should not be called when the read fails")
	}
}
