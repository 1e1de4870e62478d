package service

import (
	"context"
	"log"

	"followgram/internal/cache"
	"followgram/internal/model"
	"followgram/internal/repository"
)

// FollowService maintains each user's following sequence. Both operations are
// read-modify-write over the whole sequence; concurrent calls for the same
// follower are last-write-wins at the record level. Idempotence under
// sequential execution is the contract.
type FollowService struct {
	userRepo       repository.UserRepository
	followingCache cache.FollowingCache
}

func NewFollowService(userRepo repository.UserRepository, followingCache cache.FollowingCache) *FollowService {
	return &FollowService{
		userRepo:       userRepo,
		followingCache: followingCache,
	}
}

// Follow appends targetID to the follower's following sequence unless it is
// already present, then persists the whole sequence. Following the same target
// twice leaves exactly one occurrence and no error.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID string) (*model.User, error) {
	following, err := s.userRepo.GetFollowing(ctx, followerID)
	if err != nil {
		return nil, err
	}

	if !contains(following, targetID) {
		following = append(following, targetID)
	}

	user, err := s.userRepo.SetFollowing(ctx, followerID, following)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, followerID)
	return user, nil
}

// Unfollow removes targetID from the follower's following sequence if
// present; unfollowing a non-followed target is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID string) (*model.User, error) {
	following, err := s.userRepo.GetFollowing(ctx, followerID)
	if err != nil {
		return nil, err
	}

	for i, id := range following {
		if id == targetID {
			following = append(following[:i], following[i+1:]...)
			break
		}
	}

	user, err := s.userRepo.SetFollowing(ctx, followerID, following)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, followerID)
	return user, nil
}

// invalidateCache drops the follower's cached following set. Cache failures
// are logged, never surfaced: the store remains the source of truth.
func (s *FollowService) invalidateCache(ctx context.Context, followerID string) {
	if err := s.followingCache.Invalidate(ctx, followerID); err != nil {
		log.Printf("[FollowService] Cache invalidation failed: user=%s err=%v", followerID, err)
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
