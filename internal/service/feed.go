package service

import (
	"context"
	"log"

	"followgram/internal/cache"
	"followgram/internal/model"
	"followgram/internal/repository"
)

// FeedService composes the paginated feed visible to a caller: posts authored
// by the caller's followees plus the caller's own.
type FeedService struct {
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	followingCache cache.FollowingCache
}

func NewFeedService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	followingCache cache.FollowingCache,
) *FeedService {
	return &FeedService{
		userRepo:       userRepo,
		postRepo:       postRepo,
		followingCache: followingCache,
	}
}

// ListFeed builds the caller's author set (following plus self) and returns
// the matching posts projected to {id, author_id, message}, in store order,
// after skipping skip rows and taking limit. The caller's own id ending up in
// its following sequence is harmless: self is always included anyway.
func (s *FeedService) ListFeed(ctx context.Context, callerID string, limit, skip int) ([]model.FeedItem, error) {
	if limit <= 0 {
		limit = model.FeedDefaultLimit
	}
	if skip < 0 {
		skip = model.FeedDefaultSkip
	}

	following, err := s.loadFollowing(ctx, callerID)
	if err != nil {
		return nil, err
	}

	authors := append(following, callerID)

	return s.postRepo.ListByAuthors(ctx, authors, limit, skip)
}

// loadFollowing serves the following set from cache when possible, falling
// back to the store on miss or cache failure. Errors from the cache degrade
// silently; errors from the store propagate (model.ErrUserNotFound for a
// caller whose record vanished between token verification and now).
func (s *FeedService) loadFollowing(ctx context.Context, callerID string) ([]string, error) {
	following, found, err := s.followingCache.Get(ctx, callerID)
	if err != nil {
		log.Printf("[FeedService] Cache read failed: user=%s err=%v", callerID, err)
	}
	if found {
		return following, nil
	}

	following, err = s.userRepo.GetFollowing(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if err := s.followingCache.Set(ctx, callerID, following); err != nil {
		log.Printf("[FeedService] Cache write failed: user=%s err=%v", callerID, err)
	}

	return following, nil
}
