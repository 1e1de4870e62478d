package service

import (
	"context"
	"fmt"
	"strings"

	"followgram/internal/model"
	"followgram/internal/repository"
)

// PostService handles post creation. Listing is the feed composer's job.
type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// Create stores a new post attributed to callerID. The author is always the
// verified caller; an author id in the payload never reaches this point.
func (s *PostService) Create(ctx context.Context, callerID string, req model.CreatePostRequest) (*model.Post, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("message is required")
	}

	post := &model.Post{
		AuthorID: callerID,
		Message:  req.Message,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}
