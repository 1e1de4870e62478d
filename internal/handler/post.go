package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"followgram/internal/httputil"
	"followgram/internal/model"
	"followgram/internal/service"
	"followgram/internal/transport/http/middleware"
)

type PostHandler struct {
	postService *service.PostService
	feedService *service.FeedService
}

func NewPostHandler(postService *service.PostService, feedService *service.FeedService) *PostHandler {
	return &PostHandler{
		postService: postService,
		feedService: feedService,
	}
}

// Create handles POST /posts
// The author is always the verified caller, never the payload.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Message == "" {
		httputil.WriteBadRequest(w, "Message is required")
		return
	}

	post, err := h.postService.Create(r.Context(), identity.UserID, req)
	if err != nil {
		log.Printf("[ERROR] Create post handler: user=%s err=%v", identity.UserID, err)
		httputil.WriteInternalError(w, "Failed to create post")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, post)
}

// Feed handles GET /posts?limit&skip
// Returns the caller's feed: own posts plus posts from followed users.
func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	limit := model.FeedDefaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 0 {
			httputil.WriteBadRequest(w, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	skip := model.FeedDefaultSkip
	if s := r.URL.Query().Get("skip"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 0 {
			httputil.WriteBadRequest(w, "Invalid skip parameter")
			return
		}
		skip = parsed
	}

	items, err := h.feedService.ListFeed(r.Context(), identity.UserID, limit, skip)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// A verified token implies the caller existed moments ago; a
			// concurrent delete surfaces here.
			httputil.WriteBadRequest(w, "Caller record not found")
			return
		}
		log.Printf("[ERROR] Feed handler: user=%s err=%v", identity.UserID, err)
		httputil.WriteInternalError(w, "Failed to get feed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, items)
}
