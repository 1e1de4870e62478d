package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"followgram/internal/httputil"
	"followgram/internal/model"
	"followgram/internal/service"
	"followgram/internal/transport/http/middleware"
)

type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{
		followService: followService,
	}
}

// Follow handles PUT /users/follow
// The payload carries the target id; replies with the updated user.
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.FollowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Following == "" {
		httputil.WriteBadRequest(w, "Following is required")
		return
	}

	user, err := h.followService.Follow(r.Context(), identity.UserID, req.Following)
	if err != nil {
		log.Printf("[ERROR] Follow handler: %v", err)
		httputil.WriteInternalError(w, "Failed to follow user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// Unfollow handles PUT /users/unfollow
// Unfollowing a non-followed target is a no-op and still replies 200.
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.FollowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Following == "" {
		httputil.WriteBadRequest(w, "Following is required")
		return
	}

	user, err := h.followService.Unfollow(r.Context(), identity.UserID, req.Following)
	if err != nil {
		log.Printf("[ERROR] Unfollow handler: %v", err)
		httputil.WriteInternalError(w, "Failed to unfollow user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}
