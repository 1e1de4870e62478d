package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"followgram/internal/httputil"
	"followgram/internal/model"
	"followgram/internal/service"
	"followgram/internal/transport/http/middleware"
)

// UserHandler groups user lifecycle endpoints: self-service updates and the
// admin-only by-id operations. Admin reads and writes of an absent id reply
// with a null body rather than 404.
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// UpdateSelf handles PUT /users
// Partial merge on the caller's own record; the payload cannot carry roles.
func (h *UserHandler) UpdateSelf(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateSelf(r.Context(), identity.UserID, &req)
	if err != nil {
		h.writeUpdateError(w, "UpdateSelf", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// DeleteSelf handles DELETE /users
// Hard delete; replies with the deleted record snapshot.
func (h *UserHandler) DeleteSelf(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	user, err := h.userService.Delete(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteJSON(w, http.StatusOK, nil)
			return
		}
		log.Printf("[ERROR] DeleteSelf handler: %v", err)
		httputil.WriteInternalError(w, "Failed to delete user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// List handles GET /users
// Any authenticated role may list all users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		log.Printf("[ERROR] List handler: %v", err)
		httputil.WriteInternalError(w, "Failed to list users")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, users)
}

// GetByID handles GET /users/{id} (admin)
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteJSON(w, http.StatusOK, nil)
			return
		}
		log.Printf("[ERROR] GetByID handler: %v", err)
		httputil.WriteInternalError(w, "Failed to get user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// UpdateByID handles PUT /users/{id} (admin)
// Same partial merge as UpdateSelf, but the payload may set roles.
func (h *UserHandler) UpdateByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.AdminUpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateByID(r.Context(), id, &req)
	if err != nil {
		h.writeUpdateError(w, "UpdateByID", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// DeleteByID handles DELETE /users/{id} (admin)
func (h *UserHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.userService.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteJSON(w, http.StatusOK, nil)
			return
		}
		log.Printf("[ERROR] DeleteByID handler: %v", err)
		httputil.WriteInternalError(w, "Failed to delete user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

func (h *UserHandler) writeUpdateError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		httputil.WriteJSON(w, http.StatusOK, nil)
	case errors.Is(err, model.ErrEmailExists):
		httputil.WriteConflict(w, "Email already exists")
	default:
		log.Printf("[ERROR] %s handler: %v", op, err)
		httputil.WriteInternalError(w, "Failed to update user")
	}
}
