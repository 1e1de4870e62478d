package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"followgram/internal/handler"
	"followgram/internal/httputil"
	"followgram/internal/service"
	authmw "followgram/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler   *handler.AuthHandler
	UserHandler   *handler.UserHandler
	FollowHandler *handler.FollowHandler
	PostHandler   *handler.PostHandler
	MediaHandler  *handler.MediaHandler // nil when the media feature is disabled
	AuthService   *service.AuthService
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	// Public routes - no authentication required
	r.Post("/users", cfg.AuthHandler.Register)
	r.Post("/users/login", cfg.AuthHandler.Login)

	// Protected routes - require a verified identity
	r.Group(func(r chi.Router) {
		r.Use(authmw.Auth(cfg.AuthService))

		r.Get("/users/info", cfg.AuthHandler.Info)
		r.Put("/users", cfg.UserHandler.UpdateSelf)
		r.Delete("/users", cfg.UserHandler.DeleteSelf)
		r.Get("/users", cfg.UserHandler.List)

		r.Put("/users/follow", cfg.FollowHandler.Follow)
		r.Put("/users/unfollow", cfg.FollowHandler.Unfollow)

		r.Post("/posts", cfg.PostHandler.Create)
		r.Get("/posts", cfg.PostHandler.Feed)

		if cfg.MediaHandler != nil {
			r.Post("/users/avatar", cfg.MediaHandler.UploadAvatar)
		}

		// Admin-only user administration by id
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAdmin)

			r.Get("/users/{id}", cfg.UserHandler.GetByID)
			r.Put("/users/{id}", cfg.UserHandler.UpdateByID)
			r.Delete("/users/{id}", cfg.UserHandler.DeleteByID)
		})
	})

	return r
}
