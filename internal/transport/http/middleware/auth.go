package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"followgram/internal/httputil"
	"followgram/internal/model"
	"followgram/internal/service"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// IdentityKey is the context key for the verified caller identity
	IdentityKey contextKey = "identity"
)

// Auth creates a middleware that resolves the caller identity from a bearer
// token. Verification is delegated to the auth service, which also confirms
// the token's user still exists in the store.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenString string

			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				// Expected format: "Bearer <token>"
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					tokenString = parts[1]
				}
			}

			if tokenString == "" {
				httputil.WriteUnauthorized(w, "Missing authentication token")
				return
			}

			identity, err := authService.VerifyToken(r.Context(), tokenString)
			if err != nil {
				if errors.Is(err, model.ErrTokenInvalid) {
					httputil.WriteUnauthorized(w, "Invalid or expired token")
					return
				}
				httputil.WriteInternalError(w, "Failed to verify token")
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a route group on the admin role. The identity is already
// verified at this point: an unprivileged caller gets Forbidden, never
// Unauthorized.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentityFromContext(r.Context())
		if !ok {
			httputil.WriteUnauthorized(w, "Authentication required")
			return
		}

		if !identity.IsAdmin() {
			httputil.WriteForbidden(w, "Admin role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetIdentityFromContext extracts the verified caller identity from the
// request context. Returns the identity and true if found.
func GetIdentityFromContext(ctx context.Context) (*model.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*model.Identity)
	return identity, ok
}
