package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/reimoyisuki/ToDoList/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user ID
	UserIDKey ContextKey = "user_id"
)

// TokenVerifier verifies a bearer token and returns the user ID it carries
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// ActivityRecorder records a user's activity timestamp
type ActivityRecorder interface {
	TouchActivity(ctx context.Context, userID int64) error
}

// Auth validates the bearer token and puts the caller's user ID on the
// request context
func Auth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Activity refreshes the caller's last-active timestamp on every
// authenticated request. Failures are ignored; activity tracking must not
// fail the request.
func Activity(users ActivityRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := GetUserID(r.Context()); ok {
				_ = users.TouchActivity(r.Context(), userID)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID extracts the user ID from the request context
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
