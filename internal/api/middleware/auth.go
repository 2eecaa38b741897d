package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/jterhune/watchvault/internal/api/apierr"
	"github.com/jterhune/watchvault/internal/model"
	"github.com/jterhune/watchvault/internal/services/auth"
)

type contextKey string

const userIDContextKey contextKey = "user_id"

// Auth creates authentication middleware. A missing credential is 401;
// a credential that fails verification maps through apierr (400 for
// invalid tokens, kept for compatibility with the previous system).
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthenticatedError())
				return
			}

			userID, err := authService.VerifyToken(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken reads the credential from the Authorization header.
// Both a raw token and the "Bearer <token>" form are accepted; the
// prefix check is case-sensitive.
func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return strings.TrimSpace(header)
}

// GetUserID returns the authenticated user ID from the request context
func GetUserID(ctx context.Context) model.UserID {
	userID, _ := ctx.Value(userIDContextKey).(model.UserID)
	return userID
}

// MustGetUserID returns the authenticated user ID or panics
func MustGetUserID(ctx context.Context) model.UserID {
	userID := GetUserID(ctx)
	if userID == "" {
		panic("no user in context - auth middleware not applied?")
	}
	return userID
}
