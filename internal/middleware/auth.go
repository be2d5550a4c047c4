package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/crownsite/server/internal/models"
	"github.com/crownsite/server/internal/services"
)

type contextKey string

const (
	SessionContextKey contextKey = "session"
)

// GetSessionFromContext retrieves the admin session from request context
func GetSessionFromContext(ctx context.Context) *models.AdminSession {
	if session, ok := ctx.Value(SessionContextKey).(*models.AdminSession); ok {
		return session
	}
	return nil
}

// SessionAuth creates middleware for admin session authentication. The
// token travels as a bearer header or, for browser requests, a cookie;
// only its hash is ever compared against storage.
func SessionAuth(authService *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "Session required.")
				return
			}

			session, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				switch err {
				case models.ErrSessionNotFound, models.ErrSessionExpired:
					writeAuthError(w, http.StatusUnauthorized, "Session expired or invalid.")
				default:
					writeAuthError(w, http.StatusInternalServerError, "Internal server error.")
				}
				return
			}

			// Add session to context
			ctx := context.WithValue(r.Context(), SessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls the session token from the Authorization header or
// the session cookie, in that order.
func extractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if strings.HasPrefix(auth, "Bearer ") {
			return strings.TrimPrefix(auth, "Bearer ")
		}
	}
	if cookie, err := r.Cookie("session_token"); err == nil {
		return cookie.Value
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
