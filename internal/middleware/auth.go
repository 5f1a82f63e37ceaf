package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vantagefin/vantage/internal/auth"
	"github.com/vantagefin/vantage/internal/logger"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
)

// SessionAuth guards protected routes. The session token travels in an
// http-only cookie; a missing cookie and an invalid token get distinct 401
// bodies so the SPA can tell "not logged in" from "stale session".
type SessionAuth struct {
	jwtManager *auth.JWTManager
	cookieName string
	log        *logger.Logger
}

func NewSessionAuth(jwtManager *auth.JWTManager, cookieName string) *SessionAuth {
	return &SessionAuth{
		jwtManager: jwtManager,
		cookieName: cookieName,
		log:        logger.New("session-auth"),
	}
}

func (m *SessionAuth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			writeAuthError(w, "Access denied. No token provided.")
			return
		}

		claims, err := m.jwtManager.ValidateToken(cookie.Value)
		if err != nil {
			m.log.Debug("Token rejected: %v", err)
			writeAuthError(w, "Invalid token.")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

func GetUserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(UserEmailKey).(string); ok {
		return email
	}
	return ""
}

// WithIdentity seeds the identity context values directly; handler tests use
// it in place of RequireAuth.
func WithIdentity(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, UserEmailKey, email)
}
