package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rsvpdesk/rsvpdesk-go/internal/model"
	"github.com/rsvpdesk/rsvpdesk-go/internal/repository"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionStore resolves bearer tokens to sessions. Implemented by
// repository.SessionRepository; tests stub it.
type SessionStore interface {
	GetByToken(ctx context.Context, token string) (*model.Session, error)
}

// SessionAuth returns middleware that validates a Bearer token against the
// session store. If requiredRole is non-empty, the session's role snapshot
// must match it. On success the session is attached to the request context.
// Tokens are never expired; a token is valid as long as its row exists.
func SessionAuth(store SessionStore, requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing token")
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing token")
				return
			}
			token = strings.TrimSpace(token)

			session, err := store.GetByToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, repository.ErrSessionNotFound) {
					writeJSONError(w, http.StatusUnauthorized, "invalid token")
					return
				}
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			if requiredRole != "" && session.Role != requiredRole {
				writeJSONError(w, http.StatusForbidden, "forbidden")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extracts the authenticated session from the request
// context.
func SessionFromContext(ctx context.Context) (*model.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*model.Session)
	return session, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
