package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/periferia/periferia-social/internal/crypto"
	"github.com/periferia/periferia-social/internal/model"
)

type contextKey string

const currentUserKey contextKey = "currentUser"

// JWTAuth returns middleware that validates a Bearer token from the
// Authorization header and stores the authenticated identity rebuilt from
// the claims in the request context. The database is not consulted; claims
// are trusted as of issuance.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, claims.AuthenticatedUser())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUserFromContext extracts the authenticated user from the request context.
func CurrentUserFromContext(ctx context.Context) (model.AuthenticatedUser, bool) {
	user, ok := ctx.Value(currentUserKey).(model.AuthenticatedUser)
	return user, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"ok": false, "message": msg})
}
