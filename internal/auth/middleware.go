package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/megalai/backend/internal/directory"
	"github.com/megalai/backend/internal/models"
)

// UserLoader resolves the authenticated subject to a directory record.
type UserLoader interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Middleware authenticates requests carrying a bearer access token and
// stashes the resolved user plus claims in the request context.
type Middleware struct {
	tokens *TokenService
	users  UserLoader
}

func NewMiddleware(tokens *TokenService, users UserLoader) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := extractBearerToken(r)
		if tokenStr == "" {
			writeUnauthorized(w, "missing authorization token")
			return
		}

		claims, err := m.tokens.Verify(tokenStr, KindAccess)
		if err != nil {
			writeUnauthorized(w, "invalid or expired token")
			return
		}

		user, err := m.users.GetUserByID(r.Context(), claims.UserID())
		if err != nil {
			writeUnauthorized(w, "user not found")
			return
		}
		if !user.IsActive {
			writeUnauthorized(w, "inactive user")
			return
		}

		ctx := directory.WithActor(r.Context(), user)
		ctx = context.WithValue(ctx, claimsKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type ctxKey string

const claimsKey ctxKey = "claims"

func ClaimsFromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(claimsKey).(*Claims)
	return c
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
