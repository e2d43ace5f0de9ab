// Package directory is the data access layer: organizations, users,
// allowed email domains, topics, and user settings behind simple
// lookups on a pgx pool.
package directory

import (
	"context"

	"github.com/megalai/backend/internal/models"
)

type contextKey string

const actorKey contextKey = "actor"

// WithActor records the authenticated user on the context.
func WithActor(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, actorKey, u)
}

// ActorFromContext returns the authenticated user, or nil.
func ActorFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(actorKey).(*models.User)
	return u
}
