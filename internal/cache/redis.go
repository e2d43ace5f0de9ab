// Package cache holds the Redis-backed stores. Its only current tenant
// is the refresh-token revocation denylist.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revocations denylists refresh-token ids in Redis. Entries expire with
// the token they name, so the set never outgrows the refresh window.
type Revocations struct {
	client *redis.Client
}

func NewRevocations(client *redis.Client) *Revocations {
	return &Revocations{client: client}
}

func revocationKey(jti string) string {
	return "revoked:refresh:" + jti
}

func (r *Revocations) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already past natural expiry; nothing to deny.
		return nil
	}
	if err := r.client.Set(ctx, revocationKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token %s: %w", jti, err)
	}
	return nil
}

func (r *Revocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := r.client.Get(ctx, revocationKey(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check revocation %s: %w", jti, err)
	}
	return true, nil
}
