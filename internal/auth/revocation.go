package auth

import (
	"context"
	"time"
)

// RevocationStore denylists refresh-token ids until their natural
// expiry. Access tokens are never revoked; their window is short enough
// to expire on their own after logout.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// NopRevocations is used when no Redis is configured: nothing is ever
// revoked, which matches the pre-logout behavior of trusting tokens
// until expiry.
type NopRevocations struct{}

func (NopRevocations) Revoke(context.Context, string, time.Duration) error { return nil }

func (NopRevocations) IsRevoked(context.Context, string) (bool, error) { return false, nil }
