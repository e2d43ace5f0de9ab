package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/megalai/backend/internal/apperr"
	"github.com/megalai/backend/internal/config"
	"github.com/megalai/backend/internal/models"
)

type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// Claims are the identity assertions carried by both token kinds.
// Subject holds the user id; Org is omitted when the user has no
// current organization.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Org   string `json:"org,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies access and refresh tokens. Each kind
// is signed under its own secret so leaking one key space cannot forge
// the other.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration

	now func() time.Time
}

func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}
}

func (s *TokenService) IssueAccess(u *models.User) (string, error) {
	return s.issue(u, KindAccess)
}

func (s *TokenService) IssueRefresh(u *models.User) (string, error) {
	return s.issue(u, KindRefresh)
}

func (s *TokenService) issue(u *models.User, kind TokenKind) (string, error) {
	secret, ttl := s.accessSecret, s.accessTTL
	if kind == KindRefresh {
		secret, ttl = s.refreshSecret, s.refreshTTL
	}

	now := s.now()
	claims := Claims{
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if u.CurrentOrganizationID != nil {
		claims.Org = u.CurrentOrganizationID.String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify parses and validates token under the secret for kind. Signature
// mismatch (including a token of the other kind), malformed claims, and
// elapsed expiry all yield ErrUnauthenticated.
func (s *TokenService) Verify(token string, kind TokenKind) (*Claims, error) {
	secret := s.accessSecret
	if kind == KindRefresh {
		secret = s.refreshSecret
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%s token expired: %w", kind, apperr.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("invalid %s token: %w", kind, apperr.ErrUnauthenticated)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid %s token: %w", kind, apperr.ErrUnauthenticated)
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("malformed subject claim: %w", apperr.ErrUnauthenticated)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("missing expiry claim: %w", apperr.ErrUnauthenticated)
	}

	return claims, nil
}

// UserID returns the parsed subject claim. Verify guarantees it parses.
func (c *Claims) UserID() uuid.UUID {
	id, _ := uuid.Parse(c.Subject)
	return id
}

// TTL reports the remaining validity of the claims relative to now.
func (c *Claims) TTL(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Time.Sub(now)
}
