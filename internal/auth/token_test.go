package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/megalai/backend/internal/apperr"
	"github.com/megalai/backend/internal/config"
	"github.com/megalai/backend/internal/models"
)

func testTokenService() *TokenService {
	return NewTokenService(config.AuthConfig{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    30 * 24 * time.Hour,
	})
}

func testUser() *models.User {
	orgID := uuid.New()
	return &models.User{
		ID:                    uuid.New(),
		Email:                 "prof@school.edu",
		Role:                  "professor",
		CurrentOrganizationID: &orgID,
		IsActive:              true,
	}
}

func TestIssueAndVerifyRoundtrip(t *testing.T) {
	ts := testTokenService()
	user := testUser()

	for _, kind := range []TokenKind{KindAccess, KindRefresh} {
		token, err := ts.issue(user, kind)
		if err != nil {
			t.Fatalf("issue %s: %v", kind, err)
		}

		claims, err := ts.Verify(token, kind)
		if err != nil {
			t.Fatalf("verify %s: %v", kind, err)
		}
		if claims.UserID() != user.ID {
			t.Errorf("%s subject = %s, want %s", kind, claims.UserID(), user.ID)
		}
		if claims.Email != user.Email {
			t.Errorf("%s email = %q, want %q", kind, claims.Email, user.Email)
		}
		if claims.Role != user.Role {
			t.Errorf("%s role = %q, want %q", kind, claims.Role, user.Role)
		}
		if claims.Org != user.CurrentOrganizationID.String() {
			t.Errorf("%s org = %q, want %q", kind, claims.Org, user.CurrentOrganizationID)
		}
		if claims.ID == "" {
			t.Errorf("%s token missing jti", kind)
		}
	}
}

func TestVerifyRejectsWrongKind(t *testing.T) {
	ts := testTokenService()
	user := testUser()

	access, err := ts.IssueAccess(user)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	refresh, err := ts.IssueRefresh(user)
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}

	if _, err := ts.Verify(access, KindRefresh); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("access token verified as refresh, err = %v", err)
	}
	if _, err := ts.Verify(refresh, KindAccess); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("refresh token verified as access, err = %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	ts := testTokenService()
	user := testUser()

	issued := time.Now()
	ts.now = func() time.Time { return issued }

	token, err := ts.IssueAccess(user)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	ts.now = func() time.Time { return issued.Add(16 * time.Minute) }
	if _, err := ts.Verify(token, KindAccess); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("expired token accepted, err = %v", err)
	}

	ts.now = func() time.Time { return issued.Add(14 * time.Minute) }
	if _, err := ts.Verify(token, KindAccess); err != nil {
		t.Errorf("unexpired token rejected: %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	ts := testTokenService()
	for _, token := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		if _, err := ts.Verify(token, KindAccess); !errors.Is(err, apperr.ErrUnauthenticated) {
			t.Errorf("Verify(%q) err = %v, want ErrUnauthenticated", token, err)
		}
	}
}

func TestClaimsTTL(t *testing.T) {
	ts := testTokenService()
	issued := time.Now()
	ts.now = func() time.Time { return issued }

	token, err := ts.IssueRefresh(testUser())
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}
	claims, err := ts.Verify(token, KindRefresh)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	remaining := claims.TTL(issued.Add(24 * time.Hour))
	want := 29 * 24 * time.Hour
	if diff := remaining - want; diff < -time.Second || diff > time.Second {
		t.Errorf("TTL = %v, want about %v", remaining, want)
	}
}
