package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/megalai/backend/internal/apperr"
	"github.com/megalai/backend/internal/auth"
	"github.com/megalai/backend/internal/config"
	"github.com/megalai/backend/internal/directory"
	"github.com/megalai/backend/internal/models"
)

type fakeAuthDirectory struct {
	usersByEmail map[string]*models.User
	usersByID    map[uuid.UUID]*models.User
	allowed      map[string]bool
	emailErr     error
	created      []directory.NewUser
}

func newFakeAuthDirectory() *fakeAuthDirectory {
	return &fakeAuthDirectory{
		usersByEmail: map[string]*models.User{},
		usersByID:    map[uuid.UUID]*models.User{},
		allowed:      map[string]bool{},
	}
}

func (f *fakeAuthDirectory) CreateUser(_ context.Context, nu directory.NewUser) (*models.User, error) {
	f.created = append(f.created, nu)
	u := &models.User{
		ID:       uuid.New(),
		Email:    nu.Email,
		Name:     nu.Name,
		Role:     nu.Role,
		IsActive: true,
	}
	f.usersByEmail[u.Email] = u
	f.usersByID[u.ID] = u
	return u, nil
}

func (f *fakeAuthDirectory) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.usersByID[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", apperr.ErrNotFound)
	}
	return u, nil
}

func (f *fakeAuthDirectory) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if f.emailErr != nil {
		return nil, f.emailErr
	}
	u, ok := f.usersByEmail[email]
	if !ok {
		return nil, fmt.Errorf("get user by email: %w", apperr.ErrNotFound)
	}
	return u, nil
}

func (f *fakeAuthDirectory) DomainAllowed(_ context.Context, domain string) (bool, error) {
	return f.allowed[domain], nil
}

func newAuthHandler(dir AuthDirectory, reg config.RegistrationConfig) *AuthHandler {
	tokens := auth.NewTokenService(config.AuthConfig{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    30 * 24 * time.Hour,
	})
	return NewAuthHandler(dir, tokens, auth.NopRevocations{}, nil, reg)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegisterDomainGating(t *testing.T) {
	t.Run("blocked domain is rejected before any user is created", func(t *testing.T) {
		dir := newFakeAuthDirectory()
		h := newAuthHandler(dir, config.RegistrationConfig{DomainRestriction: true})

		rec := postJSON(t, h.Register, "/auth/register", RegisterRequest{
			Email:    "student@blocked.example",
			Password: "pw123456",
			Name:     "Blocked Student",
		})

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if len(dir.created) != 0 {
			t.Errorf("CreateUser was called %d times, want 0", len(dir.created))
		}
	})

	t.Run("allowed domain registers as student", func(t *testing.T) {
		dir := newFakeAuthDirectory()
		dir.allowed["school.edu"] = true
		h := newAuthHandler(dir, config.RegistrationConfig{DomainRestriction: true})

		rec := postJSON(t, h.Register, "/auth/register", RegisterRequest{
			Email:    "student@School.EDU",
			Password: "pw123456",
			Name:     "New Student",
		})

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
		}
		if len(dir.created) != 1 {
			t.Fatalf("CreateUser was called %d times, want 1", len(dir.created))
		}
		if dir.created[0].Role != "student" {
			t.Errorf("role = %q, want student", dir.created[0].Role)
		}
	})

	t.Run("restriction disabled skips the allow-list", func(t *testing.T) {
		dir := newFakeAuthDirectory()
		h := newAuthHandler(dir, config.RegistrationConfig{DomainRestriction: false})

		rec := postJSON(t, h.Register, "/auth/register", RegisterRequest{
			Email:    "anyone@anywhere.example",
			Password: "pw123456",
			Name:     "Anyone",
		})

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if len(dir.created) != 1 {
			t.Errorf("CreateUser was called %d times, want 1", len(dir.created))
		}
	})
}

func TestLogin(t *testing.T) {
	const password = "right-password"
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	seed := func() *fakeAuthDirectory {
		dir := newFakeAuthDirectory()
		u := &models.User{
			ID:           uuid.New(),
			Email:        "prof@school.edu",
			PasswordHash: hash,
			Role:         "professor",
			IsActive:     true,
		}
		dir.usersByEmail[u.Email] = u
		dir.usersByID[u.ID] = u
		return dir
	}

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		h := newAuthHandler(seed(), config.RegistrationConfig{})
		rec := postJSON(t, h.Login, "/auth/login", LoginRequest{Email: "prof@school.edu", Password: password})

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
		}
		var resp TokenResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.AccessToken == "" || resp.RefreshToken == "" || resp.TokenType != "bearer" {
			t.Errorf("incomplete token pair: %+v", resp)
		}
	})

	t.Run("unknown email and wrong password share one answer", func(t *testing.T) {
		h := newAuthHandler(seed(), config.RegistrationConfig{})
		for _, req := range []LoginRequest{
			{Email: "nobody@school.edu", Password: password},
			{Email: "prof@school.edu", Password: "wrong-password"},
		} {
			rec := postJSON(t, h.Login, "/auth/login", req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s: status = %d, want 400", req.Email, rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["error"] != "incorrect email or password" {
				t.Errorf("%s: error = %q", req.Email, body["error"])
			}
		}
	})

	t.Run("store failure surfaces as 500, not bad credentials", func(t *testing.T) {
		dir := seed()
		dir.emailErr = fmt.Errorf("get user by email: %w", errors.New("dial tcp 10.0.0.5:5432: connection refused"))
		h := newAuthHandler(dir, config.RegistrationConfig{})

		rec := postJSON(t, h.Login, "/auth/login", LoginRequest{Email: "prof@school.edu", Password: password})

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500; body %s", rec.Code, rec.Body.String())
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["error"] != "internal error" {
			t.Errorf("error = %q, want masked internal error", body["error"])
		}
	})
}
