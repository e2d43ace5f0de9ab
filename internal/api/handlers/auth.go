package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/megalai/backend/internal/apperr"
	"github.com/megalai/backend/internal/auth"
	"github.com/megalai/backend/internal/authz"
	"github.com/megalai/backend/internal/config"
	"github.com/megalai/backend/internal/directory"
	"github.com/megalai/backend/internal/models"
	"github.com/megalai/backend/internal/queue"
)

// AuthDirectory is the slice of the directory the auth flows need.
type AuthDirectory interface {
	CreateUser(ctx context.Context, nu directory.NewUser) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	DomainAllowed(ctx context.Context, domain string) (bool, error)
}

type AuthHandler struct {
	dir         AuthDirectory
	tokens      *auth.TokenService
	revocations auth.RevocationStore
	queue       *queue.Client
	reg         config.RegistrationConfig
}

func NewAuthHandler(dir AuthDirectory, tokens *auth.TokenService, revocations auth.RevocationStore, qc *queue.Client, reg config.RegistrationConfig) *AuthHandler {
	return &AuthHandler{dir: dir, tokens: tokens, revocations: revocations, queue: qc, reg: reg}
}

type RegisterRequest struct {
	Email          string     `json:"email"`
	Password       string     `json:"password"`
	Name           string     `json:"name"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
}

type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	User         *models.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeErr(w, http.StatusBadRequest, "email, password, and name are required")
		return
	}

	if h.reg.DomainRestriction {
		domain := authz.EmailDomain(req.Email)
		allowed, err := h.dir.DomainAllowed(r.Context(), domain)
		if err != nil {
			respondError(w, err)
			return
		}
		if !allowed {
			respondError(w, fmt.Errorf("email domain not allowed: %w", apperr.ErrInvalid))
			return
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.dir.CreateUser(r.Context(), directory.NewUser{
		Email:          req.Email,
		Name:           req.Name,
		PasswordHash:   hash,
		Role:           string(authz.RoleStudent),
		OrganizationID: req.OrganizationID,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	h.sendWelcome(user)
	writeJSON(w, http.StatusOK, user)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.dir.GetUserByEmail(r.Context(), req.Email)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		// A store failure is an outage, not bad credentials.
		respondError(w, err)
		return
	}
	if err != nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		// Same answer for unknown email and wrong password.
		writeErr(w, http.StatusBadRequest, "incorrect email or password")
		return
	}

	h.writeTokenPair(w, user)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims, err := h.tokens.Verify(req.RefreshToken, auth.KindRefresh)
	if err != nil {
		respondError(w, err)
		return
	}

	revoked, err := h.revocations.IsRevoked(r.Context(), claims.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if revoked {
		respondError(w, fmt.Errorf("refresh token revoked: %w", apperr.ErrUnauthenticated))
		return
	}

	user, err := h.dir.GetUserByID(r.Context(), claims.UserID())
	if err != nil {
		respondError(w, fmt.Errorf("invalid refresh token: %w", apperr.ErrUnauthenticated))
		return
	}

	h.writeTokenPair(w, user)
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout denylists the presented refresh token until its natural
// expiry. The caller's access token stays valid for its short window.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims, err := h.tokens.Verify(req.RefreshToken, auth.KindRefresh)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.revocations.Revoke(r.Context(), claims.ID, claims.TTL(time.Now())); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor := directory.ActorFromContext(r.Context())
	if actor == nil {
		respondError(w, apperr.ErrUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, actor)
}

func (h *AuthHandler) writeTokenPair(w http.ResponseWriter, user *models.User) {
	access, err := h.tokens.IssueAccess(user)
	if err != nil {
		respondError(w, err)
		return
	}
	refresh, err := h.tokens.IssueRefresh(user)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		User:         user,
	})
}

func (h *AuthHandler) sendWelcome(user *models.User) {
	if h.queue == nil {
		return
	}
	err := h.queue.EnqueueEmailSend(queue.EmailSendPayload{
		To:      []string{user.Email},
		Subject: "Welcome to MEGALAI",
		Body:    fmt.Sprintf("Hi %s, your account is ready.", user.Name),
	})
	if err != nil {
		slog.Warn("enqueue welcome email failed", "error", err)
	}
}
