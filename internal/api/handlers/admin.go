package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/megalai/backend/internal/apperr"
	"github.com/megalai/backend/internal/audit"
	"github.com/megalai/backend/internal/auth"
	"github.com/megalai/backend/internal/authz"
	"github.com/megalai/backend/internal/directory"
	"github.com/megalai/backend/internal/models"
	"github.com/megalai/backend/internal/queue"
)

// AdminHandler serves the privileged provisioning surface: creating
// organizations and role-bearing users, plus the cross-org listings.
type AdminHandler struct {
	dir   *directory.Service
	audit *audit.Service
	queue *queue.Client
}

func NewAdminHandler(dir *directory.Service, auditSvc *audit.Service, qc *queue.Client) *AdminHandler {
	return &AdminHandler{dir: dir, audit: auditSvc, queue: qc}
}

func (h *AdminHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	user, ok := requireActor(w, r)
	if !ok {
		return
	}
	if err := authz.Authorize(authz.ActorFor(user), authz.OpCreateOrganization); err != nil {
		respondError(w, err)
		return
	}

	var req OrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Slug == "" {
		writeErr(w, http.StatusBadRequest, "name and slug are required")
		return
	}

	org, err := h.dir.CreateOrganization(r.Context(), req.Name, req.Slug, req.PrimaryDomain)
	if err != nil {
		respondError(w, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		Action:       "organization.create",
		ResourceType: "organization",
		ResourceID:   &org.ID,
		Details:      map[string]interface{}{"slug": org.Slug},
	})
	writeJSON(w, http.StatusOK, org)
}

func (h *AdminHandler) CreateOrgAdmin(w http.ResponseWriter, r *http.Request) {
	h.createUser(w, r, authz.OpCreateOrgAdmin, authz.RoleOrgAdmin, true)
}

func (h *AdminHandler) CreateProfessor(w http.ResponseWriter, r *http.Request) {
	h.createUser(w, r, authz.OpCreateProfessor, authz.RoleProfessor, false)
}

func (h *AdminHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	h.createUser(w, r, authz.OpCreateStudent, authz.RoleStudent, false)
}

// createUser is the shared provisioning path. The target organization
// is resolved through the authorization core: orgAdmins default to and
// are confined to their own org.
func (h *AdminHandler) createUser(w http.ResponseWriter, r *http.Request, op authz.Operation, role authz.Role, orgRequired bool) {
	user, ok := requireActor(w, r)
	if !ok {
		return
	}
	actor := authz.ActorFor(user)
	if err := authz.Authorize(actor, op); err != nil {
		respondError(w, err)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeErr(w, http.StatusBadRequest, "email, password, and name are required")
		return
	}

	orgID, err := authz.ResolveTargetOrg(actor, req.OrganizationID)
	if err != nil {
		respondError(w, err)
		return
	}
	if orgRequired && orgID == nil {
		respondError(w, fmt.Errorf("organization required: %w", apperr.ErrInvalid))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	created, err := h.dir.CreateUser(r.Context(), directory.NewUser{
		Email:          req.Email,
		Name:           req.Name,
		PasswordHash:   hash,
		Role:           string(role),
		OrganizationID: orgID,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		Action:       "user.create",
		ResourceType: "user",
		ResourceID:   &created.ID,
		Details:      map[string]interface{}{"role": created.Role},
	})
	h.sendWelcome(created)
	writeJSON(w, http.StatusOK, created)
}

// ListOrganizations is the admin listing with member counts.
func (h *AdminHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	user, ok := requireActor(w, r)
	if !ok {
		return
	}
	if err := authz.Authorize(authz.ActorFor(user), authz.OpListOrganizations); err != nil {
		respondError(w, err)
		return
	}

	summaries, err := h.dir.ListOrganizationSummaries(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// ListUsers is scoped by role: platform admins see every user, org
// admins only their own organization's.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	user, ok := requireActor(w, r)
	if !ok {
		return
	}
	actor := authz.ActorFor(user)
	if err := authz.Authorize(actor, authz.OpListUsers); err != nil {
		respondError(w, err)
		return
	}

	orgFilter, err := authz.CanListUsersOf(actor)
	if err != nil {
		respondError(w, err)
		return
	}

	users, err := h.dir.ListUsers(r.Context(), orgFilter)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	user, ok := requireActor(w, r)
	if !ok {
		return
	}
	if err := authz.Authorize(authz.ActorFor(user), authz.OpReadAudit); err != nil {
		respondError(w, err)
		return
	}

	q := audit.Query{Action: r.URL.Query().Get("action")}
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	q.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if q.Limit <= 0 {
		q.Limit = 50
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			q.StartDate = &t
		}
	}
	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			q.EndDate = &t
		}
	}

	logs, err := h.audit.List(r.Context(), q)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"audit_logs": logs, "count": len(logs)})
}

func (h *AdminHandler) sendWelcome(user *models.User) {
	if h.queue == nil {
		return
	}
	err := h.queue.EnqueueEmailSend(queue.EmailSendPayload{
		To:      []string{user.Email},
		Subject: "Welcome to MEGALAI",
		Body:    fmt.Sprintf("Hi %s, an account was created for you with the %s role.", user.Name, user.Role),
	})
	if err != nil {
		slog.Warn("enqueue welcome email failed", "error", err)
	}
}
