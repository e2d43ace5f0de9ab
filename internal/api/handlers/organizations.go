package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/megalai/backend/internal/apperr"
	"github.com/megalai/backend/internal/audit"
	"github.com/megalai/backend/internal/authz"
	"github.com/megalai/backend/internal/directory"
)

type OrganizationHandler struct {
	dir   *directory.Service
	audit *audit.Service
}

func NewOrganizationHandler(dir *directory.Service, auditSvc *audit.Service) *OrganizationHandler {
	return &OrganizationHandler{dir: dir, audit: auditSvc}
}

type OrganizationRequest struct {
	ID            *uuid.UUID `json:"id,omitempty"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	PrimaryDomain *string    `json:"primary_domain,omitempty"`
}

func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireActor(w, r)
	if !ok {
		return
	}
	if err := authz.Authorize(authz.ActorFor(user), authz.OpListOrganizations); err != nil {
		respondError(w, err)
		return
	}

	orgs, err := h.dir.ListOrganizations(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
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

// Mine returns the actor's current organization, or null when none is
// assigned.
func (h *OrganizationHandler) Mine(w http.ResponseWriter, r *http.Request) {
	user, ok := requireActor(w, r)
	if !ok {
		return
	}
	if user.CurrentOrganizationID == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	org, err := h.dir.GetOrganization(r.Context(), *user.CurrentOrganizationID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

// UpdateMine updates the actor's organization. An orgAdmin must have
// one; a platformAdmin without one falls back to the payload id.
func (h *OrganizationHandler) UpdateMine(w http.ResponseWriter, r *http.Request) {
	user, ok := requireActor(w, r)
	if !ok {
		return
	}
	actor := authz.ActorFor(user)
	if err := authz.Authorize(actor, authz.OpUpdateOrganization); err != nil {
		respondError(w, err)
		return
	}

	var req OrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	targetID := user.CurrentOrganizationID
	if targetID == nil {
		if actor.Role != authz.RolePlatformAdmin {
			respondError(w, fmt.Errorf("no organization assigned: %w", apperr.ErrInvalid))
			return
		}
		targetID = req.ID
	}
	if targetID == nil {
		respondError(w, fmt.Errorf("organization not found: %w", apperr.ErrInvalid))
		return
	}

	org, err := h.dir.UpdateOrganization(r.Context(), *targetID, req.Name, req.Slug, req.PrimaryDomain)
	if err != nil {
		respondError(w, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		Action:       "organization.update",
		ResourceType: "organization",
		ResourceID:   &org.ID,
	})
	writeJSON(w, http.StatusOK, org)
}
