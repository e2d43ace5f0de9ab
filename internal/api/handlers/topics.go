package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/megalai/backend/internal/audit"
	"github.com/megalai/backend/internal/authz"
	"github.com/megalai/backend/internal/directory"
)

type TopicHandler struct {
	dir   *directory.Service
	audit *audit.Service
}

func NewTopicHandler(dir *directory.Service, auditSvc *audit.Service) *TopicHandler {
	return &TopicHandler{dir: dir, audit: auditSvc}
}

// List is open to anyone authenticated, optionally filtered by org.
func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireActor(w, r); !ok {
		return
	}

	var orgID *uuid.UUID
	if s := r.URL.Query().Get("organization_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "invalid organization_id")
			return
		}
		orgID = &id
	}

	topics, err := h.dir.ListTopics(r.Context(), orgID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"topics": topics})
}

type TopicCreateRequest struct {
	Title          string     `json:"title"`
	Description    *string    `json:"description,omitempty"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
}

func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireActor(w, r)
	if !ok {
		return
	}
	actor := authz.ActorFor(user)
	if err := authz.Authorize(actor, authz.OpCreateTopic); err != nil {
		respondError(w, err)
		return
	}

	var req TopicCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		writeErr(w, http.StatusBadRequest, "title required")
		return
	}

	orgID, err := authz.ResolveTargetOrg(actor, req.OrganizationID)
	if err != nil {
		respondError(w, err)
		return
	}

	topic, err := h.dir.CreateTopic(r.Context(), orgID, req.Title, req.Description, user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

func (h *TopicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := requireActor(w, r)
	if !ok {
		return
	}
	actor := authz.ActorFor(user)
	if err := authz.Authorize(actor, authz.OpDeleteTopic); err != nil {
		respondError(w, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid topic ID")
		return
	}

	topic, err := h.dir.GetTopic(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	// The topic's organization, once set, scopes who may delete it.
	if err := authz.CanDeleteTopic(actor, topic.OrganizationID); err != nil {
		respondError(w, err)
		return
	}

	if err := h.dir.DeleteTopic(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		Action:       "topic.delete",
		ResourceType: "topic",
		ResourceID:   &id,
	})
	w.WriteHeader(http.StatusNoContent)
}
