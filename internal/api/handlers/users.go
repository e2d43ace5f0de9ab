package handlers

import (
	"net/http"

	"github.com/megalai/backend/internal/apperr"
	"github.com/megalai/backend/internal/authz"
	"github.com/megalai/backend/internal/directory"
)

type UserHandler struct {
	dir *directory.Service
}

func NewUserHandler(dir *directory.Service) *UserHandler {
	return &UserHandler{dir: dir}
}

// List returns every user; platform admins only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireActor(w, r)
	if !ok {
		return
	}
	actor := authz.ActorFor(user)
	if actor.Role != authz.RolePlatformAdmin {
		respondError(w, apperr.ErrForbidden)
		return
	}

	users, err := h.dir.ListUsers(r.Context(), nil)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor := directory.ActorFromContext(r.Context())
	if actor == nil {
		respondError(w, apperr.ErrUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, actor)
}
