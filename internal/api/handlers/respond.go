package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/megalai/backend/internal/apperr"
	"github.com/megalai/backend/internal/directory"
	"github.com/megalai/backend/internal/models"
)

// requireActor pulls the authenticated user from the context; the auth
// middleware guarantees it on protected routes.
func requireActor(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	actor := directory.ActorFromContext(r.Context())
	if actor == nil {
		respondError(w, apperr.ErrUnauthenticated)
		return nil, false
	}
	return actor, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// respondError maps a classified error to its status. 401s carry the
// bearer challenge header.
func respondError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeErr(w, status, msg)
}
