package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/megalai/backend/internal/directory"
)

type SettingsHandler struct {
	dir *directory.Service
}

func NewSettingsHandler(dir *directory.Service) *SettingsHandler {
	return &SettingsHandler{dir: dir}
}

// Mine reads the actor's settings, creating the default row on first
// read. Raw API keys never appear in the response.
func (h *SettingsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	user, ok := requireActor(w, r)
	if !ok {
		return
	}

	st, err := h.dir.GetOrCreateSettings(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st.View())
}

type SettingsUpdateRequest struct {
	Provider        *string `json:"provider,omitempty"`
	Model           *string `json:"model,omitempty"`
	OpenAIAPIKey    *string `json:"openai_api_key,omitempty"`
	GoogleAPIKey    *string `json:"google_api_key,omitempty"`
	AnthropicAPIKey *string `json:"anthropic_api_key,omitempty"`
	LocalAPIKey     *string `json:"local_api_key,omitempty"`
}

func (h *SettingsHandler) UpdateMine(w http.ResponseWriter, r *http.Request) {
	user, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req SettingsUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	st, err := h.dir.UpdateSettings(r.Context(), user.ID, directory.SettingsUpdate{
		Provider:        req.Provider,
		Model:           req.Model,
		OpenAIAPIKey:    req.OpenAIAPIKey,
		GoogleAPIKey:    req.GoogleAPIKey,
		AnthropicAPIKey: req.AnthropicAPIKey,
		LocalAPIKey:     req.LocalAPIKey,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st.View())
}
