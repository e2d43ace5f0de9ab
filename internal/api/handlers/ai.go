package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/megalai/backend/internal/directory"
	"github.com/megalai/backend/internal/generate"
	"github.com/megalai/backend/internal/models"
)

// AIHandler serves the content-generation endpoints. The generator is
// chosen per request from the user's stored provider settings.
type AIHandler struct {
	dir      *directory.Service
	registry *generate.Registry
}

func NewAIHandler(dir *directory.Service, registry *generate.Registry) *AIHandler {
	return &AIHandler{dir: dir, registry: registry}
}

func (h *AIHandler) generatorFor(r *http.Request, user *models.User) generate.Generator {
	settings, err := h.dir.GetOrCreateSettings(r.Context(), user.ID)
	if err != nil {
		// Settings are a preference, not a requirement; fall back to
		// defaults rather than failing the generation.
		settings = nil
	}
	return h.registry.For(settings)
}

func (h *AIHandler) Lesson(w http.ResponseWriter, r *http.Request) {
	user, ok := requireActor(w, r)
	if !ok {
		return
	}
	var in generate.LessonInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lesson, err := h.generatorFor(r, user).Lesson(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

func (h *AIHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	user, ok := requireActor(w, r)
	if !ok {
		return
	}
	var in generate.QuizInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quiz, err := h.generatorFor(r, user).Quiz(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *AIHandler) Worksheet(w http.ResponseWriter, r *http.Request) {
	user, ok := requireActor(w, r)
	if !ok {
		return
	}
	var in generate.WorksheetInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws, err := h.generatorFor(r, user).Worksheet(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

func (h *AIHandler) Rubric(w http.ResponseWriter, r *http.Request) {
	user, ok := requireActor(w, r)
	if !ok {
		return
	}
	var in generate.RubricInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rubric, err := h.generatorFor(r, user).Rubric(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rubric)
}

func (h *AIHandler) TextTool(w http.ResponseWriter, r *http.Request) {
	user, ok := requireActor(w, r)
	if !ok {
		return
	}
	var in generate.TextToolInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.generatorFor(r, user).TextTool(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
