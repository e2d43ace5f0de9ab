package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUserSettingsViewRedactsKeys(t *testing.T) {
	key := "sk-super-secret"
	empty := ""
	s := &UserSettings{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Provider:     "openai",
		Model:        "gpt-4o",
		OpenAIAPIKey: &key,
		GoogleAPIKey: &empty,
	}

	view := s.View()
	if !view.HasOpenAIAPIKey {
		t.Error("set key should report present")
	}
	if view.HasGoogleAPIKey {
		t.Error("empty key should report absent")
	}
	if view.HasAnthropicAPIKey || view.HasLocalAPIKey {
		t.Error("nil keys should report absent")
	}

	body, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal view: %v", err)
	}
	if strings.Contains(string(body), key) {
		t.Error("raw key leaked into the view JSON")
	}

	// The entity itself must never serialize secrets either.
	body, err = json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal settings: %v", err)
	}
	if strings.Contains(string(body), key) {
		t.Error("raw key leaked into the entity JSON")
	}
}
