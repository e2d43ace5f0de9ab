package models

import (
	"time"

	"github.com/google/uuid"
)

// UserSettings holds per-user provider selection and API-key secrets.
// Raw keys never leave the process; responses carry presence booleans
// only (see UserSettingsView).
type UserSettings struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	Provider        string    `json:"provider" db:"provider"`
	Model           string    `json:"model" db:"model"`
	OpenAIAPIKey    *string   `json:"-" db:"openai_api_key"`
	GoogleAPIKey    *string   `json:"-" db:"google_api_key"`
	AnthropicAPIKey *string   `json:"-" db:"anthropic_api_key"`
	LocalAPIKey     *string   `json:"-" db:"local_api_key"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// UserSettingsView is the API-facing shape of UserSettings.
type UserSettingsView struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	Provider           string    `json:"provider"`
	Model              string    `json:"model"`
	HasOpenAIAPIKey    bool      `json:"has_openai_api_key"`
	HasGoogleAPIKey    bool      `json:"has_google_api_key"`
	HasAnthropicAPIKey bool      `json:"has_anthropic_api_key"`
	HasLocalAPIKey     bool      `json:"has_local_api_key"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// View redacts secrets into presence flags.
func (s *UserSettings) View() UserSettingsView {
	has := func(p *string) bool { return p != nil && *p != "" }
	return UserSettingsView{
		ID:                 s.ID,
		UserID:             s.UserID,
		Provider:           s.Provider,
		Model:              s.Model,
		HasOpenAIAPIKey:    has(s.OpenAIAPIKey),
		HasGoogleAPIKey:    has(s.GoogleAPIKey),
		HasAnthropicAPIKey: has(s.AnthropicAPIKey),
		HasLocalAPIKey:     has(s.LocalAPIKey),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}
