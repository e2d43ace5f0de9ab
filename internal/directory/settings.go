package directory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/megalai/backend/internal/models"
)

const settingsColumns = "id, user_id, provider, model, openai_api_key, google_api_key, anthropic_api_key, local_api_key, created_at, updated_at"

func scanSettings(row pgx.Row) (*models.UserSettings, error) {
	var st models.UserSettings
	err := row.Scan(&st.ID, &st.UserID, &st.Provider, &st.Model,
		&st.OpenAIAPIKey, &st.GoogleAPIKey, &st.AnthropicAPIKey, &st.LocalAPIKey,
		&st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// GetOrCreateSettings returns the user's settings row, creating the
// default one on first read. The user_id uniqueness constraint makes
// concurrent first reads converge on a single row.
func (s *Service) GetOrCreateSettings(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	st, err := scanSettings(s.db.QueryRow(ctx,
		`INSERT INTO user_settings (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING `+settingsColumns,
		userID,
	))
	if err != nil {
		return nil, classify(err, "get or create settings")
	}
	return st, nil
}

// SettingsUpdate carries a partial update; nil fields are left alone.
type SettingsUpdate struct {
	Provider        *string
	Model           *string
	OpenAIAPIKey    *string
	GoogleAPIKey    *string
	AnthropicAPIKey *string
	LocalAPIKey     *string
}

func (s *Service) UpdateSettings(ctx context.Context, userID uuid.UUID, upd SettingsUpdate) (*models.UserSettings, error) {
	st, err := scanSettings(s.db.QueryRow(ctx,
		`INSERT INTO user_settings (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING `+settingsColumns,
		userID,
	))
	if err != nil {
		return nil, classify(err, "ensure settings")
	}

	st, err = scanSettings(s.db.QueryRow(ctx,
		`UPDATE user_settings SET
			provider = COALESCE($2, provider),
			model = COALESCE($3, model),
			openai_api_key = COALESCE($4, openai_api_key),
			google_api_key = COALESCE($5, google_api_key),
			anthropic_api_key = COALESCE($6, anthropic_api_key),
			local_api_key = COALESCE($7, local_api_key),
			updated_at = now()
		 WHERE user_id = $1
		 RETURNING `+settingsColumns,
		userID, upd.Provider, upd.Model,
		upd.OpenAIAPIKey, upd.GoogleAPIKey, upd.AnthropicAPIKey, upd.LocalAPIKey,
	))
	if err != nil {
		return nil, classify(err, "update settings")
	}
	return st, nil
}
