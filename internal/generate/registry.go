package generate

import (
	"github.com/megalai/backend/internal/config"
	"github.com/megalai/backend/internal/models"
)

// Registry resolves the generator for a request from the user's stored
// provider settings, falling back to process-wide keys and finally to
// the static templates.
type Registry struct {
	cfg    config.GenerateConfig
	static Generator
}

func NewRegistry(cfg config.GenerateConfig) *Registry {
	return &Registry{
		cfg:    cfg,
		static: NewStaticGenerator(),
	}
}

// For picks the generator for a user. A provider without a usable API
// key silently degrades to the static generator; content endpoints must
// keep working for users who never configured a model.
func (r *Registry) For(settings *models.UserSettings) Generator {
	provider, model := r.cfg.DefaultProvider, r.cfg.DefaultModel
	var userOpenAIKey, userAnthropicKey string
	if settings != nil {
		if settings.Provider != "" && settings.Provider != "default" {
			provider = settings.Provider
		}
		if settings.Model != "" {
			model = settings.Model
		}
		if settings.OpenAIAPIKey != nil {
			userOpenAIKey = *settings.OpenAIAPIKey
		}
		if settings.AnthropicAPIKey != nil {
			userAnthropicKey = *settings.AnthropicAPIKey
		}
	}

	switch provider {
	case "openai":
		if key := firstNonEmpty(userOpenAIKey, r.cfg.OpenAIKey); key != "" {
			return NewOpenAIGenerator(key, model)
		}
	case "anthropic":
		if key := firstNonEmpty(userAnthropicKey, r.cfg.AnthropicKey); key != "" {
			return NewAnthropicGenerator(key, model)
		}
	}
	return r.static
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
