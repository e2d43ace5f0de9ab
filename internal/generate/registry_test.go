package generate

import (
	"testing"

	"github.com/megalai/backend/internal/config"
	"github.com/megalai/backend/internal/models"
)

func strptr(s string) *string { return &s }

func TestRegistryFor(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.GenerateConfig
		settings *models.UserSettings
		want     string
	}{
		{
			name: "nil settings falls back to static",
			cfg:  config.GenerateConfig{DefaultProvider: "default"},
			want: "static",
		},
		{
			name:     "provider without any key degrades to static",
			cfg:      config.GenerateConfig{},
			settings: &models.UserSettings{Provider: "openai"},
			want:     "static",
		},
		{
			name:     "user key selects openai",
			cfg:      config.GenerateConfig{},
			settings: &models.UserSettings{Provider: "openai", OpenAIAPIKey: strptr("sk-user")},
			want:     "openai",
		},
		{
			name:     "process key selects anthropic",
			cfg:      config.GenerateConfig{AnthropicKey: "sk-proc"},
			settings: &models.UserSettings{Provider: "anthropic"},
			want:     "anthropic",
		},
		{
			name:     "default provider from config when settings say default",
			cfg:      config.GenerateConfig{DefaultProvider: "openai", OpenAIKey: "sk-proc"},
			settings: &models.UserSettings{Provider: "default"},
			want:     "openai",
		},
		{
			name:     "unknown provider falls back to static",
			cfg:      config.GenerateConfig{},
			settings: &models.UserSettings{Provider: "carrierpigeon"},
			want:     "static",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewRegistry(tt.cfg).For(tt.settings)
			if g.Name() != tt.want {
				t.Errorf("generator = %q, want %q", g.Name(), tt.want)
			}
		})
	}
}
