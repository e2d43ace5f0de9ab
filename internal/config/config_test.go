package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{URL: "postgres://localhost/app"},
		Auth: AuthConfig{
			AccessSecret:  "access",
			RefreshSecret: "refresh",
			AccessTTL:     15 * time.Minute,
			RefreshTTL:    30 * 24 * time.Hour,
		},
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	missing := validConfig()
	missing.Database.URL = ""
	missing.Auth.RefreshSecret = ""
	err := missing.Validate()
	if err == nil {
		t.Fatal("expected error for missing env vars")
	}
	if !strings.Contains(err.Error(), "DATABASE_URL") || !strings.Contains(err.Error(), "JWT_REFRESH_SECRET_KEY") {
		t.Errorf("error should name the missing vars: %v", err)
	}

	same := validConfig()
	same.Auth.RefreshSecret = same.Auth.AccessSecret
	if same.Validate() == nil {
		t.Error("identical access and refresh secrets must be rejected")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Auth.AccessTTL != 15*time.Minute {
		t.Errorf("default access TTL = %v, want 15m", cfg.Auth.AccessTTL)
	}
	if cfg.Auth.RefreshTTL != 30*24*time.Hour {
		t.Errorf("default refresh TTL = %v, want 720h", cfg.Auth.RefreshTTL)
	}
	if cfg.Generate.DefaultProvider != "static" {
		t.Errorf("default provider = %q, want static", cfg.Generate.DefaultProvider)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("DEFAULT_ALLOWED_DOMAINS", "school.edu, uni.ac.uk ,")
	t.Setenv("ENABLE_DOMAIN_RESTRICTION", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Auth.AccessTTL != 5*time.Minute {
		t.Errorf("access TTL = %v, want 5m", cfg.Auth.AccessTTL)
	}
	if !cfg.Registration.DomainRestriction {
		t.Error("domain restriction should be enabled")
	}
	want := []string{"school.edu", "uni.ac.uk"}
	if len(cfg.Registration.DefaultAllowedDomains) != len(want) {
		t.Fatalf("domains = %v, want %v", cfg.Registration.DefaultAllowedDomains, want)
	}
	for i, d := range want {
		if cfg.Registration.DefaultAllowedDomains[i] != d {
			t.Errorf("domains[%d] = %q, want %q", i, cfg.Registration.DefaultAllowedDomains[i], d)
		}
	}
}

func TestLoadBadInt(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric SERVER_PORT")
	}
}
