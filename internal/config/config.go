package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Auth         AuthConfig
	Registration RegistrationConfig
	Generate     GenerateConfig
	CORS         CORSConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int
	MinConns       int
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	// Two secrets on purpose: leaking one key space must not forge the
	// other token kind.
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type RegistrationConfig struct {
	// When enabled, self-registration requires the email's domain suffix
	// to match an active allowed-email-domain row.
	DomainRestriction bool
	// Domains seeded into the allow-list at startup.
	DefaultAllowedDomains []string
}

type GenerateConfig struct {
	DefaultProvider string
	DefaultModel    string
	OpenAIKey       string
	AnthropicKey    string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	accessMinutes, err := getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 15)
	if err != nil {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES: %w", err)
	}

	refreshDays, err := getEnvInt("REFRESH_TOKEN_EXPIRE_DAYS", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_TOKEN_EXPIRE_DAYS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConns:       maxConns,
			MinConns:       minConns,
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			AccessSecret:  getEnv("JWT_SECRET_KEY", ""),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET_KEY", ""),
			AccessTTL:     time.Duration(accessMinutes) * time.Minute,
			RefreshTTL:    time.Duration(refreshDays) * 24 * time.Hour,
		},
		Registration: RegistrationConfig{
			DomainRestriction:     getEnvBool("ENABLE_DOMAIN_RESTRICTION", false),
			DefaultAllowedDomains: getEnvList("DEFAULT_ALLOWED_DOMAINS", nil),
		},
		Generate: GenerateConfig{
			DefaultProvider: getEnv("GENERATE_DEFAULT_PROVIDER", "static"),
			DefaultModel:    getEnv("GENERATE_DEFAULT_MODEL", "demo-model"),
			OpenAIKey:       getEnv("OPENAI_API_KEY", ""),
			AnthropicKey:    getEnv("ANTHROPIC_API_KEY", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Auth.AccessSecret == "" {
		missing = append(missing, "JWT_SECRET_KEY")
	}
	if c.Auth.RefreshSecret == "" {
		missing = append(missing, "JWT_REFRESH_SECRET_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return fmt.Errorf("JWT_SECRET_KEY and JWT_REFRESH_SECRET_KEY must differ")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
