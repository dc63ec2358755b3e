// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Default models per provider.
const (
	DefaultGroqModel   = "llama-3.3-70b-versatile"
	DefaultOpenAIModel = "gpt-4o"
	DefaultClaudeModel = "claude-sonnet-4-6"
)

// Generation defaults applied when the environment leaves them unset. They
// reach the AI providers unchanged, so AI_TEMPERATURE=0 and
// AI_MAX_RETRIES=0 mean exactly that.
const (
	DefaultAITemperature = 0.7
	DefaultAIMaxTokens   = 4096
	DefaultAIMaxRetries  = 2
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection. DatabaseURL, when set, wins over the parts.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// Valkey (Redis-compatible cache). An empty host disables caching and
	// the cross-process generation lock.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// AI provider settings
	AIProvider    string // "groq", "openai", "claude"
	GroqAPIKey    string
	GroqModel     string
	GroqBaseURL   string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	ClaudeAPIKey  string
	ClaudeModel   string
	ClaudeBaseURL string
	AITemperature float64
	AIMaxTokens   int
	AIMaxRetries  int

	// Generation
	AdminAPIKey        string
	GenerationSchedule string
	ImageBaseURL       string

	// HTTP
	CORSOrigins []string
	TrustProxy  bool // take client addresses from X-Real-IP / X-Forwarded-For
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. It fails on missing secrets, bad
// numbers and the default database password in production.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8000"),
		Env:  envOrDefault("APP_ENV", "development"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:      envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:      envOrDefault("POSTGRES_USER", "autoblog"),
		DBPassword:  envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:      envOrDefault("POSTGRES_DB", "autoblog"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AIProvider:    strings.ToLower(envOrDefault("AI_PROVIDER", "groq")),
		GroqAPIKey:    os.Getenv("GROQ_API_KEY"),
		GroqModel:     envOrDefault("GROQ_MODEL", DefaultGroqModel),
		GroqBaseURL:   os.Getenv("GROQ_BASE_URL"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOrDefault("OPENAI_MODEL", DefaultOpenAIModel),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		ClaudeAPIKey:  os.Getenv("CLAUDE_API_KEY"),
		ClaudeModel:   envOrDefault("CLAUDE_MODEL", DefaultClaudeModel),
		ClaudeBaseURL: os.Getenv("CLAUDE_BASE_URL"),

		AdminAPIKey:        os.Getenv("ADMIN_API_KEY"),
		GenerationSchedule: envOrDefault("GENERATION_SCHEDULE", "0 0 * * *"),
		ImageBaseURL:       envOrDefault("IMAGE_BASE_URL", "https://image.pollinations.ai"),

		CORSOrigins: splitList(envOrDefault("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),
	}

	var err error
	if cfg.AITemperature, err = envFloat("AI_TEMPERATURE", DefaultAITemperature); err != nil {
		return nil, err
	}
	if cfg.AIMaxTokens, err = envInt("AI_MAX_TOKENS", DefaultAIMaxTokens); err != nil {
		return nil, err
	}
	if cfg.AIMaxRetries, err = envInt("AI_MAX_RETRIES", DefaultAIMaxRetries); err != nil {
		return nil, err
	}
	if cfg.TrustProxy, err = envBool("TRUST_PROXY", false); err != nil {
		return nil, err
	}
	if cfg.AITemperature < 0 {
		return nil, fmt.Errorf("AI_TEMPERATURE must not be negative, got %v", cfg.AITemperature)
	}
	if cfg.AIMaxTokens <= 0 {
		return nil, fmt.Errorf("AI_MAX_TOKENS must be positive, got %d", cfg.AIMaxTokens)
	}
	if cfg.AIMaxRetries < 0 {
		return nil, fmt.Errorf("AI_MAX_RETRIES must not be negative, got %d", cfg.AIMaxRetries)
	}

	if cfg.AdminAPIKey == "" {
		return nil, errors.New("ADMIN_API_KEY must be set")
	}

	switch cfg.AIProvider {
	case "groq", "openai", "claude":
	default:
		return nil, fmt.Errorf("AI_PROVIDER %q is not supported (groq, openai, claude)", cfg.AIProvider)
	}
	if cfg.ActiveAPIKey() == "" {
		return nil, fmt.Errorf("%s_API_KEY must be set for AI_PROVIDER=%s",
			strings.ToUpper(cfg.AIProvider), cfg.AIProvider)
	}

	if cfg.Env == "production" {
		if cfg.DatabaseURL == "" && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// ActiveAPIKey returns the API key of the selected AI provider.
func (c *Config) ActiveAPIKey() string {
	switch c.AIProvider {
	case "groq":
		return c.GroqAPIKey
	case "openai":
		return c.OpenAIAPIKey
	case "claude":
		return c.ClaudeAPIKey
	}
	return ""
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// CacheEnabled reports whether a Valkey host was configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyHost != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
