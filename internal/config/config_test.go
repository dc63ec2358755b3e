// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"strings"
	"testing"
)

var allKeys = []string{
	"APP_HOST", "APP_PORT", "APP_ENV",
	"DATABASE_URL",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
	"AI_PROVIDER",
	"GROQ_API_KEY", "GROQ_MODEL", "GROQ_BASE_URL",
	"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
	"CLAUDE_API_KEY", "CLAUDE_MODEL", "CLAUDE_BASE_URL",
	"AI_TEMPERATURE", "AI_MAX_TOKENS", "AI_MAX_RETRIES",
	"ADMIN_API_KEY", "GENERATION_SCHEDULE", "IMAGE_BASE_URL", "CORS_ORIGINS", "TRUST_PROXY",
}

// clearEnv sets every key Load reads to empty, which envOrDefault treats
// the same as unset. t.Setenv restores the originals afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
	}
}

// minimalEnv sets only the values Load requires.
func minimalEnv(t *testing.T) {
	t.Helper()
	clearEnv(t)
	t.Setenv("ADMIN_API_KEY", "secret")
	t.Setenv("GROQ_API_KEY", "gsk_test")
}

// TestLoad_Defaults verifies that Load returns sensible development defaults
// when only the required secrets are set.
func TestLoad_Defaults(t *testing.T) {
	minimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	// Use a helper to avoid massive repetition.
	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s: got %q, want %q", field, got, want)
		}
	}

	check("Host", cfg.Host, "0.0.0.0")
	check("Port", cfg.Port, "8000")
	check("Env", cfg.Env, "development")
	check("DBUser", cfg.DBUser, "autoblog")
	check("DBName", cfg.DBName, "autoblog")
	check("ValkeyHost", cfg.ValkeyHost, "")
	check("AIProvider", cfg.AIProvider, "groq")
	check("GroqModel", cfg.GroqModel, "llama-3.3-70b-versatile")
	check("OpenAIModel", cfg.OpenAIModel, "gpt-4o")
	check("ClaudeModel", cfg.ClaudeModel, "claude-sonnet-4-6")
	check("GenerationSchedule", cfg.GenerationSchedule, "0 0 * * *")
	check("ImageBaseURL", cfg.ImageBaseURL, "https://image.pollinations.ai")

	if cfg.AITemperature != 0.7 {
		t.Errorf("AITemperature: got %v, want 0.7", cfg.AITemperature)
	}
	if cfg.AIMaxTokens != 4096 {
		t.Errorf("AIMaxTokens: got %d, want 4096", cfg.AIMaxTokens)
	}
	if cfg.AIMaxRetries != 2 {
		t.Errorf("AIMaxRetries: got %d, want 2", cfg.AIMaxRetries)
	}
	if strings.Join(cfg.CORSOrigins, ",") != "http://localhost:5173,http://127.0.0.1:5173" {
		t.Errorf("CORSOrigins: got %v", cfg.CORSOrigins)
	}
	if cfg.CacheEnabled() {
		t.Error("cache should be disabled without VALKEY_HOST")
	}
	if cfg.TrustProxy {
		t.Error("TrustProxy should default to false")
	}
	if !cfg.IsDev() {
		t.Error("expected development mode")
	}
}

func TestLoad_Overrides(t *testing.T) {
	minimalEnv(t)
	t.Setenv("APP_PORT", "9000")
	t.Setenv("VALKEY_HOST", "cache")
	t.Setenv("AI_TEMPERATURE", "0.2")
	t.Setenv("AI_MAX_TOKENS", "1024")
	t.Setenv("AI_MAX_RETRIES", "5")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != "0.0.0.0:9000" {
		t.Errorf("Addr: got %q", cfg.Addr())
	}
	if !cfg.CacheEnabled() {
		t.Error("cache should be enabled with VALKEY_HOST")
	}
	if cfg.AITemperature != 0.2 || cfg.AIMaxTokens != 1024 || cfg.AIMaxRetries != 5 {
		t.Errorf("numeric overrides: got %v/%d/%d", cfg.AITemperature, cfg.AIMaxTokens, cfg.AIMaxRetries)
	}
	if strings.Join(cfg.CORSOrigins, "|") != "https://a.example|https://b.example" {
		t.Errorf("CORSOrigins: got %v", cfg.CORSOrigins)
	}
	if !cfg.TrustProxy {
		t.Error("TrustProxy should be enabled")
	}
}

// TestLoad_ZeroGenerationSettings verifies that explicit zeros survive Load
// instead of falling back to the defaults.
func TestLoad_ZeroGenerationSettings(t *testing.T) {
	minimalEnv(t)
	t.Setenv("AI_TEMPERATURE", "0")
	t.Setenv("AI_MAX_RETRIES", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AITemperature != 0 {
		t.Errorf("AITemperature: got %v, want 0", cfg.AITemperature)
	}
	if cfg.AIMaxRetries != 0 {
		t.Errorf("AIMaxRetries: got %d, want 0", cfg.AIMaxRetries)
	}
}

func TestLoad_FailFast(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing admin key", map[string]string{"ADMIN_API_KEY": ""}, "ADMIN_API_KEY"},
		{"missing groq key", map[string]string{"GROQ_API_KEY": ""}, "GROQ_API_KEY"},
		{"missing claude key", map[string]string{"AI_PROVIDER": "claude"}, "CLAUDE_API_KEY"},
		{"unknown provider", map[string]string{"AI_PROVIDER": "gemini"}, "not supported"},
		{"bad temperature", map[string]string{"AI_TEMPERATURE": "warm"}, "AI_TEMPERATURE"},
		{"bad max tokens", map[string]string{"AI_MAX_TOKENS": "lots"}, "AI_MAX_TOKENS"},
		{"bad retries", map[string]string{"AI_MAX_RETRIES": "2.5"}, "AI_MAX_RETRIES"},
		{"negative temperature", map[string]string{"AI_TEMPERATURE": "-0.1"}, "AI_TEMPERATURE"},
		{"negative max tokens", map[string]string{"AI_MAX_TOKENS": "-1"}, "AI_MAX_TOKENS"},
		{"zero max tokens", map[string]string{"AI_MAX_TOKENS": "0"}, "AI_MAX_TOKENS"},
		{"bad trust proxy", map[string]string{"TRUST_PROXY": "maybe"}, "TRUST_PROXY"},
		{"negative retries", map[string]string{"AI_MAX_RETRIES": "-1"}, "AI_MAX_RETRIES"},
		{"default password in production", map[string]string{"APP_ENV": "production"}, "POSTGRES_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minimalEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_ProviderSelection(t *testing.T) {
	minimalEnv(t)
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("AI_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AIProvider != "openai" {
		t.Errorf("AIProvider: got %q, want openai", cfg.AIProvider)
	}
	if cfg.ActiveAPIKey() != "sk-test" {
		t.Errorf("ActiveAPIKey: got %q", cfg.ActiveAPIKey())
	}
}

func TestLoad_ProductionWithDatabaseURL(t *testing.T) {
	minimalEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/blog")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IsDev() {
		t.Error("expected production mode")
	}
	if cfg.DSN() != "postgres://u:p@db:5432/blog" {
		t.Errorf("DSN: got %q", cfg.DSN())
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "1", DBName: "d",
	}
	want := "postgres://u:p@h:1/d?sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN: got %q, want %q", got, want)
	}
}
