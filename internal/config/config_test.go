package config

import (
	"strings"
	"testing"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_TELEGRAM_USER_IDS", "111, 222")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-role-key")
	t.Setenv("WEBHOOK_MODE", "")
	t.Setenv("WEBHOOK_URL", "")
	t.Setenv("USE_MOCK_DB", "")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
}

func TestLoadFromEnv_Valid(t *testing.T) {
	setValidEnv(t)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Expected valid config, got error: %v", err)
	}

	if cfg.TelegramToken != "123:abc" {
		t.Errorf("Expected token '123:abc', got %q", cfg.TelegramToken)
	}
	if len(cfg.AdminUserIDs) != 2 || cfg.AdminUserIDs[0] != 111 || cfg.AdminUserIDs[1] != 222 {
		t.Errorf("Expected admin IDs [111 222], got %v", cfg.AdminUserIDs)
	}
	if cfg.WebhookMode {
		t.Error("Expected polling mode by default")
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %q", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level info, got %q", cfg.LogLevel)
	}
}

func TestLoadFromEnv_MissingToken(t *testing.T) {
	setValidEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := LoadFromEnv()
	if err == nil {
		t.Fatal("Expected error for missing token")
	}
	if !strings.Contains(err.Error(), "TELEGRAM_BOT_TOKEN") {
		t.Errorf("Expected error to mention TELEGRAM_BOT_TOKEN, got: %v", err)
	}
}

func TestLoadFromEnv_InvalidAdminID(t *testing.T) {
	setValidEnv(t)
	t.Setenv("ADMIN_TELEGRAM_USER_IDS", "111,not-a-number")

	_, err := LoadFromEnv()
	if err == nil {
		t.Fatal("Expected error for invalid admin ID")
	}
	if !strings.Contains(err.Error(), "not-a-number") {
		t.Errorf("Expected error to name the bad ID, got: %v", err)
	}
}

func TestLoadFromEnv_WebhookModeRequiresURL(t *testing.T) {
	setValidEnv(t)
	t.Setenv("WEBHOOK_MODE", "true")

	_, err := LoadFromEnv()
	if err == nil {
		t.Fatal("Expected error when WEBHOOK_MODE is set without WEBHOOK_URL")
	}

	t.Setenv("WEBHOOK_URL", "https://bot.example.com")
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Expected valid config with webhook URL, got: %v", err)
	}
	if !cfg.WebhookMode || cfg.WebhookURL != "https://bot.example.com" {
		t.Errorf("Unexpected webhook config: %+v", cfg)
	}
}

func TestLoadFromEnv_MockSkipsSupabase(t *testing.T) {
	setValidEnv(t)
	t.Setenv("USE_MOCK_DB", "true")
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Expected mock mode to skip Supabase validation, got: %v", err)
	}
	if !cfg.UseMockDB {
		t.Error("Expected UseMockDB to be true")
	}
}

func TestLoadFromEnv_AggregatesErrors(t *testing.T) {
	setValidEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("SUPABASE_URL", "")

	_, err := LoadFromEnv()
	if err == nil {
		t.Fatal("Expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "TELEGRAM_BOT_TOKEN") || !strings.Contains(msg, "SUPABASE_URL") {
		t.Errorf("Expected both problems reported together, got: %v", err)
	}
}
