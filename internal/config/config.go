package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration
type Config struct {
	TelegramToken string
	AdminUserIDs  []int64

	// Bot mode configuration
	WebhookMode bool   // If true, use webhook mode; if false, use polling mode
	WebhookURL  string // URL for webhook (required if WebhookMode is true)

	// Supabase configuration
	SupabaseURL            string
	SupabaseServiceRoleKey string

	Port     string
	LogLevel string

	UseMockDB bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	config := &Config{}
	var errs []string

	// Telegram Bot Token (required)
	config.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if config.TelegramToken == "" {
		errs = append(errs, "TELEGRAM_BOT_TOKEN is required")
	}

	// Admin User IDs (required)
	adminIDsStr := os.Getenv("ADMIN_TELEGRAM_USER_IDS")
	if adminIDsStr == "" {
		errs = append(errs, "ADMIN_TELEGRAM_USER_IDS is required (comma-separated list of Telegram user IDs)")
	}
	for _, idStr := range strings.Split(adminIDsStr, ",") {
		idStr = strings.TrimSpace(idStr)
		if idStr == "" {
			continue
		}
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid user ID in ADMIN_TELEGRAM_USER_IDS: %s", idStr))
			continue
		}
		config.AdminUserIDs = append(config.AdminUserIDs, id)
	}
	if adminIDsStr != "" && len(config.AdminUserIDs) == 0 {
		errs = append(errs, "at least one admin user ID must be configured")
	}

	// Bot mode configuration
	config.WebhookMode = os.Getenv("WEBHOOK_MODE") == "true"
	if config.WebhookMode {
		config.WebhookURL = os.Getenv("WEBHOOK_URL")
		if config.WebhookURL == "" {
			errs = append(errs, "WEBHOOK_URL is required when WEBHOOK_MODE is true")
		}
	}

	// Use Mock DB (default: false)
	config.UseMockDB = os.Getenv("USE_MOCK_DB") == "true"

	// Supabase configuration (required if not using mock)
	if !config.UseMockDB {
		config.SupabaseURL = os.Getenv("SUPABASE_URL")
		if config.SupabaseURL == "" {
			errs = append(errs, "SUPABASE_URL is required when USE_MOCK_DB is not set")
		}

		config.SupabaseServiceRoleKey = os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
		if config.SupabaseServiceRoleKey == "" {
			errs = append(errs, "SUPABASE_SERVICE_ROLE_KEY is required when USE_MOCK_DB is not set")
		}
	}

	config.Port = os.Getenv("PORT")
	if config.Port == "" {
		config.Port = "8080"
	}

	config.LogLevel = os.Getenv("LOG_LEVEL")
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return config, nil
}
