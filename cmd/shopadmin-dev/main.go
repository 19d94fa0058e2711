package main

import (
	"log"
	"os"

	"shopadmin/internal/app"
)

// Development runner: forces the in-memory mock store so the bot can be
// exercised without a Supabase project.
func main() {
	os.Setenv("USE_MOCK_DB", "true")
	os.Setenv("WEBHOOK_MODE", "false")

	if os.Getenv("PORT") == "" {
		os.Setenv("PORT", "8080")
	}
	if os.Getenv("LOG_LEVEL") == "" {
		os.Setenv("LOG_LEVEL", "debug")
	}

	if os.Getenv("TELEGRAM_BOT_TOKEN") == "" {
		log.Println("⚠️  TELEGRAM_BOT_TOKEN not set. Please set it in your .env file or environment.")
		log.Println("   The bot will fail to start without a valid token.")
	}
	if os.Getenv("ADMIN_TELEGRAM_USER_IDS") == "" {
		log.Println("⚠️  ADMIN_TELEGRAM_USER_IDS not set. Please set it in your .env file or environment.")
		log.Println("   The bot will not accept any commands without admin user IDs.")
	}

	log.Println("Starting application with in-memory store...")

	application, err := app.New()
	if err != nil {
		log.Fatal(err)
	}
	if err := application.Run(); err != nil {
		log.Fatal(err)
	}
}
