package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"shopadmin/internal/bot"
	"shopadmin/internal/config"
	"shopadmin/internal/logging"
	"shopadmin/internal/storage"
	"shopadmin/internal/storage/stubs"
	"shopadmin/internal/storage/supa"
)

// App wires the store, the bot and the HTTP server together.
type App struct {
	config *config.Config
	logger *zap.Logger
	store  storage.Store
	bot    *bot.Bot
	server *http.Server
}

// New creates and initializes a new application instance.
func New() (*App, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, using system environment variables")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app := &App{config: cfg, logger: logger}
	logger.Info("starting shop admin bot")

	if err := app.initStore(); err != nil {
		return nil, err
	}
	if err := app.initBot(); err != nil {
		return nil, err
	}
	app.initHTTPServer()

	return app, nil
}

func (a *App) initStore() error {
	if a.config.UseMockDB {
		a.logger.Info("using in-memory mock store")
		a.store = stubs.NewMockStore()
		return nil
	}

	a.logger.Info("connecting to Supabase", zap.String("url", a.config.SupabaseURL))
	store, err := supa.New(a.config.SupabaseURL, a.config.SupabaseServiceRoleKey)
	if err != nil {
		return fmt.Errorf("failed to create Supabase store: %w", err)
	}
	a.store = store
	return nil
}

func (a *App) initBot() error {
	telegramBot, err := bot.NewBot(a.config.TelegramToken, a.store, a.config.AdminUserIDs, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	a.logger.Info("bot created", zap.Int64s("admin_user_ids", a.config.AdminUserIDs))

	a.bot = telegramBot
	return nil
}

func (a *App) initHTTPServer() {
	mux := http.NewServeMux()
	a.bot.RegisterRoutes(mux)

	a.server = &http.Server{
		Addr:         ":" + a.config.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		a.logger.Info("starting HTTP server", zap.String("port", a.config.Port))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
}

// Run starts the application and blocks until shutdown.
func (a *App) Run() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if a.config.WebhookMode {
		a.logger.Info("starting bot in webhook mode", zap.String("webhook_url", a.config.WebhookURL))
		if err := a.bot.StartWebhook(a.config.WebhookURL); err != nil {
			return fmt.Errorf("failed to setup webhook: %w", err)
		}
	} else {
		go func() {
			a.logger.Info("starting bot in polling mode")
			if err := a.bot.Start(); err != nil {
				a.logger.Fatal("failed to start bot", zap.Error(err))
			}
		}()
	}

	<-sigChan

	a.logger.Info("shutting down")
	return a.Shutdown()
}

// Shutdown gracefully shuts down the application.
func (a *App) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := a.store.Close(); err != nil {
		a.logger.Error("error closing store", zap.Error(err))
		return err
	}

	a.logger.Info("shutdown complete")
	_ = a.logger.Sync()
	return nil
}
