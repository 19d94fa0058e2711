package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const accessDeniedMessage = "🚫 *Access Denied*\n\n" +
	"This bot is restricted to authorized administrators only.\n" +
	"If you believe this is an error, please contact the system administrator."

// Start starts the bot in polling mode
func (b *Bot) Start() error {
	b.logger.Info("Starting bot in polling mode")

	// Remove webhook (if any was set previously)
	_, err := b.api.Request(tgbotapi.DeleteWebhookConfig{})
	if err != nil {
		b.logger.Warn("Failed to delete webhook", zap.Error(err))
	}

	b.setupCommands()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Bot started successfully. Waiting for updates...")

	for update := range updates {
		b.HandleUpdate(update)
	}
	return nil
}

// StartWebhook sets up the bot to receive updates via webhook
func (b *Bot) StartWebhook(webhookURL string) error {
	b.logger.Info("Setting up webhook", zap.String("webhook_url", webhookURL))

	webhookConfig, err := tgbotapi.NewWebhook(webhookURL + "/telegram-webhook")
	if err != nil {
		return err
	}
	webhookConfig.MaxConnections = 40

	if _, err := b.api.Request(webhookConfig); err != nil {
		b.logger.Error("Failed to set webhook", zap.Error(err), zap.String("webhook_url", webhookURL))
		return err
	}

	info, err := b.api.GetWebhookInfo()
	if err != nil {
		b.logger.Warn("Failed to get webhook info", zap.Error(err))
	} else {
		b.logger.Info("Webhook set successfully",
			zap.String("url", info.URL),
			zap.Int("pending_updates", info.PendingUpdateCount),
		)
	}

	b.setupCommands()
	return nil
}

// HandleUpdate processes a single update from either polling or webhook.
// The admin allowlist is checked before any handler runs. Updates for the
// same user are serialized: webhook delivery is concurrent, and the
// conversation state is not safe to mutate from two updates at once.
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		userID := update.Message.From.ID
		if !b.admins[userID] {
			b.logger.Warn("Unauthorized access attempt",
				zap.Int64("user_id", userID),
				zap.String("username", update.Message.From.UserName),
				zap.String("text", update.Message.Text),
			)
			b.replyMarkdown(update.Message.Chat.ID, accessDeniedMessage)
			return
		}

		lock := b.userLock(userID)
		lock.Lock()
		b.handleMessage(update.Message)
		lock.Unlock()
	}

	if update.CallbackQuery != nil {
		userID := update.CallbackQuery.From.ID
		if !b.admins[userID] {
			b.logger.Warn("Unauthorized callback query attempt",
				zap.Int64("user_id", userID),
				zap.String("username", update.CallbackQuery.From.UserName),
				zap.String("callback_data", update.CallbackQuery.Data),
			)
			return
		}

		lock := b.userLock(userID)
		lock.Lock()
		b.handleCallbackQuery(update.CallbackQuery)
		lock.Unlock()
	}
}

// setupCommands registers the command list shown in the Telegram UI.
func (b *Bot) setupCommands() {
	cmds := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Show all available commands"},
		tgbotapi.BotCommand{Command: "menu", Description: "Show interactive menu"},
		tgbotapi.BotCommand{Command: "products", Description: "List all products"},
		tgbotapi.BotCommand{Command: "add_product", Description: "Add a new product"},
		tgbotapi.BotCommand{Command: "orders", Description: "List recent orders"},
		tgbotapi.BotCommand{Command: "order", Description: "Get order details"},
		tgbotapi.BotCommand{Command: "order_status", Description: "Update order status"},
		tgbotapi.BotCommand{Command: "expenses", Description: "Browse expenses"},
		tgbotapi.BotCommand{Command: "add_expense", Description: "Add a new expense"},
		tgbotapi.BotCommand{Command: "stock", Description: "View stock levels"},
		tgbotapi.BotCommand{Command: "low_stock", Description: "View low stock products"},
		tgbotapi.BotCommand{Command: "stats", Description: "View overall statistics"},
	)
	if _, err := b.api.Request(cmds); err != nil {
		b.logger.Warn("Failed to set bot commands", zap.Error(err))
	}
}
