package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handleMessage processes a single message
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	// Recover from panics to prevent bot crashes
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleMessage", zap.Any("panic", r))
			b.reply(message.Chat.ID, "An error occurred while processing your request. Please try again.")
		}
	}()

	userID := message.From.ID
	ctx := context.Background()

	// Check if user is in a conversation
	if state, ok := b.state(userID); ok {
		if state.Step == conversationDone {
			b.clearState(userID)
		} else if message.IsCommand() && message.Command() != "skip" {
			if message.Command() == "cancel" {
				b.clearState(userID)
				b.reply(message.Chat.ID, "Operation cancelled.")
				return
			}
			// Any other command interrupts an ongoing conversation
			b.clearState(userID)
		} else {
			b.handleConversation(ctx, message, state)
			if state.Step == conversationDone {
				b.clearState(userID)
			}
			return
		}
	}

	if !message.IsCommand() {
		return
	}

	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "help":
		b.handleHelp(message)
	case "menu":
		b.handleMenu(message)

	case "products":
		b.handleListProducts(ctx, message)
	case "product":
		b.handleGetProduct(ctx, message)
	case "add_product":
		b.handleAddProductStart(message)
	case "update_product":
		b.handleUpdateProduct(ctx, message)
	case "delete_product":
		b.handleDeleteProduct(ctx, message)
	case "product_stock", "update_stock":
		b.handleUpdateStock(ctx, message)

	case "orders":
		b.handleListOrders(ctx, message)
	case "order":
		b.handleGetOrder(ctx, message)
	case "order_status":
		b.handleOrderStatus(ctx, message)
	case "add_order":
		b.handleAddOrder(message)

	case "expenses":
		b.showExpensePage(ctx, message.Chat.ID, 0, 0)
	case "expense":
		b.handleGetExpense(ctx, message)
	case "add_expense":
		b.handleAddExpenseStart(message)
	case "delete_expense":
		b.handleDeleteExpense(ctx, message)

	case "stock":
		b.handleStock(ctx, message)
	case "low_stock":
		b.handleLowStock(ctx, message)

	case "stats":
		b.sendOverallStats(ctx, message.Chat.ID)
	case "stats_orders":
		b.sendOrderStats(ctx, message.Chat.ID)
	case "stats_expenses":
		b.sendExpenseStats(ctx, message.Chat.ID)
	case "stats_products":
		b.sendProductStats(ctx, message.Chat.ID)

	case "cancel":
		b.reply(message.Chat.ID, "Operation cancelled.")

	default:
		b.reply(message.Chat.ID, "Unknown command. Use /start to see available commands.")
	}
}
