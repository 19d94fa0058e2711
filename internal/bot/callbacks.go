package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopadmin/internal/models"
)

// Callback route groups, in match order.
const (
	routeMenu      = "menu"
	routeExpense   = "expense"
	routeProduct   = "product"
	routeOrder     = "order"
	routeAnalytics = "analytics"
	routeStock     = "stock"
	routeNoop      = "noop"
	routeUnknown   = "unknown"
)

// routeCallback resolves callback data to its handler group.
// First prefix match wins.
func routeCallback(data string) string {
	switch {
	case strings.HasPrefix(data, "menu_"):
		return routeMenu
	case strings.HasPrefix(data, "exp_"):
		return routeExpense
	case strings.HasPrefix(data, "product_"):
		return routeProduct
	case strings.HasPrefix(data, "order"):
		return routeOrder
	case strings.HasPrefix(data, "analytics_"):
		return routeAnalytics
	case strings.HasPrefix(data, "stock_"):
		return routeStock
	case data == "noop":
		return routeNoop
	default:
		return routeUnknown
	}
}

// handleCallbackQuery processes a single inline-button press.
func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleCallbackQuery", zap.Any("panic", r))
		}
	}()

	// Stop the client-side spinner right away.
	b.answerCallback(query.ID, "")

	if query.Message == nil {
		return
	}

	ctx := context.Background()
	chatID := query.Message.Chat.ID

	switch routeCallback(query.Data) {
	case routeMenu:
		b.handleMenuCallback(query)
	case routeExpense:
		b.handleExpenseCallback(ctx, query)
	case routeProduct:
		b.handleProductCallback(ctx, query)
	case routeOrder:
		b.handleOrderCallback(ctx, query)
	case routeAnalytics:
		b.handleAnalyticsCallback(ctx, query)
	case routeStock:
		b.handleStockCallback(ctx, query)
	case routeNoop:
		// Decorative button, nothing to do.
	default:
		b.logger.Warn("unknown callback", zap.String("data", query.Data))
		b.reply(chatID, "Unknown action")
	}
}

func (b *Bot) answerCallback(id, text string) {
	if b.api == nil {
		return
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(id, text)); err != nil {
		b.logger.Warn("answer callback failed", zap.Error(err))
	}
}

func (b *Bot) handleMenuCallback(query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	switch query.Data {
	case "menu_main":
		markup := mainMenuKeyboard()
		b.editMarkdown(chatID, messageID, "📋 *Main Menu*\n\nWhat would you like to do?", &markup)
	case "menu_expenses":
		markup := expensesMenuKeyboard()
		b.editMarkdown(chatID, messageID, "💰 *Expense Management*", &markup)
	case "menu_analytics":
		markup := analyticsMenuKeyboard()
		b.editMarkdown(chatID, messageID, "📊 *Analytics*\n\nPick a report:", &markup)
	case "menu_help":
		markup := backToMainKeyboard()
		b.editMarkdown(chatID, messageID, helpText, &markup)
	default:
		b.reply(chatID, "Unknown action")
	}
}

func (b *Bot) handleExpenseCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	userID := query.From.ID
	data := query.Data

	// Browser navigation works without conversation state.
	switch {
	case strings.HasPrefix(data, "exp_page_"):
		offset, err := strconv.Atoi(strings.TrimPrefix(data, "exp_page_"))
		if err != nil {
			b.reply(chatID, "Unknown action")
			return
		}
		b.showExpensePage(ctx, chatID, offset, messageID)
		return
	case data == "exp_close_browser":
		b.editMarkdown(chatID, messageID, "Expense browser closed.", nil)
		return
	case data == "exp_create":
		b.startAddExpense(userID, chatID)
		return
	}

	// Everything below operates on the interactive form.
	state, ok := b.state(userID)
	if !ok || state.Command != convAddExpense {
		b.reply(chatID, "This form has expired. Send /add_expense to start again.")
		return
	}

	switch data {
	case "exp_set_amount":
		state.Step = stepExpenseAmount
		state.Data["form_message_id"] = messageID
		b.reply(chatID, "💵 Send the amount:")
	case "exp_set_desc":
		state.Step = stepExpenseDescription
		state.Data["form_message_id"] = messageID
		b.reply(chatID, "📝 Send the description:")
	case "exp_set_date":
		state.Step = stepExpenseDate
		state.Data["form_message_id"] = messageID
		b.reply(chatID, "🗓 Send a date as YYYY-MM-DD, or today:")
	case "exp_set_cat":
		state.Step = stepExpenseCategory
		state.Data["form_message_id"] = messageID
		b.reply(chatID, "📂 Send the category:")

	case "exp_save":
		amount, hasAmount := state.Data["amount"].(decimal.Decimal)
		description, hasDesc := state.Data["description"].(string)
		if !hasAmount || !hasDesc || description == "" {
			b.answerCallback(query.ID, "Amount and description are required")
			b.reply(chatID, "❌ Amount and description are required before saving.")
			return
		}

		date, _ := state.Data["date"].(string)
		category, _ := state.Data["category"].(string)
		expense, err := b.store.CreateExpense(ctx, models.ExpenseInput{
			Title:       description,
			Amount:      amount,
			ExpenseDate: date,
			Category:    category,
		})
		if err != nil {
			b.logger.Error("create expense failed", zap.Error(err))
			b.reply(chatID, "⚠️ Could not save the expense. Please try again later.")
			return
		}

		b.clearState(userID)
		b.editMarkdown(chatID, messageID, fmt.Sprintf("✅ Expense saved!\n\n%s", formatExpense(expense)), nil)

	case "exp_cancel":
		b.clearState(userID)
		b.editMarkdown(chatID, messageID, "Expense discarded.", nil)

	default:
		b.reply(chatID, "Unknown action")
	}
}

func (b *Bot) handleProductCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	data := query.Data

	switch {
	case data == "product_add":
		b.startAddProduct(query.From.ID, chatID)

	case data == "product_refresh":
		b.sendProductList(ctx, chatID, "")

	case strings.HasPrefix(data, "product_confirm_delete_"):
		id := strings.TrimPrefix(data, "product_confirm_delete_")
		if err := validateID(id); err != nil {
			b.reply(chatID, "Unknown action")
			return
		}
		if err := b.store.DeleteProduct(ctx, id); err != nil {
			b.replyStoreError(chatID, "delete product", err)
			return
		}
		b.editMarkdown(chatID, messageID, "🗑 Product deleted.", nil)

	case data == "product_cancel_delete":
		b.editMarkdown(chatID, messageID, "Deletion cancelled.", nil)

	default:
		b.reply(chatID, "Unknown action")
	}
}

func (b *Bot) handleOrderCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	data := query.Data

	switch {
	case strings.HasPrefix(data, "order_view_"):
		id := strings.TrimPrefix(data, "order_view_")
		order, err := b.store.GetOrder(ctx, id)
		if err != nil {
			b.replyStoreError(chatID, "get order", err)
			return
		}
		b.replyMarkdownWithMarkup(chatID, formatOrderDetails(order), orderActionsKeyboard(order.ID))

	case strings.HasPrefix(data, "order_status_"):
		// Payload is <uuid>_<status>; the UUID never contains an
		// underscore, the status may.
		rest := strings.TrimPrefix(data, "order_status_")
		parts := strings.SplitN(rest, "_", 2)
		if len(parts) != 2 || validateID(parts[0]) != nil || !models.IsValidOrderStatus(parts[1]) {
			b.reply(chatID, "Unknown action")
			return
		}
		order, err := b.store.UpdateOrderStatus(ctx, parts[0], parts[1])
		if err != nil {
			b.replyStoreError(chatID, "update order status", err)
			return
		}
		b.answerCallback(query.ID, "Status updated")
		b.replyMarkdown(chatID, fmt.Sprintf("✅ Order *%s* is now %s.",
			escapeMarkdown(order.OrderNumber), formatOrderStatus(order.Status)))

	case strings.HasPrefix(data, "order_filter_"):
		status := strings.TrimPrefix(data, "order_filter_")
		if status == "all" {
			status = ""
		}
		if status != "" && !models.IsValidOrderStatus(status) {
			b.reply(chatID, "Unknown action")
			return
		}
		orders, err := b.store.ListOrders(ctx, defaultListLimit, status, "")
		if err != nil {
			b.replyStoreError(chatID, "list orders", err)
			return
		}

		var sb strings.Builder
		if len(orders) == 0 {
			sb.WriteString("No orders found.")
		} else {
			sb.WriteString(formatListHeader("📦 Orders", len(orders)))
			for i := range orders {
				sb.WriteString(formatOrderSummary(&orders[i]))
				sb.WriteString("\n")
			}
		}
		markup := orderFilterKeyboard()
		b.editMarkdown(chatID, messageID, sb.String(), &markup)

	default:
		b.reply(chatID, "Unknown action")
	}
}

func (b *Bot) handleStockCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID

	switch query.Data {
	case "stock_overview":
		b.sendStockOverview(ctx, chatID)
	case "stock_low":
		b.sendLowStockList(ctx, chatID)
	default:
		b.reply(chatID, "Unknown action")
	}
}

func (b *Bot) handleAnalyticsCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID

	switch query.Data {
	case "analytics_overall":
		b.sendOverallStats(ctx, chatID)
	case "analytics_orders":
		b.sendOrderStats(ctx, chatID)
	case "analytics_expenses":
		b.sendExpenseStats(ctx, chatID)
	case "analytics_products":
		b.sendProductStats(ctx, chatID)
	default:
		b.reply(chatID, "Unknown action")
	}
}
