package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopadmin/internal/models"
)

// handleAddProductStart begins the linear add-product wizard.
func (b *Bot) handleAddProductStart(message *tgbotapi.Message) {
	b.startAddProduct(message.From.ID, message.Chat.ID)
}

func (b *Bot) startAddProduct(userID, chatID int64) {
	b.setState(userID, &ConversationState{
		Command: convAddProduct,
		Step:    stepProductName,
		Data:    map[string]interface{}{},
	})
	b.replyMarkdown(chatID, "🛍️ *Add Product*\n\nWhat's the product name?\n\nSend /cancel to abort.")
}

// handleAddExpenseStart opens the interactive expense form.
func (b *Bot) handleAddExpenseStart(message *tgbotapi.Message) {
	b.startAddExpense(message.From.ID, message.Chat.ID)
}

func (b *Bot) startAddExpense(userID, chatID int64) {
	data := map[string]interface{}{}
	b.setState(userID, &ConversationState{
		Command: convAddExpense,
		Step:    stepExpenseMenu,
		Data:    data,
	})
	b.sendExpenseForm(chatID, data, 0)
}

// handleConversation routes a non-command message to the wizard the user
// is currently in.
func (b *Bot) handleConversation(ctx context.Context, message *tgbotapi.Message, state *ConversationState) {
	switch state.Command {
	case convAddProduct:
		b.handleAddProductStep(ctx, message, state)
	case convAddExpense:
		b.handleAddExpenseStep(message, state)
	default:
		b.logger.Warn("unknown conversation command", zap.String("command", state.Command))
		state.Step = conversationDone
	}
}

func (b *Bot) handleAddProductStep(ctx context.Context, message *tgbotapi.Message, state *ConversationState) {
	text := strings.TrimSpace(message.Text)

	switch state.Step {
	case stepProductName:
		if text == "" {
			b.reply(message.Chat.ID, "Product name can't be empty. Try again:")
			return
		}
		state.Data["name"] = text
		state.Step = stepProductPrice
		b.replyMarkdown(message.Chat.ID, "💵 What's the price? (e.g. `499` or `₹1,299.50`)")

	case stepProductPrice:
		amount, err := parseAmount(text)
		if err != nil {
			b.reply(message.Chat.ID, "❌ That doesn't look like a valid price. Send a positive number:")
			return
		}
		state.Data["price"] = amount
		state.Step = stepProductDescription
		b.replyMarkdown(message.Chat.ID, "📝 Send a description, or /skip to leave it empty.")

	case stepProductDescription:
		if message.IsCommand() && message.Command() == "skip" {
			state.Data["description"] = ""
		} else {
			state.Data["description"] = text
		}
		state.Step = stepProductStock
		b.replyMarkdown(message.Chat.ID, "📦 How many units are in stock?")

	case stepProductStock:
		quantity, err := parseQuantity(text)
		if err != nil {
			b.reply(message.Chat.ID, "❌ Quantity must be a non-negative whole number. Try again:")
			return
		}

		in := models.ProductInput{
			Name:          state.Data["name"].(string),
			Description:   state.Data["description"].(string),
			Price:         state.Data["price"].(decimal.Decimal),
			StockQuantity: quantity,
		}
		product, err := b.store.CreateProduct(ctx, in)
		if err != nil {
			b.logger.Error("create product failed", zap.Error(err))
			b.reply(message.Chat.ID, "⚠️ Could not save the product. Please try again later.")
			state.Step = conversationDone
			return
		}

		b.replyMarkdown(message.Chat.ID, fmt.Sprintf("✅ Product created!\n\n🛍️ *%s*\n💵 %s\n%s Stock: %d\n🆔 `%s`",
			escapeMarkdown(product.Name),
			formatCurrency(product.Price, "INR"),
			stockEmoji(product.StockQuantity),
			product.StockQuantity,
			product.ID,
		))
		state.Step = conversationDone

	default:
		state.Step = conversationDone
	}
}

// handleAddExpenseStep captures text input for whichever form field the
// user tapped. Saving happens through the exp_save callback.
func (b *Bot) handleAddExpenseStep(message *tgbotapi.Message, state *ConversationState) {
	text := strings.TrimSpace(message.Text)

	switch state.Step {
	case stepExpenseMenu:
		b.reply(message.Chat.ID, "Use the buttons on the form above, or /cancel to abort.")
		return

	case stepExpenseAmount:
		amount, err := parseAmount(text)
		if err != nil {
			b.reply(message.Chat.ID, "❌ That doesn't look like a valid amount. Send a positive number:")
			return
		}
		state.Data["amount"] = amount

	case stepExpenseDescription:
		if len(text) < 3 {
			b.reply(message.Chat.ID, "Description must be at least 3 characters. Try again:")
			return
		}
		state.Data["description"] = text

	case stepExpenseDate:
		date, err := parseExpenseDate(text)
		if err != nil {
			b.reply(message.Chat.ID, "❌ Send a date as YYYY-MM-DD, or today:")
			return
		}
		state.Data["date"] = date

	case stepExpenseCategory:
		state.Data["category"] = text

	default:
		state.Step = conversationDone
		return
	}

	state.Step = stepExpenseMenu
	formID, _ := state.Data["form_message_id"].(int)
	b.sendExpenseForm(message.Chat.ID, state.Data, formID)
}

// sendExpenseForm renders the draft summary with the per-field keyboard.
// A non-zero editMessageID updates the existing form message in place.
func (b *Bot) sendExpenseForm(chatID int64, data map[string]interface{}, editMessageID int) {
	text := expenseDraftSummary(data)
	markup := expenseFormKeyboard(data)
	if editMessageID != 0 {
		b.editMarkdown(chatID, editMessageID, text, &markup)
	} else {
		b.replyMarkdownWithMarkup(chatID, text, markup)
	}
}

func expenseDraftSummary(data map[string]interface{}) string {
	amount := "—"
	if a, ok := data["amount"].(decimal.Decimal); ok {
		amount = formatCurrency(a, "INR")
	}
	description := "—"
	if d, ok := data["description"].(string); ok && d != "" {
		description = escapeMarkdown(d)
	}
	date := "today"
	if dt, ok := data["date"].(string); ok && dt != "" {
		date = dt
	}
	category := "—"
	if c, ok := data["category"].(string); ok && c != "" {
		category = escapeMarkdown(c)
	}

	return fmt.Sprintf(`💰 *New Expense*

💵 Amount: %s
📝 Description: %s
🗓 Date: %s
📂 Category: %s

Amount and description are required. Tap a field to fill it in.`,
		amount, description, date, category)
}
