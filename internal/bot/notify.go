package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"shopadmin/internal/models"
)

// SendOrderNotification fans a new-order alert out to every admin chat.
func (b *Bot) SendOrderNotification(order *models.Order) {
	text := formatOrderNotification(order)
	markup := orderNotificationKeyboard(order.ID)

	for adminID := range b.admins {
		msg := tgbotapi.NewMessage(adminID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.ReplyMarkup = markup
		b.send(msg)
	}
	b.logger.Info("order notification sent",
		zap.String("order_id", order.ID),
		zap.Int("admins", len(b.admins)))
}

func formatOrderNotification(o *models.Order) string {
	var sb strings.Builder
	sb.WriteString("🎉 *New Order Received!*\n\n")
	if o.OrderNumber != "" {
		sb.WriteString(fmt.Sprintf("🧾 Order: *%s*\n", escapeMarkdown(o.OrderNumber)))
	}
	if o.CustomerEmail != "" {
		sb.WriteString(fmt.Sprintf("👤 Customer: %s\n", escapeMarkdown(o.CustomerEmail)))
	}
	if o.CustomerPhone != "" {
		sb.WriteString(fmt.Sprintf("📞 Phone: %s\n", escapeMarkdown(o.CustomerPhone)))
	}
	if len(o.Items) > 0 {
		sb.WriteString(fmt.Sprintf("🛍️ Items: %d\n", len(o.Items)))
		for _, item := range o.Items {
			sb.WriteString(fmt.Sprintf("  • %s × %d\n", escapeMarkdown(truncateText(item.Name, 40)), item.Quantity))
		}
	}
	sb.WriteString(fmt.Sprintf("\n💵 Total: %s\n", formatCurrency(o.TotalAmount, o.Currency)))
	if o.Status != "" {
		sb.WriteString(fmt.Sprintf("📊 Status: %s\n", formatOrderStatus(o.Status)))
	}
	if o.ID != "" {
		sb.WriteString(fmt.Sprintf("\n🆔 `%s`", o.ID))
	}
	return sb.String()
}
