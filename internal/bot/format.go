package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"shopadmin/internal/models"
)

var statusTitle = cases.Title(language.English)

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

func formatCurrency(amount decimal.Decimal, currency string) string {
	if currency == "" {
		currency = "INR"
	}
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency
	}
	return symbol + amount.StringFixed(2)
}

// formatDateTime renders an ISO timestamp from the store in a readable form.
// Unparseable input is passed through as-is.
func formatDateTime(iso string) string {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format("02 Jan 2006, 03:04 PM")
		}
	}
	return iso
}

func formatDate(iso string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format("02 Jan 2006")
		}
	}
	return iso
}

func truncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen-3]) + "..."
}

// escapeMarkdown escapes the characters Telegram treats specially in
// legacy Markdown mode.
func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"`", "\\`",
	)
	return replacer.Replace(text)
}

var orderStatusEmojis = map[string]string{
	"payment_pending":   "⏳",
	"payment_confirmed": "✅",
	"processing":        "🔄",
	"shipped":           "📦",
	"delivered":         "✅",
	"cancelled":         "❌",
	"refunded":          "💰",
}

func formatOrderStatus(status string) string {
	title := statusTitle.String(strings.ReplaceAll(status, "_", " "))
	if emoji, ok := orderStatusEmojis[status]; ok {
		return emoji + " " + title
	}
	return title
}

func formatListHeader(title string, count int) string {
	return fmt.Sprintf("📋 *%s* (%d)\n", title, count)
}

func formatOrderSummary(o *models.Order) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📦 *Order #%s*\n\n", escapeMarkdown(o.OrderNumber))
	fmt.Fprintf(&sb, "*Status:* %s\n", formatOrderStatus(o.Status))
	fmt.Fprintf(&sb, "*Customer:* %s\n", escapeMarkdown(o.CustomerEmail))
	fmt.Fprintf(&sb, "*Total:* %s\n", formatCurrency(o.TotalAmount, o.Currency))
	fmt.Fprintf(&sb, "*Items:* %d\n", len(o.Items))
	fmt.Fprintf(&sb, "*Date:* %s\n", formatDateTime(o.CreatedAt))
	if o.TrackingNumber != "" {
		fmt.Fprintf(&sb, "*Tracking:* `%s`\n", o.TrackingNumber)
	}
	return sb.String()
}

func formatOrderDetails(o *models.Order) string {
	var sb strings.Builder
	sb.WriteString(formatOrderSummary(o))

	sb.WriteString("\n*Items:*\n")
	for _, item := range o.Items {
		fmt.Fprintf(&sb, "• %s × %d - %s\n",
			escapeMarkdown(item.Name), item.Quantity, formatCurrency(item.Price, o.Currency))
	}

	fmt.Fprintf(&sb, "\n*Amounts:*\n")
	fmt.Fprintf(&sb, "Subtotal: %s\n", formatCurrency(o.Subtotal, o.Currency))
	fmt.Fprintf(&sb, "Delivery: %s\n", formatCurrency(o.DeliveryCharge, o.Currency))
	fmt.Fprintf(&sb, "Tax: %s\n", formatCurrency(o.TaxAmount, o.Currency))
	fmt.Fprintf(&sb, "*Total: %s*\n", formatCurrency(o.TotalAmount, o.Currency))

	addr := o.ShippingAddr
	fmt.Fprintf(&sb, "\n*Shipping Address:*\n%s\n%s\n",
		escapeMarkdown(addr.FullName), escapeMarkdown(addr.AddressLine1))
	if addr.AddressLine2 != "" {
		fmt.Fprintf(&sb, "%s\n", escapeMarkdown(addr.AddressLine2))
	}
	fmt.Fprintf(&sb, "%s, %s %s\n",
		escapeMarkdown(addr.City), escapeMarkdown(addr.State), escapeMarkdown(addr.PostalCode))

	if o.Notes != "" {
		fmt.Fprintf(&sb, "\n*Notes:* %s\n", escapeMarkdown(o.Notes))
	}
	return sb.String()
}

func formatProductSummary(p *models.Product) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🛍️ *%s*\n", escapeMarkdown(p.Name))
	if p.Description != "" {
		fmt.Fprintf(&sb, "_%s_\n", escapeMarkdown(truncateText(p.Description, 100)))
	}
	fmt.Fprintf(&sb, "Price: %s\n", formatCurrency(p.Price, "INR"))
	fmt.Fprintf(&sb, "Stock: %d units\n", p.StockQuantity)
	fmt.Fprintf(&sb, "ID: `%s`\n", p.ID)
	return sb.String()
}

func formatExpense(e *models.Expense) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "💰 *%s*\n", escapeMarkdown(e.Title))
	if e.Description != "" {
		fmt.Fprintf(&sb, "_%s_\n", escapeMarkdown(e.Description))
	}
	fmt.Fprintf(&sb, "Amount: %s\n", formatCurrency(e.Amount, "INR"))
	fmt.Fprintf(&sb, "Date: %s\n", formatDate(e.ExpenseDate))
	if e.Category != "" {
		fmt.Fprintf(&sb, "Category: %s\n", escapeMarkdown(e.Category))
	}
	fmt.Fprintf(&sb, "ID: `%s`\n", e.ID)
	return sb.String()
}

// stockEmoji maps a quantity to the familiar traffic-light marker.
func stockEmoji(quantity int) string {
	switch {
	case quantity > 10:
		return "✅"
	case quantity > 0:
		return "⚠️"
	default:
		return "❌"
	}
}
