package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Expense Management", "menu_expenses"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛍️ Products", "product_refresh"),
			tgbotapi.NewInlineKeyboardButtonData("📦 Stock", "stock_overview"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Analytics", "menu_analytics"),
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", "menu_help"),
		),
	)
}

func expensesMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Browse Expenses", "exp_page_0"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Add Expense", "exp_create"),
			tgbotapi.NewInlineKeyboardButtonData("📊 Statistics", "analytics_expenses"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Back to Main Menu", "menu_main"),
		),
	)
}

func analyticsMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📈 Overall", "analytics_overall"),
			tgbotapi.NewInlineKeyboardButtonData("📦 Orders", "analytics_orders"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Expenses", "analytics_expenses"),
			tgbotapi.NewInlineKeyboardButtonData("🛍️ Products", "analytics_products"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Back to Main Menu", "menu_main"),
		),
	)
}

func backToMainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Back to Main Menu", "menu_main"),
		),
	)
}

// expensePageKeyboard builds prev/next navigation for the one-at-a-time
// expense browser.
func expensePageKeyboard(offset int, total int64) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var nav []tgbotapi.InlineKeyboardButton
	if offset > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️ Prev", fmt.Sprintf("exp_page_%d", offset-1)))
	}
	if int64(offset+1) < total {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Next ➡️", fmt.Sprintf("exp_page_%d", offset+1)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Close", "exp_close_browser"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// expenseFormKeyboard renders the interactive draft form with per-field
// completion markers.
func expenseFormKeyboard(draft map[string]interface{}) tgbotapi.InlineKeyboardMarkup {
	amountStatus := "❌"
	if _, ok := draft["amount"]; ok {
		amountStatus = "✅"
	}
	descStatus := "❌"
	if _, ok := draft["description"]; ok {
		descStatus = "✅"
	}
	dateLabel := "🗓 Today"
	if date, ok := draft["date"].(string); ok && date != "" {
		dateLabel = "🗓 " + date
	}
	catLabel := "📂 None"
	if cat, ok := draft["category"].(string); ok && cat != "" {
		catLabel = "📂 " + cat
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(amountStatus+" Set Amount", "exp_set_amount"),
			tgbotapi.NewInlineKeyboardButtonData(descStatus+" Set Desc", "exp_set_desc"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(dateLabel, "exp_set_date"),
			tgbotapi.NewInlineKeyboardButtonData(catLabel, "exp_set_cat"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💾 Save Expense", "exp_save"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", "exp_cancel"),
		),
	)
}

func orderActionsKeyboard(orderID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Confirm Payment", fmt.Sprintf("order_status_%s_payment_confirmed", orderID)),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Processing", fmt.Sprintf("order_status_%s_processing", orderID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Shipped", fmt.Sprintf("order_status_%s_shipped", orderID)),
			tgbotapi.NewInlineKeyboardButtonData("✅ Delivered", fmt.Sprintf("order_status_%s_delivered", orderID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", fmt.Sprintf("order_status_%s_cancelled", orderID)),
		),
	)
}

func orderFilterKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏳ Pending", "order_filter_payment_pending"),
			tgbotapi.NewInlineKeyboardButtonData("✅ Confirmed", "order_filter_payment_confirmed"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Shipped", "order_filter_shipped"),
			tgbotapi.NewInlineKeyboardButtonData("🔄 All", "order_filter_all"),
		),
	)
}

func stockMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚠️ Low Stock", "stock_low"),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", "stock_overview"),
		),
	)
}

func productListKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Add Product", "product_add"),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", "product_refresh"),
		),
	)
}

func deleteConfirmKeyboard(productID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, Delete", "product_confirm_delete_"+productID),
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", "product_cancel_delete"),
		),
	)
}

// orderNotificationKeyboard is attached to the fan-out message sent to
// admins when a new order arrives.
func orderNotificationKeyboard(orderID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("View Details", "order_view_"+orderID),
			tgbotapi.NewInlineKeyboardButtonData("Confirm Payment", fmt.Sprintf("order_status_%s_payment_confirmed", orderID)),
		),
	)
}
