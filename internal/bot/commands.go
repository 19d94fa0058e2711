package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"shopadmin/internal/models"
	"shopadmin/internal/storage"
)

const (
	defaultListLimit  = 10
	lowStockThreshold = 10
)

const helpText = `🛍️ *Shop Admin Bot*

*Products*
/products - List products
/product <id> - Product details
/add_product - Add a new product
/update_product <id> <field> <value> - Update name, description, price or stock
/delete_product <id> - Delete a product
/update_stock <id> <qty> - Set stock quantity

*Orders*
/orders [status] - List recent orders
/order <id> - Order details
/order_status <id> <status> - Change order status

*Expenses*
/expenses - Browse expenses
/expense <id> - Expense details
/add_expense - Record an expense
/delete_expense <id> - Delete an expense

*Stock*
/stock - Stock overview
/low_stock - Products running low

*Analytics*
/stats - Overall statistics
/stats_orders - Order statistics
/stats_expenses - Expense statistics
/stats_products - Product statistics

/menu - Interactive menu
/cancel - Cancel current operation`

func (b *Bot) handleStart(message *tgbotapi.Message) {
	name := message.From.FirstName
	if name == "" {
		name = "there"
	}
	text := fmt.Sprintf("👋 Hello %s!\n\nWelcome to the shop admin bot. Manage products, orders, expenses and stock right from this chat.\n\nUse /help to see all commands or pick an option below.", escapeMarkdown(name))
	b.replyMarkdownWithMarkup(message.Chat.ID, text, mainMenuKeyboard())
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	b.replyMarkdown(message.Chat.ID, helpText)
}

func (b *Bot) handleMenu(message *tgbotapi.Message) {
	b.replyMarkdownWithMarkup(message.Chat.ID, "📋 *Main Menu*\n\nWhat would you like to do?", mainMenuKeyboard())
}

// replyStoreError maps store failures to user-facing messages and logs the
// underlying cause.
func (b *Bot) replyStoreError(chatID int64, action string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		b.reply(chatID, "❌ Not found. Check the ID and try again.")
		return
	}
	b.logger.Error("store operation failed", zap.String("action", action), zap.Error(err))
	b.reply(chatID, "⚠️ Something went wrong. Please try again later.")
}

// --- Products ---

func (b *Bot) handleListProducts(ctx context.Context, message *tgbotapi.Message) {
	b.sendProductList(ctx, message.Chat.ID, strings.TrimSpace(message.CommandArguments()))
}

func (b *Bot) sendProductList(ctx context.Context, chatID int64, query string) {
	var (
		products []models.Product
		err      error
	)
	if query != "" {
		products, err = b.store.SearchProducts(ctx, query, defaultListLimit)
	} else {
		products, err = b.store.ListProducts(ctx, defaultListLimit, 0)
	}
	if err != nil {
		b.replyStoreError(chatID, "list products", err)
		return
	}
	if len(products) == 0 {
		b.reply(chatID, "No products found.")
		return
	}

	var sb strings.Builder
	sb.WriteString(formatListHeader("🛍️ Products", len(products)))
	for i := range products {
		sb.WriteString(formatProductSummary(&products[i]))
		sb.WriteString("\n")
	}
	b.replyMarkdownWithMarkup(chatID, sb.String(), productListKeyboard())
}

func (b *Bot) handleGetProduct(ctx context.Context, message *tgbotapi.Message) {
	args, err := parseArgs(message.CommandArguments(), 1)
	if err != nil {
		b.reply(message.Chat.ID, "Usage: /product <id>")
		return
	}
	if err := validateID(args[0]); err != nil {
		b.reply(message.Chat.ID, "❌ Invalid product ID.")
		return
	}

	product, err := b.store.GetProduct(ctx, args[0])
	if err != nil {
		b.replyStoreError(message.Chat.ID, "get product", err)
		return
	}

	text := fmt.Sprintf("🛍️ *%s*\n\n💵 Price: %s\n%s Stock: %d\n\n%s\n\n🆔 `%s`",
		escapeMarkdown(product.Name),
		formatCurrency(product.Price, "INR"),
		stockEmoji(product.StockQuantity),
		product.StockQuantity,
		escapeMarkdown(truncateText(product.Description, 300)),
		product.ID,
	)
	b.replyMarkdown(message.Chat.ID, text)
}

func (b *Bot) handleUpdateProduct(ctx context.Context, message *tgbotapi.Message) {
	const usage = "Usage: /update_product <id> <name|description|price|stock> <value>"

	args := strings.Fields(message.CommandArguments())
	if len(args) < 3 {
		b.reply(message.Chat.ID, usage)
		return
	}
	if err := validateID(args[0]); err != nil {
		b.reply(message.Chat.ID, "❌ Invalid product ID.")
		return
	}

	field := strings.ToLower(args[1])
	value := strings.Join(args[2:], " ")

	var upd models.ProductUpdate
	switch field {
	case "name":
		upd.Name = &value
	case "description":
		upd.Description = &value
	case "price":
		price, err := parseAmount(value)
		if err != nil {
			b.reply(message.Chat.ID, "❌ That doesn't look like a valid price.")
			return
		}
		upd.Price = &price
	case "stock":
		quantity, err := parseQuantity(value)
		if err != nil {
			b.reply(message.Chat.ID, "❌ Quantity must be a non-negative whole number.")
			return
		}
		upd.StockQuantity = &quantity
	default:
		b.reply(message.Chat.ID, usage)
		return
	}

	product, err := b.store.UpdateProduct(ctx, args[0], upd)
	if err != nil {
		b.replyStoreError(message.Chat.ID, "update product", err)
		return
	}
	b.replyMarkdown(message.Chat.ID, fmt.Sprintf("✅ Product updated.\n\n🛍️ *%s*\n💵 %s\n%s Stock: %d",
		escapeMarkdown(product.Name),
		formatCurrency(product.Price, "INR"),
		stockEmoji(product.StockQuantity),
		product.StockQuantity))
}

func (b *Bot) handleDeleteProduct(ctx context.Context, message *tgbotapi.Message) {
	args, err := parseArgs(message.CommandArguments(), 1)
	if err != nil {
		b.reply(message.Chat.ID, "Usage: /delete_product <id>")
		return
	}
	if err := validateID(args[0]); err != nil {
		b.reply(message.Chat.ID, "❌ Invalid product ID.")
		return
	}

	product, err := b.store.GetProduct(ctx, args[0])
	if err != nil {
		b.replyStoreError(message.Chat.ID, "delete product", err)
		return
	}

	text := fmt.Sprintf("⚠️ Delete *%s*?\n\nThis cannot be undone.", escapeMarkdown(product.Name))
	b.replyMarkdownWithMarkup(message.Chat.ID, text, deleteConfirmKeyboard(product.ID))
}

func (b *Bot) handleUpdateStock(ctx context.Context, message *tgbotapi.Message) {
	args, err := parseArgs(message.CommandArguments(), 2)
	if err != nil {
		b.reply(message.Chat.ID, "Usage: /update_stock <id> <quantity>")
		return
	}
	if err := validateID(args[0]); err != nil {
		b.reply(message.Chat.ID, "❌ Invalid product ID.")
		return
	}
	quantity, err := parseQuantity(args[1])
	if err != nil {
		b.reply(message.Chat.ID, "❌ Quantity must be a non-negative whole number.")
		return
	}

	product, err := b.store.UpdateProductStock(ctx, args[0], quantity)
	if err != nil {
		b.replyStoreError(message.Chat.ID, "update stock", err)
		return
	}
	b.replyMarkdown(message.Chat.ID, fmt.Sprintf("✅ Stock updated.\n\n*%s* now has %s %d in stock.",
		escapeMarkdown(product.Name), stockEmoji(product.StockQuantity), product.StockQuantity))
}

// --- Orders ---

func (b *Bot) handleListOrders(ctx context.Context, message *tgbotapi.Message) {
	status := strings.TrimSpace(message.CommandArguments())
	if status != "" && !models.IsValidOrderStatus(status) {
		b.reply(message.Chat.ID, "❌ Unknown status. Valid: "+strings.Join(models.ValidOrderStatuses, ", "))
		return
	}

	orders, err := b.store.ListOrders(ctx, defaultListLimit, status, "")
	if err != nil {
		b.replyStoreError(message.Chat.ID, "list orders", err)
		return
	}
	if len(orders) == 0 {
		b.replyMarkdownWithMarkup(message.Chat.ID, "No orders found. Filter by status:", orderFilterKeyboard())
		return
	}

	var sb strings.Builder
	sb.WriteString(formatListHeader("📦 Orders", len(orders)))
	for i := range orders {
		sb.WriteString(formatOrderSummary(&orders[i]))
		sb.WriteString("\n")
	}
	b.replyMarkdownWithMarkup(message.Chat.ID, sb.String(), orderFilterKeyboard())
}

func (b *Bot) handleGetOrder(ctx context.Context, message *tgbotapi.Message) {
	args, err := parseArgs(message.CommandArguments(), 1)
	if err != nil {
		b.reply(message.Chat.ID, "Usage: /order <id>")
		return
	}
	if err := validateID(args[0]); err != nil {
		b.reply(message.Chat.ID, "❌ Invalid order ID.")
		return
	}

	order, err := b.store.GetOrder(ctx, args[0])
	if err != nil {
		b.replyStoreError(message.Chat.ID, "get order", err)
		return
	}
	b.replyMarkdownWithMarkup(message.Chat.ID, formatOrderDetails(order), orderActionsKeyboard(order.ID))
}

func (b *Bot) handleOrderStatus(ctx context.Context, message *tgbotapi.Message) {
	args, err := parseArgs(message.CommandArguments(), 2)
	if err != nil {
		b.reply(message.Chat.ID, "Usage: /order_status <id> <status>\n\nValid statuses: "+strings.Join(models.ValidOrderStatuses, ", "))
		return
	}
	if err := validateID(args[0]); err != nil {
		b.reply(message.Chat.ID, "❌ Invalid order ID.")
		return
	}
	if !models.IsValidOrderStatus(args[1]) {
		b.reply(message.Chat.ID, "❌ Unknown status. Valid: "+strings.Join(models.ValidOrderStatuses, ", "))
		return
	}

	order, err := b.store.UpdateOrderStatus(ctx, args[0], args[1])
	if err != nil {
		b.replyStoreError(message.Chat.ID, "update order status", err)
		return
	}
	b.replyMarkdown(message.Chat.ID, fmt.Sprintf("✅ Order *%s* is now %s.",
		escapeMarkdown(order.OrderNumber), formatOrderStatus(order.Status)))
}

func (b *Bot) handleAddOrder(message *tgbotapi.Message) {
	b.replyMarkdown(message.Chat.ID, "📦 Orders are created through the storefront.\n\nNew orders show up here automatically, and you can manage them with /orders and /order_status.")
}

// --- Expenses ---

// showExpensePage renders one expense per page with prev/next navigation.
// When editMessageID is non-zero the existing browser message is edited in
// place instead of sending a new one.
func (b *Bot) showExpensePage(ctx context.Context, chatID int64, offset int, editMessageID int) {
	if offset < 0 {
		offset = 0
	}

	expenses, total, err := b.store.ListExpenses(ctx, 1, offset)
	if err != nil {
		b.replyStoreError(chatID, "list expenses", err)
		return
	}
	if total == 0 {
		b.replyMarkdownWithMarkup(chatID, "No expenses recorded yet.", expensesMenuKeyboard())
		return
	}
	if len(expenses) == 0 {
		// Offset past the end, e.g. the last expense was just deleted.
		b.showExpensePage(ctx, chatID, 0, editMessageID)
		return
	}

	text := fmt.Sprintf("💰 *Expense %d of %d*\n\n%s", offset+1, total, formatExpense(&expenses[0]))
	markup := expensePageKeyboard(offset, total)
	if editMessageID != 0 {
		b.editMarkdown(chatID, editMessageID, text, &markup)
	} else {
		b.replyMarkdownWithMarkup(chatID, text, markup)
	}
}

func (b *Bot) handleGetExpense(ctx context.Context, message *tgbotapi.Message) {
	args, err := parseArgs(message.CommandArguments(), 1)
	if err != nil {
		b.reply(message.Chat.ID, "Usage: /expense <id>")
		return
	}
	if err := validateID(args[0]); err != nil {
		b.reply(message.Chat.ID, "❌ Invalid expense ID.")
		return
	}

	expense, err := b.store.GetExpense(ctx, args[0])
	if err != nil {
		b.replyStoreError(message.Chat.ID, "get expense", err)
		return
	}
	b.replyMarkdown(message.Chat.ID, formatExpense(expense))
}

func (b *Bot) handleDeleteExpense(ctx context.Context, message *tgbotapi.Message) {
	args, err := parseArgs(message.CommandArguments(), 1)
	if err != nil {
		b.reply(message.Chat.ID, "Usage: /delete_expense <id>")
		return
	}
	if err := validateID(args[0]); err != nil {
		b.reply(message.Chat.ID, "❌ Invalid expense ID.")
		return
	}

	expense, err := b.store.DeleteExpense(ctx, args[0])
	if err != nil {
		b.replyStoreError(message.Chat.ID, "delete expense", err)
		return
	}
	b.replyMarkdown(message.Chat.ID, fmt.Sprintf("🗑 Deleted expense *%s* (%s).",
		escapeMarkdown(expense.Title), formatCurrency(expense.Amount, "INR")))
}

// --- Stock ---

func (b *Bot) handleStock(ctx context.Context, message *tgbotapi.Message) {
	b.sendStockOverview(ctx, message.Chat.ID)
}

func (b *Bot) sendStockOverview(ctx context.Context, chatID int64) {
	products, err := b.store.ListProducts(ctx, 50, 0)
	if err != nil {
		b.replyStoreError(chatID, "stock overview", err)
		return
	}
	if len(products) == 0 {
		b.reply(chatID, "No products in the catalog yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📦 *Stock Overview*\n\n")
	for i := range products {
		p := &products[i]
		sb.WriteString(fmt.Sprintf("%s *%s* — %d\n", stockEmoji(p.StockQuantity), escapeMarkdown(p.Name), p.StockQuantity))
	}
	b.replyMarkdownWithMarkup(chatID, sb.String(), stockMenuKeyboard())
}

func (b *Bot) handleLowStock(ctx context.Context, message *tgbotapi.Message) {
	b.sendLowStockList(ctx, message.Chat.ID)
}

func (b *Bot) sendLowStockList(ctx context.Context, chatID int64) {
	products, err := b.store.LowStockProducts(ctx, lowStockThreshold)
	if err != nil {
		b.replyStoreError(chatID, "low stock", err)
		return
	}
	if len(products) == 0 {
		b.reply(chatID, "✅ All products are above the low-stock threshold.")
		return
	}

	var sb strings.Builder
	sb.WriteString(formatListHeader("⚠️ Low Stock", len(products)))
	for i := range products {
		p := &products[i]
		sb.WriteString(fmt.Sprintf("%s *%s* — %d left\n🆔 `%s`\n\n", stockEmoji(p.StockQuantity), escapeMarkdown(p.Name), p.StockQuantity, p.ID))
	}
	b.replyMarkdown(chatID, sb.String())
}

// --- Analytics ---

func (b *Bot) sendOverallStats(ctx context.Context, chatID int64) {
	orderStats, err := b.store.OrderStats(ctx)
	if err != nil {
		b.replyStoreError(chatID, "overall stats", err)
		return
	}
	expenseStats, err := b.store.ExpenseStats(ctx)
	if err != nil {
		b.replyStoreError(chatID, "overall stats", err)
		return
	}
	productStats, err := b.store.ProductStats(ctx)
	if err != nil {
		b.replyStoreError(chatID, "overall stats", err)
		return
	}

	net := orderStats.TotalRevenue.Sub(expenseStats.TotalAmount)
	text := fmt.Sprintf(`📊 *Overall Statistics*

📦 Orders (30d): %d
💵 Revenue (30d): %s

💰 Expenses: %d
💸 Total spent: %s

🛍️ Products: %d
⚠️ Low stock: %d

📈 Net (revenue − expenses): %s`,
		orderStats.TotalOrders,
		formatCurrency(orderStats.TotalRevenue, "INR"),
		expenseStats.TotalExpenses,
		formatCurrency(expenseStats.TotalAmount, "INR"),
		productStats.TotalProducts,
		productStats.LowStockCount,
		formatCurrency(net, "INR"),
	)
	b.replyMarkdownWithMarkup(chatID, text, analyticsMenuKeyboard())
}

func (b *Bot) sendOrderStats(ctx context.Context, chatID int64) {
	stats, err := b.store.OrderStats(ctx)
	if err != nil {
		b.replyStoreError(chatID, "order stats", err)
		return
	}

	text := fmt.Sprintf(`📦 *Order Statistics* (last 30 days)

Total orders: %d
⏳ Pending: %d
✅ Confirmed: %d
🔄 Processing: %d
📦 Shipped: %d
🎉 Delivered: %d
❌ Cancelled: %d

💵 Revenue: %s
📊 Average order: %s`,
		stats.TotalOrders,
		stats.PendingOrders,
		stats.ConfirmedOrders,
		stats.ProcessingOrders,
		stats.ShippedOrders,
		stats.DeliveredOrders,
		stats.CancelledOrders,
		formatCurrency(stats.TotalRevenue, "INR"),
		formatCurrency(stats.AverageOrderValue, "INR"),
	)
	b.replyMarkdown(chatID, text)
}

func (b *Bot) sendExpenseStats(ctx context.Context, chatID int64) {
	stats, err := b.store.ExpenseStats(ctx)
	if err != nil {
		b.replyStoreError(chatID, "expense stats", err)
		return
	}

	text := fmt.Sprintf(`💰 *Expense Statistics*

Total expenses: %d
💸 Total amount: %s
📊 Average: %s`,
		stats.TotalExpenses,
		formatCurrency(stats.TotalAmount, "INR"),
		formatCurrency(stats.AverageExpense, "INR"),
	)
	b.replyMarkdown(chatID, text)
}

func (b *Bot) sendProductStats(ctx context.Context, chatID int64) {
	stats, err := b.store.ProductStats(ctx)
	if err != nil {
		b.replyStoreError(chatID, "product stats", err)
		return
	}

	text := fmt.Sprintf(`🛍️ *Product Statistics*

Total products: %d
📦 Items in stock: %d
💵 Stock value: %s
⚠️ Low stock: %d
❌ Out of stock: %d`,
		stats.TotalProducts,
		stats.TotalItemsInStock,
		formatCurrency(stats.TotalStockValue, "INR"),
		stats.LowStockCount,
		stats.OutOfStockCount,
	)
	b.replyMarkdown(chatID, text)
}
