package bot

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	testCases := []struct {
		name     string
		amount   decimal.Decimal
		currency string
		expected string
	}{
		{"default to INR", decimal.NewFromInt(500), "", "₹500.00"},
		{"INR", decimal.RequireFromString("1299.5"), "INR", "₹1299.50"},
		{"USD", decimal.NewFromInt(20), "USD", "$20.00"},
		{"unknown currency falls back to code", decimal.NewFromInt(10), "AUD", "AUD10.00"},
		{"zero", decimal.Zero, "INR", "₹0.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, formatCurrency(tc.amount, tc.currency))
		})
	}
}

func TestFormatOrderStatus(t *testing.T) {
	assert.Equal(t, "⏳ Payment Pending", formatOrderStatus("payment_pending"))
	assert.Equal(t, "📦 Shipped", formatOrderStatus("shipped"))
	assert.Equal(t, "Weird Status", formatOrderStatus("weird_status"))
}

func TestEscapeMarkdown(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"snake_case_name", "snake\\_case\\_name"},
		{"5 * 3", "5 \\* 3"},
		{"[link]", "\\[link]"},
		{"`code`", "\\`code\\`"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, escapeMarkdown(tc.input))
	}
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", truncateText("short", 10))
	assert.Equal(t, "exactly10!", truncateText("exactly10!", 10))
	assert.Equal(t, "long te...", truncateText("long text that overflows", 10))
	assert.Equal(t, "रसभरी क...", truncateText("रसभरी का जैम और शहद", 10))
	assert.Equal(t, "रसभरी", truncateText("रसभरी", 10))
}

func TestStockEmoji(t *testing.T) {
	assert.Equal(t, "✅", stockEmoji(50))
	assert.Equal(t, "✅", stockEmoji(11))
	assert.Equal(t, "⚠️", stockEmoji(10))
	assert.Equal(t, "⚠️", stockEmoji(1))
	assert.Equal(t, "❌", stockEmoji(0))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "15 Jan 2024", formatDate("2024-01-15"))
	assert.Equal(t, "not a date", formatDate("not a date"))
}

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "15 Jan 2024, 09:30 AM", formatDateTime("2024-01-15T09:30:00Z"))
	assert.Equal(t, "garbage", formatDateTime("garbage"))
}
