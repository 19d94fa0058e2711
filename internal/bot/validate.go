package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// parseArgs splits command arguments and checks the expected count.
func parseArgs(arguments string, expected int) ([]string, error) {
	args := strings.Fields(arguments)
	if len(args) != expected {
		return nil, fmt.Errorf("expected %d argument(s), got %d", expected, len(args))
	}
	return args, nil
}

// parseAmount parses a positive money amount, tolerating currency symbols
// and thousands separators ("₹1,500" → 1500).
func parseAmount(text string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(text)
	for _, sym := range []string{"₹", "$", "€", "£", ","} {
		cleaned = strings.ReplaceAll(cleaned, sym, "")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", text)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("amount must be greater than zero")
	}
	return amount, nil
}

// parseQuantity parses a non-negative integer stock quantity.
func parseQuantity(text string) (int, error) {
	quantity, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", text)
	}
	if quantity < 0 {
		return 0, fmt.Errorf("quantity cannot be negative")
	}
	return quantity, nil
}

// validateID checks that the argument looks like a store record ID.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid ID %q", id)
	}
	return nil
}

// parseExpenseDate accepts YYYY-MM-DD or "today". "today" maps to the
// empty string, which the store resolves to the current date.
func parseExpenseDate(text string) (string, error) {
	text = strings.TrimSpace(strings.ToLower(text))
	if text == "today" {
		return "", nil
	}
	if _, err := time.Parse("2006-01-02", text); err != nil {
		return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD or 'today'", text)
	}
	return text, nil
}
