package bot

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	args, err := parseArgs("abc 42", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "42"}, args)

	args, err = parseArgs("  spaced   out  ", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"spaced", "out"}, args)

	_, err = parseArgs("only-one", 2)
	assert.Error(t, err)

	_, err = parseArgs("", 1)
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"plain integer", "500", "500", false},
		{"decimal", "499.99", "499.99", false},
		{"rupee symbol", "₹1,299.50", "1299.5", false},
		{"dollar symbol", "$20", "20", false},
		{"surrounding spaces", "  150  ", "150", false},
		{"zero rejected", "0", "", true},
		{"negative rejected", "-10", "", true},
		{"not a number", "lots", "", true},
		{"empty", "", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := parseAmount(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, amount.Equal(decimal.RequireFromString(tc.expected)),
				"expected %s, got %s", tc.expected, amount)
		})
	}
}

func TestParseQuantity(t *testing.T) {
	qty, err := parseQuantity("25")
	require.NoError(t, err)
	assert.Equal(t, 25, qty)

	qty, err = parseQuantity("0")
	require.NoError(t, err)
	assert.Equal(t, 0, qty)

	_, err = parseQuantity("-1")
	assert.Error(t, err)

	_, err = parseQuantity("2.5")
	assert.Error(t, err)

	_, err = parseQuantity("many")
	assert.Error(t, err)
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, validateID("a3bb189e-8bf9-3888-9912-ace4e6543002"))
	assert.Error(t, validateID("123"))
	assert.Error(t, validateID(""))
	assert.Error(t, validateID("not-a-uuid"))
}

func TestParseExpenseDate(t *testing.T) {
	date, err := parseExpenseDate("today")
	require.NoError(t, err)
	assert.Equal(t, "", date)

	date, err = parseExpenseDate("Today")
	require.NoError(t, err)
	assert.Equal(t, "", date)

	date, err = parseExpenseDate("2026-08-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-15", date)

	_, err = parseExpenseDate("15/08/2026")
	assert.Error(t, err)

	_, err = parseExpenseDate("yesterday")
	assert.Error(t, err)
}
