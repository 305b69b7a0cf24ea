package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcGrol/shoppingcart/services/cart/cartmodel"
)

func product(uid string, price string) cartmodel.Product {
	return cartmodel.Product{UID: uid, Name: "product " + uid, Price: decimal.RequireFromString(price)}
}

func line(uid string, quantity int) cartmodel.CartLine {
	return cartmodel.CartLine{ProductUID: uid, Quantity: quantity}
}

func TestCalculatePrice(t *testing.T) {
	products := []cartmodel.Product{
		product("1", "12.99"),
		product("2", "25"),
		product("3", "20.65"),
		product("4", "3.49"),
		product("5", "1"),
		product("6", "2"),
	}

	testCases := []struct {
		name      string
		lines     []cartmodel.CartLine
		total     string
		freeUnits int
	}{
		{
			name:      "Two units pay full price",
			lines:     []cartmodel.CartLine{line("1", 2)},
			total:     "25.98",
			freeUnits: 0,
		},
		{
			name:      "Third unit free",
			lines:     []cartmodel.CartLine{line("1", 3)},
			total:     "25.98",
			freeUnits: 1,
		},
		{
			name:      "Cheapest units across lines are free",
			lines:     []cartmodel.CartLine{line("1", 1), line("2", 2), line("3", 3)},
			total:     "91.30",
			freeUnits: 2,
		},
		{
			name:      "Four units one free",
			lines:     []cartmodel.CartLine{line("1", 2), line("2", 2)},
			total:     "62.99",
			freeUnits: 1,
		},
		{
			name:      "Free units span multiple lines",
			lines:     []cartmodel.CartLine{line("2", 4), line("1", 1), line("4", 1)},
			total:     "100",
			freeUnits: 2,
		},
		{
			name:      "Free units exceed cheapest line",
			lines:     []cartmodel.CartLine{line("6", 5), line("5", 1)},
			total:     "8",
			freeUnits: 2,
		},
		{
			name:      "Zero quantity lines are ignored",
			lines:     []cartmodel.CartLine{line("1", 0), line("2", 3)},
			total:     "50",
			freeUnits: 1,
		},
		{
			name:      "No lines",
			lines:     []cartmodel.CartLine{},
			total:     "0",
			freeUnits: 0,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			total, freeUnits, err := CalculatePrice(tc.lines, products)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tc.total).Equal(total), "expected %s, got %s", tc.total, total)
			assert.Equal(t, tc.freeUnits, freeUnits)
		})
	}

	t.Run("Missing price", func(t *testing.T) {
		_, _, err := CalculatePrice([]cartmodel.CartLine{line("1", 1), line("9", 1)}, products)
		assert.EqualError(t, err, "no price found for product 9")
	})

	t.Run("Lines are not modified", func(t *testing.T) {
		lines := []cartmodel.CartLine{line("1", 3)}
		_, _, err := CalculatePrice(lines, products)
		require.NoError(t, err)
		assert.Equal(t, []cartmodel.CartLine{line("1", 3)}, lines)
	})
}
