// internal/domain/cart/totals_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTunch(t *testing.T) {
	t.Run("allowed values", func(t *testing.T) {
		for _, tunch := range AllowedTunches {
			assert.True(t, IsValidTunch(tunch), "expected %q to be valid", tunch)
		}
	})

	t.Run("empty falls back to product default", func(t *testing.T) {
		assert.True(t, IsValidTunch(""))
	})

	t.Run("rejected values", func(t *testing.T) {
		for _, tunch := range []string{"91", "92.50", "100", "92,5", " 92.5"} {
			assert.False(t, IsValidTunch(tunch), "expected %q to be invalid", tunch)
		}
	})
}

func TestCalculateTotals(t *testing.T) {
	t.Run("sums quantities and weighted grams", func(t *testing.T) {
		items := []CartItemResponse{
			{Quantity: 2, Weight: 5.5},
			{Quantity: 1, Weight: 10.0},
			{Quantity: 3, Weight: 2.0},
		}

		totalItems, totalWeight := CalculateTotals(items)
		assert.Equal(t, 6, totalItems)
		assert.InDelta(t, 27.0, totalWeight, 1e-9)
	})

	t.Run("empty cart", func(t *testing.T) {
		totalItems, totalWeight := CalculateTotals(nil)
		assert.Zero(t, totalItems)
		assert.Zero(t, totalWeight)
	})

	t.Run("weightless items still count", func(t *testing.T) {
		items := []CartItemResponse{
			{Quantity: 4, Weight: 0},
		}

		totalItems, totalWeight := CalculateTotals(items)
		assert.Equal(t, 4, totalItems)
		assert.Zero(t, totalWeight)
	})
}
