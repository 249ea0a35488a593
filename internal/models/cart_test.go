package models_test

import (
	"testing"

	"github.com/clothsy/storefront/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCartTotals(t *testing.T) {

	items := []models.CartItem{
		{Quantity: 2, Product: models.Product{Price: 500}},
		{Quantity: 1, Product: models.Product{Price: 300, DiscountPrice: floatPtr(200)}},
	}

	t.Run("total uses the effective price per line", func(t *testing.T) {
		// (500 × 2) + (200 × 1)
		assert.Equal(t, 1200.0, models.CartTotal(items))
	})

	t.Run("count sums quantities", func(t *testing.T) {
		assert.Equal(t, 3, models.CartCount(items))
	})

	t.Run("empty cart", func(t *testing.T) {
		assert.Equal(t, 0.0, models.CartTotal(nil))
		assert.Equal(t, 0, models.CartCount(nil))
	})
}

func TestCartItemLineTotal(t *testing.T) {

	item := models.CartItem{Quantity: 3, Product: models.Product{Price: 700, DiscountPrice: floatPtr(650)}}

	assert.Equal(t, 650.0, item.UnitPrice())
	assert.Equal(t, 1950.0, item.LineTotal())
}
