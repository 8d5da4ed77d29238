package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/glowing-legacy-backend/internal/domain/product"
	"github.com/your-org/glowing-legacy-backend/internal/pkg/money"
)

func testProduct(price float64) *product.Product {
	return &product.Product{
		ID:            uuid.New(),
		Slug:          "memory-locket",
		Name:          "Memory Locket",
		Category:      product.CategoryJewelry,
		BasePrice:     price,
		StockQuantity: 10,
	}
}

func TestComputeItemSubtotal(t *testing.T) {
	subtotal, err := ComputeItemSubtotal(testProduct(49.99), 3, nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 149.97, subtotal, 1e-9)
}

func TestComputeItemSubtotalVariantsAreInert(t *testing.T) {
	// Selections are accepted but have no pricing effect without a pricer.
	selections := map[string]string{"color": "rose-gold"}
	withVariants, err := ComputeItemSubtotal(testProduct(49.99), 2, selections, nil)
	require.NoError(t, err)
	without, err := ComputeItemSubtotal(testProduct(49.99), 2, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, without, withVariants)
}

func TestComputeItemSubtotalCustomPricer(t *testing.T) {
	pricer := func(p *product.Product, selections map[string]string) float64 {
		if selections["engraving"] == "yes" {
			return p.BasePrice + 10
		}
		return p.BasePrice
	}
	subtotal, err := ComputeItemSubtotal(testProduct(40), 2, map[string]string{"engraving": "yes"}, pricer)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, subtotal, 1e-9)
}

func TestComputeItemSubtotalInvalidInput(t *testing.T) {
	_, err := ComputeItemSubtotal(nil, 1, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidLineItem)

	_, err = ComputeItemSubtotal(testProduct(-1), 1, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidLineItem)

	_, err = ComputeItemSubtotal(testProduct(10), 0, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidLineItem)

	_, err = ComputeItemSubtotal(testProduct(10), -2, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidLineItem)
}

func TestComputeCartTotals(t *testing.T) {
	items := []CartItem{
		{Product: testProduct(49.99), Quantity: 2, Subtotal: 99.98},
		{Product: testProduct(19.5), Quantity: 1, Subtotal: 19.5},
	}

	result := ComputeCartTotals(items, 5.95)

	assert.InDelta(t, 119.48, result.Subtotal, 1e-9)
	assert.InDelta(t, money.Round2(119.48*TaxRate), result.Tax, 1e-9)
	assert.InDelta(t, result.Subtotal+result.Tax+5.95, result.Total, 1e-9)
	assert.Equal(t, 5.95, result.Shipping)
	assert.Equal(t, 3, result.ItemCount())
}

func TestComputeCartTotalsEmpty(t *testing.T) {
	result := ComputeCartTotals(nil, 0)

	assert.NotNil(t, result.Items)
	assert.Zero(t, result.Subtotal)
	assert.Zero(t, result.Tax)
	assert.Zero(t, result.Shipping)
	assert.Zero(t, result.Total)
}

func TestComputeCartTotalsShippingDefaults(t *testing.T) {
	items := []CartItem{{Product: testProduct(10), Quantity: 1, Subtotal: 10}}

	// Negative shipping is treated as unknown and defaults to zero.
	result := ComputeCartTotals(items, -4)
	assert.Zero(t, result.Shipping)
	assert.InDelta(t, 10.8, result.Total, 1e-9)
}

func TestComputeCartTotalsIdempotent(t *testing.T) {
	items := []CartItem{
		{Product: testProduct(33.33), Quantity: 3, Subtotal: 99.99},
	}

	first := ComputeCartTotals(items, 7.5)
	second := ComputeCartTotals(items, 7.5)
	assert.Equal(t, first, second)
}

func TestComputeCartTotalsSumThenTax(t *testing.T) {
	// Tax is computed on the summed subtotal, not accumulated per item,
	// so rounding error never compounds across lines.
	items := []CartItem{
		{Subtotal: 0.105},
		{Subtotal: 0.105},
		{Subtotal: 0.105},
	}

	result := ComputeCartTotals(items, 0)
	assert.InDelta(t, money.Round2(0.315*TaxRate), result.Tax, 1e-9)
}
