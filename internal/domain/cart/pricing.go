// internal/domain/cart/pricing.go
package cart

import (
	"errors"
	"fmt"

	"github.com/your-org/glowing-legacy-backend/internal/domain/product"
	"github.com/your-org/glowing-legacy-backend/internal/pkg/money"
)

// TaxRate is the flat tax applied to the cart subtotal. There is no
// tax-jurisdiction logic.
const TaxRate = 0.08

// ErrInvalidLineItem indicates a malformed line item (missing product,
// negative price or non-positive quantity). Callers must reject the
// mutating operation and leave the cart unchanged.
var ErrInvalidLineItem = errors.New("invalid line item")

// UnitPricer resolves the effective unit price for a product given the
// selected variant options. Variant price modifiers exist in the data
// model but are not applied yet; injecting a pricer is the extension
// point for that behavior. A nil pricer means the base price.
type UnitPricer func(p *product.Product, selections map[string]string) float64

// ComputeItemSubtotal computes the subtotal for one line item at full
// floating precision. Rounding to currency precision happens at
// presentation time only.
func ComputeItemSubtotal(p *product.Product, quantity int, selections map[string]string, pricer UnitPricer) (float64, error) {
	if p == nil {
		return 0, fmt.Errorf("%w: product is required", ErrInvalidLineItem)
	}
	if p.BasePrice < 0 {
		return 0, fmt.Errorf("%w: product %s has negative base price", ErrInvalidLineItem, p.ID)
	}
	if quantity <= 0 {
		return 0, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidLineItem, quantity)
	}

	unitPrice := p.BasePrice
	if pricer != nil {
		unitPrice = pricer(p, selections)
		if unitPrice < 0 {
			return 0, fmt.Errorf("%w: resolved unit price is negative", ErrInvalidLineItem)
		}
	}

	return unitPrice * float64(quantity), nil
}

// ComputeCartTotals recomputes the cart aggregate from scratch as a
// pure function of (items, shipping). The subtotal is summed at full
// precision before the tax multiplication so rounding error never
// compounds across items; tax is rounded once to currency precision.
// Stock availability is deliberately not checked here: inventory policy
// belongs to the stateful cart manager, pricing stays total.
func ComputeCartTotals(items []CartItem, shipping float64) Cart {
	if items == nil {
		items = []CartItem{}
	}
	if shipping < 0 {
		shipping = 0
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.Subtotal
	}

	tax := money.Round2(subtotal * TaxRate)

	return Cart{
		Items:    items,
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal + tax + shipping,
	}
}
