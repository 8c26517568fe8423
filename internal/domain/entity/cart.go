package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is a user's single shopping cart (one per user, created on first
// access). Total price is derived on every read and never persisted.
type Cart struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Items       []CartItem
	CreatedDate time.Time
}

// CartItem is one (product, quantity) line in a cart. Quantity is a
// positive integer, defaulting to 1.
type CartItem struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	Product   *Product // Loaded for pricing and serialization.
	Quantity  int
}

// LineTotal is the item's contribution to the cart subtotal:
// unit price times quantity, in exact decimal arithmetic.
func (i *CartItem) LineTotal() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}

	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Subtotal sums the line totals of all items. An empty cart has a zero
// subtotal.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for idx := range c.Items {
		subtotal = subtotal.Add(c.Items[idx].LineTotal())
	}

	return subtotal
}

// TotalPrice applies the owner's tier discount to the subtotal:
// subtotal × (1 − discount), rounded to two decimal places. Unknown tiers
// carry a zero discount, so the result is never negative for non-negative
// prices and quantities.
func (c *Cart) TotalPrice(status Status) decimal.Decimal {
	factor := decimal.New(1, 0).Sub(status.Discount())

	return c.Subtotal().Mul(factor).Round(2)
}
