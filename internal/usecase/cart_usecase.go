// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Input DTOs ---

// AddCartItemInput defines the data required to put a product in the cart.
type AddCartItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// --- Output DTOs ---

// CartOutput returns the cart together with its derived pricing. The totals
// are computed on every read from current product prices and the owner's
// loyalty tier; nothing here is persisted.
type CartOutput struct {
	Cart       *entity.Cart
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal // Tier discount fraction, e.g. 0.25.
	TotalPrice decimal.Decimal
}

// CartUsecase defines the interface for shopping cart operations. Every
// operation acts on the calling user's own cart.
type CartUsecase interface {
	// GetCart retrieves the user's cart, creating an empty one on first access.
	GetCart(ctx context.Context, userID uuid.UUID) (*CartOutput, error)

	// AddItem puts a product into the cart. Adding a product that is
	// already present raises a conflict rather than bumping the quantity.
	AddItem(ctx context.Context, userID uuid.UUID, input AddCartItemInput) (*CartOutput, error)

	// UpdateItemQuantity changes one line's quantity to a positive value.
	UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*CartOutput, error)

	// RemoveItem deletes one line from the cart.
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartOutput, error)

	// ClearCart deletes every line from the cart.
	ClearCart(ctx context.Context, userID uuid.UUID) (*CartOutput, error)
}
