// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for cart persistence.
var (
	// ErrCartNotFound is returned when a user has no cart yet.
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartItemNotFound is returned when a cart item is not found.
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartRepository defines operations for cart persistence. Each user owns at
// most one cart.
type CartRepository interface {
	// FindByUserID retrieves the user's cart with items and their products
	// (ratings included) preloaded.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// Create persists a new, empty cart for a user.
	Create(ctx context.Context, cart *entity.Cart) error

	// AddItem persists a new line item.
	AddItem(ctx context.Context, item *entity.CartItem) error

	// FindItem retrieves a line item by its ID.
	FindItem(ctx context.Context, itemID uuid.UUID) (*entity.CartItem, error)

	// UpdateItemQuantity changes the quantity of a line item.
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error

	// RemoveItem deletes a single line item.
	RemoveItem(ctx context.Context, itemID uuid.UUID) error

	// ClearItems deletes every line item in a cart.
	ClearItems(ctx context.Context, cartID uuid.UUID) error
}
