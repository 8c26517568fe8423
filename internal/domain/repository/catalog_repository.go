// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for catalog persistence.
var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryNameTaken is returned when a category name is already in use.
	ErrCategoryNameTaken = errors.New("category name already taken")
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
)

// CategoryRepository defines operations for category persistence.
type CategoryRepository interface {
	// FindByID retrieves a single category by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// List retrieves all categories ordered by name.
	List(ctx context.Context) ([]*entity.Category, error)

	// Create persists a new category. Names are unique.
	Create(ctx context.Context, category *entity.Category) error

	// Update renames an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category. The database cascades the removal to its products.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID *uuid.UUID
	ActiveOnly bool
	Page       int
	PageSize   int
}

// ProductRepository defines operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a product with its ratings preloaded, enough for
	// list-shaped serializations.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindDetailByID retrieves a product with category, owner, photos,
	// ratings (with users) and reviews (with authors) preloaded.
	FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List retrieves products matching the filter, ratings preloaded,
	// together with the total match count.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int64, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product. The database cascades the removal to its
	// ratings, photos, reviews and cart items.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddPhoto records an uploaded product image reference.
	AddPhoto(ctx context.Context, photo *entity.ProductPhoto) error
}
