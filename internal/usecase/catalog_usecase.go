// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"io"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Input DTOs ---

// CreateCategoryInput defines the data required to create a category.
type CreateCategoryInput struct {
	Name string
}

// CreateProductInput defines the data required to create a product.
type CreateProductInput struct {
	Name       string
	CategoryID uuid.UUID
	Text       string
	Price      decimal.Decimal
	Active     bool
	OwnerID    *uuid.UUID
}

// UpdateProductInput carries the mutable product fields. Nil pointers mean
// "leave unchanged".
type UpdateProductInput struct {
	Name       *string
	CategoryID *uuid.UUID
	Text       *string
	Price      *decimal.Decimal
	Active     *bool
}

// ListProductsInput narrows and paginates product listings.
type ListProductsInput struct {
	CategoryID *uuid.UUID
	ActiveOnly bool
	Page       int
	PageSize   int
}

// MediaUpload is an incoming file attachment for a product.
type MediaUpload struct {
	FileName    string
	ContentType string
	Content     io.Reader
}

// RateProductInput defines the data required to record a star vote.
type RateProductInput struct {
	ProductID uuid.UUID
	UserID    uuid.UUID
	Stars     int
}

// --- Output DTOs ---

// ProductListOutput returns one page of products plus the total match count.
type ProductListOutput struct {
	Products []*entity.Product
	Total    int64
}

// CatalogUsecase defines the interface for category, product and rating operations.
type CatalogUsecase interface {
	// ListCategories retrieves all categories.
	ListCategories(ctx context.Context) ([]*entity.Category, error)

	// CreateCategory creates a new category with a unique name.
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*entity.Category, error)

	// RenameCategory changes a category's name.
	RenameCategory(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error)

	// DeleteCategory removes a category and, by cascade, its products.
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// ListProducts retrieves a filtered, paginated product listing.
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListOutput, error)

	// GetProduct retrieves a product with all detail associations loaded.
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// CreateProduct creates a new product in an existing category.
	CreateProduct(ctx context.Context, input CreateProductInput) (*entity.Product, error)

	// UpdateProduct applies the given product changes.
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*entity.Product, error)

	// DeleteProduct removes a product and, by cascade, its ratings, photos,
	// reviews and cart items.
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// AddProductPhoto stores an uploaded image and attaches it to the product.
	AddProductPhoto(ctx context.Context, productID uuid.UUID, upload MediaUpload) (*entity.ProductPhoto, error)

	// SetProductVideo stores an uploaded video and makes it the product's
	// video, replacing any previous one.
	SetProductVideo(ctx context.Context, productID uuid.UUID, upload MediaUpload) (*entity.Product, error)

	// RateProduct records a star vote. Repeat votes are kept, not replaced.
	RateProduct(ctx context.Context, input RateProductInput) (*entity.Rating, error)

	// ListProductRatings retrieves every vote on a product.
	ListProductRatings(ctx context.Context, productID uuid.UUID) ([]*entity.Rating, error)
}
