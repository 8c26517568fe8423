// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// RatingRepository defines operations for rating persistence.
// There is deliberately no uniqueness per (product, user): repeated votes
// are stored as separate records and all count toward the average.
type RatingRepository interface {
	// Create persists a new rating.
	Create(ctx context.Context, rating *entity.Rating) error

	// FindByProductID retrieves all ratings for a product with their users preloaded.
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.Rating, error)
}
