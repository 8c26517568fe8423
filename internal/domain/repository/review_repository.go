// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReviewNotFound is returned when a review is not found.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository defines operations for threaded review persistence.
type ReviewRepository interface {
	// FindByID retrieves a single review by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// FindByProductID retrieves all reviews on a product, oldest first,
	// authors preloaded.
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)

	// FindReplies retrieves exactly the reviews whose parent reference
	// matches the given review, oldest first.
	FindReplies(ctx context.Context, reviewID uuid.UUID) ([]*entity.Review, error)

	// Create persists a new review.
	Create(ctx context.Context, review *entity.Review) error

	// Delete removes a review. The database cascades the removal to its replies.
	Delete(ctx context.Context, id uuid.UUID) error
}
