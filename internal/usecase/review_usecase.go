// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateReviewInput defines the data required to post a review or a reply.
// ParentReviewID is nil for thread roots.
type CreateReviewInput struct {
	AuthorID       uuid.UUID
	ProductID      uuid.UUID
	Text           string
	ParentReviewID *uuid.UUID
}

// --- Output DTOs ---

// ReviewThread is one review with its direct replies nested beneath it.
type ReviewThread struct {
	Review  *entity.Review
	Replies []*ReviewThread
}

// ReviewUsecase defines the interface for threaded review operations.
type ReviewUsecase interface {
	// CreateReview posts a review. A reply's parent must exist and sit on
	// the same product.
	CreateReview(ctx context.Context, input CreateReviewInput) (*entity.Review, error)

	// ListProductReviews retrieves a product's reviews assembled into
	// threads, roots and replies both oldest first.
	ListProductReviews(ctx context.Context, productID uuid.UUID) ([]*ReviewThread, error)

	// ListReplies retrieves the direct replies of one review, oldest first.
	ListReplies(ctx context.Context, reviewID uuid.UUID) ([]*entity.Review, error)

	// DeleteReview removes the author's own review and, by cascade, its replies.
	DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error
}
