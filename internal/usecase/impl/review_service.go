// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager   repository.TransactionManager
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// ReviewServiceParams holds dependencies for reviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ReviewRepo  repository.ReviewRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager:   params.TxManager,
		reviewRepo:  params.ReviewRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateReview posts a review. A reply's parent must exist and sit on the
// same product; the parent check and the insert share one transaction so a
// parent cannot vanish in between.
func (srv *reviewService) CreateReview(ctx context.Context, input usecase.CreateReviewInput) (*entity.Review, error) {
	srv.log(ctx).Debug("Creating review", slog.Any("productID", input.ProductID), slog.Bool("isReply", input.ParentReviewID != nil))

	if _, err := srv.productRepo.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, errors.Wrap(err, "failed to load product for review")
	}

	review := &entity.Review{
		AuthorID:       input.AuthorID,
		ProductID:      input.ProductID,
		Text:           input.Text,
		ParentReviewID: input.ParentReviewID,
		CreatedDate:    time.Now(),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.NewReviewRepository()

		if input.ParentReviewID != nil {
			parent, err := reviewRepo.FindByID(ctx, *input.ParentReviewID)
			if err != nil {
				if errors.Is(err, repository.ErrReviewNotFound) {
					return errors.Wrap(domainerrors.ErrReviewNotFound, "parent review not found")
				}

				return errors.Wrap(err, "failed to load parent review")
			}

			if parent.ProductID != input.ProductID {
				return errors.Wrap(domainerrors.ErrReviewParentMismatch, "parent review belongs to another product")
			}
		}

		if err := reviewRepo.Create(ctx, review); err != nil {
			return errors.Wrap(err, "failed to create review")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Review creation failed", slog.Any("productID", input.ProductID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute review creation transaction")
	}

	return review, nil
}

// ListProductReviews retrieves a product's reviews assembled into threads.
// One query loads every review on the product; the tree is linked up in
// memory by parent reference.
func (srv *reviewService) ListProductReviews(ctx context.Context, productID uuid.UUID) ([]*usecase.ReviewThread, error) {
	if _, err := srv.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, errors.Wrap(err, "failed to load product for reviews")
	}

	reviews, err := srv.reviewRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list product reviews")
	}

	return buildReviewThreads(reviews), nil
}

// ListReplies retrieves the direct replies of one review, oldest first.
func (srv *reviewService) ListReplies(ctx context.Context, reviewID uuid.UUID) ([]*entity.Review, error) {
	if _, err := srv.reviewRepo.FindByID(ctx, reviewID); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, errors.Wrap(domainerrors.ErrReviewNotFound, "review not found")
		}

		return nil, errors.Wrap(err, "failed to load review")
	}

	replies, err := srv.reviewRepo.FindReplies(ctx, reviewID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list replies")
	}

	return replies, nil
}

// DeleteReview removes the author's own review and, by cascade, its replies.
func (srv *reviewService) DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) error {
	srv.log(ctx).Info("Deleting review", slog.Any("reviewID", reviewID), slog.Any("userID", userID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.NewReviewRepository()

		review, err := reviewRepo.FindByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return errors.Wrap(domainerrors.ErrReviewNotFound, "review not found")
			}

			return errors.Wrap(err, "failed to load review for deletion")
		}

		if review.AuthorID != userID {
			return errors.Wrap(domainerrors.ErrForbidden, "review belongs to another user")
		}

		if err := reviewRepo.Delete(ctx, reviewID); err != nil {
			return errors.Wrap(err, "failed to delete review")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Review deletion failed", slog.Any("reviewID", reviewID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute review deletion transaction")
	}

	return nil
}

// buildReviewThreads links a flat, oldest-first review list into trees.
// Replies whose parent is missing from the set are dropped rather than
// promoted, so a thread never changes shape when its root is filtered out.
func buildReviewThreads(reviews []*entity.Review) []*usecase.ReviewThread {
	nodes := make(map[uuid.UUID]*usecase.ReviewThread, len(reviews))
	for _, review := range reviews {
		nodes[review.ID] = &usecase.ReviewThread{Review: review}
	}

	roots := make([]*usecase.ReviewThread, 0, len(reviews))
	for _, review := range reviews {
		node := nodes[review.ID]

		if review.IsRoot() {
			roots = append(roots, node)

			continue
		}

		if parent, ok := nodes[*review.ParentReviewID]; ok {
			parent.Replies = append(parent.Replies, node)
		}
	}

	return roots
}
