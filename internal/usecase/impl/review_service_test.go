package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// reviewServiceFixtures holds all test dependencies for review service tests.
type reviewServiceFixtures struct {
	service     usecase.ReviewUsecase
	reviewRepo  *mockRepo.MockReviewRepository
	productRepo *mockRepo.MockProductRepository
}

func createTestReviewService(t *testing.T) reviewServiceFixtures {
	t.Helper()

	reviewRepo := &mockRepo.MockReviewRepository{}
	productRepo := &mockRepo.MockProductRepository{}

	txManager := &mockRepo.StubTransactionManager{
		Factory: &mockRepo.StubRepositoryFactory{
			ReviewRepo: reviewRepo,
		},
	}

	service := NewReviewService(ReviewServiceParams{
		TxManager:   txManager,
		ReviewRepo:  reviewRepo,
		ProductRepo: productRepo,
		Logger:      newDiscardLogger(),
	})

	t.Cleanup(func() {
		reviewRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
	})

	return reviewServiceFixtures{
		service:     service,
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

func TestReviewService_CreateReview_Root(t *testing.T) {
	fixtures := createTestReviewService(t)
	ctx := context.Background()
	productID := uuid.New()
	authorID := uuid.New()

	fixtures.productRepo.On("FindByID", ctx, productID).
		Return(&entity.Product{ID: productID}, nil)
	fixtures.reviewRepo.On("Create", ctx, mock.AnythingOfType("*entity.Review")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Review).ID = uuid.New()
		}).
		Return(nil)

	review, err := fixtures.service.CreateReview(ctx, usecase.CreateReviewInput{
		AuthorID:  authorID,
		ProductID: productID,
		Text:      "solid product",
	})
	require.NoError(t, err)
	assert.True(t, review.IsRoot())
	assert.False(t, review.CreatedDate.IsZero())
}

func TestReviewService_CreateReview_ReplyToMissingParent(t *testing.T) {
	fixtures := createTestReviewService(t)
	ctx := context.Background()
	productID := uuid.New()
	parentID := uuid.New()

	fixtures.productRepo.On("FindByID", ctx, productID).
		Return(&entity.Product{ID: productID}, nil)
	fixtures.reviewRepo.On("FindByID", ctx, parentID).
		Return(nil, repository.ErrReviewNotFound)

	_, err := fixtures.service.CreateReview(ctx, usecase.CreateReviewInput{
		AuthorID:       uuid.New(),
		ProductID:      productID,
		Text:           "reply",
		ParentReviewID: &parentID,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrReviewNotFound))
}

func TestReviewService_CreateReview_ParentOnOtherProduct(t *testing.T) {
	fixtures := createTestReviewService(t)
	ctx := context.Background()
	productID := uuid.New()
	parentID := uuid.New()

	fixtures.productRepo.On("FindByID", ctx, productID).
		Return(&entity.Product{ID: productID}, nil)
	fixtures.reviewRepo.On("FindByID", ctx, parentID).
		Return(&entity.Review{ID: parentID, ProductID: uuid.New()}, nil)

	_, err := fixtures.service.CreateReview(ctx, usecase.CreateReviewInput{
		AuthorID:       uuid.New(),
		ProductID:      productID,
		Text:           "reply",
		ParentReviewID: &parentID,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrReviewParentMismatch))
}

func TestReviewService_ListProductReviews_BuildsThreads(t *testing.T) {
	fixtures := createTestReviewService(t)
	ctx := context.Background()
	productID := uuid.New()

	rootA := &entity.Review{ID: uuid.New(), ProductID: productID, Text: "root a", CreatedDate: time.Now().Add(-3 * time.Hour)}
	rootB := &entity.Review{ID: uuid.New(), ProductID: productID, Text: "root b", CreatedDate: time.Now().Add(-2 * time.Hour)}
	replyA1 := &entity.Review{ID: uuid.New(), ProductID: productID, Text: "reply a1", ParentReviewID: &rootA.ID, CreatedDate: time.Now().Add(-1 * time.Hour)}
	replyA1a := &entity.Review{ID: uuid.New(), ProductID: productID, Text: "reply a1a", ParentReviewID: &replyA1.ID, CreatedDate: time.Now()}

	fixtures.productRepo.On("FindByID", ctx, productID).
		Return(&entity.Product{ID: productID}, nil)
	fixtures.reviewRepo.On("FindByProductID", ctx, productID).
		Return([]*entity.Review{rootA, rootB, replyA1, replyA1a}, nil)

	threads, err := fixtures.service.ListProductReviews(ctx, productID)
	require.NoError(t, err)
	require.Len(t, threads, 2)

	assert.Equal(t, "root a", threads[0].Review.Text)
	assert.Equal(t, "root b", threads[1].Review.Text)
	require.Len(t, threads[0].Replies, 1)
	assert.Equal(t, "reply a1", threads[0].Replies[0].Review.Text)
	require.Len(t, threads[0].Replies[0].Replies, 1)
	assert.Equal(t, "reply a1a", threads[0].Replies[0].Replies[0].Review.Text)
	assert.Empty(t, threads[1].Replies)
}

func TestReviewService_DeleteReview_ForeignReview(t *testing.T) {
	fixtures := createTestReviewService(t)
	ctx := context.Background()
	reviewID := uuid.New()

	fixtures.reviewRepo.On("FindByID", ctx, reviewID).
		Return(&entity.Review{ID: reviewID, AuthorID: uuid.New()}, nil)

	err := fixtures.service.DeleteReview(ctx, uuid.New(), reviewID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestReviewService_DeleteReview_Success(t *testing.T) {
	fixtures := createTestReviewService(t)
	ctx := context.Background()
	reviewID := uuid.New()
	authorID := uuid.New()

	fixtures.reviewRepo.On("FindByID", ctx, reviewID).
		Return(&entity.Review{ID: reviewID, AuthorID: authorID}, nil)
	fixtures.reviewRepo.On("Delete", ctx, reviewID).Return(nil)

	require.NoError(t, fixtures.service.DeleteReview(ctx, authorID, reviewID))
}
