package impl

import (
	"context"
	"strings"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// catalogServiceFixtures holds all test dependencies for catalog service tests.
type catalogServiceFixtures struct {
	service      usecase.CatalogUsecase
	categoryRepo *mockRepo.MockCategoryRepository
	productRepo  *mockRepo.MockProductRepository
	ratingRepo   *mockRepo.MockRatingRepository
	userRepo     *mockRepo.MockUserRepository
	mediaStore   *mockService.MockMediaStore
}

func createTestCatalogService(t *testing.T) catalogServiceFixtures {
	t.Helper()

	categoryRepo := &mockRepo.MockCategoryRepository{}
	productRepo := &mockRepo.MockProductRepository{}
	ratingRepo := &mockRepo.MockRatingRepository{}
	userRepo := &mockRepo.MockUserRepository{}
	mediaStore := &mockService.MockMediaStore{}

	service := NewCatalogService(CatalogServiceParams{
		CategoryRepo: categoryRepo,
		ProductRepo:  productRepo,
		RatingRepo:   ratingRepo,
		UserRepo:     userRepo,
		MediaStore:   mediaStore,
		Logger:       newDiscardLogger(),
	})

	t.Cleanup(func() {
		categoryRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
		ratingRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
		mediaStore.AssertExpectations(t)
	})

	return catalogServiceFixtures{
		service:      service,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		ratingRepo:   ratingRepo,
		userRepo:     userRepo,
		mediaStore:   mediaStore,
	}
}

func TestCatalogService_CreateCategory_NameTaken(t *testing.T) {
	fixtures := createTestCatalogService(t)
	ctx := context.Background()

	fixtures.categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).
		Return(repository.ErrCategoryNameTaken)

	_, err := fixtures.service.CreateCategory(ctx, usecase.CreateCategoryInput{Name: "books"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCategoryNameTaken))
}

func TestCatalogService_CreateProduct_UnknownCategory(t *testing.T) {
	fixtures := createTestCatalogService(t)
	ctx := context.Background()
	categoryID := uuid.New()

	fixtures.categoryRepo.On("FindByID", ctx, categoryID).
		Return(nil, repository.ErrCategoryNotFound)

	_, err := fixtures.service.CreateProduct(ctx, usecase.CreateProductInput{
		Name:       "lamp",
		CategoryID: categoryID,
		Price:      decimal.RequireFromString("19.99"),
		Active:     true,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrCategoryNotFound))
}

func TestCatalogService_CreateProduct_Success(t *testing.T) {
	fixtures := createTestCatalogService(t)
	ctx := context.Background()
	categoryID := uuid.New()

	fixtures.categoryRepo.On("FindByID", ctx, categoryID).
		Return(&entity.Category{ID: categoryID, Name: "lighting"}, nil)
	fixtures.productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Product).ID = uuid.New()
		}).
		Return(nil)

	product, err := fixtures.service.CreateProduct(ctx, usecase.CreateProductInput{
		Name:       "lamp",
		CategoryID: categoryID,
		Price:      decimal.RequireFromString("19.99"),
		Active:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, "lamp", product.Name)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("19.99")))
}

func TestCatalogService_RateProduct_StarsOutOfRange(t *testing.T) {
	fixtures := createTestCatalogService(t)
	ctx := context.Background()

	for _, stars := range []int{0, 6, -1} {
		_, err := fixtures.service.RateProduct(ctx, usecase.RateProductInput{
			ProductID: uuid.New(),
			UserID:    uuid.New(),
			Stars:     stars,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	}
}

func TestCatalogService_RateProduct_Success(t *testing.T) {
	fixtures := createTestCatalogService(t)
	ctx := context.Background()
	productID := uuid.New()
	userID := uuid.New()

	fixtures.productRepo.On("FindByID", ctx, productID).
		Return(&entity.Product{ID: productID}, nil)
	fixtures.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID}, nil)
	fixtures.ratingRepo.On("Create", ctx, mock.AnythingOfType("*entity.Rating")).
		Return(nil)

	rating, err := fixtures.service.RateProduct(ctx, usecase.RateProductInput{
		ProductID: productID,
		UserID:    userID,
		Stars:     4,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, rating.Stars)
}

func TestCatalogService_RateProduct_RepeatVotesKept(t *testing.T) {
	fixtures := createTestCatalogService(t)
	ctx := context.Background()
	productID := uuid.New()
	userID := uuid.New()

	fixtures.productRepo.On("FindByID", ctx, productID).
		Return(&entity.Product{ID: productID}, nil).Twice()
	fixtures.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID}, nil).Twice()
	fixtures.ratingRepo.On("Create", ctx, mock.AnythingOfType("*entity.Rating")).
		Return(nil).Twice()

	_, err := fixtures.service.RateProduct(ctx, usecase.RateProductInput{ProductID: productID, UserID: userID, Stars: 5})
	require.NoError(t, err)

	_, err = fixtures.service.RateProduct(ctx, usecase.RateProductInput{ProductID: productID, UserID: userID, Stars: 2})
	require.NoError(t, err)
}

func TestCatalogService_AddProductPhoto_CleansUpOnAttachFailure(t *testing.T) {
	fixtures := createTestCatalogService(t)
	ctx := context.Background()
	productID := uuid.New()
	upload := usecase.MediaUpload{
		FileName:    "front.jpg",
		ContentType: "image/jpeg",
		Content:     strings.NewReader("bytes"),
	}

	fixtures.productRepo.On("FindByID", ctx, productID).
		Return(&entity.Product{ID: productID}, nil)
	fixtures.mediaStore.On("Save", ctx, "front.jpg", "image/jpeg", upload.Content).
		Return("blob-key.jpg", nil)
	fixtures.productRepo.On("AddPhoto", ctx, mock.AnythingOfType("*entity.ProductPhoto")).
		Return(errors.New("insert failed"))
	fixtures.mediaStore.On("Delete", ctx, "blob-key.jpg").Return(nil)

	_, err := fixtures.service.AddProductPhoto(ctx, productID, upload)
	require.Error(t, err)
}

func TestCatalogService_SetProductVideo_ReplacesPrevious(t *testing.T) {
	fixtures := createTestCatalogService(t)
	ctx := context.Background()
	productID := uuid.New()
	oldKey := "old-video.mp4"
	upload := usecase.MediaUpload{
		FileName:    "clip.mp4",
		ContentType: "video/mp4",
		Content:     strings.NewReader("bytes"),
	}

	fixtures.productRepo.On("FindByID", ctx, productID).
		Return(&entity.Product{ID: productID, VideoKey: &oldKey}, nil)
	fixtures.mediaStore.On("Save", ctx, "clip.mp4", "video/mp4", upload.Content).
		Return("new-video.mp4", nil)
	fixtures.productRepo.On("Update", ctx, mock.AnythingOfType("*entity.Product")).
		Return(nil)
	fixtures.mediaStore.On("Delete", ctx, oldKey).Return(nil)

	product, err := fixtures.service.SetProductVideo(ctx, productID, upload)
	require.NoError(t, err)
	require.NotNil(t, product.VideoKey)
	assert.Equal(t, "new-video.mp4", *product.VideoKey)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	fixtures := createTestCatalogService(t)
	ctx := context.Background()
	productID := uuid.New()

	fixtures.productRepo.On("FindDetailByID", ctx, productID).
		Return(nil, repository.ErrProductNotFound)

	_, err := fixtures.service.GetProduct(ctx, productID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestCatalogService_ListProducts_PassesFilter(t *testing.T) {
	fixtures := createTestCatalogService(t)
	ctx := context.Background()
	categoryID := uuid.New()

	filter := repository.ProductFilter{
		CategoryID: &categoryID,
		ActiveOnly: true,
		Page:       2,
		PageSize:   10,
	}
	fixtures.productRepo.On("List", ctx, filter).
		Return([]*entity.Product{{Name: "lamp"}}, int64(11), nil)

	output, err := fixtures.service.ListProducts(ctx, usecase.ListProductsInput{
		CategoryID: &categoryID,
		ActiveOnly: true,
		Page:       2,
		PageSize:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), output.Total)
	require.Len(t, output.Products, 1)
}
