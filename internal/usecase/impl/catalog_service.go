// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	ratingRepo   repository.RatingRepository
	userRepo     repository.UserRepository
	mediaStore   service.MediaStore
	logger       *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	RatingRepo   repository.RatingRepository
	UserRepo     repository.UserRepository
	MediaStore   service.MediaStore
	Logger       *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		categoryRepo: params.CategoryRepo,
		productRepo:  params.ProductRepo,
		ratingRepo:   params.RatingRepo,
		userRepo:     params.UserRepo,
		mediaStore:   params.MediaStore,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListCategories retrieves all categories.
func (srv *catalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// CreateCategory creates a new category with a unique name.
func (srv *catalogService) CreateCategory(ctx context.Context, input usecase.CreateCategoryInput) (*entity.Category, error) {
	srv.log(ctx).Info("Creating category", slog.String("name", input.Name))

	category := &entity.Category{Name: input.Name}

	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryNameTaken) {
			return nil, errors.Wrap(domainerrors.ErrCategoryNameTaken, "category name already taken")
		}

		return nil, errors.Wrap(err, "failed to create category")
	}

	return category, nil
}

// RenameCategory changes a category's name.
func (srv *catalogService) RenameCategory(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error) {
	srv.log(ctx).Info("Renaming category", slog.Any("categoryID", id), slog.String("name", name))

	category := &entity.Category{ID: id, Name: name}

	if err := srv.categoryRepo.Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			return nil, errors.Wrap(domainerrors.ErrCategoryNotFound, "category not found")
		case errors.Is(err, repository.ErrCategoryNameTaken):
			return nil, errors.Wrap(domainerrors.ErrCategoryNameTaken, "category name already taken")
		}

		return nil, errors.Wrap(err, "failed to rename category")
	}

	return category, nil
}

// DeleteCategory removes a category and, by cascade, its products.
func (srv *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting category", slog.Any("categoryID", id))

	if err := srv.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return errors.Wrap(domainerrors.ErrCategoryNotFound, "category not found")
		}

		return errors.Wrap(err, "failed to delete category")
	}

	return nil
}

// ListProducts retrieves a filtered, paginated product listing.
func (srv *catalogService) ListProducts(ctx context.Context, input usecase.ListProductsInput) (*usecase.ProductListOutput, error) {
	products, total, err := srv.productRepo.List(ctx, repository.ProductFilter{
		CategoryID: input.CategoryID,
		ActiveOnly: input.ActiveOnly,
		Page:       input.Page,
		PageSize:   input.PageSize,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return &usecase.ProductListOutput{Products: products, Total: total}, nil
}

// GetProduct retrieves a product with all detail associations loaded.
func (srv *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	return product, nil
}

// CreateProduct creates a new product in an existing category.
func (srv *catalogService) CreateProduct(ctx context.Context, input usecase.CreateProductInput) (*entity.Product, error) {
	srv.log(ctx).Info("Creating product", slog.String("name", input.Name), slog.Any("categoryID", input.CategoryID))

	if _, err := srv.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, errors.Wrap(domainerrors.ErrCategoryNotFound, "category not found")
		}

		return nil, errors.Wrap(err, "failed to load category for product")
	}

	product := &entity.Product{
		Name:       input.Name,
		CategoryID: input.CategoryID,
		Text:       input.Text,
		Price:      input.Price,
		Active:     input.Active,
		OwnerID:    input.OwnerID,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	return product, nil
}

// UpdateProduct applies the given product changes.
func (srv *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input usecase.UpdateProductInput) (*entity.Product, error) {
	srv.log(ctx).Debug("Updating product", slog.Any("productID", id))

	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, errors.Wrap(err, "failed to load product for update")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.CategoryID != nil {
		if _, err := srv.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, errors.Wrap(domainerrors.ErrCategoryNotFound, "category not found")
			}

			return nil, errors.Wrap(err, "failed to load category for product update")
		}
		product.CategoryID = *input.CategoryID
	}
	if input.Text != nil {
		product.Text = *input.Text
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

// DeleteProduct removes a product and its media. Ratings, photos, reviews
// and cart items go with it through database cascades.
func (srv *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting product", slog.Any("productID", id))

	product, err := srv.productRepo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return errors.Wrap(err, "failed to load product for deletion")
	}

	if err := srv.productRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	// Best-effort blob cleanup; the database rows are already gone.
	if product.VideoKey != nil {
		if err := srv.mediaStore.Delete(ctx, *product.VideoKey); err != nil {
			srv.log(ctx).Warn("Failed to delete product video", slog.Any("productID", id), slog.Any("error", err))
		}
	}
	for _, photo := range product.Photos {
		if err := srv.mediaStore.Delete(ctx, photo.ImageKey); err != nil {
			srv.log(ctx).Warn("Failed to delete product photo", slog.Any("productID", id), slog.Any("error", err))
		}
	}

	return nil
}

// AddProductPhoto stores an uploaded image and attaches it to the product.
func (srv *catalogService) AddProductPhoto(ctx context.Context, productID uuid.UUID, upload usecase.MediaUpload) (*entity.ProductPhoto, error) {
	srv.log(ctx).Info("Adding product photo", slog.Any("productID", productID), slog.String("fileName", upload.FileName))

	if _, err := srv.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, errors.Wrap(err, "failed to load product for photo upload")
	}

	key, err := srv.mediaStore.Save(ctx, upload.FileName, upload.ContentType, upload.Content)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrMediaUploadFailed, "failed to store product photo")
	}

	photo := &entity.ProductPhoto{ProductID: productID, ImageKey: key}

	if err := srv.productRepo.AddPhoto(ctx, photo); err != nil {
		// Roll the orphaned blob back by hand; there is no transaction
		// spanning database and bucket.
		if delErr := srv.mediaStore.Delete(ctx, key); delErr != nil {
			srv.log(ctx).Warn("Failed to clean up orphaned photo blob", slog.String("key", key), slog.Any("error", delErr))
		}

		return nil, errors.Wrap(err, "failed to attach product photo")
	}

	return photo, nil
}

// SetProductVideo stores an uploaded video and makes it the product's video,
// replacing any previous one.
func (srv *catalogService) SetProductVideo(ctx context.Context, productID uuid.UUID, upload usecase.MediaUpload) (*entity.Product, error) {
	srv.log(ctx).Info("Setting product video", slog.Any("productID", productID), slog.String("fileName", upload.FileName))

	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, errors.Wrap(err, "failed to load product for video upload")
	}

	key, err := srv.mediaStore.Save(ctx, upload.FileName, upload.ContentType, upload.Content)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrMediaUploadFailed, "failed to store product video")
	}

	previousKey := product.VideoKey
	product.VideoKey = &key

	if err := srv.productRepo.Update(ctx, product); err != nil {
		if delErr := srv.mediaStore.Delete(ctx, key); delErr != nil {
			srv.log(ctx).Warn("Failed to clean up orphaned video blob", slog.String("key", key), slog.Any("error", delErr))
		}

		return nil, errors.Wrap(err, "failed to attach product video")
	}

	if previousKey != nil {
		if err := srv.mediaStore.Delete(ctx, *previousKey); err != nil {
			srv.log(ctx).Warn("Failed to delete replaced product video", slog.String("key", *previousKey), slog.Any("error", err))
		}
	}

	return product, nil
}

// RateProduct records a star vote. Repeat votes are kept, not replaced.
func (srv *catalogService) RateProduct(ctx context.Context, input usecase.RateProductInput) (*entity.Rating, error) {
	srv.log(ctx).Debug("Rating product", slog.Any("productID", input.ProductID), slog.Int("stars", input.Stars))

	if input.Stars < 1 || input.Stars > 5 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "stars must be between 1 and 5")
	}

	if _, err := srv.productRepo.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, errors.Wrap(err, "failed to load product for rating")
	}

	if _, err := srv.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
		}

		return nil, errors.Wrap(err, "failed to load user for rating")
	}

	rating := &entity.Rating{
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Stars:     input.Stars,
	}

	if err := srv.ratingRepo.Create(ctx, rating); err != nil {
		return nil, errors.Wrap(err, "failed to create rating")
	}

	return rating, nil
}

// ListProductRatings retrieves every vote on a product.
func (srv *catalogService) ListProductRatings(ctx context.Context, productID uuid.UUID) ([]*entity.Rating, error) {
	if _, err := srv.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, errors.Wrap(err, "failed to load product for ratings")
	}

	ratings, err := srv.ratingRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list product ratings")
	}

	return ratings, nil
}
