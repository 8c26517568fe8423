// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// FindByID retrieves a product with its ratings preloaded.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Preload("Ratings").
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by ID")
	}

	return toProductDomain(&productM), nil
}

// FindDetailByID retrieves a product with every association a detail view
// needs: category, owner, photos, ratings with their users, and reviews
// with their authors.
func (repo *productRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Preload("Category").
		Preload("Owner").
		Preload("Photos").
		Preload("Ratings.User").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_date ASC")
		}).
		Preload("Reviews.Author").
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product detail by ID")
	}

	return toProductDomain(&productM), nil
}

// List retrieves products matching the filter together with the total match count.
func (repo *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{})

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count products")
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var productModels []*model.ProductModel
	if err := query.
		Preload("Ratings").
		Order("created_at DESC").
		Find(&productModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, total, nil
}

// Create persists a new product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCategoryNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt

	return nil
}

// Update modifies an existing product.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":        productM.Name,
			"category_id": productM.CategoryID,
			"text":        productM.Text,
			"price":       productM.Price,
			"active":      productM.Active,
			"video_key":   productM.VideoKey,
		})

	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrCategoryNotFound
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Delete removes a product. Ratings, photos, reviews and cart items go with
// it via database cascades.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProductModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// AddPhoto records an uploaded product image reference.
func (repo *productRepository) AddPhoto(ctx context.Context, photo *entity.ProductPhoto) error {
	photoM := &model.ProductPhotoModel{
		ID:        photo.ID,
		ProductID: photo.ProductID,
		ImageKey:  photo.ImageKey,
	}

	if err := repo.db.WithContext(ctx).Create(photoM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add product photo")
	}

	photo.ID = photoM.ID

	return nil
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity,
// carrying along whichever associations were preloaded.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	product := &entity.Product{
		ID:         data.ID,
		Name:       data.Name,
		CategoryID: data.CategoryID,
		Text:       data.Text,
		Price:      data.Price,
		Active:     data.Active,
		VideoKey:   data.VideoKey,
		OwnerID:    data.OwnerID,
		CreatedAt:  data.CreatedAt,
	}

	if data.Category != nil {
		product.Category = toCategoryDomain(data.Category)
	}
	if data.Owner != nil {
		product.Owner = toUserDomain(data.Owner)
	}

	for idx := range data.Photos {
		photoM := &data.Photos[idx]
		product.Photos = append(product.Photos, entity.ProductPhoto{
			ID:        photoM.ID,
			ProductID: photoM.ProductID,
			ImageKey:  photoM.ImageKey,
		})
	}

	for idx := range data.Ratings {
		product.Ratings = append(product.Ratings, *toRatingDomain(&data.Ratings[idx]))
	}

	for idx := range data.Reviews {
		product.Reviews = append(product.Reviews, *toReviewDomain(&data.Reviews[idx]))
	}

	return product
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:         data.ID,
		Name:       data.Name,
		CategoryID: data.CategoryID,
		Text:       data.Text,
		Price:      data.Price,
		Active:     data.Active,
		VideoKey:   data.VideoKey,
		OwnerID:    data.OwnerID,
		CreatedAt:  data.CreatedAt,
	}
}
