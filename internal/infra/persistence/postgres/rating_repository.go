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

// ratingRepository implements the repository.RatingRepository interface.
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository is the constructor for ratingRepository.
func NewRatingRepository(db *gorm.DB) repository.RatingRepository {
	return &ratingRepository{
		db: db,
	}
}

// Create persists a new rating. Repeat votes by the same user on the same
// product are stored as separate rows.
func (repo *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	ratingM := fromRatingDomain(rating)

	if err := repo.db.WithContext(ctx).Create(ratingM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create rating")
	}

	rating.ID = ratingM.ID

	return nil
}

// FindByProductID retrieves all ratings for a product with their users preloaded.
func (repo *ratingRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]*entity.Rating, error) {
	var ratingModels []*model.RatingModel

	if err := repo.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&ratingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find ratings by product")
	}

	ratings := make([]*entity.Rating, 0, len(ratingModels))
	for _, ratingM := range ratingModels {
		ratings = append(ratings, toRatingDomain(ratingM))
	}

	return ratings, nil
}

// --- Mapper Functions ---

// toRatingDomain converts a GORM RatingModel to a domain Rating entity.
func toRatingDomain(data *model.RatingModel) *entity.Rating {
	if data == nil {
		return nil
	}

	rating := &entity.Rating{
		ID:        data.ID,
		ProductID: data.ProductID,
		UserID:    data.UserID,
		Stars:     data.Stars,
	}

	if data.User != nil {
		rating.User = toUserDomain(data.User)
	}

	return rating
}

// fromRatingDomain converts a domain Rating entity to a GORM RatingModel.
func fromRatingDomain(data *entity.Rating) *model.RatingModel {
	if data == nil {
		return nil
	}

	return &model.RatingModel{
		ID:        data.ID,
		ProductID: data.ProductID,
		UserID:    data.UserID,
		Stars:     data.Stars,
	}
}
