package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups products. Names are unique; deleting a category deletes
// its products.
type Category struct {
	ID   uuid.UUID
	Name string
}

// Product is a catalog entry. It belongs to exactly one category and
// optionally to an owning user. Price is an exact decimal with two
// fractional digits.
type Product struct {
	ID         uuid.UUID
	Name       string
	CategoryID uuid.UUID
	Category   *Category // Loaded for detail views; nil otherwise.
	Text       string    // Optional description.
	Price      decimal.Decimal
	Active     bool
	VideoKey   *string    // Opaque blob-store reference, nil when no video was uploaded.
	OwnerID    *uuid.UUID // Optional owning user.
	Owner      *User      // Loaded for detail views; nil otherwise.
	CreatedAt  time.Time

	Photos  []ProductPhoto
	Ratings []Rating
	Reviews []Review
}

// AverageRating derives the product's rating from its loaded rating records.
// See AverageStars for the rounding contract.
func (p *Product) AverageRating() float64 {
	return AverageStars(p.Ratings)
}

// ProductPhoto references an uploaded product image by its blob-store key.
type ProductPhoto struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	ImageKey  string
}
