package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name string    `gorm:"type:varchar(100);unique;not null"`

	Products []ProductModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// ProductModel mirrors the 'products' table. Price is stored as numeric(10,2)
// so money never passes through binary floating point.
type ProductModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name       string          `gorm:"type:varchar(200);not null"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Text       string          `gorm:"type:text"`
	Price      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Active     bool            `gorm:"not null;default:true"`
	VideoKey   *string         `gorm:"type:varchar(255)"`
	OwnerID    *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category *CategoryModel      `gorm:"foreignKey:CategoryID"`
	Owner    *UserModel          `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL"`
	Photos   []ProductPhotoModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Ratings  []RatingModel       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Reviews  []ReviewModel       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// ProductPhotoModel mirrors the 'product_photos' table. ImageKey points into blob storage.
type ProductPhotoModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	ImageKey  string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductPhotoModel) TableName() string {
	return "product_photos"
}
