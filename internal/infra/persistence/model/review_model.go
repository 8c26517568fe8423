package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel mirrors the 'reviews' table. ParentReviewID is nil for root
// reviews and references another row of the same table for replies.
type ReviewModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	AuthorID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Text           string     `gorm:"type:text;not null"`
	ParentReviewID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedDate    time.Time  `gorm:"not null"`

	Author  *UserModel    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Parent  *ReviewModel  `gorm:"foreignKey:ParentReviewID;constraint:OnDelete:CASCADE"`
	Replies []ReviewModel `gorm:"foreignKey:ParentReviewID"`
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
