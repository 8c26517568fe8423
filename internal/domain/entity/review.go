package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a threaded product comment. A review is either a thread root
// (no parent) or a reply to exactly one parent review on the same product.
// Parents are fixed at creation and never re-assigned, so reply chains
// cannot form cycles.
type Review struct {
	ID             uuid.UUID
	AuthorID       uuid.UUID
	ProductID      uuid.UUID
	Text           string
	ParentReviewID *uuid.UUID
	CreatedDate    time.Time

	Author  *User    // Loaded for nested serializations; nil otherwise.
	Product *Product // Loaded for nested serializations; nil otherwise.
}

// IsRoot reports whether the review starts a thread.
func (r *Review) IsRoot() bool {
	return r.ParentReviewID == nil
}

// RepliesTo reports whether the review is a direct reply to parent.
func (r *Review) RepliesTo(parentID uuid.UUID) bool {
	return r.ParentReviewID != nil && *r.ParentReviewID == parentID
}
