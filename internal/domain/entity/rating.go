package entity

import (
	"math"

	"github.com/google/uuid"
)

// Rating is a single star vote a user gave to a product. Stars are 1..5,
// validated at the boundary. A user may rate the same product more than
// once; every record counts toward the average.
type Rating struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	UserID    uuid.UUID
	Stars     int

	User    *User    // Loaded for nested serializations; nil otherwise.
	Product *Product // Loaded for nested serializations; nil otherwise.
}

// AverageStars computes the arithmetic mean of the star values rounded to
// one decimal place, rounding halves away from zero. An empty set is not an
// error: it yields 0. The result is order-independent and always in [0, 5].
func AverageStars(ratings []Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Stars
	}

	mean := float64(sum) / float64(len(ratings))

	return math.Round(mean*10) / 10
}
