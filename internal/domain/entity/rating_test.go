package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func ratingsWithStars(stars ...int) []Rating {
	ratings := make([]Rating, 0, len(stars))
	for _, s := range stars {
		ratings = append(ratings, Rating{
			ID:        uuid.New(),
			ProductID: uuid.New(),
			UserID:    uuid.New(),
			Stars:     s,
		})
	}

	return ratings
}

func TestAverageStars_EmptySetIsZero(t *testing.T) {
	assert.Equal(t, 0.0, AverageStars(nil))
	assert.Equal(t, 0.0, AverageStars([]Rating{}))
}

func TestAverageStars_RoundsToOneDecimal(t *testing.T) {
	tests := []struct {
		name  string
		stars []int
		want  float64
	}{
		{name: "two ratings", stars: []int{4, 5}, want: 4.5},
		{name: "repeating third rounds down", stars: []int{3, 3, 4}, want: 3.3},
		{name: "single rating", stars: []int{5}, want: 5.0},
		{name: "all same", stars: []int{2, 2, 2, 2}, want: 2.0},
		// Halves round away from zero: 1.75 -> 1.8.
		{name: "half rounds up", stars: []int{1, 2, 2, 2}, want: 1.8},
		{name: "mixed", stars: []int{1, 5, 4, 3}, want: 3.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AverageStars(ratingsWithStars(tt.stars...)), 1e-9)
		})
	}
}

func TestAverageStars_OrderIndependent(t *testing.T) {
	forward := ratingsWithStars(1, 2, 3, 4, 5)
	backward := ratingsWithStars(5, 4, 3, 2, 1)

	assert.Equal(t, AverageStars(forward), AverageStars(backward))
}

func TestAverageStars_StaysInRange(t *testing.T) {
	all := ratingsWithStars(1, 1, 1, 5, 5, 5)
	got := AverageStars(all)

	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 5.0)
}

func TestAverageStars_DuplicateVotesAllCount(t *testing.T) {
	// The same user rating twice produces two records; both feed the mean.
	userID := uuid.New()
	productID := uuid.New()
	ratings := []Rating{
		{ID: uuid.New(), ProductID: productID, UserID: userID, Stars: 1},
		{ID: uuid.New(), ProductID: productID, UserID: userID, Stars: 5},
	}

	assert.InDelta(t, 3.0, AverageStars(ratings), 1e-9)
}
