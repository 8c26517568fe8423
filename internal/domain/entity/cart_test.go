package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartWithItems(lines ...struct {
	price string
	qty   int
}) *Cart {
	cart := &Cart{ID: uuid.New(), UserID: uuid.New()}
	for _, line := range lines {
		price := decimal.RequireFromString(line.price)
		product := &Product{ID: uuid.New(), Name: "item", Price: price, Active: true}
		cart.Items = append(cart.Items, CartItem{
			ID:        uuid.New(),
			CartID:    cart.ID,
			ProductID: product.ID,
			Product:   product,
			Quantity:  line.qty,
		})
	}

	return cart
}

func line(price string, qty int) struct {
	price string
	qty   int
} {
	return struct {
		price string
		qty   int
	}{price: price, qty: qty}
}

func TestCartItem_LineTotal(t *testing.T) {
	cart := cartWithItems(line("19.99", 3))

	assert.True(t, cart.Items[0].LineTotal().Equal(decimal.RequireFromString("59.97")))
}

func TestCartItem_LineTotalWithoutProduct(t *testing.T) {
	item := CartItem{ID: uuid.New(), Quantity: 2}

	assert.True(t, item.LineTotal().IsZero())
}

func TestCart_EmptyCartTotalIsZeroForEveryTier(t *testing.T) {
	cart := &Cart{ID: uuid.New(), UserID: uuid.New()}

	for _, status := range []Status{StatusGold, StatusSilver, StatusBronze, StatusSimple, Status(""), Status("unknown")} {
		assert.True(t, cart.TotalPrice(status).IsZero(), "tier %q", status)
	}
}

func TestCart_TotalPriceByTier(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   string
	}{
		{name: "gold pays a quarter", status: StatusGold, want: "50.00"},
		{name: "silver pays half", status: StatusSilver, want: "100.00"},
		{name: "bronze pays three quarters", status: StatusBronze, want: "150.00"},
		{name: "simple pays full price", status: StatusSimple, want: "200.00"},
		{name: "unknown tier fails open to full price", status: Status("platinum"), want: "200.00"},
		{name: "empty tier fails open to full price", status: Status(""), want: "200.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// One item priced 100.00 with quantity 2: subtotal 200.00.
			cart := cartWithItems(line("100.00", 2))

			got := cart.TotalPrice(tt.status)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestCart_SilverDiscountOnMultipleItems(t *testing.T) {
	// Items summing to 80.00 with silver status halve to 40.00.
	cart := cartWithItems(line("25.00", 2), line("10.00", 3))

	require.True(t, cart.Subtotal().Equal(decimal.RequireFromString("80.00")))
	assert.True(t, cart.TotalPrice(StatusSilver).Equal(decimal.RequireFromString("40.00")))
}

func TestCart_DecimalArithmeticIsExact(t *testing.T) {
	// 0.10 added ten times must be exactly 1.00; binary floats would drift.
	lines := make([]struct {
		price string
		qty   int
	}, 0, 10)
	for range 10 {
		lines = append(lines, line("0.10", 1))
	}
	cart := cartWithItems(lines...)

	assert.True(t, cart.Subtotal().Equal(decimal.RequireFromString("1.00")))
	assert.True(t, cart.TotalPrice(StatusBronze).Equal(decimal.RequireFromString("0.75")))
}

func TestCart_TotalIsNonNegative(t *testing.T) {
	cart := cartWithItems(line("3.33", 1))

	for _, status := range []Status{StatusGold, StatusSilver, StatusBronze, StatusSimple} {
		assert.False(t, cart.TotalPrice(status).IsNegative(), "tier %q", status)
	}
}

func TestStatus_Discount(t *testing.T) {
	assert.True(t, StatusGold.Discount().Equal(decimal.New(75, -2)))
	assert.True(t, StatusSilver.Discount().Equal(decimal.New(50, -2)))
	assert.True(t, StatusBronze.Discount().Equal(decimal.New(25, -2)))
	assert.True(t, StatusSimple.Discount().IsZero())
	assert.True(t, Status("").Discount().IsZero())
}

func TestStatus_IsValid(t *testing.T) {
	for _, status := range []Status{StatusGold, StatusSilver, StatusBronze, StatusSimple} {
		assert.True(t, status.IsValid())
	}
	assert.False(t, Status("platinum").IsValid())
}
